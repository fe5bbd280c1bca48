package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/abhisek/interviewgen/internal/llm"
)

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("INTERVIEWGEN_TEST_A=from-file\nINTERVIEWGEN_TEST_B=from-file\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INTERVIEWGEN_TEST_B", "from-env")
	t.Cleanup(func() { os.Unsetenv("INTERVIEWGEN_TEST_A") })

	if err := loadEnvFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := os.Getenv("INTERVIEWGEN_TEST_A"); got != "from-file" {
		t.Errorf("INTERVIEWGEN_TEST_A = %q, want from-file", got)
	}
	if got := os.Getenv("INTERVIEWGEN_TEST_B"); got != "from-env" {
		t.Errorf("existing variable overwritten: %q", got)
	}
}

func TestLoadEnvFile_Missing(t *testing.T) {
	if err := loadEnvFile(filepath.Join(t.TempDir(), "nope.env")); err != nil {
		t.Fatalf("missing file should be ignored, got %v", err)
	}
	if err := loadEnvFile(""); err != nil {
		t.Fatalf("empty path should be ignored, got %v", err)
	}
}

func TestNewGenerator(t *testing.T) {
	ctx := context.Background()

	unknown := llm.DefaultConfig()
	unknown.Provider = "deepseek"
	if _, err := newGenerator(ctx, unknown, nil); err == nil {
		t.Error("expected startup error for unknown provider")
	}

	gen, err := newGenerator(ctx, llm.DefaultConfig(), nil)
	if err != nil || gen != nil {
		t.Errorf("missing key: got generator %v, err %v; want nil, nil", gen, err)
	}

	mock := llm.DefaultConfig()
	mock.Provider = "mock"
	gen, err = newGenerator(ctx, mock, nil)
	if err != nil || gen == nil {
		t.Fatalf("mock provider: got generator %v, err %v", gen, err)
	}
	if gen.ModelID() != "mock" {
		t.Errorf("model = %q", gen.ModelID())
	}
}
