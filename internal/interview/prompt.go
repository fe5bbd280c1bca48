package interview

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompts/system.txt
var systemPromptRaw string

//go:embed prompts/questions.tmpl
var questionsPromptRaw string

// SystemPrompt is sent as the system message of every generation.
var SystemPrompt = strings.TrimSpace(systemPromptRaw)

// questionsTemplate is parsed once at package init.
var questionsTemplate = template.Must(template.New("questions").Option("missingkey=error").Parse(questionsPromptRaw))

// BuildPrompt renders the user prompt for req.
func BuildPrompt(req JobRequest) (string, error) {
	var b strings.Builder
	if err := questionsTemplate.Execute(&b, req); err != nil {
		return "", fmt.Errorf("render questions prompt: %w", err)
	}
	return b.String(), nil
}
