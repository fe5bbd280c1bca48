package llm

import "context"

type purposeCtxKey struct{}

const defaultPurpose = "unknown"

// WithPurpose tags completions made with ctx, e.g. "interview-questions".
// The tag shows up in attempt logs.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeCtxKey{}, purpose)
}

// PurposeFrom returns the tag set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	purpose, _ := ctx.Value(purposeCtxKey{}).(string)
	if purpose == "" {
		return defaultPurpose
	}
	return purpose
}
