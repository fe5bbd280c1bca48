// Package interview turns a job description into interview questions by way
// of a single chat completion.
package interview

// RequiredFields lists the JobRequest JSON fields in their declared order.
// Missing-field errors report names in this order.
var RequiredFields = []string{"name", "objective", "number", "context"}

// JobRequest is the interview configuration submitted by a caller. Values
// are kept as the text that goes into the prompt.
type JobRequest struct {
	// Name is the interview or role title, e.g. "Backend Engineer".
	Name string `json:"name"`

	// Objective is what the interview should assess.
	Objective string `json:"objective"`

	// Number is how many questions to generate, e.g. "5".
	Number string `json:"number"`

	// Context is free-form background used to tailor the questions.
	Context string `json:"context"`
}

// GeneratedQuestions is the shape the model is asked to produce. CheckPayload
// decodes into it to count what came back; callers get the raw text.
type GeneratedQuestions struct {
	Questions   []any  `json:"questions"`
	Description string `json:"description"`
}
