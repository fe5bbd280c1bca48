package interview

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const payloadSchemaURL = "schema://generated-questions.json"

// payloadSchema describes GeneratedQuestions. Questions may be plain strings
// or {"question": "..."} objects; models produce both.
var payloadSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"questions": map[string]any{
			"type": "array",
			"items": map[string]any{
				"anyOf": []any{
					map[string]any{"type": "string"},
					map[string]any{
						"type": "object",
						"properties": map[string]any{
							"question": map[string]any{"type": "string"},
						},
						"required": []any{"question"},
					},
				},
			},
		},
		"description": map[string]any{"type": "string"},
	},
	"required": []any{"questions", "description"},
}

var (
	compileOnce     sync.Once
	compiledPayload *jsonschema.Schema
	compileErr      error
)

// PayloadReport summarizes what a generated completion looks like.
type PayloadReport struct {
	// Valid is true when the content parses and matches the payload schema.
	Valid bool

	HasQuestions   bool
	QuestionCount  int
	HasDescription bool

	// Err explains why the content is not Valid.
	Err error
}

// CheckPayload inspects generated content for logging. It never modifies
// the content and its result must not change what the caller receives.
func CheckPayload(content string) PayloadReport {
	var parsed any
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return PayloadReport{Err: fmt.Errorf("invalid JSON: %w", err)}
	}

	// Decoding is best effort: fields of the wrong type stay zero.
	var payload GeneratedQuestions
	_ = json.Unmarshal([]byte(content), &payload)
	report := PayloadReport{
		HasQuestions:   payload.Questions != nil,
		QuestionCount:  len(payload.Questions),
		HasDescription: payload.Description != "",
	}

	schema, err := payloadValidator()
	if err != nil {
		report.Err = fmt.Errorf("compile payload schema: %w", err)
		return report
	}
	if err := schema.Validate(parsed); err != nil {
		report.Err = fmt.Errorf("schema validation failed: %w", err)
		return report
	}

	report.Valid = true
	return report
}

func payloadValidator() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		if err := c.AddResource(payloadSchemaURL, payloadSchema); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledPayload, compileErr = c.Compile(payloadSchemaURL)
	})
	return compiledPayload, compileErr
}
