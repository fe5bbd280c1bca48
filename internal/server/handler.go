package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/abhisek/interviewgen/internal/interview"
	"github.com/abhisek/interviewgen/internal/llm"
)

const contentPreviewLen = 200

// Handler serves the interview question endpoint.
type Handler struct {
	llmConfig llm.Config
	generator *interview.Generator
	logger    *zap.Logger
}

// NewHandler creates a Handler. generator may be nil when llmConfig has no
// credential; such requests are rejected before any call is attempted.
func NewHandler(llmConfig llm.Config, generator *interview.Generator, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		llmConfig: llmConfig,
		generator: generator,
		logger:    logger.Named("handler"),
	}
}

// GenerateQuestions handles POST /api/generate-interview-questions.
func (h *Handler) GenerateQuestions(c *gin.Context) {
	log := h.logger.With(zap.String("request_id", requestID(c)))

	content, apiErr := h.generateQuestions(c, log)
	if apiErr != nil {
		h.fail(c, log, apiErr)
		return
	}

	c.PureJSON(http.StatusOK, gin.H{"response": content})
}

func (h *Handler) generateQuestions(c *gin.Context, log *zap.Logger) (string, *apiError) {
	fields, apiErr := parseBody(c)
	if apiErr != nil {
		return "", apiErr
	}
	log.Info("request received", zap.Int("field_count", len(fields)))

	if missing := missingFields(fields); len(missing) > 0 {
		return "", errMissingFields(missing)
	}

	req := jobRequestFromFields(fields)

	if !h.llmConfig.HasCredential() || h.generator == nil {
		return "", errNotConfigured()
	}

	log.Info("generating questions",
		zap.String("model", h.generator.ModelID()),
		zap.Int("number_length", len(req.Number)),
		zap.Int("name_length", len(req.Name)),
		zap.Int("objective_length", len(req.Objective)),
		zap.Int("context_length", len(req.Context)),
	)

	resp, err := h.generator.Generate(c.Request.Context(), req)
	if err != nil {
		return "", errInternal(err)
	}
	if resp == nil || resp.Content == "" {
		return "", errNoContent()
	}

	h.inspectContent(log, resp.Content)
	return resp.Content, nil
}

// parseBody reads the body as JSON. Only malformed syntax is an error. A
// valid value that is not an object (an array, a number, null) carries no
// fields, so every required field is reported missing.
func parseBody(c *gin.Context) (map[string]json.RawMessage, *apiError) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, errInternal(fmt.Errorf("reading request body: %w", err))
	}

	var value json.RawMessage
	if err := json.Unmarshal(body, &value); err != nil {
		return nil, errInvalidJSON(err)
	}

	fields := map[string]json.RawMessage{}
	if err := json.Unmarshal(value, &fields); err != nil {
		return map[string]json.RawMessage{}, nil
	}
	return fields, nil
}

var jsonNull = []byte("null")

// missingFields returns the required fields that are absent or null, in
// declared order.
func missingFields(fields map[string]json.RawMessage) []string {
	var missing []string
	for _, name := range interview.RequiredFields {
		raw, ok := fields[name]
		if !ok || bytes.Equal(raw, jsonNull) {
			missing = append(missing, name)
		}
	}
	return missing
}

// jobRequestFromFields renders each required field as prompt text. Any JSON
// type is accepted.
func jobRequestFromFields(fields map[string]json.RawMessage) interview.JobRequest {
	return interview.JobRequest{
		Name:      fieldText(fields["name"]),
		Objective: fieldText(fields["objective"]),
		Number:    fieldText(fields["number"]),
		Context:   fieldText(fields["context"]),
	}
}

// fieldText turns a JSON value into the text it contributes to the prompt.
// Strings are unquoted and numbers are written in their shortest decimal
// form, so 5, 5.0 and 1e1 read as "5", "5" and "10". Other values keep their
// compact JSON text.
func fieldText(raw json.RawMessage) string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return string(raw)
	}

	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return numberText(v)
	case bool:
		return strconv.FormatBool(v)
	}

	var b bytes.Buffer
	if err := json.Compact(&b, raw); err != nil {
		return string(raw)
	}
	return b.String()
}

func numberText(n json.Number) string {
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return n.String()
	}
	if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// inspectContent checks the generated content against the expected payload
// shape. The result is logged only.
func (h *Handler) inspectContent(log *zap.Logger, content string) {
	report := interview.CheckPayload(content)
	fields := []zap.Field{
		zap.Int("content_length", len(content)),
		zap.Bool("has_questions", report.HasQuestions),
		zap.Int("question_count", report.QuestionCount),
		zap.Bool("has_description", report.HasDescription),
	}
	if report.Valid {
		log.Info("generated content matches payload schema", fields...)
		return
	}

	log.Warn("generated content does not match payload schema",
		append(fields, zap.Error(report.Err))...)
	log.Debug("generated content preview", zap.String("preview", preview(content)))
}

func preview(s string) string {
	r := []rune(s)
	if len(r) <= contentPreviewLen {
		return s
	}
	return string(r[:contentPreviewLen]) + "..."
}

func (h *Handler) fail(c *gin.Context, log *zap.Logger, e *apiError) {
	fields := []zap.Field{
		zap.Int("status", e.Status),
		zap.String("error_message", e.Message),
	}
	if e.Cause != nil {
		fields = append(fields, zap.Error(e.Cause))
	}

	switch {
	case e.Status >= http.StatusInternalServerError:
		log.Error("request failed", fields...)
	default:
		log.Info("request rejected", fields...)
	}

	c.AbortWithStatusJSON(e.Status, gin.H{"error": e.Message})
}

// Health handles GET /healthz.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
