package intent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is returned by Parse for output that is not a well-formed intent.
var ErrMalformed = errors.New("malformed intent")

// rawIntent is the flat JSON object the oracle is asked to produce.
type rawIntent struct {
	Intent     string   `json:"intent"`
	Confidence *float64 `json:"confidence"`
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	Tags       []string `json:"tags"`
	QueryType  string   `json:"query_type"`
	Parameter  string   `json:"parameter"`
	NewTags    []string `json:"new_tags"`
	Reply      string   `json:"reply"`
	Question   string   `json:"question"`
}

// Parse decodes oracle output into an Intent. Anything that does not satisfy the
// chosen variant's required fields is rejected with ErrMalformed.
func Parse(raw string) (Intent, error) {
	payload := extractJSONObject(raw)
	if payload == "" {
		return nil, fmt.Errorf("%w: no json object in output", ErrMalformed)
	}

	var r rawIntent
	if err := json.Unmarshal([]byte(payload), &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	confidence := 0.0
	if r.Confidence != nil {
		confidence = clamp(*r.Confidence)
	}

	switch Kind(strings.ToLower(strings.TrimSpace(r.Intent))) {
	case KindSaveNote:
		title, body := strings.TrimSpace(r.Title), strings.TrimSpace(r.Body)
		if title == "" && body == "" {
			return nil, fmt.Errorf("%w: save_note without title or body", ErrMalformed)
		}
		return SaveNote{Title: title, Body: body, Tags: CleanTags(r.Tags), Confidence: confidence}, nil

	case KindQuery:
		kind := QueryKind(strings.ToLower(strings.TrimSpace(r.QueryType)))
		if !kind.valid() {
			return nil, fmt.Errorf("%w: unknown query_type %q", ErrMalformed, r.QueryType)
		}
		param := strings.TrimSpace(r.Parameter)
		if kind.NeedsParameter() && param == "" {
			return nil, fmt.Errorf("%w: %s query without parameter", ErrMalformed, kind)
		}
		if !kind.NeedsParameter() {
			param = ""
		}
		return Query{Type: kind, Parameter: param, Confidence: confidence}, nil

	case KindConversation:
		reply := strings.TrimSpace(r.Reply)
		if reply == "" {
			return nil, fmt.Errorf("%w: conversation without reply", ErrMalformed)
		}
		return Conversation{Reply: reply, Confidence: confidence}, nil

	case KindUnclear:
		question := strings.TrimSpace(r.Question)
		if question == "" {
			return nil, fmt.Errorf("%w: unclear without question", ErrMalformed)
		}
		return Unclear{Question: question}, nil

	case KindTagCorrection:
		tags := CleanTags(r.NewTags)
		if len(tags) == 0 {
			return nil, fmt.Errorf("%w: tag_correction without new_tags", ErrMalformed)
		}
		return TagCorrection{NewTags: tags}, nil

	default:
		return nil, fmt.Errorf("%w: unknown intent %q", ErrMalformed, r.Intent)
	}
}

// extractJSONObject strips markdown fences and returns the outermost {...} span.
func extractJSONObject(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end <= start {
		return ""
	}
	return s[start : end+1]
}

func clamp(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// CleanTags trims tags and drops empties and case-insensitive duplicates,
// keeping the first spelling seen.
func CleanTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(t), "#"))
		key := strings.ToLower(t)
		if t == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}
