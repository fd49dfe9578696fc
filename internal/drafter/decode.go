package drafter

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DecodeError reports which stage of the response decode chain failed.
type DecodeError struct {
	Stage string // "envelope", "candidates", "inner", "body"
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decoding draft (%s): %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("decoding draft (%s)", e.Stage)
}

func (e *DecodeError) Unwrap() error { return e.Err }

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type draftPayload struct {
	Body string `json:"body"`
}

// DecodeDraft extracts the drafted email body from a raw Gemini response.
//
// The model is instructed to answer with a JSON object, which arrives
// wrapped twice: the API envelope carries the model text in
// candidates[0].content.parts[0].text, and the text itself is usually a
// markdown-fenced JSON object holding the "body" field. Total over string
// input: every failure is a *DecodeError, never a default body.
func DecodeDraft(raw string) (string, error) {
	envelope, ok := firstJSONObject(raw)
	if !ok {
		return "", &DecodeError{Stage: "envelope", Err: fmt.Errorf("no JSON object in response")}
	}

	var resp geminiResponse
	if err := json.Unmarshal([]byte(envelope), &resp); err != nil {
		return "", &DecodeError{Stage: "envelope", Err: err}
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &DecodeError{Stage: "candidates", Err: fmt.Errorf("no candidate text")}
	}
	text := resp.Candidates[0].Content.Parts[0].Text

	cleaned := strings.TrimSpace(stripFences(text))

	var payload draftPayload
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return "", &DecodeError{Stage: "inner", Err: err}
	}

	if payload.Body == "" {
		return "", &DecodeError{Stage: "body", Err: fmt.Errorf("missing body field")}
	}
	return payload.Body, nil
}

// stripFences removes markdown code-fence markers around the model output.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	return strings.ReplaceAll(s, "```", "")
}

// firstJSONObject returns the first balanced top-level brace-delimited
// object in s. Brace counting ignores string context, matching the lenient
// extraction the drafting chain has always used.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
