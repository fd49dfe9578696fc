package drafter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// envelope builds a Gemini generateContent response carrying the given
// model text.
func envelope(t *testing.T, text string) string {
	t.Helper()
	resp := map[string]any{
		"candidates": []map[string]any{
			{
				"content": map[string]any{
					"parts": []map[string]string{{"text": text}},
					"role":  "model",
				},
				"finishReason": "STOP",
			},
		},
	}
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(data)
}

func TestDecodeDraft_Fenced(t *testing.T) {
	raw := envelope(t, "```json\n{\"body\": \"Dear Sir/Madam,\\n\\nMy invoice is wrong.\\n\\nRegards,\\nAlpha\"}\n```")

	body, err := DecodeDraft(raw)
	require.NoError(t, err)
	assert.Contains(t, body, "Dear Sir/Madam,")
	assert.Contains(t, body, "Alpha")
}

func TestDecodeDraft_Unfenced(t *testing.T) {
	raw := envelope(t, `{"body": "Dear Sir/Madam, please advise."}`)

	body, err := DecodeDraft(raw)
	require.NoError(t, err)
	assert.Equal(t, "Dear Sir/Madam, please advise.", body)
}

func TestDecodeDraft_LeadingNoise(t *testing.T) {
	raw := "data: " + envelope(t, `{"body": "ok"}`)

	body, err := DecodeDraft(raw)
	require.NoError(t, err)
	assert.Equal(t, "ok", body)
}

func TestDecodeDraft_NoJSON(t *testing.T) {
	_, err := DecodeDraft("plain text, no braces")
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "envelope", de.Stage)
}

func TestDecodeDraft_NoCandidates(t *testing.T) {
	_, err := DecodeDraft(`{"candidates": []}`)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "candidates", de.Stage)
}

func TestDecodeDraft_InnerNotJSON(t *testing.T) {
	raw := envelope(t, "Sorry, I cannot help with that.")

	_, err := DecodeDraft(raw)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "inner", de.Stage)
}

func TestDecodeDraft_MissingBody(t *testing.T) {
	raw := envelope(t, `{"subject": "no body here"}`)

	_, err := DecodeDraft(raw)
	var de *DecodeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "body", de.Stage)
}

func TestFirstJSONObject(t *testing.T) {
	obj, ok := firstJSONObject(`noise {"a": {"b": 1}} trailing {"c": 2}`)
	require.True(t, ok)
	assert.Equal(t, `{"a": {"b": 1}}`, obj)

	_, ok = firstJSONObject("no object")
	assert.False(t, ok)

	_, ok = firstJSONObject("{unbalanced")
	assert.False(t, ok)
}
