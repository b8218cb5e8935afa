package perplexity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSONCleanObject(t *testing.T) {
	out, ok := ExtractJSON(`{"skills": ["go"]}`)

	require.True(t, ok)
	assert.JSONEq(t, `{"skills": ["go"]}`, out)
}

func TestExtractJSONStripsThinkBlock(t *testing.T) {
	raw := "<think>\nLet me work through the CV...\n</think>\n{\"skills\": [\"go\"]}"

	out, ok := ExtractJSON(raw)

	require.True(t, ok)
	assert.JSONEq(t, `{"skills": ["go"]}`, out)
}

func TestExtractJSONFencedBlock(t *testing.T) {
	raw := "Here is the analysis:\n```json\n{\"skills\": [\"go\", \"sql\"]}\n```\nHope that helps!"

	out, ok := ExtractJSON(raw)

	require.True(t, ok)
	assert.JSONEq(t, `{"skills": ["go", "sql"]}`, out)
}

func TestExtractJSONGenericFence(t *testing.T) {
	raw := "```\n[{\"title\": \"Engineer\"}]\n```"

	out, ok := ExtractJSON(raw)

	require.True(t, ok)
	assert.JSONEq(t, `[{"title": "Engineer"}]`, out)
}

func TestExtractJSONEmbeddedInProse(t *testing.T) {
	raw := `Based on my analysis, the result is {"skills": ["go"], "years_experience": 5} which covers everything.`

	out, ok := ExtractJSON(raw)

	require.True(t, ok)
	assert.JSONEq(t, `{"skills": ["go"], "years_experience": 5}`, out)
}

func TestExtractJSONArrayEmbeddedInProse(t *testing.T) {
	raw := `I found these jobs: [{"title": "Engineer", "company": "Acme"}] across the boards.`

	out, ok := ExtractJSON(raw)

	require.True(t, ok)
	assert.JSONEq(t, `[{"title": "Engineer", "company": "Acme"}]`, out)
}

func TestExtractJSONBracesInsideStrings(t *testing.T) {
	raw := `Result: {"description": "uses {braces} and \"quotes\" inside"} done.`

	out, ok := ExtractJSON(raw)

	require.True(t, ok)
	assert.JSONEq(t, `{"description": "uses {braces} and \"quotes\" inside"}`, out)
}

func TestExtractJSONNothingParseable(t *testing.T) {
	_, ok := ExtractJSON("I could not produce a structured answer, sorry.")
	assert.False(t, ok)

	_, ok = ExtractJSON("")
	assert.False(t, ok)

	_, ok = ExtractJSON("<think>only thoughts</think>")
	assert.False(t, ok)
}

func TestExtractJSONMalformedThenValid(t *testing.T) {
	// The first opener starts an unbalanced fragment; the scan must move
	// on and find the later valid object.
	raw := `broken { fragment ... and the real answer: {"ok": true}`

	out, ok := ExtractJSON(raw)

	require.True(t, ok)
	assert.JSONEq(t, `{"ok": true}`, out)
}
