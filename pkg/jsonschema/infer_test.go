package jsonschema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustInfer(t *testing.T, js string) *Inferred {
	t.Helper()
	inferred, err := InferJSON([]byte(js))
	require.NoError(t, err)
	return inferred
}

func TestInfer_Primitives(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`"AAPL"`, "string"},
		{`42`, "integer"},
		{`189.5`, "number"},
		{`true`, "boolean"},
		{`null`, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, mustInfer(t, tt.input).Schema.Type)
		})
	}
}

func TestInfer_Records(t *testing.T) {
	inferred := mustInfer(t, `[
		{"date":"2024-01-02","close":185.6,"volume":100,"note":null},
		{"date":"2024-01-03","close":184,"volume":120,"note":"split"},
		{"date":"2024-01-04","close":181.9,"volume":90}
	]`)

	assert.Equal(t, 3, inferred.Records)
	s := inferred.Schema
	assert.Equal(t, "array", s.Type)
	require.NotNil(t, s.Items)
	assert.Equal(t, "object", s.Items.Type)
	assert.Equal(t, []string{"close", "date", "volume"}, s.Items.Required)

	date, ok := s.Items.Properties.Get("date")
	require.True(t, ok)
	assert.Equal(t, "date", date.Format)

	closeSchema, ok := s.Items.Properties.Get("close")
	require.True(t, ok)
	assert.Equal(t, "number", closeSchema.Type, "integer and number merge into number")

	note, ok := s.Items.Properties.Get("note")
	require.True(t, ok)
	require.Len(t, note.AnyOf, 2)
}

func TestInfer_DateTimeFormat(t *testing.T) {
	s := mustInfer(t, `{"ts":"2024-01-02T15:04:05Z","label":"2024-01-02 maybe"}`).Schema

	ts, _ := s.Properties.Get("ts")
	assert.Equal(t, "date-time", ts.Format)
	label, _ := s.Properties.Get("label")
	assert.Empty(t, label.Format)
}

func TestInfer_EmptyArray(t *testing.T) {
	inferred := mustInfer(t, `[]`)
	assert.Equal(t, 0, inferred.Records)
	assert.Equal(t, "array", inferred.Schema.Type)
	assert.Nil(t, inferred.Schema.Items)
}

func TestInfer_Marshals(t *testing.T) {
	s := mustInfer(t, `{"symbol":"AAPL","quotes":[{"bid":1.5}]}`).Schema

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"required":["quotes","symbol"]`)
}

func TestInferJSON_Invalid(t *testing.T) {
	_, err := InferJSON([]byte(`{`))
	require.Error(t, err)
}
