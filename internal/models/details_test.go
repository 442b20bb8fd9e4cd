package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDetails_PreservesKeyOrder(t *testing.T) {
	d, err := ParseDetails([]byte(`{"topic": "Python", "level": 2, "tags": ["sql", null, true], "meta": {"b": 1.5, "a": "x"}}`))
	require.NoError(t, err)

	assert.Equal(t, `{"topic":"Python","level":2,"tags":["sql",null,true],"meta":{"b":1.5,"a":"x"}}`, d.Compact())

	v, ok := d.Get("topic")
	require.True(t, ok)
	assert.Equal(t, KindString, v.Kind)
	assert.Equal(t, "Python", v.Text)
}

func TestParseDetails_EmptyInputs(t *testing.T) {
	for _, raw := range []string{"", "  ", "null", "{}"} {
		d, err := ParseDetails([]byte(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, "{}", d.Compact(), raw)
	}
}

func TestParseDetails_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"array", `[1,2]`},
		{"string", `"python"`},
		{"broken", `{"topic":`},
		{"trailing", `{"a":1} {"b":2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDetails([]byte(tt.raw))
			assert.Error(t, err)
		})
	}
}

func TestParseDetails_DuplicateKeyKeepsFirstPosition(t *testing.T) {
	d, err := ParseDetails([]byte(`{"a":1,"b":2,"a":3}`))
	require.NoError(t, err)
	assert.Equal(t, `{"a":3,"b":2}`, d.Compact())
}

func TestDetails_NumberNormalization(t *testing.T) {
	d, err := ParseDetails([]byte(`{"a":85.0,"b":1e2,"c":-0.5}`))
	require.NoError(t, err)
	assert.Equal(t, `{"a":85,"b":100,"c":-0.5}`, d.Compact())
}

func TestDetails_StringEscaping(t *testing.T) {
	d := Details{}.Set("note", String("say \"hi\"\n<b>&"))
	assert.Equal(t, `{"note":"say \"hi\"\n<b>&"}`, d.Compact())
}

func TestDetails_JSONRoundTripInsideRecord(t *testing.T) {
	raw := `{"activityType":"Quiz","activityDetails":{"z":"last","a":"first"},"score":88,"createdAt":"2026-01-02T03:04:05Z"}`

	var rec ActivityRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	assert.Equal(t, `quiz {"z":"last","a":"first"}`, rec.SearchText())
	require.NotNil(t, rec.Score)
	assert.Equal(t, 88.0, *rec.Score)

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"activityDetails":{"z":"last","a":"first"}`)
}

func TestDetails_UnmarshalNonObjectDegradesToEmpty(t *testing.T) {
	var rec ActivityRecord
	require.NoError(t, json.Unmarshal([]byte(`{"activityType":"Mock Interview","activityDetails":"oops"}`), &rec))
	assert.Equal(t, "mock interview {}", rec.SearchText())
	assert.Nil(t, rec.Score)
}

func TestUserID_AcceptsStringAndNumber(t *testing.T) {
	var body struct {
		UserID UserID `json:"userId"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"userId": 42}`), &body))
	assert.Equal(t, UserID("42"), body.UserID)

	require.NoError(t, json.Unmarshal([]byte(`{"userId": "u-7"}`), &body))
	assert.Equal(t, UserID("u-7"), body.UserID)

	require.NoError(t, json.Unmarshal([]byte(`{"userId": null}`), &body))
	assert.Equal(t, UserID(""), body.UserID)

	assert.Error(t, json.Unmarshal([]byte(`{"userId": true}`), &body))
}

func TestTestResult_SearchText(t *testing.T) {
	tr := TestResult{TestTitle: "SQL Basics", Company: "Acme FinTech", JobRole: "Analyst"}
	assert.Equal(t, "sql basics acme fintech analyst", tr.SearchText())
}
