package domain

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "feder/pkg/domain-errors"
)

// IDs must be valid, non-empty, non-nil UUIDs.
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseCaseID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseLetterID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseAlertID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		valid := uuid.New()
		id, err := ParseCaseID(valid.String())
		require.NoError(t, err)
		assert.Equal(t, CaseID(valid), id)
		assert.Equal(t, valid.String(), id.String())
	})
}

func TestTypeDistinction(t *testing.T) {
	caseID := CaseID(uuid.New())
	letterID := LetterID(uuid.New())

	// var _ CaseID = letterID would not compile.
	assert.NotEqual(t, uuid.UUID(caseID), uuid.UUID(letterID))
}

func TestIsNil(t *testing.T) {
	assert.True(t, CaseID{}.IsNil())
	assert.True(t, OperatorID(uuid.Nil).IsNil())
	assert.False(t, LetterID(uuid.New()).IsNil())
}

func TestIDsMarshalAsText(t *testing.T) {
	raw := uuid.New()
	in := struct {
		Case   CaseID    `json:"case_id"`
		Letter *LetterID `json:"letter_id,omitempty"`
	}{Case: CaseID(raw)}

	body, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"case_id":"`+raw.String()+`"}`, string(body))

	var out struct {
		Case CaseID `json:"case_id"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, CaseID(raw), out.Case)
}
