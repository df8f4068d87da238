package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feder/internal/deliverylogs/models"
	"feder/internal/platform/jwttoken"
)

func TestDecodeRowsArray(t *testing.T) {
	rows, err := decodeRows(strings.NewReader(`
  [{"id":"a","to":"x@example.pl","ok_time":"2024-01-02 10:00"},{"id":"b","to":"y@example.pl","ok":true}]`))
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].String("id"))
	assert.Equal(t, models.StatusOK, models.DeriveStatus(rows[0]))
	// only <status>_time and <status>_desc fields carry a status
	assert.Equal(t, models.StatusUnknown, models.DeriveStatus(rows[1]))
}

func TestDecodeRowsNDJSON(t *testing.T) {
	input := `{"id":"a","hardbounce_desc":"550 mailbox unavailable"}
{"id":"b","open_time":"2024-01-02 10:00"}

{"id":"c"}
`
	rows, err := decodeRows(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, models.StatusHardBounce, models.DeriveStatus(rows[0]))
	assert.Equal(t, models.StatusOpen, models.DeriveStatus(rows[1]))
	assert.Equal(t, "c", rows[2].String("id"))
}

func TestDecodeRowsEmptyInput(t *testing.T) {
	rows, err := decodeRows(strings.NewReader("  \n"))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDecodeRowsReportsBrokenLine(t *testing.T) {
	_, err := decodeRows(strings.NewReader("{\"id\":\"a\"}\n{broken\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("FEDER_AUTH__JWT_SIGNING_KEY", "cli-test-signing-key")
	operatorID := uuid.NewString()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"token", "--operator", operatorID, "--name", "Ola"})
	require.NoError(t, rootCmd.Execute())

	claims, err := jwttoken.NewJWTService("cli-test-signing-key", "feder").ValidateToken(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, operatorID, claims.OperatorID)
}
