package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
)

func TestNewMonitoring(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	m, err := NewMonitoring(id.MonitoringID(uuid.New()), "  Budgets 2024 ", "-- footer", true, now)
	require.NoError(t, err)
	assert.Equal(t, "Budgets 2024", m.Name)
	assert.True(t, m.NotifyAlert)

	_, err = NewMonitoring(id.MonitoringID(uuid.New()), "   ", "", false, now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func TestInstitutionCanReceiveCases(t *testing.T) {
	now := time.Now()
	active, err := NewInstitution(id.InstitutionID(uuid.New()), "Gmina", "Sekretariat@Gmina.PL", false, now)
	require.NoError(t, err)
	assert.Equal(t, "sekretariat@gmina.pl", active.Email)
	assert.NoError(t, active.CanReceiveCases())

	archival, err := NewInstitution(id.InstitutionID(uuid.New()), "Old", "old@gmina.pl", true, now)
	require.NoError(t, err)
	assert.True(t, dErrors.HasCode(archival.CanReceiveCases(), dErrors.CodeInvariantViolation))
}

func TestCreateInstitutionRequest(t *testing.T) {
	req := CreateInstitutionRequest{Name: " Urząd ", Email: " URZAD@EXAMPLE.PL "}
	req.Normalize()
	require.NoError(t, req.Validate())
	assert.Equal(t, "urzad@example.pl", req.Email)

	bad := CreateInstitutionRequest{Name: "x", Email: "nope"}
	bad.Normalize()
	assert.True(t, dErrors.HasCode(bad.Validate(), dErrors.CodeValidation))
}
