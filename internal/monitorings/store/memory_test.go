package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feder/internal/monitorings/models"
	id "feder/pkg/domain"
	"feder/pkg/platform/sentinel"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore()
	now := time.Now()

	m, err := models.NewMonitoring(id.MonitoringID(uuid.New()), "Dostęp do informacji", "-- stopka", true, now)
	require.NoError(t, err)
	require.NoError(t, s.CreateMonitoring(ctx, m))

	i, err := models.NewInstitution(id.InstitutionID(uuid.New()), "Urząd Gminy", "UG <UG@Example.pl>", false, now)
	require.NoError(t, err)
	require.NoError(t, s.CreateInstitution(ctx, i))

	t.Run("stored values are copies", func(t *testing.T) {
		m.Name = "changed"
		found, err := s.FindMonitoring(ctx, m.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dostęp do informacji", found.Name)
		assert.True(t, found.NotifyAlert)
	})

	t.Run("institution address is normalized", func(t *testing.T) {
		found, err := s.FindInstitution(ctx, i.ID)
		require.NoError(t, err)
		assert.Equal(t, "ug@example.pl", found.Email)
	})

	t.Run("missing rows", func(t *testing.T) {
		_, err := s.FindMonitoring(ctx, id.MonitoringID(uuid.New()))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		_, err = s.FindInstitution(ctx, id.InstitutionID(uuid.New()))
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}
