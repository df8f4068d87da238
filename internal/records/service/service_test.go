package service

import (
	"context"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feder/internal/records/models"
	"feder/internal/records/store"
	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
	outboxmemory "feder/pkg/platform/outbox/store/memory"
	"feder/pkg/platform/tx"
	"feder/pkg/requestcontext"
)

func newService(t *testing.T) (*Service, *outboxmemory.InMemoryStore) {
	t.Helper()
	events := outboxmemory.NewInMemoryStore()
	return New(store.NewInMemoryStore(), events, tx.NewLocalRunner(), "feder.records"), events
}

func TestAppendOrdersTimelineAndEmitsEvents(t *testing.T) {
	svc, events := newService(t)
	base := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	caseID := id.CaseID(uuid.New())

	var appended []*models.Record
	for i := range 3 {
		ctx := requestcontext.WithTime(context.Background(), base.Add(time.Duration(2-i)*time.Minute))
		r, err := svc.Append(ctx, &caseID, models.KindLetter, id.LetterID(uuid.New()))
		require.NoError(t, err)
		appended = append(appended, r)
	}

	timeline, err := svc.ListByCase(context.Background(), caseID)
	require.NoError(t, err)
	require.Len(t, timeline, 3)
	assert.Equal(t, appended[2].ID, timeline[0].ID, "oldest first")
	assert.Equal(t, appended[0].ID, timeline[2].ID)

	entries := events.All()
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, "feder.records", e.Topic)
		assert.Equal(t, models.EventAppended, e.EventType)
		assert.Equal(t, caseID.String(), e.Key)
	}
}

func TestAdoptOrphan(t *testing.T) {
	svc, events := newService(t)
	ctx := context.Background()

	orphan, err := svc.Append(ctx, nil, models.KindLetter, id.LetterID(uuid.New()))
	require.NoError(t, err)

	orphans, err := svc.ListOrphans(ctx)
	require.NoError(t, err)
	require.Len(t, orphans, 1)

	caseID := id.CaseID(uuid.New())
	adopted, err := svc.AdoptOrphan(ctx, orphan.ID, caseID)
	require.NoError(t, err)
	assert.Equal(t, caseID, *adopted.CaseID)

	_, err = svc.AdoptOrphan(ctx, orphan.ID, id.CaseID(uuid.New()))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))

	_, err = svc.AdoptOrphan(ctx, id.RecordID(uuid.New()), caseID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	orphans, err = svc.ListOrphans(ctx)
	require.NoError(t, err)
	assert.Empty(t, orphans)

	entries := events.All()
	require.Len(t, entries, 2)
	var adoptedEvents []models.Event
	for _, e := range entries {
		if e.EventType != models.EventAdopted {
			continue
		}
		var ev models.Event
		require.NoError(t, json.Unmarshal(e.Payload, &ev))
		adoptedEvents = append(adoptedEvents, ev)
	}
	require.Len(t, adoptedEvents, 1)
	payload := adoptedEvents[0]
	assert.Equal(t, orphan.ID, payload.RecordID)
	assert.Equal(t, caseID, *payload.CaseID)
}
