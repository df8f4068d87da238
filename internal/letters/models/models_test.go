package models

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	casemodels "feder/internal/cases/models"
	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
)

func TestSpamStatusTransitions(t *testing.T) {
	statuses := []SpamStatus{SpamUnknown, SpamSpam, SpamNonSpam}
	for _, from := range statuses {
		for _, to := range statuses {
			want := from == SpamUnknown && to != SpamUnknown
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestSpamStatusText(t *testing.T) {
	l := Letter{Spam: SpamNonSpam}
	b, err := json.Marshal(l)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"spam":"non_spam"`)

	var s SpamStatus
	require.NoError(t, s.UnmarshalText([]byte("spam")))
	assert.Equal(t, SpamSpam, s)
	assert.Error(t, s.UnmarshalText([]byte("ham")))
}

func TestParseAutoReplyType(t *testing.T) {
	str := func(s string) *string { return &s }

	assert.Equal(t, MessageRegular, ParseAutoReplyType(nil))
	assert.Equal(t, MessageVacationReply, ParseAutoReplyType(str("vacation-reply")))
	assert.Equal(t, MessageDispositionNotification, ParseAutoReplyType(str("disposition-notification")))
	assert.Equal(t, MessageRegular, ParseAutoReplyType(str("something-else")))
}

func TestMilestone(t *testing.T) {
	assert.Equal(t, casemodels.MilestoneResponse, MessageRegular.Milestone())
	assert.Equal(t, casemodels.MilestoneConfirmation, MessageDispositionNotification.Milestone())
	assert.Equal(t, casemodels.MilestoneNone, MessageVacationReply.Milestone())
}

func TestManifestValidate(t *testing.T) {
	t.Run("version required", func(t *testing.T) {
		m := &Manifest{}
		err := m.Validate()
		assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
	})

	t.Run("old version rejected", func(t *testing.T) {
		m := &Manifest{Version: "v1"}
		assert.True(t, dErrors.HasCode(m.Validate(), dErrors.CodeBadRequest))
	})

	t.Run("file needs a name", func(t *testing.T) {
		m := &Manifest{Version: ManifestVersion, Files: []ManifestFile{{Content: "MTIz"}}}
		assert.True(t, dErrors.HasCode(m.Validate(), dErrors.CodeValidation))
	})

	t.Run("whitespace version is normalized", func(t *testing.T) {
		m := &Manifest{Version: " v2 "}
		m.Normalize()
		assert.NoError(t, m.Validate())
	})
}

func TestManifestRecipients(t *testing.T) {
	m := &Manifest{Headers: ManifestHeaders{To: []string{"list@example.pl"}}}
	assert.Equal(t, []string{"list@example.pl"}, m.Recipients())

	m.Headers.ToPlus = []string{"case-1@example.pl"}
	assert.Equal(t, []string{"case-1@example.pl"}, m.Recipients())

	assert.Empty(t, m.Sender())
	m.Headers.From = []string{"ug@example.pl", "other@example.pl"}
	assert.Equal(t, "ug@example.pl", m.Sender())
}

func TestAssignRequest(t *testing.T) {
	caseID := id.CaseID(uuid.New())
	r := &AssignRequest{CaseID: " " + caseID.String() + " "}
	r.Normalize()
	require.NoError(t, r.Validate())
	assert.Equal(t, caseID, r.ParsedCaseID())

	bad := &AssignRequest{CaseID: "42"}
	assert.True(t, dErrors.HasCode(bad.Validate(), dErrors.CodeInvalidInput))
	empty := &AssignRequest{}
	assert.True(t, dErrors.HasCode(empty.Validate(), dErrors.CodeValidation))
}

func TestKeys(t *testing.T) {
	letterID := id.LetterID(uuid.New())
	assert.Equal(t, "eml/"+letterID.String()+".eml.z", EMLKeyFor(letterID, true))
	assert.Equal(t, "eml/"+letterID.String()+".eml", EMLKeyFor(letterID, false))
	assert.Equal(t, "attachments/ab/abcdef", BlobKeyFor("abcdef"))
}
