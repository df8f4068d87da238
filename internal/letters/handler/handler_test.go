package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"feder/internal/letters/handler/mocks"
	"feder/internal/letters/models"
	id "feder/pkg/domain"
	dErrors "feder/pkg/domain-errors"
	"feder/pkg/platform/middleware/secret"
	"feder/pkg/testutil"
)

const webhookSecret = "gateway-secret"

type LetterHandlerSuite struct {
	suite.Suite
	service *mocks.MockService
	router  http.Handler
}

func TestLetterHandlerSuite(t *testing.T) {
	suite.Run(t, new(LetterHandlerSuite))
}

func (s *LetterHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.service = mocks.NewMockService(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := New(s.service, logger, 10<<20)
	r := chi.NewRouter()
	h.RegisterWebhook(r, secret.RequireQuerySecret("secret", webhookSecret, logger))
	h.RegisterPublic(r)
	r.Route("/admin", h.RegisterAdmin)
	s.router = r
}

const manifestJSON = `{
	"version": "v2",
	"headers": {
		"auto_reply_type": "disposition-notification",
		"cc": [],
		"date": "2018-07-30T11:33:22",
		"from": ["Urzad Gminy <ug@example.pl>"],
		"message_id": "<reply-1@example.pl>",
		"subject": "Potwierdzenie",
		"to": ["list@example.pl"],
		"to+": ["case-0a1b2c3d4e5f@fedrowanie.localhost"]
	},
	"text": {"content": "Dzien dobry", "quote": "", "html_content": "<p>Dzien dobry</p>", "html_quote": ""},
	"files": [{"content": "MTIzNDU=", "filename": "my-doc.txt"}],
	"files_count": 1,
	"eml": {"filename": "message.eml", "compressed": true}
}`

func (s *LetterHandlerSuite) webhookRequest(method, query string, fields map[string]string, files ...testutil.FilePart) *http.Request {
	return testutil.NewMultipartRequest(s.T(), method, "/letters/webhook"+query, fields, files...)
}

func (s *LetterHandlerSuite) TestWebhookRejectsOtherMethods() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/letters/webhook?secret="+webhookSecret))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusMethodNotAllowed, "method_not_allowed")
	s.Equal(http.MethodPost, rr.Header().Get("Allow"))
}

func (s *LetterHandlerSuite) TestWebhookRequiresSecret() {
	for _, query := range []string{"", "?secret=wrong"} {
		rr := testutil.DoRequest(s.router, s.webhookRequest(http.MethodPost, query, map[string]string{"manifest": manifestJSON}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
	}
}

func (s *LetterHandlerSuite) TestWebhookParsesMultipart() {
	s.service.EXPECT().Ingest(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, in *models.InboundMessage) (*models.IngestResult, error) {
			m := in.Manifest
			s.Equal("v2", m.Version)
			s.Equal("<reply-1@example.pl>", m.Headers.MessageID)
			s.Equal([]string{"case-0a1b2c3d4e5f@fedrowanie.localhost"}, m.Recipients())
			s.Equal(models.MessageDispositionNotification, models.ParseAutoReplyType(m.Headers.AutoReplyType))
			s.True(m.EML.Compressed)
			s.Equal("compressed-bytes", string(in.EML))
			s.Require().Len(m.Files, 1)
			s.Require().Len(in.Files, 1)
			s.Equal("my-doc.txt", in.Files[0].Filename)
			s.Equal("54321", string(in.Files[0].Content))
			return &models.IngestResult{Letter: &models.Letter{ID: id.LetterID(uuid.New())}, Matched: true}, nil
		})

	rr := testutil.DoRequest(s.router, s.webhookRequest(http.MethodPost, "?secret="+webhookSecret, nil,
		testutil.FilePart{Field: "manifest", Filename: "manifest.json", Content: []byte(manifestJSON)},
		testutil.FilePart{Field: "eml", Filename: "message.eml", Content: []byte("compressed-bytes")},
		testutil.FilePart{Field: "attachment", Filename: "my-doc.txt", Content: []byte("54321")},
	))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "status", "OK")
}

func (s *LetterHandlerSuite) TestWebhookAcceptsManifestField() {
	s.service.EXPECT().Ingest(gomock.Any(), gomock.Any()).Return(&models.IngestResult{Duplicate: true}, nil)

	rr := testutil.DoRequest(s.router, s.webhookRequest(http.MethodPost, "?secret="+webhookSecret,
		map[string]string{"manifest": manifestJSON}))
	testutil.AssertStatusOK(s.T(), rr)
}

func (s *LetterHandlerSuite) TestWebhookManifestErrors() {
	cases := []struct {
		name     string
		manifest string
	}{
		{"missing version", `{"headers": {"to": ["a@b.pl"]}}`},
		{"unknown version", `{"version": "v1"}`},
		{"not json", `{"version": `},
		{"file without name", `{"version": "v2", "files": [{"content": "MTIz"}]}`},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			rr := testutil.DoRequest(s.router, s.webhookRequest(http.MethodPost, "?secret="+webhookSecret,
				map[string]string{"manifest": tc.manifest}))
			testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
		})
	}

	s.Run("missing manifest", func() {
		rr := testutil.DoRequest(s.router, s.webhookRequest(http.MethodPost, "?secret="+webhookSecret, map[string]string{"other": "x"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("json body instead of multipart", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/letters/webhook?secret="+webhookSecret, manifestJSON))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})
}

func (s *LetterHandlerSuite) TestGetSpamIsNotFound() {
	letterID := id.LetterID(uuid.New())
	s.service.EXPECT().Get(gomock.Any(), letterID).Return(nil, dErrors.New(dErrors.CodeNotFound, "letter not found"))

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/letters/"+letterID.String()))
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}

func (s *LetterHandlerSuite) TestEMLStreams() {
	letterID := id.LetterID(uuid.New())
	s.service.EXPECT().OpenEML(gomock.Any(), letterID).Return(io.NopCloser(strings.NewReader("Subject: x\r\n\r\nbody")), nil)

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/letters/"+letterID.String()+"/eml"))
	testutil.AssertStatusOK(s.T(), rr)
	s.Equal("message/rfc822", rr.Header().Get("Content-Type"))
	s.Equal("Subject: x\r\n\r\nbody", rr.Body.String())
}

func (s *LetterHandlerSuite) TestAttachmentDownload() {
	letterID, attachmentID := id.LetterID(uuid.New()), id.AttachmentID(uuid.New())

	s.Run("clean", func() {
		s.service.EXPECT().OpenAttachment(gomock.Any(), letterID, attachmentID).Return(
			&models.Attachment{ID: attachmentID, Filename: "scan.pdf", ContentType: "application/pdf", Size: 3},
			io.NopCloser(strings.NewReader("pdf")), nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet,
			"/letters/"+letterID.String()+"/attachments/"+attachmentID.String()))
		testutil.AssertStatusOK(s.T(), rr)
		s.Equal("application/pdf", rr.Header().Get("Content-Type"))
		s.Contains(rr.Header().Get("Content-Disposition"), "scan.pdf")
		s.Equal("pdf", rr.Body.String())
	})

	s.Run("infected", func() {
		s.service.EXPECT().OpenAttachment(gomock.Any(), letterID, attachmentID).Return(
			nil, nil, dErrors.New(dErrors.CodeForbidden, "attachment is infected"))

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet,
			"/letters/"+letterID.String()+"/attachments/"+attachmentID.String()))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "forbidden")
	})
}

func (s *LetterHandlerSuite) TestMarkSpam() {
	letterID := id.LetterID(uuid.New())

	s.Run("invalid letter becomes spam", func() {
		s.service.EXPECT().MarkSpam(gomock.Any(), letterID, models.SpamSpam).
			Return(&models.Letter{ID: letterID, Spam: models.SpamSpam}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/admin/letters/"+letterID.String()+"/spam", map[string]any{"valid": false}))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "spam", "spam")
	})

	s.Run("valid letter becomes non_spam", func() {
		s.service.EXPECT().MarkSpam(gomock.Any(), letterID, models.SpamNonSpam).
			Return(&models.Letter{ID: letterID, Spam: models.SpamNonSpam}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/admin/letters/"+letterID.String()+"/spam", map[string]any{"valid": true}))
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("verdict is required", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/admin/letters/"+letterID.String()+"/spam", map[string]any{}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})
}

func (s *LetterHandlerSuite) TestAssign() {
	letterID, caseID := id.LetterID(uuid.New()), id.CaseID(uuid.New())

	s.Run("assigns to parsed case", func() {
		s.service.EXPECT().Assign(gomock.Any(), letterID, caseID).Return(&models.Letter{ID: letterID, CaseID: &caseID}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/admin/letters/"+letterID.String()+"/assign", map[string]string{"case_id": caseID.String()}))
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("malformed case id", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/admin/letters/"+letterID.String()+"/assign", map[string]string{"case_id": "nope"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})

	s.Run("already assigned", func() {
		s.service.EXPECT().Assign(gomock.Any(), letterID, caseID).Return(nil, dErrors.New(dErrors.CodeConflict, "letter already belongs to a case"))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/admin/letters/"+letterID.String()+"/assign", map[string]string{"case_id": caseID.String()}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "conflict")
	})
}

func (s *LetterHandlerSuite) TestCreateOutgoing() {
	caseID := id.CaseID(uuid.New())

	s.Run("created", func() {
		s.service.EXPECT().CreateOutgoing(gomock.Any(), caseID, gomock.Any()).DoAndReturn(
			func(_ any, _ id.CaseID, req *models.CreateOutgoingRequest) (*models.Letter, error) {
				s.Equal("Wniosek", req.Title)
				return &models.Letter{ID: id.LetterID(uuid.New()), Direction: models.DirectionOutgoing, Title: req.Title}, nil
			})

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/admin/cases/"+caseID.String()+"/letters", map[string]string{"title": "  Wniosek ", "body": "Tresc"}))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		testutil.AssertJSONContains(s.T(), rr, "direction", "outgoing")
	})

	s.Run("body required", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/admin/cases/"+caseID.String()+"/letters", map[string]string{"title": "Wniosek"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("relay failure", func() {
		s.service.EXPECT().CreateOutgoing(gomock.Any(), caseID, gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnavailable, "letter stored but delivery failed"))

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost,
			"/admin/cases/"+caseID.String()+"/letters", map[string]string{"title": "Wniosek", "body": "Tresc"}))
		testutil.AssertStatus(s.T(), rr, http.StatusServiceUnavailable)
	})
}

func (s *LetterHandlerSuite) TestListUnrecognized() {
	s.service.EXPECT().ListUnrecognized(gomock.Any()).Return([]*models.Letter{{ID: id.LetterID(uuid.New())}}, nil)

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/admin/letters/unrecognized"))
	testutil.AssertStatusOK(s.T(), rr)
	body := testutil.UnmarshalResponse[listResponse](s.T(), rr)
	s.Len(body.Letters, 1)
}

func (s *LetterHandlerSuite) TestResend() {
	letterID := id.LetterID(uuid.New())

	s.Run("same letter is returned", func() {
		s.service.EXPECT().Resend(gomock.Any(), letterID).
			Return(&models.Letter{ID: letterID, Direction: models.DirectionOutgoing}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost,
			"/admin/letters/"+letterID.String()+"/resend"))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "id", letterID.String())
	})

	s.Run("relay failure", func() {
		s.service.EXPECT().Resend(gomock.Any(), letterID).
			Return(nil, dErrors.New(dErrors.CodeUnavailable, "letter stored but delivery failed"))

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost,
			"/admin/letters/"+letterID.String()+"/resend"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusServiceUnavailable, "service_unavailable")
	})
}
