package handler

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"ninedots/internal/auth"
	"ninedots/internal/jobs"
)

type formPart struct {
	field    string
	value    string
	filename string
	mime     string
	content  []byte
}

func multipartBody(t *testing.T, parts []formPart) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range parts {
		if p.filename == "" {
			if err := w.WriteField(p.field, p.value); err != nil {
				t.Fatalf("WriteField: %v", err)
			}
			continue
		}
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="`+p.field+`"; filename="`+p.filename+`"`)
		h.Set("Content-Type", p.mime)
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatalf("CreatePart: %v", err)
		}
		if _, err := part.Write(p.content); err != nil {
			t.Fatalf("part write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

func applicationFields() []formPart {
	return []formPart{
		{field: "jobTitle", value: "Backend Engineer"},
		{field: "applicantEmail", value: "dev@example.com"},
		{field: "salary", value: "60000"},
	}
}

func TestSendApplicationSuccess(t *testing.T) {
	sender := &fakeSender{}
	h := &ApplicationHandler{Mail: sender, To: "agency@example.com"}

	cv := []byte("%PDF-1.4 resume")
	parts := append(applicationFields(), formPart{
		field: "cv", filename: "resume.pdf", mime: "application/pdf", content: cv,
	})
	body, ct := multipartBody(t, parts)

	req := httptest.NewRequest(http.MethodPost, "/send-application", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.SendApplication(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sender.sent))
	}

	msg := sender.sent[0]
	if msg.Attachment == nil || msg.Attachment.Filename != "resume.pdf" {
		t.Fatalf("attachment = %+v", msg.Attachment)
	}
	if !bytes.Equal(msg.Attachment.Content, cv) {
		t.Error("attachment content mangled")
	}
	if msg.ReplyTo != "dev@example.com" {
		t.Errorf("ReplyTo = %q", msg.ReplyTo)
	}
	if !strings.Contains(msg.Text, "Backend Engineer") {
		t.Error("job title missing from body")
	}
}

func TestSendApplicationWithoutFile(t *testing.T) {
	sender := &fakeSender{}
	h := &ApplicationHandler{Mail: sender, To: "agency@example.com"}

	body, ct := multipartBody(t, applicationFields())
	req := httptest.NewRequest(http.MethodPost, "/send-application", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.SendApplication(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if len(sender.sent) != 0 {
		t.Error("email sent despite missing file")
	}
}

func TestSendApplicationRejectsNonPDFBeforeSending(t *testing.T) {
	sender := &fakeSender{}
	h := &ApplicationHandler{Mail: sender, To: "agency@example.com"}

	parts := append(applicationFields(), formPart{
		field: "cv", filename: "resume.exe", mime: "application/octet-stream", content: []byte("nope"),
	})
	body, ct := multipartBody(t, parts)

	req := httptest.NewRequest(http.MethodPost, "/send-application", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.SendApplication(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if len(sender.sent) != 0 {
		t.Error("email sent despite rejected upload")
	}
}

func TestSendApplicationMissingField(t *testing.T) {
	sender := &fakeSender{}
	h := &ApplicationHandler{Mail: sender, To: "agency@example.com"}

	parts := []formPart{
		{field: "jobTitle", value: "Backend Engineer"},
		{field: "cv", filename: "resume.pdf", mime: "application/pdf", content: []byte("%PDF")},
	}
	body, ct := multipartBody(t, parts)

	req := httptest.NewRequest(http.MethodPost, "/send-application", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.SendApplication(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if len(sender.sent) != 0 {
		t.Error("email sent despite missing fields")
	}
}

func applyReq(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/apply-job", strings.NewReader(body))
	claims := auth.Claims{UserID: 3, Email: "dev@example.com"}
	return req.WithContext(auth.ContextWithClaims(req.Context(), claims))
}

func TestApplyJobSuccess(t *testing.T) {
	sender := &fakeSender{}
	store := &fakeJobStore{rows: []jobs.Job{{ID: 1, Title: "Backend Engineer", CompanyName: "9dots"}}}
	h := &ApplicationHandler{Mail: sender, Jobs: store, To: "agency@example.com"}

	rec := httptest.NewRecorder()
	h.ApplyJob(rec, applyReq(`{"jobId":1,"coverLetter":"I want this job","resumeLink":"https://cv.example.com/me"}`))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if len(sender.sent) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sender.sent))
	}

	msg := sender.sent[0]
	for _, want := range []string{"Backend Engineer", "dev@example.com", "I want this job", "https://cv.example.com/me"} {
		if !strings.Contains(msg.Text, want) {
			t.Errorf("body missing %q", want)
		}
	}
}

func TestApplyJobUnknownJob(t *testing.T) {
	sender := &fakeSender{}
	h := &ApplicationHandler{Mail: sender, Jobs: &fakeJobStore{}, To: "agency@example.com"}

	rec := httptest.NewRecorder()
	h.ApplyJob(rec, applyReq(`{"jobId":42,"coverLetter":"x","resumeLink":"y"}`))

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if len(sender.sent) != 0 {
		t.Error("email sent for unknown job")
	}
}

func TestApplyJobMissingFields(t *testing.T) {
	for name, body := range map[string]string{
		"jobId":       `{"coverLetter":"x","resumeLink":"y"}`,
		"coverLetter": `{"jobId":1,"resumeLink":"y"}`,
		"resumeLink":  `{"jobId":1,"coverLetter":"x"}`,
	} {
		sender := &fakeSender{}
		h := &ApplicationHandler{Mail: sender, Jobs: &fakeJobStore{}, To: "agency@example.com"}

		rec := httptest.NewRecorder()
		h.ApplyJob(rec, applyReq(body))

		if rec.Code != http.StatusBadRequest {
			t.Errorf("missing %s: status = %d, want 400", name, rec.Code)
		}
		if len(sender.sent) != 0 {
			t.Errorf("missing %s: email sent anyway", name)
		}
	}
}

func TestApplyJobRequiresClaims(t *testing.T) {
	h := &ApplicationHandler{Mail: &fakeSender{}, Jobs: &fakeJobStore{}, To: "agency@example.com"}

	req := httptest.NewRequest(http.MethodPost, "/apply-job", strings.NewReader(`{"jobId":1}`))
	rec := httptest.NewRecorder()
	h.ApplyJob(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
