package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"ninedots/internal/auth"
	"ninedots/internal/jobs"
	"ninedots/internal/mailer"
	"ninedots/internal/upload"

	"github.com/sirupsen/logrus"
)

// JobFinder is the posting lookup ApplyJob needs. Implemented by *jobs.Repo.
type JobFinder interface {
	Get(ctx context.Context, id uint64) (*jobs.Job, error)
}

// ApplicationHandler relays job applications by email: the public
// /send-application with a PDF resume attached, and the authenticated
// /apply-job referencing a stored posting.
type ApplicationHandler struct {
	Mail Sender
	Jobs JobFinder
	To   string
}

func (h *ApplicationHandler) SendApplication(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(upload.MaxFileSize); err != nil {
		respondError(w, http.StatusBadRequest, "no file uploaded")
		return
	}

	jobTitle := r.FormValue("jobTitle")
	applicantEmail := r.FormValue("applicantEmail")
	salary := r.FormValue("salary")
	for _, f := range []struct{ name, value string }{
		{"jobTitle", jobTitle},
		{"applicantEmail", applicantEmail},
		{"salary", salary},
	} {
		if strings.TrimSpace(f.value) == "" {
			respondError(w, http.StatusBadRequest, f.name+" is required")
			return
		}
	}

	// resume gate runs before any send
	cv, err := upload.FromRequest(r, "cv")
	if err != nil {
		if isUploadError(err) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	msg := mailer.Message{
		FromName: "Job Applications",
		To:       h.To,
		ReplyTo:  applicantEmail,
		Subject:  "New Job Application: " + jobTitle,
		Text: fmt.Sprintf(
			"Job Title: %s\nApplicant Email: %s\nExpected Salary: %s",
			jobTitle, applicantEmail, salary,
		),
		HTML: fmt.Sprintf(
			"<p><strong>Job Title:</strong> %s</p><p><strong>Applicant Email:</strong> %s</p><p><strong>Expected Salary:</strong> %s</p>",
			jobTitle, applicantEmail, salary,
		),
		Attachment: &mailer.Attachment{Filename: cv.Name, Content: cv.Content},
	}
	if err := h.Mail.Send(msg); err != nil {
		logrus.WithError(err).Error("application email failed")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondMessage(w, http.StatusOK, "Application sent successfully!")
}

type applyJobReq struct {
	JobID       uint64 `json:"jobId"`
	CoverLetter string `json:"coverLetter"`
	ResumeLink  string `json:"resumeLink"`
}

func (h *ApplicationHandler) ApplyJob(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req applyJobReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.JobID == 0 {
		respondError(w, http.StatusBadRequest, "jobId is required")
		return
	}
	if strings.TrimSpace(req.CoverLetter) == "" {
		respondError(w, http.StatusBadRequest, "coverLetter is required")
		return
	}
	if strings.TrimSpace(req.ResumeLink) == "" {
		respondError(w, http.StatusBadRequest, "resumeLink is required")
		return
	}

	job, err := h.Jobs.Get(r.Context(), req.JobID)
	if err != nil {
		if errors.Is(err, jobs.ErrNotFound) {
			respondError(w, http.StatusBadRequest, "job not found")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	msg := mailer.Message{
		FromName: "Job Applications",
		To:       h.To,
		ReplyTo:  claims.Email,
		Subject:  "New Application for " + job.Title,
		Text: fmt.Sprintf(
			"Job: %s at %s\nApplicant: %s\nResume: %s\n\nCover Letter:\n%s",
			job.Title, job.CompanyName, claims.Email, req.ResumeLink, req.CoverLetter,
		),
		HTML: fmt.Sprintf(
			"<p><strong>Job:</strong> %s at %s</p><p><strong>Applicant:</strong> %s</p><p><strong>Resume:</strong> <a href=%q>%s</a></p><p><strong>Cover Letter:</strong></p><p>%s</p>",
			job.Title, job.CompanyName, claims.Email, req.ResumeLink, req.ResumeLink, req.CoverLetter,
		),
	}
	if err := h.Mail.Send(msg); err != nil {
		logrus.WithError(err).Error("apply-job email failed")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondMessage(w, http.StatusOK, "Application submitted successfully!")
}

func isUploadError(err error) bool {
	return errors.Is(err, upload.ErrNoFile) ||
		errors.Is(err, upload.ErrMultipleFiles) ||
		errors.Is(err, upload.ErrTooLarge) ||
		errors.Is(err, upload.ErrNotPDF)
}
