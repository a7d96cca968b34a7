package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"ninedots/internal/jobs"
	"ninedots/internal/upload"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// JobStore is the posting persistence PostJob/List/Delete need. Implemented
// by *jobs.Repo.
type JobStore interface {
	Create(ctx context.Context, j *jobs.Job) error
	List(ctx context.Context) ([]jobs.Job, error)
	Delete(ctx context.Context, id uint64) error
}

type JobsHandler struct {
	Store     JobStore
	UploadDir string
}

type postJobReq struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Location       string          `json:"location"`
	Salary         string          `json:"salary"`
	Requirements   string          `json:"requirements"`
	CompanyName    string          `json:"companyName"`
	Deadline       string          `json:"deadline"`
	EmploymentType string          `json:"employmentType"`
	JobCategory    string          `json:"jobCategory"`
	Skills         json.RawMessage `json:"skills"`
}

// PostJob accepts either a JSON body or a multipart form; the multipart form
// may carry an optional companyLogo PDF stored to disk.
func (h *JobsHandler) PostJob(w http.ResponseWriter, r *http.Request) {
	var (
		req  postJobReq
		logo *upload.File
	)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(upload.MaxFileSize); err != nil {
			respondError(w, http.StatusBadRequest, "invalid form data")
			return
		}
		req = postJobReq{
			Title:          r.FormValue("title"),
			Description:    r.FormValue("description"),
			Location:       r.FormValue("location"),
			Salary:         r.FormValue("salary"),
			Requirements:   r.FormValue("requirements"),
			CompanyName:    r.FormValue("companyName"),
			Deadline:       r.FormValue("deadline"),
			EmploymentType: r.FormValue("employmentType"),
			JobCategory:    r.FormValue("jobCategory"),
		}
		if v := r.FormValue("skills"); v != "" {
			b, _ := json.Marshal(v)
			req.Skills = b
		}

		f, err := upload.FromRequest(r, "companyLogo")
		switch {
		case err == nil:
			logo = f
		case errors.Is(err, upload.ErrNoFile):
			// logo is optional
		case isUploadError(err):
			respondError(w, http.StatusBadRequest, err.Error())
			return
		default:
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	for _, f := range []struct{ name, value string }{
		{"title", req.Title},
		{"description", req.Description},
		{"location", req.Location},
		{"salary", req.Salary},
		{"requirements", req.Requirements},
		{"companyName", req.CompanyName},
		{"employmentType", req.EmploymentType},
		{"jobCategory", req.JobCategory},
	} {
		if strings.TrimSpace(f.value) == "" {
			respondError(w, http.StatusBadRequest, f.name+" is required")
			return
		}
	}

	skills, err := jobs.NormalizeSkills(req.Skills)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if skills == nil {
		skills = []string{}
	}

	deadline, err := parseDeadline(req.Deadline)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid deadline, expected YYYY-MM-DD")
		return
	}

	job := jobs.Job{
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		Salary:         req.Salary,
		Requirements:   req.Requirements,
		CompanyName:    req.CompanyName,
		Deadline:       deadline,
		EmploymentType: req.EmploymentType,
		JobCategory:    req.JobCategory,
		Skills:         skills,
	}

	if logo != nil {
		path, err := logo.SaveTo(h.UploadDir)
		if err != nil {
			respond(w, http.StatusInternalServerError, map[string]string{
				"message": "failed to store company logo",
				"error":   err.Error(),
			})
			return
		}
		job.CompanyLogo = &path
	}

	if err := h.Store.Create(r.Context(), &job); err != nil {
		logrus.WithError(err).Error("insert job failed")
		respond(w, http.StatusInternalServerError, map[string]string{
			"message": "failed to post job",
			"error":   err.Error(),
		})
		return
	}

	respond(w, http.StatusOK, job)
}

func (h *JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Store.List(r.Context())
	if err != nil {
		logrus.WithError(err).Error("list jobs failed")
		respondMessage(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rows == nil {
		rows = []jobs.Job{}
	}
	respond(w, http.StatusOK, map[string]any{"jobs": rows})
}

// Delete is idempotent: removing an id that never existed still succeeds.
func (h *JobsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "jobID"), 10, 64)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "invalid job id")
		return
	}

	if err := h.Store.Delete(r.Context(), id); err != nil {
		logrus.WithError(err).Error("delete job failed")
		respondMessage(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondMessage(w, http.StatusOK, "Job deleted successfully")
}

func parseDeadline(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
