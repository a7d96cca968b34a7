package http

import (
	"net/http"

	"ninedots/internal/auth"
	"ninedots/internal/config"
	"ninedots/internal/db"
	"ninedots/internal/http/handler"
	mw "ninedots/internal/http/middleware"
	"ninedots/internal/jobs"
	"ninedots/internal/mailer"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gorm.io/gorm"
)

func NewRouter(cfg config.Config, gdb *gorm.DB, gate *db.Limiter, tokens *auth.Tokens, mail *mailer.Mailer) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	store := &auth.Store{DB: gdb, Gate: gate}
	jobsRepo := &jobs.Repo{DB: gdb, Gate: gate}

	contact := &handler.ContactHandler{Mail: mail, To: cfg.EmailTo}
	r.Post("/send-email", contact.Send)

	apps := &handler.ApplicationHandler{Mail: mail, Jobs: jobsRepo, To: cfg.EmailTo}
	r.Post("/send-application", apps.SendApplication)

	jobsH := &handler.JobsHandler{Store: jobsRepo, UploadDir: cfg.UploadDir}
	r.Post("/post-job", jobsH.PostJob)
	r.Get("/jobs", jobsH.List)
	r.Delete("/delete-job/{jobID}", jobsH.Delete)

	ah := &handler.AuthHandler{Store: store, Tokens: tokens}
	r.Post("/register", ah.Register)
	r.Post("/login", ah.Login)

	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens, store))

		r.Get("/protected", ah.Protected)
		r.Post("/apply-job", apps.ApplyJob)
	})

	return r
}
