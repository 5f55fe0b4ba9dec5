package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RouterOptions configures NewRouter. AudioDir is served under /audio when set.
type RouterOptions struct {
	CORSOrigins    []string
	AudioDir       string
	RequestTimeout time.Duration
}

func NewRouter(apiHandler *APIHandler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		WriteJsonResponse(w, map[string]string{"status": "ok"})
	})

	r.Post("/send_message", RestHandler(apiHandler.SendMessage))
	r.Get("/history/{user}", RestHandler(apiHandler.History))

	r.Route("/lessons", func(r chi.Router) {
		r.Post("/", RestHandler(apiHandler.CreateLesson))
		r.Get("/", RestHandler(apiHandler.ListLessons))
	})
	r.Get("/speak/{lessonID}", RestHandler(apiHandler.SpeakLesson))

	r.Route("/reminders", func(r chi.Router) {
		r.Post("/", RestHandler(apiHandler.CreateReminder))
		r.Get("/", RestHandler(apiHandler.ListReminders))
		r.Get("/{reminderID}", RestHandler(apiHandler.GetReminder))
		r.Delete("/{reminderID}", RestHandler(apiHandler.DeleteReminder))
	})

	if opts.AudioDir != "" {
		r.Handle("/audio/*", http.StripPrefix("/audio/", http.FileServer(http.Dir(opts.AudioDir))))
	}

	return r
}
