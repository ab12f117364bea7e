package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"server/internal/http/handlers"
	"server/internal/middleware"
)

// Options carries the router's middleware configuration.
type Options struct {
	JWTSecret       string
	DefaultLocale   string
	AllowedOrigins  []string
	RateLimitPerMin int
	CountryLookup   middleware.CountryLookup
}

func NewRouter(app *handlers.App, logger zerolog.Logger, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		chimw.StripSlashes,
		middleware.Logger(logger),
		middleware.CORS(opts.AllowedOrigins),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
		middleware.Authenticate(opts.JWTSecret),
	)

	limited := middleware.RateLimit(opts.RateLimitPerMin, time.Minute)

	r.Get("/v1/healthz", app.Health)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", app.UsersList)
		r.Post("/", app.UsersCreate)
		r.Get("/{id}", app.UsersGet)
	})

	r.With(limited).Post("/auth/login", app.Login)

	r.Route("/fundraisers", func(r chi.Router) {
		r.Get("/", app.FundraisersList)
		r.Post("/", app.FundraisersCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", app.FundraisersGet)
			r.Put("/", app.FundraisersUpdate)
			r.Delete("/", app.FundraisersDelete)
		})
	})

	r.Route("/pledges", func(r chi.Router) {
		r.Get("/", app.PledgesList)
		r.Post("/", app.PledgesCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", app.PledgesGet)
			r.Put("/", app.PledgesUpdate)
			r.Delete("/", app.PledgesDelete)
		})
	})

	r.Route("/comments", func(r chi.Router) {
		r.Get("/", app.CommentsList)
		r.Post("/", app.CommentsCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", app.CommentsGet)
			r.Put("/", app.CommentsUpdate)
			r.Delete("/", app.CommentsDelete)
		})
	})

	r.With(limited).Post("/contact", app.ContactCreate)

	return r
}
