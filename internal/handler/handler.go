package handler

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/tempohq/tempo/backend/internal/auth"
	"github.com/tempohq/tempo/backend/internal/config"
	"github.com/tempohq/tempo/backend/internal/domain"
	"github.com/tempohq/tempo/backend/internal/repository"
)

type Handler struct {
	validate    *validator.Validate
	config      *config.Config
	repository  *repository.Repository
	translator  ut.Translator
	tokens      *auth.TokenManager
	mailChannel *amqp.Channel
	redisClient *redis.Client

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, tokens *auth.TokenManager, mailCh *amqp.Channel, rdb *redis.Client) (*Handler, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	return &Handler{
		validate:    validate,
		config:      cfg,
		repository:  repo,
		translator:  trans,
		tokens:      tokens,
		mailChannel: mailCh,
		redisClient: rdb,

		Mux: chi.NewRouter(),
	}, nil
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)
	h.Mux.Use(h.gate)

	h.Mux.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signin", h.SignIn)
			r.Post("/signup", h.SignUp)
			r.Post("/signout", h.SignOut)
			r.Get("/me", h.Me)
			r.Route("/reset-password", func(r chi.Router) {
				r.Post("/require", h.RequireResetPassword)
				r.Post("/confirm", h.ConfirmResetPassword)
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.With(h.requireRole(domain.RoleAdmin, domain.RoleManager)).Get("/", h.ListEmployees)
			r.With(h.requireRole(domain.RoleAdmin)).Post("/", h.CreateEmployee)
			r.Route("/{id}", func(r chi.Router) {
				r.With(h.requireRole(domain.RoleAdmin, domain.RoleManager)).With(h.employee).Get("/", h.GetEmployee)
				r.With(h.requireRole(domain.RoleAdmin)).With(h.employee).Put("/", h.UpdateEmployee)
				r.With(h.requireRole(domain.RoleAdmin)).With(h.employee).Delete("/", h.DeleteEmployee)
			})
		})

		r.Route("/projects", func(r chi.Router) {
			r.With(h.requireRole(domain.RoleAdmin, domain.RoleManager, domain.RoleEmployee)).Get("/", h.ListProjects)
			r.With(h.requireRole(domain.RoleAdmin, domain.RoleManager)).Post("/", h.CreateProject)
			r.With(h.requireRole(domain.RoleAdmin, domain.RoleManager)).Put("/", h.UpdateProject)
			r.With(h.requireRole(domain.RoleAdmin)).Delete("/", h.DeleteProject)
			r.Get("/available", h.AvailableProjects)
		})

		r.Route("/time-entries", func(r chi.Router) {
			r.Get("/", h.ListTimeEntries)
			r.Post("/", h.CreateTimeEntry)
		})

		r.Route("/expenses", func(r chi.Router) {
			r.Get("/", h.ListExpenses)
			r.Post("/", h.CreateExpense)
		})

		r.Route("/user/settings", func(r chi.Router) {
			r.Get("/", h.GetSettings)
			r.Put("/", h.UpdateSettings)
		})

		r.Get("/dashboard", h.Dashboard)
	})
}
