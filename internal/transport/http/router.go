package http

import (
	"net/http"

	"github.com/go-anon-inbox/internal/application/account"
	"github.com/go-anon-inbox/internal/application/message"
	"github.com/go-anon-inbox/internal/application/session"
	"github.com/go-anon-inbox/internal/application/verification"
	"github.com/go-anon-inbox/internal/config"
	"github.com/go-anon-inbox/internal/pkg/otp"
	"github.com/go-anon-inbox/internal/transport/http/handler"
	appmiddleware "github.com/go-anon-inbox/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	AccountRepo AccountRepository
	Tokens      TokenProvider
	Mailer      VerificationMailer
	Issuer      CodeIssuer // defaults to otp.NewIssuer()
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(appmiddleware.SanitizePath())
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	issuer := deps.Issuer
	if issuer == nil {
		issuer = otp.NewIssuer()
	}

	accountSvc := account.NewService(account.ServiceDeps{
		AccountRepo: deps.AccountRepo,
		Issuer:      issuer,
		Mailer:      deps.Mailer,
	})
	verifySvc := verification.NewService(verification.ServiceDeps{AccountRepo: deps.AccountRepo})
	sessionSvc := session.NewService(session.ServiceDeps{AccountRepo: deps.AccountRepo, Signer: deps.Tokens})
	messageSvc := message.NewService(message.ServiceDeps{AccountRepo: deps.AccountRepo})

	healthH := handler.NewHealthHandler()
	accountH := handler.NewAccountHandler(accountSvc, verifySvc)
	sessionH := handler.NewSessionHandler(sessionSvc, handler.CookieOptions{
		Name:   cfg.SessionCookieName,
		Secure: cfg.CookieSecure,
		MaxAge: deps.Tokens.Expiry(),
	})
	messageH := handler.NewMessageHandler(messageSvc)

	authMw := appmiddleware.Auth(deps.Tokens, cfg.SessionCookieName)

	r.Route("/api", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/signup", accountH.Register)
		r.Get("/check-username", accountH.CheckUsername)
		r.Post("/verify-code", accountH.VerifyCode)
		r.Post("/sign-in", sessionH.SignIn)
		r.Post("/sign-out", sessionH.SignOut)
		r.Post("/send-message", messageH.Send)
		r.Get("/u/{username}", messageH.Profile)
		r.Post("/suggest-messages", messageH.Suggest)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(authMw)

			r.Get("/session", sessionH.Current)

			// Verified owners only
			r.Group(func(r chi.Router) {
				r.Use(appmiddleware.RequireVerified)

				r.Get("/accept-messages", messageH.GetAcceptance)
				r.Post("/accept-messages", messageH.SetAcceptance)
				r.Get("/get-messages", messageH.List)
				r.Delete("/delete-message/{id}", messageH.Delete)
			})
		})
	})

	return r
}
