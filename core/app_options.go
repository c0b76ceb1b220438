package core

import (
	"fmt"
	"log/slog"

	"github.com/nidohq/nido/cache"
	"github.com/nidohq/nido/config"
	"github.com/nidohq/nido/db"
	"github.com/nidohq/nido/router"
	"github.com/nidohq/nido/session"
	"github.com/nidohq/nido/topk"
	"github.com/nidohq/nido/verification"
)

type Option func(*App)

// WithDbApp sets the database implementation for auth and listings.
func WithDbApp(d db.DbApp) Option {
	return func(a *App) {
		a.dbAuth = d
		a.dbListing = d
	}
}

// WithRouter sets the router implementation and its parameter getter.
func WithRouter(r router.Router, p router.ParamGetter) Option {
	return func(a *App) {
		a.router = r
		a.params = p
	}
}

// WithCache sets the cache implementation
func WithCache(c cache.Cache[string, any]) Option {
	return func(a *App) {
		a.cache = c
	}
}

// WithConfigProvider sets the application's configuration provider.
func WithConfigProvider(p *config.Provider) Option {
	return func(a *App) {
		a.configProvider = p
	}
}

// WithLogger sets the logger implementation
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// WithVerificationStore sets the signup verification code store.
func WithVerificationStore(v *verification.Store) Option {
	return func(a *App) {
		a.verifier = v
	}
}

// WithSessionIssuer sets the session token issuer.
func WithSessionIssuer(s *session.Issuer) Option {
	return func(a *App) {
		a.sessions = s
	}
}

// WithMailer sets the mailer implementation
func WithMailer(m Mailer) Option {
	return func(a *App) {
		a.mailer = m
	}
}

// WithAuthenticator sets the authenticator implementation
func WithAuthenticator(auth Authenticator) Option {
	return func(a *App) {
		a.authenticator = auth
	}
}

// WithValidator sets the validator implementation
func WithValidator(v Validator) Option {
	return func(a *App) {
		a.validator = v
	}
}

// WithBlockSketch sets the request-flood sketch guarding the mail-sending
// endpoints.
func WithBlockSketch(s *topk.TopKSketch) Option {
	return func(a *App) {
		a.sketch = s
	}
}

// NewApp assembles an App from options and checks the required parts.
func NewApp(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}

	if a.dbAuth == nil || a.dbListing == nil {
		return nil, fmt.Errorf("database is required (use WithDbApp)")
	}
	if a.configProvider == nil {
		return nil, fmt.Errorf("config provider is required (use WithConfigProvider)")
	}
	if a.verifier == nil {
		return nil, fmt.Errorf("verification store is required (use WithVerificationStore)")
	}
	if a.sessions == nil {
		return nil, fmt.Errorf("session issuer is required (use WithSessionIssuer)")
	}
	if a.sketch != nil && a.cache == nil {
		return nil, fmt.Errorf("block sketch requires a cache (use WithCache)")
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if a.validator == nil {
		a.validator = NewValidator()
	}
	if a.authenticator == nil {
		a.authenticator = NewDefaultAuthenticator(a.dbAuth, a.sessions, a.logger)
	}

	return a, nil
}
