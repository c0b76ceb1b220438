package core

import (
	"log/slog"

	"github.com/nidohq/nido/cache"
	"github.com/nidohq/nido/config"
	"github.com/nidohq/nido/db"
	"github.com/nidohq/nido/router"
	"github.com/nidohq/nido/session"
	"github.com/nidohq/nido/topk"
	"github.com/nidohq/nido/verification"
)

// App is the application wide context. Database connections and other heavy,
// long-lived objects go here.
//
// All handlers and middleware have App as receiver, so every request path
// reaches its dependencies through accessors instead of globals.
type App struct {
	dbAuth         db.DbAuth
	dbListing      db.DbListing
	router         router.Router
	params         router.ParamGetter
	cache          cache.Cache[string, any]
	configProvider *config.Provider
	logger         *slog.Logger
	verifier       *verification.Store
	sessions       *session.Issuer
	mailer         Mailer
	authenticator  Authenticator
	validator      Validator
	sketch         *topk.TopKSketch
}

func (a *App) Router() router.Router {
	return a.router
}

func (a *App) SetRouter(r router.Router) {
	a.router = r
}

func (a *App) Params() router.ParamGetter {
	return a.params
}

func (a *App) DbAuth() db.DbAuth {
	return a.dbAuth
}

func (a *App) DbListing() db.DbListing {
	return a.dbListing
}

// SetDb sets the database interfaces for auth and listings.
func (a *App) SetDb(dbApp db.DbApp) {
	if dbApp == nil {
		panic("DbApp cannot be nil")
	}
	a.dbAuth = dbApp
	a.dbListing = dbApp
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) SetLogger(l *slog.Logger) {
	a.logger = l
}

func (a *App) Cache() cache.Cache[string, any] {
	return a.cache
}

func (a *App) SetCache(c cache.Cache[string, any]) {
	a.cache = c
}

func (a *App) Config() *config.Config {
	return a.configProvider.Get()
}

func (a *App) SetConfigProvider(provider *config.Provider) {
	a.configProvider = provider
}

func (a *App) Verifier() *verification.Store {
	return a.verifier
}

func (a *App) Sessions() *session.Issuer {
	return a.sessions
}

func (a *App) Mailer() Mailer {
	return a.mailer
}

func (a *App) SetMailer(m Mailer) {
	a.mailer = m
}

func (a *App) Auth() Authenticator {
	return a.authenticator
}

func (a *App) SetAuthenticator(auth Authenticator) {
	a.authenticator = auth
}

func (a *App) Validator() Validator {
	return a.validator
}

func (a *App) SetValidator(v Validator) {
	a.validator = v
}
