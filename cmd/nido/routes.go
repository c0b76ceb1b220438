package main

import (
	"github.com/nidohq/nido/config"
	"github.com/nidohq/nido/core"
	r "github.com/nidohq/nido/router"
)

func route(cfg *config.Config, ap *core.App) {
	ap.Router().Register(
		// signup flow; send-code sits behind the flood guard since it
		// triggers outbound mail
		r.NewRoute(cfg.Endpoints.AuthSendCode).WithHandlerFunc(ap.SendCodeHandler).WithMiddleware(ap.BlockByIP),
		r.NewRoute(cfg.Endpoints.AuthVerifyCode).WithHandlerFunc(ap.VerifyCodeHandler).WithMiddleware(ap.BlockByIP),
		r.NewRoute(cfg.Endpoints.AuthSignup).WithHandlerFunc(ap.SignupHandler),

		// sessions
		r.NewRoute(cfg.Endpoints.AuthSignin).WithHandlerFunc(ap.SigninHandler),
		r.NewRoute(cfg.Endpoints.AuthWithGoogle).WithHandlerFunc(ap.AuthWithGoogleHandler),
		r.NewRoute(cfg.Endpoints.AuthSignout).WithHandlerFunc(ap.SignoutHandler),
		r.NewRoute(cfg.Endpoints.AuthMe).WithHandlerFunc(ap.MeHandler),
		r.NewRoute(cfg.Endpoints.AuthRefresh).WithHandlerFunc(ap.RefreshHandler),

		// listings
		r.NewRoute(cfg.Endpoints.ListingCreate).WithHandlerFunc(ap.CreateListingHandler),
		r.NewRoute(cfg.Endpoints.ListingGet).WithHandlerFunc(ap.GetListingHandler),
		r.NewRoute(cfg.Endpoints.ListingUpdate).WithHandlerFunc(ap.UpdateListingHandler),
		r.NewRoute(cfg.Endpoints.ListingDelete).WithHandlerFunc(ap.DeleteListingHandler),
		r.NewRoute(cfg.Endpoints.ListingSearch).WithHandlerFunc(ap.SearchListingsHandler),
		r.NewRoute(cfg.Endpoints.UserListings).WithHandlerFunc(ap.UserListingsHandler),

		// user profiles
		r.NewRoute(cfg.Endpoints.UserGet).WithHandlerFunc(ap.GetUserHandler),
		r.NewRoute(cfg.Endpoints.UserUpdate).WithHandlerFunc(ap.UpdateUserHandler),
		r.NewRoute(cfg.Endpoints.UserDelete).WithHandlerFunc(ap.DeleteUserHandler),
	)
}
