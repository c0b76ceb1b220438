package config

import (
	"time"

	"github.com/nidohq/nido/crypto"
)

// NewDefaultConfig creates a Config with sensible defaults. All secret
// values are randomly generated.
func NewDefaultConfig() *Config {
	return &Config{
		DBFile: "nido.db",
		Jwt: Jwt{
			AccessSecret:         crypto.RandomString(32, crypto.AlphanumericAlphabet),
			AccessTokenDuration:  Duration{Duration: 15 * time.Minute},
			RefreshSecret:        crypto.RandomString(32, crypto.AlphanumericAlphabet),
			RefreshTokenDuration: Duration{Duration: 7 * 24 * time.Hour},
		},
		Verification: Verification{
			CodeDuration: Duration{Duration: 10 * time.Minute},
			MarkDuration: Duration{Duration: 10 * time.Minute},
		},
		Server: Server{
			Addr:                    ":8080",
			ShutdownGracefulTimeout: Duration{Duration: 15 * time.Second},
			ReadTimeout:             Duration{Duration: 2 * time.Second},
			ReadHeaderTimeout:       Duration{Duration: 2 * time.Second},
			WriteTimeout:            Duration{Duration: 10 * time.Second},
			IdleTimeout:             Duration{Duration: 1 * time.Minute},
			ClientIpProxyHeader:     "",
		},
		Cookies: Cookies{
			Secure: true,
			Domain: "",
		},
		Smtp: Smtp{
			Enabled:     false,
			Host:        "smtp.gmail.com",
			Port:        587,
			Username:    "",
			Password:    "",
			FromName:    "Nido",
			FromAddress: "",
		},
		OAuth2Providers: map[string]OAuth2Provider{
			OAuth2ProviderGoogle: {
				Name:         OAuth2ProviderGoogle,
				DisplayName:  "Google",
				RedirectURL:  "",
				AuthURL:      "https://accounts.google.com/o/oauth2/v2/auth",
				TokenURL:     "https://oauth2.googleapis.com/token",
				UserInfoURL:  "https://www.googleapis.com/oauth2/v3/userinfo",
				Scopes:       []string{"https://www.googleapis.com/auth/userinfo.profile", "https://www.googleapis.com/auth/userinfo.email"},
				PKCE:         true,
				ClientID:     "",
				ClientSecret: "",
			},
		},
		BlockIp: BlockIp{
			Enabled:         true,
			K:               5,
			WindowSize:      10,
			Width:           1024,
			Depth:           3,
			TickSize:        100,
			MaxSharePercent: 50,
			ActivationRPS:   10,
			BlockDuration:   Duration{Duration: 3 * time.Minute},
		},
		Endpoints: Endpoints{
			AuthSendCode:   "POST /api/auth/send-code",
			AuthVerifyCode: "POST /api/auth/verify-code",
			AuthSignup:     "POST /api/auth/signup",
			AuthSignin:     "POST /api/auth/signin",
			AuthWithGoogle: "POST /api/auth/google",
			AuthSignout:    "GET /api/auth/signout",
			AuthMe:         "GET /api/auth/me",
			AuthRefresh:    "GET /api/auth/refresh",
			ListingCreate:  "POST /api/listings",
			ListingGet:     "GET /api/listings/:id",
			ListingUpdate:  "PUT /api/listings/:id",
			ListingDelete:  "DELETE /api/listings/:id",
			ListingSearch:  "GET /api/listings",
			UserListings:   "GET /api/users/:id/listings",
			UserGet:        "GET /api/users/:id",
			UserUpdate:     "PUT /api/users/:id",
			UserDelete:     "DELETE /api/users/:id",
		},
	}
}
