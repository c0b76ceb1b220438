package config

import (
	"fmt"
	"os"
	"time"
)

const (
	EnvGoogleClientID     = "OAUTH2_GOOGLE_CLIENT_ID"
	EnvGoogleClientSecret = "OAUTH2_GOOGLE_CLIENT_SECRET"
	EnvSmtpUsername       = "SMTP_USERNAME"
	EnvSmtpPassword       = "SMTP_PASSWORD"
)

const (
	OAuth2ProviderGoogle = "google"
)

// Duration wraps time.Duration for TOML text marshalling, so config files
// carry values like "15m" or "168h".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = parsed
	return nil
}

// Jwt holds the session token signing configuration. Access and refresh
// tokens are signed with separate secrets.
type Jwt struct {
	AccessSecret         string   `toml:"access_secret"`
	AccessTokenDuration  Duration `toml:"access_token_duration"`
	RefreshSecret        string   `toml:"refresh_secret"`
	RefreshTokenDuration Duration `toml:"refresh_token_duration"`
}

// Verification controls the signup email verification flow.
type Verification struct {
	// CodeDuration is how long an emailed code stays valid.
	CodeDuration Duration `toml:"code_duration"`
	// MarkDuration is how long a validated code authorizes signup completion.
	MarkDuration Duration `toml:"mark_duration"`
}

type Cookies struct {
	// Secure marks the session cookies Secure; disable only for local
	// plain-HTTP development.
	Secure bool   `toml:"secure"`
	Domain string `toml:"domain"`
}

type Server struct {
	Addr                    string   `toml:"addr"`
	ShutdownGracefulTimeout Duration `toml:"shutdown_graceful_timeout"`
	ReadTimeout             Duration `toml:"read_timeout"`
	ReadHeaderTimeout       Duration `toml:"read_header_timeout"`
	WriteTimeout            Duration `toml:"write_timeout"`
	IdleTimeout             Duration `toml:"idle_timeout"`

	// ClientIpProxyHeader names the header carrying the real client IP when
	// running behind a reverse proxy, e.g. "X-Forwarded-For". Empty means
	// the connection remote address is used.
	ClientIpProxyHeader string `toml:"client_ip_proxy_header"`
}

type Smtp struct {
	Enabled     bool   `toml:"enabled"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	Username    string `toml:"username"`
	Password    string `toml:"password"`
	FromName    string `toml:"from_name"`
	FromAddress string `toml:"from_address"`
}

type OAuth2Provider struct {
	Name         string   `toml:"name"`
	DisplayName  string   `toml:"display_name"`
	RedirectURL  string   `toml:"redirect_url"`
	AuthURL      string   `toml:"auth_url"`
	TokenURL     string   `toml:"token_url"`
	UserInfoURL  string   `toml:"user_info_url"`
	Scopes       []string `toml:"scopes"`
	PKCE         bool     `toml:"pkce"`
	ClientID     string   `toml:"client_id"`
	ClientSecret string   `toml:"client_secret"`
}

// BlockIp configures the abusive client guard in front of the mail-sending
// endpoints.
type BlockIp struct {
	Enabled         bool     `toml:"enabled"`
	K               int      `toml:"k"`
	WindowSize      int      `toml:"window_size"`
	Width           int      `toml:"width"`
	Depth           int      `toml:"depth"`
	TickSize        uint64   `toml:"tick_size"`
	MaxSharePercent uint64   `toml:"max_share_percent"`
	ActivationRPS   uint64   `toml:"activation_rps"`
	BlockDuration   Duration `toml:"block_duration"`
}

// Endpoints maps every API operation to its "METHOD /path" endpoint string.
type Endpoints struct {
	AuthSendCode   string `toml:"auth_send_code"`
	AuthVerifyCode string `toml:"auth_verify_code"`
	AuthSignup     string `toml:"auth_signup"`
	AuthSignin     string `toml:"auth_signin"`
	AuthWithGoogle string `toml:"auth_with_google"`
	AuthSignout    string `toml:"auth_signout"`
	AuthMe         string `toml:"auth_me"`
	AuthRefresh    string `toml:"auth_refresh"`
	ListingCreate  string `toml:"listing_create"`
	ListingGet     string `toml:"listing_get"`
	ListingUpdate  string `toml:"listing_update"`
	ListingDelete  string `toml:"listing_delete"`
	ListingSearch  string `toml:"listing_search"`
	UserListings   string `toml:"user_listings"`
	UserGet        string `toml:"user_get"`
	UserUpdate     string `toml:"user_update"`
	UserDelete     string `toml:"user_delete"`
}

type Config struct {
	DBFile          string                    `toml:"db_file"`
	Jwt             Jwt                       `toml:"jwt"`
	Verification    Verification              `toml:"verification"`
	Server          Server                    `toml:"server"`
	Cookies         Cookies                   `toml:"cookies"`
	Smtp            Smtp                      `toml:"smtp"`
	OAuth2Providers map[string]OAuth2Provider `toml:"oauth2_providers"`
	BlockIp         BlockIp                   `toml:"block_ip"`
	Endpoints       Endpoints                 `toml:"endpoints"`
}

// FillEnvVars overrides credential fields from the environment when the
// corresponding variables are set. Secrets then never need to live in the
// config file.
func (c *Config) FillEnvVars() {
	if v := os.Getenv(EnvSmtpUsername); v != "" {
		c.Smtp.Username = v
	}
	if v := os.Getenv(EnvSmtpPassword); v != "" {
		c.Smtp.Password = v
	}
	if p, ok := c.OAuth2Providers[OAuth2ProviderGoogle]; ok {
		if v := os.Getenv(EnvGoogleClientID); v != "" {
			p.ClientID = v
		}
		if v := os.Getenv(EnvGoogleClientSecret); v != "" {
			p.ClientSecret = v
		}
		c.OAuth2Providers[OAuth2ProviderGoogle] = p
	}
}
