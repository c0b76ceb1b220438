package config

import (
	"fmt"
	"net"

	"github.com/nidohq/nido/crypto"
)

func Validate(cfg *Config) error {
	if err := validateServer(&cfg.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}
	if err := validateJwt(&cfg.Jwt); err != nil {
		return fmt.Errorf("jwt config validation failed: %w", err)
	}
	if err := validateSmtp(&cfg.Smtp); err != nil {
		return fmt.Errorf("smtp config validation failed: %w", err)
	}
	return nil
}

// validateServer ensures Addr contains a valid host:port or :port format.
// If only a port is provided (e.g. ":8080") the host defaults to
// "localhost". The port part is mandatory.
func validateServer(server *Server) error {
	if server.Addr == "" {
		return fmt.Errorf("server address (Addr) cannot be empty")
	}

	host, port, err := net.SplitHostPort(server.Addr)
	if err != nil {
		return fmt.Errorf("invalid server address format '%s': %w", server.Addr, err)
	}

	if host == "" {
		// SplitHostPort accepts ":8080" and hands back an empty host
		host = "localhost"
	}

	if port == "" {
		return fmt.Errorf("server address '%s' must include a port", server.Addr)
	}

	server.Addr = net.JoinHostPort(host, port)

	if _, err := net.LookupPort("tcp", port); err != nil {
		return fmt.Errorf("invalid port '%s' in server address '%s': %w", port, server.Addr, err)
	}

	return nil
}

func validateJwt(jwt *Jwt) error {
	if len(jwt.AccessSecret) < crypto.MinKeyLength {
		return fmt.Errorf("access secret must be at least %d characters", crypto.MinKeyLength)
	}
	if len(jwt.RefreshSecret) < crypto.MinKeyLength {
		return fmt.Errorf("refresh secret must be at least %d characters", crypto.MinKeyLength)
	}
	if jwt.AccessTokenDuration.Duration <= 0 {
		return fmt.Errorf("access token duration must be positive")
	}
	if jwt.RefreshTokenDuration.Duration <= 0 {
		return fmt.Errorf("refresh token duration must be positive")
	}
	return nil
}

func validateSmtp(smtp *Smtp) error {
	if !smtp.Enabled {
		return nil
	}
	if smtp.Host == "" {
		return fmt.Errorf("smtp host cannot be empty when smtp is enabled")
	}
	if smtp.Port <= 0 || smtp.Port > 65535 {
		return fmt.Errorf("invalid smtp port %d", smtp.Port)
	}
	if smtp.FromAddress == "" {
		return fmt.Errorf("smtp from address cannot be empty when smtp is enabled")
	}
	return nil
}
