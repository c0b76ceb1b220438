package config

import (
	"sync"
)

// Provider hands out the current Config behind a mutex so a future reload
// path can swap it without racing readers. Handlers call Get per request
// and never hold the pointer across requests.
type Provider struct {
	mu  sync.RWMutex
	cfg *Config
}

func NewProvider(cfg *Config) *Provider {
	if cfg == nil {
		panic("config provider requires a non-nil config")
	}
	return &Provider{cfg: cfg}
}

func (p *Provider) Get() *Config {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.cfg
}

func (p *Provider) Update(cfg *Config) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg = cfg
}
