package core

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nidohq/nido/db/mock"
	"github.com/nidohq/nido/topk"
)

func blockTestApp(t *testing.T) *App {
	t.Helper()
	app, _ := newTestApp(t, &mock.Db{})
	app.sketch = topk.New(topk.SketchParams{
		K:               3,
		WindowSize:      2,
		Width:           256,
		Depth:           2,
		TickSize:        10,
		MaxSharePercent: 50,
		ActivationRPS:   1,
	})
	return app
}

func passthrough(hits *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestBlockByIPDisabled(t *testing.T) {
	app := blockTestApp(t)
	cfg := testConfig()
	cfg.BlockIp.Enabled = false
	app.configProvider.Update(cfg)

	hits := 0
	handler := app.BlockByIP(passthrough(&hits))

	req := httptest.NewRequest("POST", "/api/auth/send-code", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
	if rr.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusNoContent)
	}
}

func TestBlockByIPBlockedEntry(t *testing.T) {
	app := blockTestApp(t)

	req := httptest.NewRequest("POST", "/api/auth/send-code", nil)
	app.blockIP(app.clientIP(req))

	hits := 0
	handler := app.BlockByIP(passthrough(&hits))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if hits != 0 {
		t.Errorf("hits = %d, want 0", hits)
	}
	if rr.Code != http.StatusTooManyRequests {
		t.Errorf("status = %d, want %d", rr.Code, http.StatusTooManyRequests)
	}
	if code := decodeResponseCode(t, rr); code != CodeErrorIpBlocked {
		t.Errorf("code = %q, want %q", code, CodeErrorIpBlocked)
	}
}

func TestBlockByIPDominantClient(t *testing.T) {
	app := blockTestApp(t)

	hits := 0
	handler := app.BlockByIP(passthrough(&hits))

	// A single source generating all traffic exceeds the 50% share and
	// ends up blocked once enough ticks complete.
	blocked := false
	for i := 0; i < 100; i++ {
		req := httptest.NewRequest("POST", "/api/auth/send-code", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code == http.StatusTooManyRequests {
			blocked = true
			break
		}
	}

	if !blocked {
		t.Error("dominant client was never blocked")
	}
}
