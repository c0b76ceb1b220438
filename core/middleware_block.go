package core

import (
	"net/http"
)

const blockKeyPrefix = "block:ip:"

// isBlocked checks the cache for a live block entry. Entries expire through
// the cache TTL, so a block lifts itself after BlockDuration.
func (a *App) isBlocked(ip string) bool {
	_, found := a.cache.Get(blockKeyPrefix + ip)
	return found
}

// blockIP stores a block entry with the configured duration. Ristretto
// handles concurrent writes for the same key; blocking an IP twice is
// harmless.
func (a *App) blockIP(ip string) {
	a.cache.SetWithTTL(blockKeyPrefix+ip, true, 1, a.Config().BlockIp.BlockDuration.Duration)
}

// BlockByIP guards the mail-sending endpoints against request floods. Every
// request feeds the sliding top-k sketch; clients the sketch reports as
// dominating traffic are blocked with a 429 until their entry expires.
//
// The middleware is a no-op when BlockIp is disabled in config or no sketch
// is wired.
func (a *App) BlockByIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.sketch == nil || !a.Config().BlockIp.Enabled {
			next.ServeHTTP(w, r)
			return
		}

		ip := a.clientIP(r)

		if a.isBlocked(ip) {
			writeJsonError(w, errorIpBlocked)
			return
		}

		if offenders := a.sketch.ProcessTick(ip); len(offenders) > 0 {
			a.logger.Warn("blocking IPs exceeding traffic share", "ips", offenders)
			for _, offender := range offenders {
				a.blockIP(offender)
			}
			if a.isBlocked(ip) {
				writeJsonError(w, errorIpBlocked)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
