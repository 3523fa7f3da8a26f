package middleware

import (
	"context"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/satyaprakrati/cozico/internal/infrastructure/telemetry"
)

// ProfilingConfig configures Profiling.
type ProfilingConfig struct {
	Enabled bool
	// SkipPaths are left unlabelled. An entry ending in "*" matches by prefix.
	SkipPaths []string
}

// DefaultProfilingConfig skips the probes and the long-lived cart stream.
func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Enabled:   true,
		SkipPaths: []string{"/health", "/ready", "/api/v1/cart/stream*"},
	}
}

// Profiling runs each request under pprof labels for its storefront area
// (catalog, cart...), route pattern and method, so Pyroscope can slice
// CPU time per endpoint.
func Profiling(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return passThrough
	}
	return func(c *gin.Context) {
		if skipped(c.Request.URL.Path, cfg.SkipPaths) {
			c.Next()
			return
		}
		route := c.FullPath()
		labels := telemetry.HTTPRequestLabels(areaOf(route), route, c.Request.Method)
		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

func skipped(path string, patterns []string) bool {
	for _, p := range patterns {
		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		} else if path == p {
			return true
		}
	}
	return false
}

var apiPrefix = regexp.MustCompile(`^/api/[vV][0-9]+`)

// areaOf is the first static segment after the API prefix:
// "/api/v1/cart/items/:productId" is "cart". Routes that start with a
// parameter have no area.
func areaOf(route string) string {
	rest := strings.TrimPrefix(apiPrefix.ReplaceAllString(route, ""), "/")
	seg, _, _ := strings.Cut(rest, "/")
	if seg == "" || seg[0] == ':' || seg[0] == '*' {
		return ""
	}
	return seg
}
