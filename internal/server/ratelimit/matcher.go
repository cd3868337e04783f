package ratelimit

import "strings"

// publicRoutes are static catalog reads that are never limited.
var publicRoutes = map[string]bool{
	"GET /health":             true,
	"GET /templates":          true,
	"GET /skills/suggestions": true,
}

// unlimited is returned for public routes; a zero limit disables the bucket.
var unlimited = EndpointConfig{}

// MatchEndpoint returns the configuration governing a request. An exact path
// wins; otherwise the longest configured prefix ending in "/" applies. Nil
// means the default limit applies.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if publicRoutes[method+" "+path] {
		cfg := unlimited
		cfg.Path, cfg.Method = path, method
		return &cfg
	}

	var best *EndpointConfig
	for i := range configs {
		cfg := &configs[i]
		if cfg.Method != method {
			continue
		}
		if cfg.Path == path {
			return cfg
		}
		if !strings.HasSuffix(cfg.Path, "/") || !strings.HasPrefix(path, cfg.Path) {
			continue
		}
		if best == nil || len(cfg.Path) > len(best.Path) {
			best = cfg
		}
	}
	return best
}
