package ratelimit

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit applied to one method and path. Paths ending in
// "/" match every route below them.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per Window; 0 disables limiting
	Window time.Duration
	Burst  int // defaults to Limit when 0
}

const envPrefix = "RATE_LIMIT_"

// LoadConfig builds the limiter configuration from RATE_LIMIT_* variables.
// Unparseable values are logged and replaced by their defaults.
func LoadConfig() *Config {
	if !envBool("ENABLED", true) {
		return &Config{Enabled: false}
	}

	endpoints := DefaultEndpointConfigs()
	if perHour := envInt("EXPORT_PER_HOUR", 0); perHour > 0 {
		for i := range endpoints {
			if endpoints[i].Path == "/session/export/" {
				endpoints[i].Limit = perHour
			}
		}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("DEFAULT_LIMIT", 1000),
		DefaultWindow:   envDuration("DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       envSet("WHITELIST"),
		Blacklist:       envSet("BLACKLIST"),
		EndpointConfigs: endpoints,
	}
}

// DefaultEndpointConfigs returns the per-route tiers. Routes not listed here
// fall back to the default limit.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// session creation and Chrome-backed export
		{Path: "/sessions", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/session/export/", Method: "GET", Limit: 30, Window: time.Hour, Burst: 3},

		// preview renders the whole document on every call
		{Path: "/session/preview", Method: "GET", Limit: 240, Window: time.Minute, Burst: 20},

		// form edits arrive once per keystroke from interactive clients
		{Path: "/session/", Method: "POST", Limit: 600, Window: time.Minute, Burst: 60},
		{Path: "/session/", Method: "PUT", Limit: 600, Window: time.Minute, Burst: 60},
		{Path: "/session/", Method: "DELETE", Limit: 600, Window: time.Minute, Burst: 60},
	}
}

func lookupEnv(name string) (string, bool) {
	value := strings.TrimSpace(os.Getenv(envPrefix + name))
	return value, value != ""
}

func envInt(name string, fallback int) int {
	raw, ok := lookupEnv(name)
	if !ok {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("[rate-limit] ignoring %s%s=%q: %v", envPrefix, name, raw, err)
		return fallback
	}
	return v
}

func envBool(name string, fallback bool) bool {
	raw, ok := lookupEnv(name)
	if !ok {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("[rate-limit] ignoring %s%s=%q: %v", envPrefix, name, raw, err)
		return fallback
	}
	return v
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw, ok := lookupEnv(name)
	if !ok {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		log.Printf("[rate-limit] ignoring %s%s=%q: %v", envPrefix, name, raw, err)
		return fallback
	}
	return v
}

// envSet parses a comma-separated client list.
func envSet(name string) map[string]bool {
	set := make(map[string]bool)
	raw, ok := lookupEnv(name)
	if !ok {
		return set
	}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			set[item] = true
		}
	}
	return set
}
