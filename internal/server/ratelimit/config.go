package ratelimit

import (
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
	Group  string        // Endpoints sharing a group share one bucket per client
}

func (ec *EndpointConfig) key(path string) string {
	if ec.Group != "" {
		return ec.Group
	}
	return path
}

// Generation endpoints share one hourly budget per client.
const generationGroup = "generate"

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig(getenv func(string) string) *Config {
	env := envReader(getenv)

	if !env.boolean("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	genLimit := env.integer("RATE_LIMIT_GENERATE_LIMIT", 10)
	genWindow := env.duration("RATE_LIMIT_GENERATE_WINDOW", time.Hour)
	genBurst := env.integer("RATE_LIMIT_GENERATE_BURST", 2)

	return &Config{
		Enabled:         true,
		DefaultLimit:    env.integer("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   env.duration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: env.duration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(env.str("RATE_LIMIT_WHITELIST", "")),
		Blacklist:       parseIPList(env.str("RATE_LIMIT_BLACKLIST", "")),
		EndpointConfigs: GenerationEndpoints(genLimit, genWindow, genBurst),
	}
}

// GenerationEndpoints returns the limits of the endpoints that call the model.
func GenerationEndpoints(limit int, window time.Duration, burst int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/", Method: "POST", Limit: limit, Window: window, Burst: burst, Group: generationGroup},
		{Path: "/api/generate", Method: "POST", Limit: limit, Window: window, Burst: burst, Group: generationGroup},
		{Path: "/api/generate/stream", Method: "POST", Limit: limit, Window: window, Burst: burst, Group: generationGroup},
	}
}

type envReader func(string) string

func (e envReader) str(key, defaultValue string) string {
	if value := strings.TrimSpace(e(key)); value != "" {
		return value
	}
	return defaultValue
}

func (e envReader) integer(key string, defaultValue int) int {
	if v, err := strconv.Atoi(e.str(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func (e envReader) boolean(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(e.str(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func (e envReader) duration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(e.str(key, "")); err == nil {
		return v
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
