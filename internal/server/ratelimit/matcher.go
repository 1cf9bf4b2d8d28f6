package ratelimit

import "strings"

// unlimited is returned for endpoints that bypass limiting.
var unlimited = EndpointConfig{}

// MatchEndpoint returns the configuration governing path and method, or nil
// when the global default applies. Exact paths win over prefixes; a prefix
// is any configured path ending in "/" (e.g. "/companies/" matches
// "/companies/42/enrich").
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		u := unlimited
		return &u
	}

	for i := range configs {
		if configs[i].Method == method && configs[i].Path == path {
			return &configs[i]
		}
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method || !strings.HasSuffix(c.Path, "/") || !strings.HasPrefix(path, c.Path) {
			continue
		}
		if best == nil || len(c.Path) > len(best.Path) {
			best = c
		}
	}
	return best
}
