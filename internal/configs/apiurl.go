package configs

import (
	"strings"

	logger "github.com/fragmentid/fragment-cli/internal/logging"
)

// DefaultAPIBaseURL is the production identity service.
const DefaultAPIBaseURL = "https://api.fragmentid.com"

// URLSource names where a resolved API base URL came from.
type URLSource string

const (
	SourceFlag    URLSource = "flag"
	SourceConfig  URLSource = "config"
	SourceDefault URLSource = "default"
)

// ResolveAPIBaseURLSource picks the API base URL from, in order, the flag value,
// the persisted apiBaseUrl and the production default. cfg may be nil.
//
// Exactly one trailing slash is removed from the chosen value.
func ResolveAPIBaseURLSource(cfg ValueReader, flagValue string) (string, URLSource) {
	url, source := DefaultAPIBaseURL, SourceDefault

	if flagValue != "" {
		url, source = flagValue, SourceFlag
	} else if cfg != nil {
		if persisted, ok := cfg.Get(KeyAPIBaseURL); ok && persisted != "" {
			url, source = persisted, SourceConfig
		}
	}

	return strings.TrimSuffix(url, "/"), source
}

// ResolveAPIBaseURL resolves the API base URL and, when log.Debug is set,
// reports the value and its source.
func ResolveAPIBaseURL(cfg ValueReader, flagValue string, log logger.Logger) string {
	url, source := ResolveAPIBaseURLSource(cfg, flagValue)
	log.Debugf("Using API base URL %s (from %s)", url, source)
	return url
}
