// Package urlutil provides URL validation helpers.
package urlutil

import (
	"fmt"
	neturl "net/url"
	"strings"
)

// MaxURLLength is the practical limit for URL length.
const MaxURLLength = 2048

// Validate performs HTTP/HTTPS URL validation using net/url.Parse.
// It validates that the URL:
//   - Is not empty or only whitespace
//   - Uses http:// or https:// protocol
//   - Has a valid host/domain
//   - Does not exceed MaxURLLength
//
// Returns an error with context if validation fails.
func Validate(rawURL string) error {
	rawURL = strings.TrimSpace(rawURL)

	if rawURL == "" {
		return fmt.Errorf("url cannot be empty")
	}

	if len(rawURL) > MaxURLLength {
		return fmt.Errorf("url exceeds maximum length of %d characters", MaxURLLength)
	}

	parsed, err := neturl.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		if parsed.Scheme == "" {
			return fmt.Errorf("url must use http:// or https://")
		}
		return fmt.Errorf("url must use http:// or https://, got: %s", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("url missing host/domain")
	}

	return nil
}
