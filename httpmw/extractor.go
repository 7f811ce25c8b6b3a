// Package httpmw is a reference HTTP integration for a *ratelimitcore.Limiter:
// it resolves an identifier from an incoming request, calls Limiter.Check,
// and translates the Result into an HTTP response — a 429 with
// X-RateLimit-* headers on denial, 400 for a bad identifier or invalid
// configuration, 500 otherwise. Nothing in this package is required to use
// the core.
package httpmw

import (
	"fmt"
	"net/http"
	"strings"
)

// Extractor derives the identifier a Limiter should rate-limit on from an
// incoming request. Implementations must not read the request body.
type Extractor interface {
	Extract(r *http.Request) (string, error)
}

type httpHeaderExtractor struct {
	headers []string
}

// NewHTTPHeaderExtractor builds an Extractor that joins the values of
// headers (in order) to form the identifier. Every listed header must be
// present and non-blank; use a header guaranteed unique per client, such as
// an authenticated user ID or an upstream-set client IP header.
func NewHTTPHeaderExtractor(headers ...string) Extractor {
	return &httpHeaderExtractor{headers: headers}
}

func (h *httpHeaderExtractor) Extract(r *http.Request) (string, error) {
	values := make([]string, 0, len(h.headers))
	for _, key := range h.headers {
		value := strings.TrimSpace(r.Header.Get(key))
		if value == "" {
			return "", fmt.Errorf("httpmw: header %q must have a value set", key)
		}
		values = append(values, value)
	}
	return strings.Join(values, "-"), nil
}
