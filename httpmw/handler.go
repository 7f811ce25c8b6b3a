package httpmw

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lowc1012/ratelimitcore"
	"github.com/lowc1012/ratelimitcore/internal/log"
	"github.com/lowc1012/ratelimitcore/ratelimit"
)

const (
	headerLimit     = "X-RateLimit-Limit"
	headerRemaining = "X-RateLimit-Remaining"
	headerAlgorithm = "X-RateLimit-Algorithm"
	headerReset     = "X-RateLimit-Reset"
)

const internalErrorMessage = "internal rate limiter error"

// Config configures a rate-limiting Handler.
type Config struct {
	Extractor Extractor
	Limiter   *ratelimitcore.Limiter
	Algorithm ratelimit.Kind
	Logger    *zap.Logger // defaults to log.Logger()
}

type handler struct {
	next   http.Handler
	config Config
	logger *zap.Logger
}

// NewHandler wraps next, running every request through config.Limiter before
// forwarding it. A denied request receives a 429 with X-RateLimit-* headers
// and never reaches next.
func NewHandler(next http.Handler, config Config) http.Handler {
	logger := config.Logger
	if logger == nil {
		logger = log.Logger()
	}
	return &handler{next: next, config: config, logger: logger}
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	logger := h.logger.With(zap.String("request_id", requestID))

	identifier, err := h.config.Extractor.Extract(r)
	if err != nil {
		logger.Info("rejecting request: failed to extract rate limit identifier", zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.config.Limiter.Check(r.Context(), h.config.Algorithm, identifier)
	if err != nil {
		var valErr *ratelimit.ValidationError
		if errors.As(err, &valErr) {
			logger.Info("rejecting request: invalid rate limit configuration", zap.Error(err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Error("rate limiter check failed", zap.Error(err))
		http.Error(w, internalErrorMessage, http.StatusInternalServerError)
		return
	}

	setRateLimitHeaders(w.Header(), result)

	if !result.Admitted() {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
		return
	}

	h.next.ServeHTTP(w, r)
}

func setRateLimitHeaders(header http.Header, result *ratelimit.Result) {
	header.Set(headerLimit, strconv.FormatInt(result.Limit(), 10))
	header.Set(headerRemaining, strconv.FormatInt(result.Remaining(), 10))
	header.Set(headerAlgorithm, result.Algorithm().String())
	if resetAt := result.ResetAt(); resetAt != nil {
		header.Set(headerReset, strconv.FormatInt(resetAt.Unix(), 10))
	}
}
