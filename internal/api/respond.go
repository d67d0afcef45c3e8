package api

import (
	"encoding/json"
	"net/http"
	"net/url"

	qerrors "github.com/quranhub/quranhub/core/errors"
	"github.com/quranhub/quranhub/internal/logging"
)

// envelope is the wire shape of every response.
type envelope struct {
	Code   int         `json:"code"`
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

const (
	statusOK       = "OK"
	statusError    = "Error"
	statusNotFound = "Not Found"
)

// cacheControl is the CDN caching policy for successful responses:
// thirty days shared, one day stale-while-revalidate.
const cacheControl = "public, max-age=2592000, s-maxage=2592000, stale-while-revalidate=86400"

// cacheHeaders marks a response cacheable. The tag is percent-encoded for
// header safety; colons survive so tag hierarchies stay greppable at the
// CDN.
func cacheHeaders(w http.ResponseWriter, tag string) {
	h := w.Header()
	h.Set("Cache-Control", cacheControl)
	h.Set("CDN-Cache-Control", cacheControl)
	h.Set("Cloudflare-CDN-Cache-Control", cacheControl)
	h.Set("Vary", "Accept-Encoding")
	if tag != "" {
		h.Set("Cache-Tag", url.PathEscape(tag))
	}
}

// respond writes a success envelope.
func respond(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(envelope{Code: http.StatusOK, Status: statusOK, Data: data})
}

// respondError translates a taxonomy error into its envelope. Error
// responses are never cacheable.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	status := statusError
	message := err.Error()

	switch {
	case qerrors.Is(err, qerrors.ErrInvalidCoordinate),
		qerrors.Is(err, qerrors.ErrEditionNotFound):
		code = http.StatusBadRequest
	case qerrors.Is(err, qerrors.ErrInvalidNarrationEdition):
		code = http.StatusUnprocessableEntity
	case qerrors.Is(err, qerrors.ErrAyahNotFound),
		qerrors.Is(err, qerrors.ErrNotFound):
		code = http.StatusNotFound
		status = statusNotFound
	default:
		logging.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		message = "internal server error"
	}

	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(envelope{Code: code, Status: status, Data: message})
}
