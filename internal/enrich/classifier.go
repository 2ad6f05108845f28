package enrich

import (
	"errors"
	"net/http"
	"strings"

	"google.golang.org/api/googleapi"
)

// IsTransient classifies an error as temporary provider overload. It is the
// default Policy.Transient; callers with a different provider can plug in
// their own classifier.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusServiceUnavailable
	}
	// Providers that only expose an error string signal overload with a 503
	// status or an "overloaded" message.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "503") || strings.Contains(msg, "overloaded")
}
