package llm

import (
	"errors"
	"strings"
)

// ErrFatalAPI marks errors where retrying or falling back to another
// prompt cannot help: bad credentials, exhausted quota, billing issues.
// Callers can stop using the enhanced path for the rest of the process
// instead of paying the timeout on every section.
var ErrFatalAPI = errors.New("fatal LLM API error")

var fatalMarkers = []string{
	"credit balance",
	"rate limit",
	"quota",
	"billing",
	"invalid api key",
	"authentication",
	"unauthorized",
	"401",
	"403",
}

// isFatalAPIError classifies an error by message content. Provider SDKs
// do not expose typed errors for these cases, so substring matching is
// the only portable signal.
func isFatalAPIError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, marker := range fatalMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

// wrapFatalError wraps fatal API errors with ErrFatalAPI so callers can
// match with errors.Is. Non-fatal errors pass through unchanged.
func wrapFatalError(err error) error {
	if err == nil {
		return nil
	}
	if isFatalAPIError(err) {
		return errors.Join(ErrFatalAPI, err)
	}
	return err
}
