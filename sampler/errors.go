package sampler

import "errors"

var (
	// ErrUnknownSampler is returned by New for an unregistered kind.
	ErrUnknownSampler = errors.New("sampler: unknown sampler type")

	// ErrNoEndpoint is returned when a remote sampler has no API endpoint.
	ErrNoEndpoint = errors.New("sampler: no API endpoint configured")

	// ErrNoToken is returned when a remote sampler has no API token.
	ErrNoToken = errors.New("sampler: no API token configured")

	// ErrClientClosed is returned by calls on a closed Client.
	ErrClientClosed = errors.New("sampler: client closed")

	// ErrHTTPStatus wraps unexpected HTTP replies.
	ErrHTTPStatus = errors.New("sampler: unexpected HTTP status")

	// ErrProblemFailed is returned when the service reports FAILED or CANCELLED.
	ErrProblemFailed = errors.New("sampler: problem did not complete")

	// ErrBadAnswer is returned for answers that do not fit the submitted model.
	ErrBadAnswer = errors.New("sampler: malformed answer")
)
