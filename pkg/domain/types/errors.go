package types

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for the webhook relay pipeline. Callers branch on these
// with errors.Is; contextual values are attached at the wrap site.
var (
	// ErrUnknownRepository is returned when a source repository is not
	// registered in the service map
	ErrUnknownRepository = goerr.New("unknown repository")

	// ErrMissingCredential is returned when a dispatch is attempted without
	// a GitHub token configured
	ErrMissingCredential = goerr.New("github token is not configured")

	// ErrConfigInvalid is returned when supplied configuration cannot be
	// parsed or is incomplete
	ErrConfigInvalid = goerr.New("invalid configuration")

	// ErrUpstreamRejected is returned when the GitHub API answers a dispatch
	// request with a non-2xx status
	ErrUpstreamRejected = goerr.New("github api rejected the dispatch request")

	// ErrUpstreamUnreachable is returned when the dispatch request fails at
	// the transport level
	ErrUpstreamUnreachable = goerr.New("github api is unreachable")
)
