package model

import (
	"sort"

	"github.com/estatemanner/hookrelay/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// DispatchEventType is the event_type sent with every repository dispatch
const DispatchEventType = "docker-hub-webhook"

// Environment is the deployment environment derived from an image tag
type Environment string

const (
	EnvironmentProduction Environment = "production"
	EnvironmentStaging    Environment = "staging"
)

// RawPushEvent is the unvalidated Docker Hub push notification body.
// Field values stay untyped until validation so that a wrong-typed field
// becomes a validation violation instead of a JSON parse failure.
type RawPushEvent struct {
	Repository RawRepository `json:"repository"`
	PushData   RawPushData   `json:"push_data"`
}

type RawRepository struct {
	RepoName any `json:"repo_name"`
	Owner    any `json:"owner"`
	FullName any `json:"full_name"` // accepted but unused
}

type RawPushData struct {
	Tag    any `json:"tag"`
	Pusher any `json:"pusher"`
}

// PushEvent is a validated push notification
type PushEvent struct {
	RepoName string
	Owner    string
	Tag      string
	Pusher   string
}

// DispatchEvent is the repository dispatch payload sent to GitHub
type DispatchEvent struct {
	EventType     string        `json:"event_type"`
	ClientPayload ClientPayload `json:"client_payload"`
}

type ClientPayload struct {
	Repository  DispatchRepository `json:"repository"`
	PushData    DispatchPushData   `json:"push_data"`
	Environment Environment        `json:"environment"`
}

type DispatchRepository struct {
	RepoName string `json:"repo_name"`
}

type DispatchPushData struct {
	Tag    string `json:"tag"`
	Pusher string `json:"pusher"`
}

// DispatchResult summarizes a completed dispatch for the HTTP response
type DispatchResult struct {
	Service     string
	Environment Environment
}

// ServiceMap maps source repository identifiers (namespace/name) to internal
// service names. It is built once from configuration and never mutated.
type ServiceMap map[string]string

// Lookup resolves a source repository to its internal service name
func (m ServiceMap) Lookup(repoName string) (string, error) {
	service, ok := m[repoName]
	if !ok {
		return "", goerr.Wrap(types.ErrUnknownRepository, "repository is not registered in the service map",
			goerr.V("repository", repoName),
			goerr.V("supported", m.Repositories()),
		)
	}
	return service, nil
}

// Repositories returns the sorted set of supported source repositories
func (m ServiceMap) Repositories() []string {
	repos := make([]string, 0, len(m))
	for name := range m {
		repos = append(repos, name)
	}
	sort.Strings(repos)
	return repos
}
