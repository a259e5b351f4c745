package interfaces

import (
	"context"

	"github.com/estatemanner/hookrelay/pkg/domain/model"
)

// WebhookUseCase defines the push event relay pipeline
type WebhookUseCase interface {
	// ValidateEvent checks an unvalidated push notification field by field
	// and returns either a typed event or the full list of violations
	ValidateEvent(ctx context.Context, raw *model.RawPushEvent) (*model.PushEvent, []string)

	// Transform maps the source repository to a service name, classifies the
	// tag into an environment, and assembles the dispatch payload
	Transform(ctx context.Context, event *model.PushEvent) (*model.DispatchEvent, error)

	// ProcessEvent transforms a validated event and dispatches it to GitHub
	ProcessEvent(ctx context.Context, event *model.PushEvent) (*model.DispatchResult, error)
}
