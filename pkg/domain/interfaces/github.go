package interfaces

import (
	"context"

	"github.com/estatemanner/hookrelay/pkg/domain/model"
)

// Dispatcher defines operations for emitting repository dispatch events
type Dispatcher interface {
	// CreateDispatch sends a single repository dispatch request to GitHub.
	// Exactly one attempt is made; no retry.
	CreateDispatch(ctx context.Context, event *model.DispatchEvent) error
}
