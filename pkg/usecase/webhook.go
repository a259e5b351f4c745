package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/estatemanner/hookrelay/pkg/domain/interfaces"
	"github.com/estatemanner/hookrelay/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type webhookUseCase struct {
	serviceMap model.ServiceMap
	dispatcher interfaces.Dispatcher
}

// NewWebhook creates a new instance of WebhookUseCase
func NewWebhook(serviceMap model.ServiceMap, dispatcher interfaces.Dispatcher) interfaces.WebhookUseCase {
	return &webhookUseCase{
		serviceMap: serviceMap,
		dispatcher: dispatcher,
	}
}

// ValidateEvent checks the unvalidated push notification field by field.
// All violations are accumulated so the caller sees every problem at once.
func (uc *webhookUseCase) ValidateEvent(ctx context.Context, raw *model.RawPushEvent) (*model.PushEvent, []string) {
	var violations []string

	repoName, ok := raw.Repository.RepoName.(string)
	switch {
	case raw.Repository.RepoName == nil:
		violations = append(violations, "repository.repo_name is required")
	case !ok:
		violations = append(violations, "repository.repo_name must be a string")
	case repoName == "":
		violations = append(violations, "repository.repo_name must not be empty")
	default:
		if _, err := uc.serviceMap.Lookup(repoName); err != nil {
			violations = append(violations, fmt.Sprintf("unsupported repository %q (supported: %s)",
				repoName, strings.Join(uc.serviceMap.Repositories(), ", ")))
		}
	}

	owner, ok := raw.Repository.Owner.(string)
	switch {
	case raw.Repository.Owner == nil:
		violations = append(violations, "repository.owner is required")
	case !ok:
		violations = append(violations, "repository.owner must be a string")
	case owner == "":
		violations = append(violations, "repository.owner must not be empty")
	}

	tag, ok := raw.PushData.Tag.(string)
	switch {
	case raw.PushData.Tag == nil:
		violations = append(violations, "push_data.tag is required")
	case !ok:
		violations = append(violations, "push_data.tag must be a string")
	case tag == "":
		violations = append(violations, "push_data.tag must not be empty")
	}

	pusher, ok := raw.PushData.Pusher.(string)
	switch {
	case raw.PushData.Pusher == nil:
		violations = append(violations, "push_data.pusher is required")
	case !ok:
		violations = append(violations, "push_data.pusher must be a string")
	}

	if len(violations) > 0 {
		ctxlog.From(ctx).Debug("Push event validation failed", "violations", violations)
		return nil, violations
	}

	return &model.PushEvent{
		RepoName: repoName,
		Owner:    owner,
		Tag:      tag,
		Pusher:   pusher,
	}, nil
}

// Transform assembles the repository dispatch payload from a validated event
func (uc *webhookUseCase) Transform(ctx context.Context, event *model.PushEvent) (*model.DispatchEvent, error) {
	service, err := uc.serviceMap.Lookup(event.RepoName)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to transform push event")
	}

	return &model.DispatchEvent{
		EventType: model.DispatchEventType,
		ClientPayload: model.ClientPayload{
			Repository:  model.DispatchRepository{RepoName: service},
			PushData:    model.DispatchPushData{Tag: event.Tag, Pusher: event.Pusher},
			Environment: ClassifyTag(ctx, event.Tag),
		},
	}, nil
}

// ProcessEvent transforms a validated push event and dispatches it to GitHub
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, event *model.PushEvent) (*model.DispatchResult, error) {
	logger := ctxlog.From(ctx)

	dispatchEvent, err := uc.Transform(ctx, event)
	if err != nil {
		return nil, err
	}

	logger.Info("Dispatching push event",
		"repository", event.RepoName,
		"service", dispatchEvent.ClientPayload.Repository.RepoName,
		"tag", event.Tag,
		"pusher", event.Pusher,
		"environment", dispatchEvent.ClientPayload.Environment,
	)

	if err := uc.dispatcher.CreateDispatch(ctx, dispatchEvent); err != nil {
		return nil, goerr.Wrap(err, "failed to dispatch push event",
			goerr.V("repository", event.RepoName),
		)
	}

	return &model.DispatchResult{
		Service:     dispatchEvent.ClientPayload.Repository.RepoName,
		Environment: dispatchEvent.ClientPayload.Environment,
	}, nil
}
