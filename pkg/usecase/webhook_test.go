package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/estatemanner/hookrelay/pkg/domain/model"
	"github.com/estatemanner/hookrelay/pkg/domain/types"
	"github.com/estatemanner/hookrelay/pkg/usecase"
)

// MockDispatcher is a mock implementation of Dispatcher
type MockDispatcher struct {
	createDispatchFunc func(ctx context.Context, event *model.DispatchEvent) error
	dispatched         []*model.DispatchEvent
}

func (m *MockDispatcher) CreateDispatch(ctx context.Context, event *model.DispatchEvent) error {
	m.dispatched = append(m.dispatched, event)
	if m.createDispatchFunc != nil {
		return m.createDispatchFunc(ctx, event)
	}
	return nil
}

func testServiceMap() model.ServiceMap {
	return model.ServiceMap{
		"estatemanner/est-webapp": "est-webapp",
		"estatemanner/est-api":    "est-api",
	}
}

func validRawEvent() *model.RawPushEvent {
	return &model.RawPushEvent{
		Repository: model.RawRepository{
			RepoName: "estatemanner/est-webapp",
			Owner:    "estatemanner",
		},
		PushData: model.RawPushData{
			Tag:    "v1.0.0",
			Pusher: "dev",
		},
	}
}

func TestValidateEvent_Valid(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewWebhook(testServiceMap(), &MockDispatcher{})

	event, violations := uc.ValidateEvent(ctx, validRawEvent())
	gt.Value(t, len(violations)).Equal(0)
	gt.Value(t, event).NotNil()
	gt.Value(t, event.RepoName).Equal("estatemanner/est-webapp")
	gt.Value(t, event.Owner).Equal("estatemanner")
	gt.Value(t, event.Tag).Equal("v1.0.0")
	gt.Value(t, event.Pusher).Equal("dev")
}

func TestValidateEvent_AccumulatesViolations(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewWebhook(testServiceMap(), &MockDispatcher{})

	// Missing repo_name and tag at the same time: both must be reported
	raw := &model.RawPushEvent{
		Repository: model.RawRepository{
			Owner: "estatemanner",
		},
		PushData: model.RawPushData{
			Pusher: "dev",
		},
	}

	event, violations := uc.ValidateEvent(ctx, raw)
	gt.Value(t, event).Nil()
	gt.Number(t, len(violations)).Greater(1)
	gt.String(t, strings.Join(violations, "; ")).Contains("repository.repo_name is required")
	gt.String(t, strings.Join(violations, "; ")).Contains("push_data.tag is required")
}

func TestValidateEvent_WrongTypes(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewWebhook(testServiceMap(), &MockDispatcher{})

	raw := validRawEvent()
	raw.PushData.Tag = float64(123)
	raw.PushData.Pusher = true

	event, violations := uc.ValidateEvent(ctx, raw)
	gt.Value(t, event).Nil()
	gt.Value(t, len(violations)).Equal(2)
	gt.String(t, strings.Join(violations, "; ")).Contains("push_data.tag must be a string")
	gt.String(t, strings.Join(violations, "; ")).Contains("push_data.pusher must be a string")
}

func TestValidateEvent_EmptyFields(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewWebhook(testServiceMap(), &MockDispatcher{})

	raw := validRawEvent()
	raw.Repository.Owner = ""
	raw.PushData.Tag = ""

	event, violations := uc.ValidateEvent(ctx, raw)
	gt.Value(t, event).Nil()
	gt.Value(t, len(violations)).Equal(2)
	gt.String(t, strings.Join(violations, "; ")).Contains("repository.owner must not be empty")
	gt.String(t, strings.Join(violations, "; ")).Contains("push_data.tag must not be empty")
}

func TestValidateEvent_UnsupportedRepository(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewWebhook(testServiceMap(), &MockDispatcher{})

	raw := validRawEvent()
	raw.Repository.RepoName = "estatemanner/not-registered"

	event, violations := uc.ValidateEvent(ctx, raw)
	gt.Value(t, event).Nil()
	gt.Value(t, len(violations)).Equal(1)
	gt.String(t, violations[0]).Contains(`unsupported repository "estatemanner/not-registered"`)
	gt.String(t, violations[0]).Contains("estatemanner/est-webapp")
	gt.String(t, violations[0]).Contains("estatemanner/est-api")
}

func TestTransform(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewWebhook(testServiceMap(), &MockDispatcher{})

	tests := []struct {
		name    string
		tag     string
		wantEnv model.Environment
	}{
		{
			name:    "Release tag maps to production",
			tag:     "v1.0.0",
			wantEnv: model.EnvironmentProduction,
		},
		{
			name:    "Staging tag maps to staging",
			tag:     "v1.0.0-stg",
			wantEnv: model.EnvironmentStaging,
		},
		{
			name:    "Unrecognized tag maps to staging",
			tag:     "latest",
			wantEnv: model.EnvironmentStaging,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := &model.PushEvent{
				RepoName: "estatemanner/est-webapp",
				Owner:    "estatemanner",
				Tag:      tt.tag,
				Pusher:   "dev",
			}

			dispatchEvent, err := uc.Transform(ctx, event)
			gt.NoError(t, err)
			gt.Value(t, dispatchEvent.EventType).Equal("docker-hub-webhook")
			gt.Value(t, dispatchEvent.ClientPayload.Repository.RepoName).Equal("est-webapp")
			gt.Value(t, dispatchEvent.ClientPayload.PushData.Tag).Equal(tt.tag)
			gt.Value(t, dispatchEvent.ClientPayload.PushData.Pusher).Equal("dev")
			gt.Value(t, dispatchEvent.ClientPayload.Environment).Equal(tt.wantEnv)
		})
	}
}

func TestTransform_UnknownRepository(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewWebhook(testServiceMap(), &MockDispatcher{})

	event := &model.PushEvent{
		RepoName: "estatemanner/not-registered",
		Owner:    "estatemanner",
		Tag:      "v1.0.0",
		Pusher:   "dev",
	}

	dispatchEvent, err := uc.Transform(ctx, event)
	gt.Error(t, err)
	gt.Value(t, dispatchEvent).Nil()
	gt.Value(t, errors.Is(err, types.ErrUnknownRepository)).Equal(true)
}

func TestProcessEvent_Success(t *testing.T) {
	ctx := context.Background()
	mock := &MockDispatcher{}
	uc := usecase.NewWebhook(testServiceMap(), mock)

	event := &model.PushEvent{
		RepoName: "estatemanner/est-webapp",
		Owner:    "estatemanner",
		Tag:      "v1.0.0",
		Pusher:   "dev",
	}

	result, err := uc.ProcessEvent(ctx, event)
	gt.NoError(t, err)
	gt.Value(t, result.Service).Equal("est-webapp")
	gt.Value(t, result.Environment).Equal(model.EnvironmentProduction)

	gt.Value(t, len(mock.dispatched)).Equal(1)
	gt.Value(t, mock.dispatched[0].EventType).Equal("docker-hub-webhook")
	gt.Value(t, mock.dispatched[0].ClientPayload.Repository.RepoName).Equal("est-webapp")
}

func TestProcessEvent_DispatchFailure(t *testing.T) {
	ctx := context.Background()
	mock := &MockDispatcher{
		createDispatchFunc: func(ctx context.Context, event *model.DispatchEvent) error {
			return types.ErrUpstreamRejected
		},
	}
	uc := usecase.NewWebhook(testServiceMap(), mock)

	event := &model.PushEvent{
		RepoName: "estatemanner/est-webapp",
		Owner:    "estatemanner",
		Tag:      "v1.0.0",
		Pusher:   "dev",
	}

	result, err := uc.ProcessEvent(ctx, event)
	gt.Error(t, err)
	gt.Value(t, result).Nil()
	gt.Value(t, errors.Is(err, types.ErrUpstreamRejected)).Equal(true)
}

func TestProcessEvent_NoDeduplication(t *testing.T) {
	ctx := context.Background()
	mock := &MockDispatcher{}
	uc := usecase.NewWebhook(testServiceMap(), mock)

	event := &model.PushEvent{
		RepoName: "estatemanner/est-api",
		Owner:    "estatemanner",
		Tag:      "v2.1.3-dev",
		Pusher:   "dev",
	}

	// The identical event dispatched twice yields two independent calls
	for i := 0; i < 2; i++ {
		result, err := uc.ProcessEvent(ctx, event)
		gt.NoError(t, err)
		gt.Value(t, result.Service).Equal("est-api")
		gt.Value(t, result.Environment).Equal(model.EnvironmentStaging)
	}

	gt.Value(t, len(mock.dispatched)).Equal(2)
}
