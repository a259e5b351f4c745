package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	controller "github.com/estatemanner/hookrelay/pkg/controller/http"
	"github.com/estatemanner/hookrelay/pkg/domain/model"
	"github.com/estatemanner/hookrelay/pkg/usecase"
)

func TestHealthEndpoint(t *testing.T) {
	ctx := context.Background()

	webhookUC := usecase.NewWebhook(model.ServiceMap{"a/b": "b"}, &noopDispatcher{})
	server, err := controller.NewServer(ctx, webhookUC, controller.WithAddr("localhost:0"))
	gt.NoError(t, err)

	ts := httptest.NewServer(server.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	gt.NoError(t, err)
	defer func() {
		_ = resp.Body.Close() // Error ignored in test
	}()

	gt.Value(t, resp.StatusCode).Equal(http.StatusOK)

	var status model.HealthStatus
	gt.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	gt.Value(t, status.Status).Equal("healthy")
	gt.Value(t, status.Service).Equal("hookrelay")
	gt.Value(t, status.Version).NotEqual("")
}

type noopDispatcher struct{}

func (d *noopDispatcher) CreateDispatch(ctx context.Context, event *model.DispatchEvent) error {
	return nil
}
