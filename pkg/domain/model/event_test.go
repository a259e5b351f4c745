package model_test

import (
	"errors"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/estatemanner/hookrelay/pkg/domain/model"
	"github.com/estatemanner/hookrelay/pkg/domain/types"
)

func TestServiceMap_Lookup(t *testing.T) {
	serviceMap := model.ServiceMap{
		"estatemanner/est-webapp": "est-webapp",
		"estatemanner/est-api":    "est-api",
	}

	t.Run("Every configured key resolves to its value", func(t *testing.T) {
		for source, want := range serviceMap {
			service, err := serviceMap.Lookup(source)
			gt.NoError(t, err)
			gt.Value(t, service).Equal(want)
		}
	})

	t.Run("Unknown repository fails", func(t *testing.T) {
		service, err := serviceMap.Lookup("estatemanner/unknown")
		gt.Error(t, err)
		gt.Value(t, service).Equal("")
		gt.Value(t, errors.Is(err, types.ErrUnknownRepository)).Equal(true)
	})
}

func TestServiceMap_Repositories(t *testing.T) {
	serviceMap := model.ServiceMap{
		"b/repo": "b",
		"a/repo": "a",
		"c/repo": "c",
	}

	repos := serviceMap.Repositories()
	gt.Value(t, repos).Equal([]string{"a/repo", "b/repo", "c/repo"})
}
