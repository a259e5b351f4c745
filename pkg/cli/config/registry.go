package config

import (
	"strings"

	"github.com/estatemanner/hookrelay/pkg/domain/model"
	"github.com/estatemanner/hookrelay/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

// Registry holds the source repository allow-list as deployment
// configuration. Each entry maps a Docker Hub repository to the internal
// service name used in dispatch payloads.
type Registry struct {
	ServiceMappings []string
}

// DefaultServiceMappings is the built-in allow-list. Service names default
// to the source repository identifier; deployments that use shorter internal
// names override these entries.
var DefaultServiceMappings = []string{
	"estatemanner/est-webapp=estatemanner/est-webapp",
	"estatemanner/est-api=estatemanner/est-api",
	"estatemanner/est-admin=estatemanner/est-admin",
}

// Flags returns CLI flags for registry configuration
func (c *Registry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "service-map",
			Usage:       "Source repository to service mapping (namespace/name=service, repeatable)",
			Value:       DefaultServiceMappings,
			Destination: &c.ServiceMappings,
			Sources:     cli.EnvVars("HOOKRELAY_SERVICE_MAP"),
		},
	}
}

// ServiceMap parses the configured mappings into a model.ServiceMap
func (c *Registry) ServiceMap() (model.ServiceMap, error) {
	serviceMap := model.ServiceMap{}

	for _, entry := range c.ServiceMappings {
		source, service, ok := strings.Cut(entry, "=")
		source = strings.TrimSpace(source)
		service = strings.TrimSpace(service)
		if !ok || source == "" || service == "" {
			return nil, goerr.Wrap(types.ErrConfigInvalid, "malformed service mapping entry",
				goerr.V("entry", entry),
			)
		}
		serviceMap[source] = service
	}

	if len(serviceMap) == 0 {
		return nil, goerr.Wrap(types.ErrConfigInvalid, "service map must not be empty")
	}

	return serviceMap, nil
}
