package usecase

import (
	"context"
	"regexp"
	"strings"

	"github.com/estatemanner/hookrelay/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
)

var (
	// releaseTagPattern matches clean release tags like v1.0.0
	releaseTagPattern = regexp.MustCompile(`^v\d+\.\d+\.\d+$`)

	// prereleaseTagPattern matches release tags with a staging or dev
	// suffix like v1.0.0-stg or v2.1.3-dev
	prereleaseTagPattern = regexp.MustCompile(`^v\d+\.\d+\.\d+-(?:stg|dev)$`)
)

// ClassifyTag derives the deployment environment from an image tag. It is a
// total function: any tag that does not look like a clean release version
// falls back to staging, the safer deployment target.
func ClassifyTag(ctx context.Context, tag string) model.Environment {
	logger := ctxlog.From(ctx)

	trimmed := strings.TrimSpace(tag)
	if trimmed == "" {
		logger.Warn("Empty image tag, falling back to staging")
		return model.EnvironmentStaging
	}

	if releaseTagPattern.MatchString(trimmed) {
		return model.EnvironmentProduction
	}

	if prereleaseTagPattern.MatchString(trimmed) {
		return model.EnvironmentStaging
	}

	logger.Debug("Image tag did not match any release pattern, falling back to staging",
		"tag", trimmed,
	)
	return model.EnvironmentStaging
}
