package config

import "github.com/urfave/cli/v3"

// GitHub holds GitHub dispatch configuration
type GitHub struct {
	Token   string
	Owner   string
	Repo    string
	BaseURL string
}

// Flags returns CLI flags for GitHub configuration. The token is not marked
// required: a server without one still starts, and the dispatcher reports
// the missing credential per request.
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token used for repository dispatch",
			Destination: &c.Token,
			Sources:     cli.EnvVars("HOOKRELAY_GITHUB_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "github-owner",
			Usage:       "Owner of the dispatch target repository",
			Value:       "estatemanner",
			Destination: &c.Owner,
			Sources:     cli.EnvVars("HOOKRELAY_GITHUB_OWNER"),
		},
		&cli.StringFlag{
			Name:        "github-repo",
			Usage:       "Name of the dispatch target repository",
			Value:       "est-deployment",
			Destination: &c.Repo,
			Sources:     cli.EnvVars("HOOKRELAY_GITHUB_REPO"),
		},
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub API base URL",
			Value:       "https://api.github.com",
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("HOOKRELAY_GITHUB_BASE_URL"),
		},
	}
}
