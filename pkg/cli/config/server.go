package config

import (
	"time"

	"github.com/urfave/cli/v3"
)

// Server holds server configuration
type Server struct {
	Addr              string
	MaxPayloadSize    int64
	ProcessingTimeout time.Duration
	VerboseRequestLog bool
}

// Flags returns CLI flags for server configuration
func (c *Server) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "Server address",
			Value:       "localhost:8080",
			Destination: &c.Addr,
			Sources:     cli.EnvVars("HOOKRELAY_ADDR"),
		},
		&cli.Int64Flag{
			Name:        "max-payload-size",
			Usage:       "Maximum webhook payload size in bytes (0 disables the limit)",
			Value:       1 << 20,
			Destination: &c.MaxPayloadSize,
			Sources:     cli.EnvVars("HOOKRELAY_MAX_PAYLOAD_SIZE"),
		},
		&cli.DurationFlag{
			Name:        "processing-timeout",
			Usage:       "Timeout for processing a single webhook (0 disables)",
			Value:       0,
			Destination: &c.ProcessingTimeout,
			Sources:     cli.EnvVars("HOOKRELAY_PROCESSING_TIMEOUT"),
		},
		&cli.BoolFlag{
			Name:        "verbose-request-log",
			Usage:       "Log raw webhook payloads at debug level",
			Value:       false,
			Destination: &c.VerboseRequestLog,
			Sources:     cli.EnvVars("HOOKRELAY_VERBOSE_REQUEST_LOG"),
		},
	}
}
