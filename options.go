package encore

import (
	"github.com/agentstation/utc"
	"github.com/rs/zerolog"

	"github.com/govcongiants/encore/pkg/resolve"
)

// Option is a function that configures a Pipeline.
type Option func(*Pipeline) error

// WithConfig replaces the default configuration.
func WithConfig(cfg *Config) Option {
	return func(p *Pipeline) error {
		if err := cfg.Validate(); err != nil {
			return err
		}
		p.config = cfg
		return nil
	}
}

// WithConfigFile loads configuration from an encore.yaml document.
func WithConfigFile(path string) Option {
	return func(p *Pipeline) error {
		cfg, err := LoadConfig(path)
		if err != nil {
			return err
		}
		p.config = cfg
		return nil
	}
}

// WithLogger sets the logger the pipeline reports progress on.
func WithLogger(logger *zerolog.Logger) Option {
	return func(p *Pipeline) error {
		p.logger = logger
		return nil
	}
}

// WithConfirmer replaces the publish-date confirmation collaborator. Tests
// use this to avoid the network; a nil confirmer together with
// DisableLookup runs the pipeline fully offline.
func WithConfirmer(c resolve.Confirmer) Option {
	return func(p *Pipeline) error {
		p.confirmer = c
		return nil
	}
}

// WithNow fixes the clock used for the dataset's generation timestamp.
func WithNow(now func() utc.Time) Option {
	return func(p *Pipeline) error {
		p.now = now
		return nil
	}
}
