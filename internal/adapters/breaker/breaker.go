package breaker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"github.com/finbridge-app/advisory-service/internal/ports"
)

type Settings struct {
	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32
	// OpenFor is how long the breaker stays open before a probe is allowed.
	OpenFor time.Duration
}

func DefaultSettings() Settings {
	return Settings{ConsecutiveFailures: 3, OpenFor: 30 * time.Second}
}

// Generator stops calling a failing collaborator for a while, so requests
// fall back to the baseline immediately instead of waiting on timeouts.
type Generator struct {
	next ports.GeneratorPort
	cb   *gobreaker.CircuitBreaker
}

func Wrap(name string, next ports.GeneratorPort, s Settings, log zerolog.Logger) *Generator {
	if s.ConsecutiveFailures == 0 {
		s.ConsecutiveFailures = 1
	}
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     s.OpenFor,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("generator breaker state changed")
		},
	})
	return &Generator{next: next, cb: cb}
}

func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := g.cb.Execute(func() (interface{}, error) {
		return g.next.Generate(ctx, prompt)
	})
	if err != nil {
		return "", err
	}
	return out.(string), nil
}

func (g *Generator) State() gobreaker.State {
	return g.cb.State()
}
