package router

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fieldlens/concierge/domain"
	"github.com/fieldlens/concierge/internal/capability"
)

// Dispatcher fans selected capability calls out concurrently while
// preserving selection order in the results.
type Dispatcher struct {
	registry *capability.Registry
}

func NewDispatcher(registry *capability.Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Capabilities lists the dispatchable capability names.
func (d *Dispatcher) Capabilities() []string {
	return d.registry.Names()
}

// Dispatch runs every selection and returns one call record per
// selection, in selection order. Individual failures are recorded on the
// call, never returned; a partial result set is still a result set.
func (d *Dispatcher) Dispatch(ctx context.Context, selections []Selection) []domain.CapabilityCall {
	calls := make([]domain.CapabilityCall, len(selections))

	var wg sync.WaitGroup
	for i, sel := range selections {
		wg.Add(1)
		go func(i int, sel Selection) {
			defer wg.Done()
			calls[i] = d.invoke(ctx, sel)
		}(i, sel)
	}
	wg.Wait()
	return calls
}

func (d *Dispatcher) invoke(ctx context.Context, sel Selection) (call domain.CapabilityCall) {
	call.Capability = sel.Capability
	call.Args = sel.Args
	started := time.Now()
	defer func() {
		call.Duration = time.Since(started)
		if r := recover(); r != nil {
			call.Err = fmt.Errorf("%w: %s panicked: %v", domain.ErrCapabilityFailure, sel.Capability, r)
			log.Error().Str("capability", sel.Capability).Any("panic", r).Msg("capability panicked")
		}
	}()

	c, ok := d.registry.Get(sel.Capability)
	if !ok {
		call.Err = fmt.Errorf("%w: unknown capability %q", domain.ErrValidation, sel.Capability)
		return call
	}

	payload, err := c.Invoke(ctx, sel.Args)
	if err != nil {
		call.Err = err
		log.Warn().Err(err).Str("capability", sel.Capability).Msg("capability call failed")
		return call
	}

	call.Payload = payload
	if raw, err := json.Marshal(payload); err == nil {
		call.RawPayload = raw
	}
	log.Debug().
		Str("capability", sel.Capability).
		Dur("duration", call.Duration).
		Msg("capability call complete")
	return call
}
