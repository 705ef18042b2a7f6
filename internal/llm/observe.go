package llm

import (
	"context"
	"log/slog"
	"time"

	"github.com/abhisek/careerfit/internal/store"
)

// Recorder persists LLM request events. store.EventRepo satisfies it.
type Recorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// Call describes one finished Generate call for observers.
type Call struct {
	Provider string
	Model    string
	Purpose  string
	Usage    Usage
	Latency  time.Duration
	CostUSD  float64
	Err      error
}

// Observer receives every finished call. Metrics hook in here.
type Observer func(Call)

// Observation configures WithObservation. Every field is optional.
type Observation struct {
	Provider string
	Recorder Recorder
	Observer Observer
	Logger   *slog.Logger
}

// ObservedProvider logs and records every request it forwards, then hands
// it to the observer.
type ObservedProvider struct {
	inner Provider
	opts  Observation
}

// WithObservation wraps p.
func WithObservation(p Provider, opts Observation) Provider {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Provider == "" {
		opts.Provider = p.ModelID()
	}
	return &ObservedProvider{inner: p, opts: opts}
}

func (o *ObservedProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := o.inner.Generate(ctx, req)

	call := Call{
		Provider: o.opts.Provider,
		Model:    o.inner.ModelID(),
		Purpose:  PurposeFrom(ctx),
		Latency:  time.Since(start),
		Err:      err,
	}
	if resp != nil {
		call.Usage = resp.Usage
		if resp.Model != "" {
			call.Model = resp.Model
		}
	}
	call.CostUSD = EstimateCost(call.Model, call.Usage)

	attrs := []any{
		"provider", call.Provider,
		"model", call.Model,
		"purpose", call.Purpose,
		"input_tokens", call.Usage.InputTokens,
		"output_tokens", call.Usage.OutputTokens,
		"latency_ms", call.Latency.Milliseconds(),
	}
	if err != nil {
		o.opts.Logger.Warn("llm request failed", append(attrs, "error", err)...)
	} else {
		o.opts.Logger.Debug("llm request", attrs...)
	}

	if o.opts.Recorder != nil {
		data := store.LLMRequestEventData{
			Provider:     call.Provider,
			Model:        call.Model,
			Purpose:      call.Purpose,
			InputTokens:  call.Usage.InputTokens,
			OutputTokens: call.Usage.OutputTokens,
			LatencyMs:    call.Latency.Milliseconds(),
			Success:      err == nil,
		}
		if err != nil {
			data.ErrorMessage = err.Error()
		}
		// Recording is best effort; the caller still gets the response.
		if recErr := o.opts.Recorder.AppendLLMRequest(context.WithoutCancel(ctx), data); recErr != nil {
			o.opts.Logger.Warn("failed to record llm request", "error", recErr)
		}
	}

	if o.opts.Observer != nil {
		o.opts.Observer(call)
	}
	return resp, err
}

func (o *ObservedProvider) ModelID() string {
	return o.inner.ModelID()
}
