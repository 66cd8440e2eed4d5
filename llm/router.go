package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/chethanchannaveer/agentcore/logging"
	"github.com/chethanchannaveer/agentcore/model"
	"github.com/chethanchannaveer/agentcore/model/anthropic"
	"github.com/chethanchannaveer/agentcore/model/local"
	"github.com/chethanchannaveer/agentcore/model/openai"
)

const instrumentationName = "github.com/chethanchannaveer/agentcore/llm"

// ErrProviderNotConfigured is reported (and absorbed by fallback) when a call
// targets a backend that has no credentials.
var ErrProviderNotConfigured = errors.New("provider not configured")

// Response is the outcome of a Chat call. Provider names the backend that
// actually produced Content, which differs from the requested one after a
// fallback.
type Response struct {
	Content  string         `json:"content"`
	Provider model.Provider `json:"provider"`
}

// ProviderStatus reports the preferred backend.
type ProviderStatus struct {
	Provider   model.Provider `json:"provider"`
	HasRealLLM bool           `json:"hasRealLLM"`
}

// Options configures a Router.
type Options struct {
	// OpenAIKey and AnthropicKey are the provider credentials. Blank or
	// whitespace-only values count as absent.
	OpenAIKey    string
	AnthropicKey string

	// Preferred overrides the implicit precedence when it names a configured
	// backend. Empty keeps the default rule (Anthropic, then OpenAI, then local).
	Preferred model.Provider

	// OpenAI and Anthropic replace the SDK-backed adapters built from the
	// keys. Setting one marks that backend as configured.
	OpenAI    model.Model
	Anthropic model.Model

	OpenAIOptions    []func(o *openai.Options)
	AnthropicOptions []func(o *anthropic.Options)

	// Stream asks external backends for incremental output. Replies are
	// still assembled before Chat returns.
	Stream bool

	// Local is the offline fallback; a clock-picked Simulator by default.
	Local *local.Simulator

	Logger         logging.Logger
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// ChatOptions tunes a single Chat call.
type ChatOptions struct {
	Provider model.Provider
}

// WithProvider forces the backend for one call. Unconfigured backends fall
// back to local.
func WithProvider(p model.Provider) func(o *ChatOptions) {
	return func(o *ChatOptions) { o.Provider = p }
}

// Router is the model access layer. The preferred backend is fixed at
// construction. Chat never fails: external errors degrade to the local
// simulator with a single, non-recursive fallback.
type Router struct {
	preferred model.Provider
	backends  map[model.Provider]model.Model
	local     *local.Simulator
	stream    bool
	logger    logging.Logger

	tracer    trace.Tracer
	calls     metric.Int64Counter
	fallbacks metric.Int64Counter
}

// New builds a Router from the given options.
func New(optFns ...func(o *Options)) (*Router, error) {
	opts := Options{}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Local == nil {
		opts.Local = local.New()
	}
	if opts.TracerProvider == nil {
		opts.TracerProvider = otel.GetTracerProvider()
	}
	if opts.MeterProvider == nil {
		opts.MeterProvider = otel.GetMeterProvider()
	}

	r := &Router{
		backends: make(map[model.Provider]model.Model, 2),
		local:    opts.Local,
		stream:   opts.Stream,
		logger:   opts.Logger,
		tracer:   opts.TracerProvider.Tracer(instrumentationName),
	}

	if m := opts.OpenAI; m != nil {
		r.backends[model.ProviderOpenAI] = m
	} else if key := strings.TrimSpace(opts.OpenAIKey); key != "" {
		fns := append([]func(o *openai.Options){func(o *openai.Options) { o.APIKey = key }}, opts.OpenAIOptions...)
		r.backends[model.ProviderOpenAI] = openai.NewModel(fns...)
	}
	if m := opts.Anthropic; m != nil {
		r.backends[model.ProviderAnthropic] = m
	} else if key := strings.TrimSpace(opts.AnthropicKey); key != "" {
		fns := append([]func(o *anthropic.Options){func(o *anthropic.Options) { o.APIKey = key }}, opts.AnthropicOptions...)
		r.backends[model.ProviderAnthropic] = anthropic.NewModel(fns...)
	}

	r.preferred = r.choosePreferred(opts.Preferred)

	meter := opts.MeterProvider.Meter(instrumentationName)
	var err error
	r.calls, err = meter.Int64Counter(
		"agentcore.llm.calls",
		metric.WithDescription("Total number of model access layer calls"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create call counter: %w", err)
	}
	r.fallbacks, err = meter.Int64Counter(
		"agentcore.llm.fallbacks",
		metric.WithDescription("Calls that degraded to the local simulator"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create fallback counter: %w", err)
	}

	r.logger.Info("LLM router initialized", "provider", string(r.preferred), "real_llm", r.IsRealLLMAvailable())
	return r, nil
}

func (r *Router) choosePreferred(override model.Provider) model.Provider {
	if override != "" {
		if override == model.ProviderLocal {
			return model.ProviderLocal
		}
		if _, ok := r.backends[override]; ok {
			return override
		}
		r.logger.Warn("Preferred provider has no credentials, using default selection", "provider", string(override))
	}
	// Anthropic wins when both keys are present.
	if _, ok := r.backends[model.ProviderAnthropic]; ok {
		return model.ProviderAnthropic
	}
	if _, ok := r.backends[model.ProviderOpenAI]; ok {
		return model.ProviderOpenAI
	}
	return model.ProviderLocal
}

// Chat sends messages to the requested (or preferred) backend.
func (r *Router) Chat(ctx context.Context, messages []model.Message, optFns ...func(o *ChatOptions)) Response {
	co := ChatOptions{Provider: r.preferred}
	for _, fn := range optFns {
		fn(&co)
	}
	requested := co.Provider
	if requested == "" {
		requested = r.preferred
	}

	ctx, span := r.tracer.Start(ctx, "llm.chat", trace.WithAttributes(
		attribute.String("llm.provider.requested", string(requested)),
		attribute.Int("llm.messages", len(messages)),
	))
	defer span.End()

	start := time.Now()
	resp, err := r.dispatch(ctx, requested, messages)
	fallback := err != nil
	if fallback {
		r.logger.Warn("LLM call failed, falling back to local simulator", "provider", string(requested), "error", err)
		span.RecordError(err)
		r.fallbacks.Add(ctx, 1, metric.WithAttributes(attribute.String("provider", string(requested))))
		resp = Response{Content: r.local.Reply(messages), Provider: model.ProviderLocal}
	}
	if l, ok := r.logger.(logging.LLMCallLogger); ok {
		l.LogLLMCall(string(requested), time.Since(start), !fallback, err)
	}

	span.SetAttributes(
		attribute.String("llm.provider.served", string(resp.Provider)),
		attribute.Bool("llm.fallback", fallback),
	)
	span.SetStatus(codes.Ok, "")
	r.calls.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", string(resp.Provider)),
		attribute.Bool("fallback", fallback),
	))
	return resp
}

func (r *Router) dispatch(ctx context.Context, p model.Provider, messages []model.Message) (Response, error) {
	if p == model.ProviderLocal {
		return Response{Content: r.local.Reply(messages), Provider: model.ProviderLocal}, nil
	}
	backend, ok := r.backends[p]
	if !ok {
		return Response{}, fmt.Errorf("%w: %s", ErrProviderNotConfigured, p)
	}
	text, err := model.Collect(ctx, backend, model.Request{Messages: messages, Stream: r.stream})
	if err != nil {
		return Response{}, fmt.Errorf("%s: %w", p, err)
	}
	return Response{Content: text, Provider: p}, nil
}

// Provider returns the preferred backend.
func (r *Router) Provider() model.Provider { return r.preferred }

// IsRealLLMAvailable reports whether any external backend is configured,
// regardless of which one is preferred.
func (r *Router) IsRealLLMAvailable() bool { return len(r.backends) > 0 }

// Status returns the provider introspection snapshot.
func (r *Router) Status() ProviderStatus {
	return ProviderStatus{Provider: r.preferred, HasRealLLM: r.IsRealLLMAvailable()}
}
