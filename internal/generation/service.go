package generation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/outreach-drafter/internal/llm"
	"github.com/jonathan/outreach-drafter/internal/normalize"
	"github.com/jonathan/outreach-drafter/internal/planning"
	"github.com/jonathan/outreach-drafter/internal/prompting"
	"github.com/jonathan/outreach-drafter/internal/schemas"
	"github.com/jonathan/outreach-drafter/internal/trace"
	"github.com/jonathan/outreach-drafter/internal/types"
	"github.com/jonathan/outreach-drafter/internal/validation"
)

// AttemptSettings configures one generation attempt.
type AttemptSettings struct {
	Temperature float32
}

// DefaultAttempts is the fixed retry schedule: one creative attempt, then one
// regeneration at lowered creativity if validation fails. There is no
// unbounded retry loop.
var DefaultAttempts = []AttemptSettings{
	{Temperature: 0.6},
	{Temperature: 0.2},
}

// DefaultTimeout bounds one backend call.
const DefaultTimeout = 30 * time.Second

// outputPreviewChars bounds how much raw model output the trace keeps.
const outputPreviewChars = 1200

// Service runs the full generate flow for one request at a time. It holds no
// per-request state; concurrent calls are independent.
type Service struct {
	client   llm.Client
	tier     llm.ModelTier
	attempts []AttemptSettings
	timeout  time.Duration
	tracer   *trace.Writer
}

// Option configures a Service.
type Option func(*Service)

// WithAttempts overrides the retry schedule (tests use a single attempt).
func WithAttempts(attempts []AttemptSettings) Option {
	return func(s *Service) { s.attempts = attempts }
}

// WithTimeout overrides the per-call backend timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Service) { s.timeout = timeout }
}

// WithTier overrides the model tier.
func WithTier(tier llm.ModelTier) Option {
	return func(s *Service) { s.tier = tier }
}

// NewService creates a generation service. A nil tracer disables tracing.
func NewService(client llm.Client, tracer *trace.Writer, opts ...Option) *Service {
	if tracer == nil {
		tracer = trace.NewNopWriter()
	}
	s := &Service{
		client:   client,
		tier:     llm.TierStandard,
		attempts: DefaultAttempts,
		timeout:  DefaultTimeout,
		tracer:   tracer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// attemptResult captures everything one attempt produced.
type attemptResult struct {
	settings    AttemptSettings
	variants    []types.Variant
	validations []types.ValidationResult
	rawOutput   string
	err         error
}

// Generate plans, prompts, calls the backend and validates, retrying once at
// lowered temperature when any variant fails validation. The best attempt is
// returned along with its validation results; a failed validation after the
// retry is not an error.
func (s *Service) Generate(ctx context.Context, req types.GenerateRequest) (*types.GenerateResponse, error) {
	start := time.Now()
	requestID := uuid.New().String()

	plan := planning.Plan(req)
	prompt := prompting.Render(plan)

	record := trace.Record{
		RequestID: requestID,
		ModelName: s.client.GetModel(s.tier),
		Plan:      plan,
		Prompt:    prompt.Combined(),
	}

	machine := newStateMachine()
	var attemptsRun []attemptResult

	for idx, settings := range s.attempts {
		if err := machine.transition(StateGenerated); err != nil {
			break
		}
		result := s.runAttempt(ctx, prompt, plan.BridgePlan, plan.Banlist, settings)
		attemptsRun = append(attemptsRun, result)

		attemptTrace := trace.Attempt{
			Attempt:     idx + 1,
			Temperature: settings.Temperature,
			Validations: result.validations,
		}
		if result.err != nil {
			attemptTrace.Error = result.err.Error()
		}
		record.Attempts = append(record.Attempts, attemptTrace)

		if result.err == nil && validation.AllPassed(result.validations) {
			_ = machine.transition(StateValid)
			break
		}
		_ = machine.transition(StateInvalid)
	}

	best, err := pickBest(attemptsRun)
	if err != nil {
		record.Status = "error"
		record.Error = err.Error()
		record.LatencyMS = time.Since(start).Milliseconds()
		s.tracer.Append(record)
		return nil, err
	}
	_ = machine.transition(StateFinal)

	record.OutputPreview = previewOf(best.rawOutput)
	record.Variants = best.variants
	record.Validations = best.validations
	record.LatencyMS = time.Since(start).Milliseconds()
	record.Status = "ok"
	s.tracer.Append(record)

	return &types.GenerateResponse{
		Variants:    best.variants,
		Validations: best.validations,
	}, nil
}

// runAttempt performs one backend call plus parsing, trimming and validation.
func (s *Service) runAttempt(ctx context.Context, prompt prompting.Prompt, plan types.BridgePlan, banlist []string, settings AttemptSettings) attemptResult {
	result := attemptResult{settings: settings}

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.client.GenerateJSON(callCtx, prompt.System, prompt.Context, s.tier, settings.Temperature)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			result.err = &UpstreamTimeoutError{Cause: err}
		} else {
			result.err = &InvalidUpstreamResponseError{Stage: "backend_call", Message: "generation request failed", Cause: err}
		}
		return result
	}
	result.rawOutput = raw

	extracted := ExtractJSON(raw)
	if extracted == "" {
		result.err = &InvalidUpstreamResponseError{Stage: "parse_json", Message: "model did not return JSON"}
		return result
	}
	schemaErr := schemas.ValidateVariantsJSON(extracted)
	if schemaErr != nil {
		var ve *schemas.ValidationError
		if !errors.As(schemaErr, &ve) {
			result.err = &InvalidUpstreamResponseError{Stage: "schema_check", Message: "schema validation failed", Cause: schemaErr}
			return result
		}
	}

	variants, err := ParseVariants(extracted)
	if err != nil {
		result.err = &InvalidUpstreamResponseError{Stage: "decode_variants", Message: "malformed variants payload", Cause: err}
		return result
	}
	if len(variants) == 0 {
		// A schema miss with nothing salvageable is a contract violation.
		if schemaErr != nil {
			result.err = &InvalidUpstreamResponseError{Stage: "schema_check", Message: "output does not match variants contract", Cause: schemaErr}
		} else {
			result.err = &InvalidUpstreamResponseError{Stage: "decode_variants", Message: "no variants returned"}
		}
		return result
	}

	result.variants = finalizeVariants(variants, plan)
	result.validations = validation.CheckVariants(result.variants, plan, banlist)
	return result
}

// pickBest returns the attempt to surface: the later attempt is preferred
// only when it passes or improves on the earlier attempt's violation count.
func pickBest(attempts []attemptResult) (attemptResult, error) {
	var best *attemptResult
	for i := range attempts {
		attempt := &attempts[i]
		if attempt.err != nil {
			continue
		}
		if best == nil {
			best = attempt
			continue
		}
		if validation.AllPassed(attempt.validations) ||
			validation.ViolationCount(attempt.validations) < validation.ViolationCount(best.validations) {
			best = attempt
		}
	}
	if best != nil {
		return *best, nil
	}
	if len(attempts) == 0 {
		return attemptResult{}, &PlanningError{Message: "no attempts were run"}
	}
	// All attempts failed upstream; surface the last error.
	return attemptResult{}, attempts[len(attempts)-1].err
}

func previewOf(raw string) string {
	return normalize.CutAtRune(raw, outputPreviewChars)
}
