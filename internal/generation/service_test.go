package generation

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/outreach-drafter/internal/llm"
	"github.com/jonathan/outreach-drafter/internal/types"
)

// fakeClient scripts backend responses per attempt.
type fakeClient struct {
	responses []string
	err       error
	calls     int
	temps     []float32
}

func (f *fakeClient) GenerateJSON(_ context.Context, _, _ string, _ llm.ModelTier, temperature float32) (string, error) {
	f.temps = append(f.temps, temperature)
	idx := f.calls
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if idx >= len(f.responses) {
		idx = len(f.responses) - 1
	}
	return f.responses[idx], nil
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

// compliantJSON builds a response that satisfies the empty-profile plan:
// every variant mentions the fallback hook and ends with its CTA.
func compliantJSON(t *testing.T) string {
	t.Helper()
	payload := map[string]any{
		"variants": []map[string]any{
			{"label": "short", "text": "Came across your work. Open to connect?"},
			{"label": "direct", "text": "Came across your work. Open to a quick chat?"},
			{"label": "warm", "text": "Came across your work. Worth connecting?"},
		},
	}
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return string(raw)
}

func TestGenerate_FirstAttemptPasses(t *testing.T) {
	client := &fakeClient{responses: []string{compliantJSON(t)}}
	svc := NewService(client, nil)

	resp, err := svc.Generate(context.Background(), types.GenerateRequest{})
	require.NoError(t, err)
	require.Len(t, resp.Variants, 3)
	require.Len(t, resp.Validations, 3)

	for _, validation := range resp.Validations {
		assert.True(t, validation.Passed, "variant %s: %v", validation.Variant, validation.Violations)
	}

	// No retry when the first attempt validates.
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, []float32{0.6}, client.temps)
}

func TestGenerate_RetriesOnceAtLowerTemperature(t *testing.T) {
	failing := `{"variants":[{"label":"short","text":"hello"},{"label":"direct","text":"hello"},{"label":"warm","text":"hello"}]}`
	client := &fakeClient{responses: []string{failing, failing}}
	svc := NewService(client, nil)

	resp, err := svc.Generate(context.Background(), types.GenerateRequest{})
	// A failed validation after the retry is not an error.
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, 2, client.calls)
	assert.Equal(t, []float32{0.6, 0.2}, client.temps)

	for _, validation := range resp.Validations {
		assert.False(t, validation.Passed)
	}
}

func TestGenerate_RetryRecovers(t *testing.T) {
	failing := `{"variants":[{"label":"short","text":"hello"},{"label":"direct","text":"hello"},{"label":"warm","text":"hello"}]}`
	client := &fakeClient{responses: []string{failing, compliantJSON(t)}}
	svc := NewService(client, nil)

	resp, err := svc.Generate(context.Background(), types.GenerateRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)

	for _, validation := range resp.Validations {
		assert.True(t, validation.Passed)
	}
}

func TestGenerate_TimeoutSurfaced(t *testing.T) {
	client := &fakeClient{err: context.DeadlineExceeded}
	svc := NewService(client, nil)

	_, err := svc.Generate(context.Background(), types.GenerateRequest{})
	require.Error(t, err)

	var timeoutErr *UpstreamTimeoutError
	assert.True(t, errors.As(err, &timeoutErr))
}

func TestGenerate_NonJSONSurfaced(t *testing.T) {
	client := &fakeClient{responses: []string{"I cannot help with that."}}
	svc := NewService(client, nil)

	_, err := svc.Generate(context.Background(), types.GenerateRequest{})
	require.Error(t, err)

	var upstreamErr *InvalidUpstreamResponseError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, "parse_json", upstreamErr.Stage)
}

func TestPreviewOf_MultiByteOutput(t *testing.T) {
	raw := strings.Repeat("é", 1000)
	got := previewOf(raw)
	assert.True(t, utf8.ValidString(got))
	assert.LessOrEqual(t, len(got), outputPreviewChars)

	short := "plain output"
	assert.Equal(t, short, previewOf(short))
}

func TestPickBest_PrefersFewerViolations(t *testing.T) {
	worse := attemptResult{validations: []types.ValidationResult{
		{Variant: "short", Violations: []string{"missing CTA", "missing hook_text"}},
	}}
	better := attemptResult{validations: []types.ValidationResult{
		{Variant: "short", Violations: []string{"missing CTA"}},
	}}

	best, err := pickBest([]attemptResult{worse, better})
	require.NoError(t, err)
	assert.Equal(t, 1, len(best.validations[0].Violations))

	// Equal counts keep the earlier attempt.
	best, err = pickBest([]attemptResult{better, better})
	require.NoError(t, err)
	assert.Equal(t, better.validations, best.validations)
}

func TestPickBest_AllFailed(t *testing.T) {
	upstream := &InvalidUpstreamResponseError{Stage: "backend_call", Message: "boom"}
	_, err := pickBest([]attemptResult{{err: upstream}})
	assert.Equal(t, upstream, err)

	_, err = pickBest(nil)
	var planningErr *PlanningError
	assert.True(t, errors.As(err, &planningErr))
}
