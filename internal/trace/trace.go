// Package trace writes one self-contained NDJSON record per generate request.
// The log is append-only and exists purely for post-hoc auditing of what the
// planner decided and what it enforced; nothing in the core reads it back.
package trace

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jonathan/outreach-drafter/internal/planning"
	"github.com/jonathan/outreach-drafter/internal/types"
)

// Attempt records one generation attempt inside a request.
type Attempt struct {
	Attempt     int                      `json:"attempt"`
	Temperature float32                  `json:"temperature"`
	Validations []types.ValidationResult `json:"validations"`
	Error       string                   `json:"error,omitempty"`
}

// Record is the full audit record for one request. Fields with zero values
// are still written so records stay shape-stable across requests.
type Record struct {
	RequestID     string                   `json:"request_id"`
	ModelName     string                   `json:"model_name"`
	Plan          planning.Result          `json:"plan"`
	Prompt        string                   `json:"rendered_prompt"`
	Attempts      []Attempt                `json:"attempts"`
	OutputPreview string                   `json:"model_output_preview"`
	Variants      []types.Variant          `json:"variants"`
	Validations   []types.ValidationResult `json:"validations"`
	LatencyMS     int64                    `json:"latency_ms"`
	Status        string                   `json:"status"`
	Error         string                   `json:"error,omitempty"`
}

// Writer appends records to an NDJSON file. Appends are safe for concurrent
// use; each record is one line and existing lines are never rewritten.
type Writer struct {
	logger *zap.Logger
}

// NewWriter opens (creating directories as needed) the trace file for append.
func NewWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create trace directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace file: %w", err)
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey: "event",
		TimeKey:    "ts",
		EncodeTime: zapcore.ISO8601TimeEncoder,
		LineEnding: zapcore.DefaultLineEnding,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(zapcore.AddSync(file)),
		zapcore.InfoLevel,
	)
	return &Writer{logger: zap.New(core)}, nil
}

// NewNopWriter returns a writer that discards records. Used when tracing is
// disabled and in tests.
func NewNopWriter() *Writer {
	return &Writer{logger: zap.NewNop()}
}

// Append writes one record. Logging must never break the request path, so
// Append has no error return; write failures are dropped.
func (w *Writer) Append(record Record) {
	if w == nil || w.logger == nil {
		return
	}
	w.logger.Info("generate",
		zap.String("request_id", record.RequestID),
		zap.String("model_name", record.ModelName),
		zap.Any("plan", record.Plan),
		zap.String("rendered_prompt", record.Prompt),
		zap.Any("attempts", record.Attempts),
		zap.String("model_output_preview", record.OutputPreview),
		zap.Any("variants", record.Variants),
		zap.Any("validations", record.Validations),
		zap.Int64("latency_ms", record.LatencyMS),
		zap.String("status", record.Status),
		zap.String("error", record.Error),
	)
}

// Close flushes buffered records.
func (w *Writer) Close() error {
	if w == nil || w.logger == nil {
		return nil
	}
	return w.logger.Sync()
}
