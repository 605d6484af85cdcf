package extract

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/appointly/scheduler-assistant/internal/common"
)

// DefaultTimezone is emitted in every appointment record unless overridden.
const DefaultTimezone = "Asia/Kolkata"

// Pipeline composes the four extraction stages per request:
// normalizer output -> prompt composer -> backend adapter -> interpreter.
// Stateless and safe for concurrent use; the only blocking call is the
// backend invocation, bounded by the request context and the client timeout.
type Pipeline struct {
	logger  *slog.Logger
	tz      string
	backend Completer
	now     func() time.Time
}

// NewPipeline wires a pipeline. The clock is injected so relative-date
// behavior is testable without wall-clock dependence.
func NewPipeline(logger *slog.Logger, tz string, backend Completer, now func() time.Time) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if tz == "" {
		tz = DefaultTimezone
	}
	if now == nil {
		now = time.Now
	}
	return &Pipeline{logger: logger, tz: tz, backend: backend, now: now}
}

// Run executes one stateless extraction. Backend failures are returned as a
// non-nil error — a pipeline-level failure distinct from the three result
// shapes; the result is meaningful only when err is nil.
func (p *Pipeline) Run(ctx context.Context, in RawInput) (ExtractionResult, error) {
	rid := common.RequestIDFromContext(ctx)
	if rid == "" {
		rid = uuid.New().String()
	}
	start := time.Now()

	payload := ComposePayload(in, p.now(), p.tz)

	p.logger.Info("extract.start",
		"req_id", rid,
		"text_len", len(in.Text),
		"has_image", in.Image != nil,
		"current_date", payload.CurrentDate,
	)

	raw, err := p.backend.Complete(ctx, payload)
	if err != nil {
		p.logger.Error("extract.backend_error",
			"req_id", rid, "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return ExtractionResult{}, fmt.Errorf("backend completion: %w", err)
	}

	res := Interpret(raw)

	p.logger.Info("extract.done",
		"req_id", rid,
		"status", res.Status,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}
