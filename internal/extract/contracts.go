package extract

import "context"

// Result statuses, mirrored verbatim in the response body.
const (
	StatusOK                 = "ok"
	StatusNeedsClarification = "needs_clarification"
	StatusError              = "error"
)

// ImageAttachment is an image already encoded for transport inside a
// text-based prompt: base64 (std encoding) plus the caller-supplied media type.
type ImageAttachment struct {
	Data      string
	MediaType string
}

// RawInput is the normalized caller input. At least one of Text/Image is set;
// NewRawInput enforces that at the pipeline boundary. Immutable per request.
type RawInput struct {
	Text  string
	Image *ImageAttachment
}

// PromptPayload is the composed multimodal instruction payload consumed once
// by the backend adapter.
type PromptPayload struct {
	Instructions string
	CurrentDate  string // YYYY-MM-DD anchor for relative expressions
	Text         string
	Image        *ImageAttachment
}

// AppointmentRecord is the normalized shape we want from the model.
type AppointmentRecord struct {
	Department string `json:"department"`
	Date       string `json:"date"` // YYYY-MM-DD
	Time       string `json:"time"` // HH:MM, 24-hour
	Timezone   string `json:"tz"`   // fixed constant, no inference
}

// ExtractionResult is the sole output of the pipeline: exactly one of the
// three shapes per request. Appointment is set only for StatusOK; Message for
// the other two; RawResponse accompanies StatusError for diagnostics.
type ExtractionResult struct {
	Appointment *AppointmentRecord `json:"appointment,omitempty"`
	Status      string             `json:"status"`
	Message     string             `json:"message,omitempty"`
	RawResponse string             `json:"raw_response,omitempty"`
}

// Completer is the backend interface the pipeline depends on: one request,
// one raw textual completion, no conversation state.
type Completer interface {
	Complete(ctx context.Context, payload PromptPayload) (string, error)
}
