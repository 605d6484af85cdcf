package extract

import (
	"encoding/json"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// ParseFailureMessage is returned when no JSON object can be coerced out of
// the model's raw text.
const ParseFailureMessage = "Failed to parse the response from the AI model."

const defaultClarificationMessage = "Ambiguous or missing information."

type modelEnvelope struct {
	Status      string             `json:"status"`
	Message     string             `json:"message"`
	Appointment *AppointmentRecord `json:"appointment"`
}

// isolateJSON strips code-fence markers and surrounding prose, leaving the
// first-to-last brace span as the JSON candidate. Stripping is idempotent: an
// already-bare object comes back unchanged.
func isolateJSON(raw string) (string, bool) {
	s := strings.TrimSpace(raw)

	// Drop markdown fences first so trailing ``` never lands inside the span.
	if i := strings.Index(s, "```"); i >= 0 {
		s = strings.ReplaceAll(s, "```json", "```")
		if open := strings.Index(s, "```"); open >= 0 {
			rest := s[open+3:]
			if close := strings.Index(rest, "```"); close >= 0 {
				s = rest[:close]
			} else {
				s = rest
			}
		}
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

// Interpret classifies the backend's raw textual completion into exactly one
// ExtractionResult. Single pass, deterministic: no retries, no re-prompting,
// no partial acceptance. The raw text is preserved on every error shape so a
// malformed model output is always debuggable.
func Interpret(raw string) ExtractionResult {
	candidate, found := isolateJSON(raw)

	var env modelEnvelope
	parsed := false
	if found {
		if err := json.Unmarshal([]byte(candidate), &env); err == nil {
			parsed = true
		} else if repaired, rerr := jsonrepair.JSONRepair(candidate); rerr == nil {
			if err := json.Unmarshal([]byte(repaired), &env); err == nil {
				candidate = repaired
				parsed = true
			}
		}
	}
	if !parsed {
		return ExtractionResult{
			Status:      StatusError,
			Message:     ParseFailureMessage,
			RawResponse: raw,
		}
	}

	switch env.Status {
	case StatusNeedsClarification:
		// Model-declared outcome, not a parser failure.
		msg := strings.TrimSpace(env.Message)
		if msg == "" {
			msg = defaultClarificationMessage
		}
		return ExtractionResult{Status: StatusNeedsClarification, Message: msg}

	case StatusOK:
		if env.Appointment == nil {
			return ExtractionResult{
				Status:      StatusError,
				Message:     "model output claims success but carries no appointment object",
				RawResponse: raw,
			}
		}
		if err := ValidateJSONAgainstSchema(BuildAppointmentJSONSchema(), []byte(candidate)); err != nil {
			return ExtractionResult{Status: StatusError, Message: err.Error(), RawResponse: raw}
		}
		if err := ValidateAppointment(*env.Appointment); err != nil {
			return ExtractionResult{Status: StatusError, Message: err.Error(), RawResponse: raw}
		}
		return ExtractionResult{Status: StatusOK, Appointment: env.Appointment}

	default:
		return ExtractionResult{
			Status:      StatusError,
			Message:     "model output did not match any expected shape",
			RawResponse: raw,
		}
	}
}
