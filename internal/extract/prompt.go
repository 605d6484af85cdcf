package extract

import (
	"strings"
	"time"
)

const promptDateLayout = "2006-01-02"

// BuildInstructions composes the fixed instruction template: target schema,
// normalization rules, the timezone constant to emit, and the clarification
// guardrail. The current date is interpolated so the model can resolve
// relative expressions ("tomorrow", "next Monday") against a known anchor —
// the only piece of real-world context the prompt carries.
func BuildInstructions(today time.Time, tz string) string {
	date := today.Format(promptDateLayout)

	parts := []string{
		"You are an intelligent scheduling assistant. Extract, normalize, and structure appointment information from the user's request.",
		"Today's date: " + date + ". Timezone: " + tz + ".",
		"Analyze the user's text and/or image content. Perform OCR on the image if provided.",
		"Identify the appointment topic/department, date, and time.",
		"Normalize the date to YYYY-MM-DD and the time to HH:MM (24-hour) based on today's date.",
		"Your entire output MUST be a single, valid JSON object and nothing else.",
		`If the request is ambiguous or key information (topic, date, time) is missing, you MUST return exactly: {"status": "needs_clarification", "message": "Ambiguous or missing information."}`,
		`If the information is clear, return exactly this structure: {"appointment": {"department": "Standardized Department Name", "date": "YYYY-MM-DD", "time": "HH:MM", "tz": "` + tz + `"}, "status": "ok"}`,
	}
	return strings.Join(parts, "\n")
}

// ComposePayload builds the multimodal prompt payload from normalized input.
// When both text and image are present both are forwarded; reconciling them is
// left to the model. Pure construction, no I/O.
func ComposePayload(in RawInput, today time.Time, tz string) PromptPayload {
	p := PromptPayload{
		Instructions: BuildInstructions(today, tz),
		CurrentDate:  today.Format(promptDateLayout),
		Image:        in.Image,
	}
	if in.Text != "" {
		p.Text = "User's request: '" + in.Text + "'"
	}
	return p
}
