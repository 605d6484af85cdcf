package extract

// BuildAppointmentJSONSchema returns a JSON-Schema (draft 2020-12 subset) as a
// generic map. The model is instructed to match it; we also validate its
// output against it locally — the model is untrusted input.
func BuildAppointmentJSONSchema() map[string]any {
	appointment := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties": map[string]any{
			"department": map[string]any{"type": "string", "minLength": 1},
			"date":       map[string]any{"type": "string", "pattern": `^\d{4}-\d{2}-\d{2}$`},
			"time":       map[string]any{"type": "string", "pattern": `^([01]\d|2[0-3]):[0-5]\d$`},
			"tz":         map[string]any{"type": "string", "minLength": 1},
		},
		"required": []string{"department", "date", "time", "tz"},
	}

	return map[string]any{
		"type": "object",
		"properties": map[string]any{
			"status":      map[string]any{"const": StatusOK},
			"appointment": appointment,
		},
		"required": []string{"status", "appointment"},
	}
}
