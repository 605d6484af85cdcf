package extract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

var (
	reDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	reTime = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// ValidateAppointment enforces calendar validity beyond what the JSON-Schema
// patterns can express: the date must be a real calendar day (2025-02-30
// fails) and the time a real 24-hour clock reading. Valid values are never
// mutated.
func ValidateAppointment(rec AppointmentRecord) error {
	if strings.TrimSpace(rec.Department) == "" {
		return fmt.Errorf("appointment.department must be a non-empty string")
	}
	if !reDate.MatchString(rec.Date) {
		return fmt.Errorf("appointment.date %q must match YYYY-MM-DD", rec.Date)
	}
	if _, err := time.Parse("2006-01-02", rec.Date); err != nil {
		return fmt.Errorf("appointment.date %q is not a valid calendar date", rec.Date)
	}
	if !reTime.MatchString(rec.Time) {
		return fmt.Errorf("appointment.time %q must match 24-hour HH:MM", rec.Time)
	}
	if strings.TrimSpace(rec.Timezone) == "" {
		return fmt.Errorf("appointment.tz must be a non-empty string")
	}
	return nil
}
