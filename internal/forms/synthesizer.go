package forms

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"lifetrack/internal/models"
)

// TimestampLayout is the wire format for entry timestamps: a local ISO
// string without seconds, exactly what the entry form's datetime input
// produces.
const TimestampLayout = "2006-01-02T15:04"

// ErrAllFieldsEmpty rejects a submission with no values at all.
var ErrAllFieldsEmpty = errors.New("at least one field required")

// NumberFieldError names the exact field whose value failed numeric
// validation so the caller can point at the offending input.
type NumberFieldError struct {
	Label string
}

func (err *NumberFieldError) Error() string {
	return fmt.Sprintf("field %q: value is not a valid number", err.Label)
}

// Control describes one input of a synthesized entry form.
type Control struct {
	Label        string `json:"label"`
	InputType    string `json:"input_type"`
	DisplayLabel string `json:"display_label"`
	Placeholder  string `json:"placeholder"`
	Unit         string `json:"unit,omitempty"`
}

// Synthesize builds one control per category field, in field order.
// Number fields get numeric inputs, everything else free text; the display
// label carries the unit in parentheses when present.
func Synthesize(category models.Category) []Control {
	controls := make([]Control, 0, len(category.Fields))
	for _, field := range category.Fields {
		inputType := models.FieldTypeText
		if field.DataType == models.FieldTypeNumber {
			inputType = models.FieldTypeNumber
		}

		displayLabel := field.Label
		if field.Unit != "" {
			displayLabel = fmt.Sprintf("%s (%s)", field.Label, field.Unit)
		}

		controls = append(controls, Control{
			Label:        field.Label,
			InputType:    inputType,
			DisplayLabel: displayLabel,
			Placeholder:  field.Label,
			Unit:         field.Unit,
		})
	}
	return controls
}

// Submission carries the raw form state: one raw string per field label,
// the note, and the timestamp input (empty means "now").
type Submission struct {
	Values     map[string]string
	Note       string
	OccurredAt string
}

// Payload is a validated submission ready to be sent as an entry.
type Payload struct {
	CategoryID uint              `json:"category_id"`
	OccurredAt time.Time         `json:"occurred_at"`
	Note       string            `json:"note"`
	Values     map[string]string `json:"values"`
}

// ParseSubmission validates and collects a form submission against the
// category schema. Numeric inputs are validated across the whole form
// before any value is collected; empty inputs are skipped; values are
// trimmed but otherwise kept as entered, without unit concatenation.
func ParseSubmission(category models.Category, submission Submission, now time.Time, location *time.Location) (Payload, error) {
	for _, field := range category.Fields {
		raw := strings.TrimSpace(submission.Values[field.Label])
		if raw == "" || field.DataType != models.FieldTypeNumber {
			continue
		}
		if _, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", "."), 64); err != nil {
			return Payload{}, &NumberFieldError{Label: field.Label}
		}
	}

	values := make(map[string]string)
	for _, field := range category.Fields {
		raw := strings.TrimSpace(submission.Values[field.Label])
		if raw == "" {
			continue
		}
		values[field.Label] = raw
	}
	if len(values) == 0 {
		return Payload{}, ErrAllFieldsEmpty
	}

	occurredAt, err := ResolveTimestamp(submission.OccurredAt, now, location)
	if err != nil {
		return Payload{}, err
	}

	return Payload{
		CategoryID: category.ID,
		OccurredAt: occurredAt,
		Note:       strings.TrimSpace(submission.Note),
		Values:     values,
	}, nil
}

// ResolveTimestamp parses the form's timestamp input, falling back to the
// current time (minute precision) when the user left it empty.
func ResolveTimestamp(raw string, now time.Time, location *time.Location) (time.Time, error) {
	if location == nil {
		location = time.UTC
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return now.In(location).Truncate(time.Minute), nil
	}
	if parsed, err := time.ParseInLocation(TimestampLayout, trimmed, location); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q", trimmed)
	}
	return parsed.In(location), nil
}

// Prefill maps an existing entry's data onto form inputs by field label,
// used when the form switches into edit mode.
func Prefill(category models.Category, entry models.Entry) map[string]string {
	values := make(map[string]string, len(category.Fields))
	for _, field := range category.Fields {
		value, present := entry.Data[field.Label]
		if !present {
			values[field.Label] = ""
			continue
		}
		values[field.Label] = stringValue(value)
	}
	return values
}

func stringValue(value any) string {
	switch typed := value.(type) {
	case string:
		return typed
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	case int:
		return strconv.Itoa(typed)
	case bool:
		return strconv.FormatBool(typed)
	default:
		return fmt.Sprintf("%v", typed)
	}
}
