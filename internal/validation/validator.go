package validation

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/eventboard/reporting-service/internal/models"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator reports failures under JSON field names so callers see
// the same names they submitted.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Accepted occurs_at layouts. A bare date canonicalizes to midnight UTC.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FieldError reports a single invalid field.
type FieldError struct {
	Field string `json:"field"`
	Msg   string `json:"message"`
}

func (e FieldError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Msg) }

// Error collects every field failure for one candidate event.
type Error struct {
	Fields []FieldError `json:"fields"`
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return "invalid event: " + strings.Join(msgs, "; ")
}

// ValidateEvent checks a raw event request and returns its normalized
// form: text fields trimmed, occurs_at canonicalized to UTC, empty
// attendee entries dropped. The returned event has no ID; the store
// assigns one on create. Validation never touches the store, and
// validating an already-normalized event yields the same event.
func ValidateEvent(req *models.EventRequest) (*models.Event, error) {
	var fields []FieldError

	if err := validate.Struct(req); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, ve := range verrs {
				fields = append(fields, FieldError{
					Field: ve.Field(),
					Msg:   "required",
				})
			}
		} else {
			return nil, err
		}
	}

	title := strings.TrimSpace(req.Title)
	if req.Title != "" && title == "" {
		fields = append(fields, FieldError{Field: "title", Msg: "must not be blank"})
	}

	var occursAt time.Time
	if raw := strings.TrimSpace(req.OccursAt); raw == "" {
		// Whitespace-only slips past the required tag
		if req.OccursAt != "" {
			fields = append(fields, FieldError{Field: "occurs_at", Msg: "required"})
		}
	} else {
		parsed, err := parseTime(raw)
		if err != nil {
			fields = append(fields, FieldError{Field: "occurs_at", Msg: "unparsable timestamp"})
		} else {
			occursAt = parsed.UTC()
		}
	}

	if len(fields) > 0 {
		return nil, &Error{Fields: fields}
	}

	return &models.Event{
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Location:    strings.TrimSpace(req.Location),
		OccursAt:    occursAt,
		Attendees:   normalizeAttendees(req.Attendees),
	}, nil
}

func parseTime(raw string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, raw)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func normalizeAttendees(attendees []string) []string {
	if len(attendees) == 0 {
		return nil
	}
	out := make([]string, 0, len(attendees))
	for _, a := range attendees {
		a = strings.TrimSpace(a)
		if a != "" {
			out = append(out, a)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
