package builder

import (
	"fmt"

	"github.com/c360studio/mapfgraph/simlog"
)

// ErrSchemaViolation is returned when a log record lacks a required field or
// a field has the wrong shape. It is the same sentinel the log decoder uses.
var ErrSchemaViolation = simlog.ErrSchemaViolation

// MappingError reports the section and record being mapped when a pass
// failed. Index is -1 for single-record sections.
type MappingError = simlog.RecordError

func missingField(field string) error {
	return fmt.Errorf("%w: missing required field %q", ErrSchemaViolation, field)
}

func invalidField(field, reason string) error {
	return fmt.Errorf("%w: field %q %s", ErrSchemaViolation, field, reason)
}

func recordError(section string, index int, id *string, err error) error {
	e := &MappingError{Section: section, Index: index, Err: err}
	if id != nil {
		e.RecordID = *id
	}
	return e
}
