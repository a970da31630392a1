package simlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Log sections, in the order they are mapped.
const (
	SectionEnvironment          = "environment"
	SectionAgents               = "agents"
	SectionAgentPaths           = "agentPaths"
	SectionAgentSubplans        = "agentSubplans"
	SectionCollisionEvents      = "collisionEvents"
	SectionReplanningStrategies = "replanningStrategies"
	SectionConflictAlerts       = "conflictAlerts"
	SectionJointPlan            = "jointPlan"
)

// ErrSchemaViolation is returned when a log record lacks a required field or
// a field has the wrong shape.
var ErrSchemaViolation = errors.New("schema violation")

// RecordError reports the section and record a schema violation was found
// in. Index is -1 for single-record sections.
type RecordError struct {
	Section  string
	Index    int
	RecordID string
	Err      error
}

func (e *RecordError) Error() string {
	where := e.Section
	if e.Index >= 0 {
		where = fmt.Sprintf("%s[%d]", e.Section, e.Index)
	}
	if e.RecordID != "" {
		where += fmt.Sprintf(" (id %q)", e.RecordID)
	}
	return fmt.Sprintf("map %s: %v", where, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// listSections maps list sections to a constructor of their record type.
var listSections = map[string]func() any{
	SectionAgents:               func() any { return new(Agent) },
	SectionAgentPaths:           func() any { return new(OriginalSubPlan) },
	SectionAgentSubplans:        func() any { return new(ResolvedSubPlan) },
	SectionCollisionEvents:      func() any { return new(CollisionEvent) },
	SectionReplanningStrategies: func() any { return new(ReplanningStrategy) },
	SectionConflictAlerts:       func() any { return new(ConflictAlert) },
}

// locateTypeError turns a JSON type mismatch into a RecordError naming the
// section and record that hold the offending field. data is the whole
// document, already known to be syntactically valid.
func locateTypeError(data []byte, typeErr *json.UnmarshalTypeError) error {
	section, field, _ := strings.Cut(typeErr.Field, ".")
	if section == "" {
		return fmt.Errorf("%w: %v", ErrInputMalformed, typeErr)
	}
	if field == "" {
		field = section
	}

	e := &RecordError{
		Section: section,
		Index:   -1,
		Err:     fmt.Errorf("%w: field %q must be %s, got %s", ErrSchemaViolation, field, typeErr.Type, typeErr.Value),
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return e
	}
	raw := sections[section]

	newRecord, isList := listSections[section]
	if !isList {
		e.RecordID = recordID(raw)
		return e
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return e
	}
	for i, rec := range records {
		if err := json.Unmarshal(rec, newRecord()); err != nil {
			e.Index = i
			e.RecordID = recordID(rec)
			break
		}
	}
	return e
}

// recordID extracts a string identifier from a raw record, if it has one.
func recordID(raw json.RawMessage) string {
	var ids struct {
		ID        any `json:"id"`
		SubplanID any `json:"subplanId"`
	}
	if err := json.Unmarshal(raw, &ids); err != nil {
		return ""
	}
	if id, ok := ids.SubplanID.(string); ok {
		return id
	}
	if id, ok := ids.ID.(string); ok {
		return id
	}
	return ""
}
