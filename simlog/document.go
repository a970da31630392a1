// Package simlog decodes MAPF simulation event logs.
//
// A log is a single JSON document whose top-level sections are all optional.
// Decoding is deliberately lenient: required fields are pointers so a missing
// field can be told apart from a zero value, and malformed cells are recorded
// rather than rejected. The graph builder validates each record and reports
// schema violations with the offending section and record.
package simlog

import "encoding/json"

// Document is a decoded simulation log.
type Document struct {
	Environment          *Environment         `json:"environment,omitempty"`
	Agents               []Agent              `json:"agents,omitempty"`
	AgentPaths           []OriginalSubPlan    `json:"agentPaths,omitempty"`
	AgentSubplans        []ResolvedSubPlan    `json:"agentSubplans,omitempty"`
	CollisionEvents      []CollisionEvent     `json:"collisionEvents,omitempty"`
	ReplanningStrategies []ReplanningStrategy `json:"replanningStrategies,omitempty"`
	ConflictAlerts       []ConflictAlert      `json:"conflictAlerts,omitempty"`
	JointPlan            *JointPlan           `json:"jointPlan,omitempty"`
}

// Environment describes the grid world.
type Environment struct {
	ID        *string    `json:"id"`
	GridSize  []int      `json:"gridSize,omitempty"`
	Obstacles []Obstacle `json:"obstacles,omitempty"`
}

// Obstacle is a blocked cell.
type Obstacle struct {
	ID   *string `json:"id"`
	Cell *Cell   `json:"cell"`
}

// Agent is an agent with optional start and goal states.
type Agent struct {
	ID           *string `json:"id"`
	InitialState *State  `json:"initialState,omitempty"`
	GoalState    *State  `json:"goalState,omitempty"`
}

// State wraps the cell of an agent state.
type State struct {
	Cell *Cell `json:"cell"`
}

// Step is one timestep of a subplan.
type Step struct {
	Time *int  `json:"time"`
	Cell *Cell `json:"cell"`
}

// OriginalSubPlan is an agent path as first planned ("agentPaths").
type OriginalSubPlan struct {
	SubplanID *string      `json:"subplanId"`
	Agent     *string      `json:"agent"`
	PlanCost  *json.Number `json:"planCost"`
	Steps     []Step       `json:"steps,omitempty"`
}

// ResolvedSubPlan is a replanned agent path ("agentSubplans").
type ResolvedSubPlan struct {
	ID                  *string      `json:"id"`
	BelongsToAgent      *string      `json:"belongsToAgent"`
	PlanCost            *json.Number `json:"planCost"`
	Steps               []Step       `json:"steps,omitempty"`
	GeneratedBy         *string      `json:"generatedBy,omitempty"`
	DerivedFromConflict *string      `json:"derivedFromConflict,omitempty"`
}

// CollisionEvent is a conflict between two or more agents.
//
// Location is held by value so that an explicit null still reaches
// Location.UnmarshalJSON; a missing key leaves it unset (see Location.Set).
type CollisionEvent struct {
	ID       *string   `json:"id"`
	Type     *string   `json:"type"`
	Time     *int      `json:"time"`
	Location Location  `json:"location"`
	Agents   *[]string `json:"agents"`
}

// ReplanningStrategy is the strategy selected after a conflict.
type ReplanningStrategy struct {
	ID          *string `json:"id"`
	TriggeredBy *string `json:"triggeredBy,omitempty"`
}

// ConflictAlert notifies an agent about a conflict.
type ConflictAlert struct {
	ID             *string `json:"id"`
	AlertsConflict *string `json:"alertsConflict"`
	TargetAgent    *string `json:"targetAgent"`
	Rationale      *string `json:"rationale,omitempty"`
}

// JointPlan is the aggregate plan of a run.
type JointPlan struct {
	ID             *string      `json:"id"`
	GlobalMakespan *json.Number `json:"globalMakespan"`
	SubPlans       *[]string    `json:"subplans"`
}

// Str returns the value of an optional string field, or "" when absent.
func Str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
