package ma

import (
	"slices"

	"github.com/c360studio/semstreams/vocabulary"
)

// Environment predicates.
const (
	// EnvironmentGridWidth is the number of grid columns.
	EnvironmentGridWidth = "ma.environment.grid_width"

	// EnvironmentGridHeight is the number of grid rows.
	EnvironmentGridHeight = "ma.environment.grid_height"

	// EnvironmentObstacle links an environment to one of its obstacles.
	EnvironmentObstacle = "ma.environment.obstacle"
)

// Location predicates.
const (
	// LocationAt links an obstacle to its grid location.
	LocationAt = "ma.location.at"

	// LocationX is the column of a grid location.
	LocationX = "ma.location.x"

	// LocationY is the row of a grid location.
	LocationY = "ma.location.y"
)

// Agent predicates.
const (
	// AgentInitialLocation is where the agent starts.
	AgentInitialLocation = "ma.agent.initial_location"

	// AgentGoalLocation is where the agent must arrive.
	AgentGoalLocation = "ma.agent.goal_location"
)

// Plan predicates apply to both original and resolved subplans.
const (
	// PlanAgent links a subplan to the agent executing it.
	PlanAgent = "ma.plan.agent"

	// PlanCost is the subplan cost (decimal).
	PlanCost = "ma.plan.cost"

	// PlanSegment links a subplan to one of its path segments.
	PlanSegment = "ma.plan.segment"

	// PlanDerivesFrom links a resolved subplan to the original it replaces.
	PlanDerivesFrom = "ma.plan.derives_from"

	// PlanGeneratedBy links a resolved subplan to the replanning activity.
	PlanGeneratedBy = "ma.plan.generated_by"

	// PlanResolvesConflict links a resolved subplan to the collision it fixes.
	PlanResolvesConflict = "ma.plan.resolves_conflict"
)

// Segment predicates.
const (
	// SegmentValidTime is the unit time interval a segment occupies.
	SegmentValidTime = "ma.segment.valid_time"

	// SegmentPath is the rdf:List of grid locations visited by a segment.
	SegmentPath = "ma.segment.path"
)

// Collision event predicates.
const (
	// EventConflictType is the conflict label (vertex, edge, ...).
	EventConflictType = "ma.event.conflict_type"

	// EventTime is the instant the collision happens.
	EventTime = "ma.event.time"

	// EventLocation is a cell involved in the collision.
	EventLocation = "ma.event.location"

	// EventAgent is an agent involved in the collision.
	EventAgent = "ma.event.agent"
)

// Strategy, alert and joint plan predicates.
const (
	// StrategyTriggeredBy links a strategy to whatever triggered it.
	StrategyTriggeredBy = "ma.strategy.triggered_by"

	// AlertConflict links an alert to the collision it reports.
	AlertConflict = "ma.alert.conflict"

	// AlertTargetAgent is the agent the alert is sent to.
	AlertTargetAgent = "ma.alert.target_agent"

	// AlertRationale is the free text reason for the alert.
	AlertRationale = "ma.alert.rationale"

	// JointMakespan is the makespan of the joint plan (decimal).
	JointMakespan = "ma.joint.makespan"

	// JointSubPlan links a joint plan to a composing subplan.
	JointSubPlan = "ma.joint.subplan"
)

// ActivityUsed links a replanning activity to the plan it consumed.
// Maps to prov:used.
const ActivityUsed = "ma.activity.used"

// localNames maps dotted predicates in the ma namespace to their ontology
// local names.
var localNames = map[string]string{}

// LocalName returns the ontology local name of an ma predicate, or "" when
// the predicate is not part of the ma namespace.
func LocalName(predicate string) string {
	return localNames[predicate]
}

// Predicates returns all registered ma predicates, sorted.
func Predicates() []string {
	out := make([]string, 0, len(localNames)+1)
	for name := range localNames {
		out = append(out, name)
	}
	out = append(out, ActivityUsed)
	slices.Sort(out)
	return out
}

func register(predicate, local, description, dataType string) {
	localNames[predicate] = local
	vocabulary.Register(predicate,
		vocabulary.WithDescription(description),
		vocabulary.WithDataType(dataType),
		vocabulary.WithIRI(Namespace+local))
}

func init() {
	registerEnvironmentPredicates()
	registerAgentPredicates()
	registerPlanPredicates()
	registerEventPredicates()

	vocabulary.Register(ActivityUsed,
		vocabulary.WithDescription("Plan used as input by a replanning activity"),
		vocabulary.WithDataType("entity_id"),
		vocabulary.WithIRI(vocabulary.ProvUsed))
}

func registerEnvironmentPredicates() {
	register(EnvironmentGridWidth, "hasGridWidth", "Grid width in cells", "int")
	register(EnvironmentGridHeight, "hasGridHeight", "Grid height in cells", "int")
	register(EnvironmentObstacle, "hasObstacle", "Obstacle placed in the environment", "entity_id")
	register(LocationAt, "atLocation", "Grid location of an obstacle", "entity_id")
	register(LocationX, "xCoordinate", "Grid column", "int")
	register(LocationY, "yCoordinate", "Grid row", "int")
}

func registerAgentPredicates() {
	register(AgentInitialLocation, "hasInitialLocation", "Start cell of an agent", "entity_id")
	register(AgentGoalLocation, "hasGoalLocation", "Goal cell of an agent", "entity_id")
}

func registerPlanPredicates() {
	register(PlanAgent, "belongsToAgent", "Agent executing the subplan", "entity_id")
	register(PlanCost, "hasPlanCost", "Subplan cost", "float")
	register(PlanSegment, "planData", "Path segment of the subplan", "entity_id")
	register(PlanDerivesFrom, "derivesFrom", "Original subplan a resolved subplan replaces", "entity_id")
	register(PlanGeneratedBy, "generatedBy", "Replanning activity that produced the subplan", "entity_id")
	register(PlanResolvesConflict, "resolvesConflict", "Collision event resolved by the subplan", "entity_id")
	register(SegmentValidTime, "hasValidTime", "Time interval of a path segment", "entity_id")
	register(SegmentPath, "hasPathSequence", "Cells visited during a path segment", "entity_id")
	register(JointMakespan, "hasGlobalMakespan", "Makespan of the joint plan", "float")
	register(JointSubPlan, "composedOfSubPlans", "Subplan composing the joint plan", "entity_id")
}

func registerEventPredicates() {
	register(EventConflictType, "conflictTypeEvent", "Conflict type label", "string")
	register(EventTime, "occursAtTime", "Instant of the collision", "entity_id")
	register(EventLocation, "conflictLocation", "Cell involved in the collision", "entity_id")
	register(EventAgent, "involvesAgentsEvent", "Agent involved in the collision", "entity_id")
	register(StrategyTriggeredBy, "triggeredBy", "Entity that triggered the strategy", "entity_id")
	register(AlertConflict, "alertsConflict", "Collision the alert reports", "entity_id")
	register(AlertTargetAgent, "targetAgent", "Agent receiving the alert", "entity_id")
	register(AlertRationale, "selectionRationale", "Reason given for the alert", "string")
}
