package ma

// Namespace is the base IRI for MA ontology terms and, by default, for
// instance identifiers built from simulation log ids.
const Namespace = "http://example.org/ma#"

// Shared vocabulary namespaces.
const (
	SOSANamespace = "http://www.w3.org/ns/sosa/"
	TimeNamespace = "http://www.w3.org/2006/time#"
	ProvNamespace = "http://www.w3.org/ns/prov#"
	RDFNamespace  = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace = "http://www.w3.org/2000/01/rdf-schema#"
	OWLNamespace  = "http://www.w3.org/2002/07/owl#"
	XSDNamespace  = "http://www.w3.org/2001/XMLSchema#"
)

// Class local names in the MA ontology.
const (
	// ClassEnvironment is the grid world a run takes place in.
	ClassEnvironment = "Environment"

	// ClassObstacle is a blocked grid cell.
	ClassObstacle = "Obstacle"

	// ClassGridLocation is an (x, y) cell reference.
	ClassGridLocation = "GridLocation"

	// ClassAgent is a moving agent. Agents are also sosa:Platform.
	ClassAgent = "Agent"

	// ClassOriginalSubPlan is the path an agent planned before conflicts
	// were resolved.
	ClassOriginalSubPlan = "OriginalSubPlan"

	// ClassResolvedSubPlan is a replanned path.
	ClassResolvedSubPlan = "ResolvedSubPlan"

	// ClassAgentPathSegment is one timestep of a subplan.
	ClassAgentPathSegment = "AgentPathSegment"

	// ClassCollisionEvent is a detected vertex or edge conflict.
	ClassCollisionEvent = "CollisionEvent"

	// ClassReplanningStrategy is the strategy chosen to resolve conflicts.
	ClassReplanningStrategy = "ReplanningStrategy"

	// ClassConflictAlert notifies an agent about a conflict.
	ClassConflictAlert = "ConflictAlert"

	// ClassJointPlan aggregates the subplans of all agents.
	ClassJointPlan = "JointPlan"
)

// InstancePrefix is bound to the instance namespace when it differs from
// Namespace.
const InstancePrefix = "run"

// Prefixes returns the prefix bindings used when serializing instance graphs
// whose entities live under namespace.
func Prefixes(namespace string) map[string]string {
	prefixes := map[string]string{
		"ma":   Namespace,
		"sosa": SOSANamespace,
		"time": TimeNamespace,
		"prov": ProvNamespace,
		"rdf":  RDFNamespace,
		"rdfs": RDFSNamespace,
		"owl":  OWLNamespace,
		"xsd":  XSDNamespace,
	}
	if namespace != "" && namespace != Namespace {
		prefixes[InstancePrefix] = namespace
	}
	return prefixes
}
