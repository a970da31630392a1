package ma

import (
	"fmt"
	"strings"

	"github.com/c360studio/semstreams/vocabulary"
	"github.com/knakk/rdf"
)

// Vocabulary is the set of RDF terms the graph builder emits, bound to one
// instance namespace. It is immutable once built and safe to share.
type Vocabulary struct {
	namespace string

	// rdf / xsd
	Type, First, Rest, Nil rdf.IRI
	XSDInteger, XSDDecimal rdf.IRI
	XSDDateTimeStamp       rdf.IRI

	// Classes
	Environment, Obstacle, GridLocation   rdf.IRI
	Agent, OriginalSubPlan                rdf.IRI
	ResolvedSubPlan, AgentPathSegment     rdf.IRI
	CollisionEvent, ReplanningStrategy    rdf.IRI
	ConflictAlert, JointPlan              rdf.IRI
	Platform, Instant, Interval, Activity rdf.IRI

	// Environment and locations
	HasGridWidth, HasGridHeight, HasObstacle rdf.IRI
	AtLocation, XCoordinate, YCoordinate     rdf.IRI

	// Agents
	HasInitialLocation, HasGoalLocation rdf.IRI

	// Plans and segments
	BelongsToAgent, HasPlanCost, PlanData      rdf.IRI
	DerivesFrom, GeneratedBy, ResolvesConflict rdf.IRI
	HasValidTime, HasPathSequence              rdf.IRI
	HasBeginning, HasEnd, InXSDDateTimeStamp   rdf.IRI
	Used                                       rdf.IRI

	// Events, strategies, alerts, joint plans
	ConflictTypeEvent, OccursAtTime       rdf.IRI
	ConflictLocation, InvolvesAgentsEvent rdf.IRI
	TriggeredBy                           rdf.IRI
	AlertsConflict, TargetAgent           rdf.IRI
	SelectionRationale                    rdf.IRI
	HasGlobalMakespan, ComposedOfSubPlans rdf.IRI
}

// NewVocabulary binds the vocabulary to an instance namespace. Classes and
// predicates always live under Namespace; only identifiers passed to Entity
// are minted under namespace. The namespace must end in '#' or '/'.
func NewVocabulary(namespace string) (*Vocabulary, error) {
	if !strings.HasSuffix(namespace, "#") && !strings.HasSuffix(namespace, "/") {
		return nil, fmt.Errorf("namespace %q must end with '#' or '/'", namespace)
	}

	b := &termBuilder{}
	ns := func(local string) rdf.IRI { return b.iri(Namespace + local) }
	pred := func(predicate string) rdf.IRI { return ns(LocalName(predicate)) }

	v := &Vocabulary{
		namespace: namespace,

		Type:             b.iri(RDFNamespace + "type"),
		First:            b.iri(RDFNamespace + "first"),
		Rest:             b.iri(RDFNamespace + "rest"),
		Nil:              b.iri(RDFNamespace + "nil"),
		XSDInteger:       b.iri(XSDNamespace + "integer"),
		XSDDecimal:       b.iri(XSDNamespace + "decimal"),
		XSDDateTimeStamp: b.iri(XSDNamespace + "dateTimeStamp"),

		Environment:        ns(ClassEnvironment),
		Obstacle:           ns(ClassObstacle),
		GridLocation:       ns(ClassGridLocation),
		Agent:              ns(ClassAgent),
		OriginalSubPlan:    ns(ClassOriginalSubPlan),
		ResolvedSubPlan:    ns(ClassResolvedSubPlan),
		AgentPathSegment:   ns(ClassAgentPathSegment),
		CollisionEvent:     ns(ClassCollisionEvent),
		ReplanningStrategy: ns(ClassReplanningStrategy),
		ConflictAlert:      ns(ClassConflictAlert),
		JointPlan:          ns(ClassJointPlan),
		Platform:           b.iri(SOSANamespace + "Platform"),
		Instant:            b.iri(TimeNamespace + "Instant"),
		Interval:           b.iri(TimeNamespace + "Interval"),
		Activity:           b.iri(vocabulary.ProvActivity),

		HasGridWidth:       pred(EnvironmentGridWidth),
		HasGridHeight:      pred(EnvironmentGridHeight),
		HasObstacle:        pred(EnvironmentObstacle),
		AtLocation:         pred(LocationAt),
		XCoordinate:        pred(LocationX),
		YCoordinate:        pred(LocationY),
		HasInitialLocation: pred(AgentInitialLocation),
		HasGoalLocation:    pred(AgentGoalLocation),

		BelongsToAgent:     pred(PlanAgent),
		HasPlanCost:        pred(PlanCost),
		PlanData:           pred(PlanSegment),
		DerivesFrom:        pred(PlanDerivesFrom),
		GeneratedBy:        pred(PlanGeneratedBy),
		ResolvesConflict:   pred(PlanResolvesConflict),
		HasValidTime:       pred(SegmentValidTime),
		HasPathSequence:    pred(SegmentPath),
		HasBeginning:       b.iri(TimeNamespace + "hasBeginning"),
		HasEnd:             b.iri(TimeNamespace + "hasEnd"),
		InXSDDateTimeStamp: b.iri(TimeNamespace + "inXSDDateTimeStamp"),
		Used:               b.iri(vocabulary.ProvUsed),

		ConflictTypeEvent:   pred(EventConflictType),
		OccursAtTime:        pred(EventTime),
		ConflictLocation:    pred(EventLocation),
		InvolvesAgentsEvent: pred(EventAgent),
		TriggeredBy:         pred(StrategyTriggeredBy),
		AlertsConflict:      pred(AlertConflict),
		TargetAgent:         pred(AlertTargetAgent),
		SelectionRationale:  pred(AlertRationale),
		HasGlobalMakespan:   pred(JointMakespan),
		ComposedOfSubPlans:  pred(JointSubPlan),
	}
	if b.err != nil {
		return nil, b.err
	}
	return v, nil
}

// Namespace returns the instance namespace the vocabulary is bound to.
func (v *Vocabulary) Namespace() string {
	return v.namespace
}

// Entity returns the IRI for a simulation log identifier. Distinct ids always
// yield distinct IRIs since the namespace is a fixed prefix.
func (v *Vocabulary) Entity(id string) (rdf.IRI, error) {
	if id == "" {
		return rdf.IRI{}, fmt.Errorf("empty identifier")
	}
	iri, err := rdf.NewIRI(v.namespace + id)
	if err != nil {
		return rdf.IRI{}, fmt.Errorf("identifier %q: %w", id, err)
	}
	return iri, nil
}

// termBuilder keeps the first IRI construction error so NewVocabulary can
// build its terms in a single literal.
type termBuilder struct {
	err error
}

func (b *termBuilder) iri(s string) rdf.IRI {
	iri, err := rdf.NewIRI(s)
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("build term %q: %w", s, err)
	}
	return iri
}
