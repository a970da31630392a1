package builder

import (
	"fmt"

	"github.com/c360studio/mapfgraph/simlog"
)

func (b *Builder) mapCollisionEvents(doc *simlog.Document) (int, error) {
	for i, ev := range doc.CollisionEvents {
		if err := b.mapCollisionEvent(ev); err != nil {
			return i, recordError(SectionCollisionEvents, i, ev.ID, err)
		}
	}
	return len(doc.CollisionEvents), nil
}

func (b *Builder) mapCollisionEvent(ev simlog.CollisionEvent) error {
	node, err := b.entity("id", ev.ID)
	if err != nil {
		return err
	}
	switch {
	case ev.Type == nil:
		return missingField("type")
	case ev.Time == nil:
		return missingField("time")
	case !ev.Location.Set():
		return missingField("location")
	case ev.Agents == nil:
		return missingField("agents")
	}

	b.graph.Add(node, b.vocab.Type, b.vocab.CollisionEvent)
	b.graph.Add(node, b.vocab.ConflictTypeEvent, b.plain(*ev.Type))

	instant, err := b.TimeInstant(*ev.Time)
	if err != nil {
		return err
	}
	b.graph.Add(node, b.vocab.OccursAtTime, instant)

	for _, cell := range ev.Location.Cells {
		b.graph.Add(node, b.vocab.ConflictLocation, b.GridLocation(cell))
	}
	if ev.Location.Dropped > 0 {
		b.logger.Debug("Skipped malformed conflict locations",
			"event", *ev.ID,
			"kind", ev.Location.Kind,
			"dropped", ev.Location.Dropped)
	}

	for i, id := range *ev.Agents {
		agent, err := b.vocab.Entity(id)
		if err != nil {
			return invalidField(fmt.Sprintf("agents[%d]", i), err.Error())
		}
		b.graph.Add(node, b.vocab.InvolvesAgentsEvent, agent)
	}
	return nil
}

func (b *Builder) mapReplanningStrategies(doc *simlog.Document) (int, error) {
	for i, strategy := range doc.ReplanningStrategies {
		if err := b.mapReplanningStrategy(strategy); err != nil {
			return i, recordError(SectionReplanningStrategies, i, strategy.ID, err)
		}
	}
	return len(doc.ReplanningStrategies), nil
}

func (b *Builder) mapReplanningStrategy(strategy simlog.ReplanningStrategy) error {
	node, err := b.entity("id", strategy.ID)
	if err != nil {
		return err
	}
	b.graph.Add(node, b.vocab.Type, b.vocab.ReplanningStrategy)

	if strategy.TriggeredBy != nil {
		trigger, err := b.entity("triggeredBy", strategy.TriggeredBy)
		if err != nil {
			return err
		}
		b.graph.Add(node, b.vocab.TriggeredBy, trigger)
	}
	return nil
}

func (b *Builder) mapConflictAlerts(doc *simlog.Document) (int, error) {
	for i, alert := range doc.ConflictAlerts {
		if err := b.mapConflictAlert(alert); err != nil {
			return i, recordError(SectionConflictAlerts, i, alert.ID, err)
		}
	}
	return len(doc.ConflictAlerts), nil
}

func (b *Builder) mapConflictAlert(alert simlog.ConflictAlert) error {
	node, err := b.entity("id", alert.ID)
	if err != nil {
		return err
	}
	conflict, err := b.entity("alertsConflict", alert.AlertsConflict)
	if err != nil {
		return err
	}
	target, err := b.entity("targetAgent", alert.TargetAgent)
	if err != nil {
		return err
	}

	b.graph.Add(node, b.vocab.Type, b.vocab.ConflictAlert)
	b.graph.Add(node, b.vocab.AlertsConflict, conflict)
	b.graph.Add(node, b.vocab.TargetAgent, target)
	if alert.Rationale != nil {
		b.graph.Add(node, b.vocab.SelectionRationale, b.plain(*alert.Rationale))
	}
	return nil
}

func (b *Builder) mapJointPlan(doc *simlog.Document) (int, error) {
	jp := doc.JointPlan
	if jp == nil {
		return 0, nil
	}
	fail := func(err error) (int, error) {
		return 0, recordError(SectionJointPlan, -1, jp.ID, err)
	}

	node, err := b.entity("id", jp.ID)
	if err != nil {
		return fail(err)
	}
	makespan, err := b.decimal("globalMakespan", jp.GlobalMakespan)
	if err != nil {
		return fail(err)
	}
	if jp.SubPlans == nil {
		return fail(missingField("subplans"))
	}

	b.graph.Add(node, b.vocab.Type, b.vocab.JointPlan)
	b.graph.Add(node, b.vocab.HasGlobalMakespan, makespan)
	for i, id := range *jp.SubPlans {
		sp, err := b.vocab.Entity(id)
		if err != nil {
			return fail(invalidField(fmt.Sprintf("subplans[%d]", i), err.Error()))
		}
		b.graph.Add(node, b.vocab.ComposedOfSubPlans, sp)
	}
	return 1, nil
}
