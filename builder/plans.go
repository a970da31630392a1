package builder

import (
	"encoding/json"
	"fmt"

	"github.com/knakk/rdf"

	"github.com/c360studio/mapfgraph/simlog"
)

func (b *Builder) mapOriginalSubPlans(doc *simlog.Document) (int, error) {
	for i, plan := range doc.AgentPaths {
		if err := b.mapOriginalSubPlan(plan); err != nil {
			return i, recordError(SectionAgentPaths, i, plan.SubplanID, err)
		}
	}
	return len(doc.AgentPaths), nil
}

func (b *Builder) mapOriginalSubPlan(plan simlog.OriginalSubPlan) error {
	node, agent, err := b.subPlan(b.vocab.OriginalSubPlan,
		"subplanId", plan.SubplanID, "agent", plan.Agent, plan.PlanCost)
	if err != nil {
		return err
	}
	if err := b.segments(node, *plan.SubplanID, plan.Steps); err != nil {
		return err
	}
	b.plans.Add(agent, node)
	return nil
}

func (b *Builder) mapResolvedSubPlans(doc *simlog.Document) (int, error) {
	for i, plan := range doc.AgentSubplans {
		if err := b.mapResolvedSubPlan(plan); err != nil {
			return i, recordError(SectionAgentSubplans, i, plan.ID, err)
		}
	}
	return len(doc.AgentSubplans), nil
}

func (b *Builder) mapResolvedSubPlan(plan simlog.ResolvedSubPlan) error {
	node, agent, err := b.subPlan(b.vocab.ResolvedSubPlan,
		"id", plan.ID, "belongsToAgent", plan.BelongsToAgent, plan.PlanCost)
	if err != nil {
		return err
	}

	if original, ok := b.plans.First(agent); ok {
		b.graph.Add(node, b.vocab.DerivesFrom, original)
	}

	if plan.GeneratedBy != nil {
		activity, err := b.vocab.Entity(*plan.ID + "_activity")
		if err != nil {
			return invalidField("id", err.Error())
		}
		used, err := b.entity("generatedBy", plan.GeneratedBy)
		if err != nil {
			return err
		}
		b.graph.Add(activity, b.vocab.Type, b.vocab.Activity)
		b.graph.Add(node, b.vocab.GeneratedBy, activity)
		b.graph.Add(activity, b.vocab.Used, used)
	}

	if plan.DerivedFromConflict != nil {
		conflict, err := b.entity("derivedFromConflict", plan.DerivedFromConflict)
		if err != nil {
			return err
		}
		b.graph.Add(node, b.vocab.ResolvesConflict, conflict)
	}

	return b.segments(node, *plan.ID, plan.Steps)
}

// subPlan adds the type, owning agent and cost shared by both subplan kinds.
func (b *Builder) subPlan(class rdf.IRI, idField string, id *string, agentField string, agentID *string, cost *json.Number) (rdf.IRI, rdf.IRI, error) {
	node, err := b.entity(idField, id)
	if err != nil {
		return rdf.IRI{}, rdf.IRI{}, err
	}
	agent, err := b.entity(agentField, agentID)
	if err != nil {
		return rdf.IRI{}, rdf.IRI{}, err
	}
	costLit, err := b.decimal("planCost", cost)
	if err != nil {
		return rdf.IRI{}, rdf.IRI{}, err
	}

	b.graph.Add(node, b.vocab.Type, class)
	b.graph.Add(node, b.vocab.BelongsToAgent, agent)
	b.graph.Add(node, b.vocab.HasPlanCost, costLit)
	return node, agent, nil
}

// segments adds one path segment per step. Each segment is valid for one
// time unit starting at the step time and visits the step cell.
func (b *Builder) segments(plan rdf.IRI, planID string, steps []simlog.Step) error {
	for i, step := range steps {
		if step.Time == nil {
			return missingField(fmt.Sprintf("steps[%d].time", i))
		}
		cell, err := requireCell(fmt.Sprintf("steps[%d].cell", i), step.Cell)
		if err != nil {
			return err
		}

		seg, err := b.vocab.Entity(fmt.Sprintf("%s_seg%d", planID, i))
		if err != nil {
			return invalidField("id", err.Error())
		}
		interval, err := b.TimeInterval(*step.Time, *step.Time+1)
		if err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}

		b.graph.Add(seg, b.vocab.Type, b.vocab.AgentPathSegment)
		b.graph.Add(plan, b.vocab.PlanData, seg)
		b.graph.Add(seg, b.vocab.HasValidTime, interval)

		path := b.blank()
		b.graph.Add(seg, b.vocab.HasPathSequence, path)
		b.graph.Add(path, b.vocab.First, b.GridLocation(cell))
		b.graph.Add(path, b.vocab.Rest, b.vocab.Nil)
	}
	return nil
}
