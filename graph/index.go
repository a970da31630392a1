package graph

import "github.com/knakk/rdf"

// PlanIndex maps an agent to the original subplans that belong to it, in the
// order they were recorded. It stands in for a graph pattern query so the
// first plan found for an agent is the first one inserted.
type PlanIndex struct {
	byAgent map[string][]rdf.IRI
}

// NewPlanIndex creates an empty index.
func NewPlanIndex() *PlanIndex {
	return &PlanIndex{byAgent: make(map[string][]rdf.IRI)}
}

// Add records plan as belonging to agent. Recording the same pair twice is a
// no-op.
func (i *PlanIndex) Add(agent, plan rdf.IRI) {
	key := termKey(agent)
	for _, existing := range i.byAgent[key] {
		if SameTerm(existing, plan) {
			return
		}
	}
	i.byAgent[key] = append(i.byAgent[key], plan)
}

// First returns the earliest plan recorded for agent.
func (i *PlanIndex) First(agent rdf.IRI) (rdf.IRI, bool) {
	plans := i.byAgent[termKey(agent)]
	if len(plans) == 0 {
		return rdf.IRI{}, false
	}
	return plans[0], true
}

// Plans returns all plans recorded for agent, earliest first.
func (i *PlanIndex) Plans(agent rdf.IRI) []rdf.IRI {
	plans := i.byAgent[termKey(agent)]
	out := make([]rdf.IRI, len(plans))
	copy(out, plans)
	return out
}

// Len returns the number of agents with at least one plan.
func (i *PlanIndex) Len() int {
	return len(i.byAgent)
}

// Seed records every subject in g typed planType that has a belongsTo link
// to an agent IRI. It returns the number of (agent, plan) pairs seen.
func (i *PlanIndex) Seed(g *Graph, rdfType, planType, belongsTo rdf.IRI) int {
	n := 0
	for _, s := range g.Subjects(rdfType, planType) {
		plan, ok := s.(rdf.IRI)
		if !ok {
			continue
		}
		for _, o := range g.Objects(plan, belongsTo) {
			agent, ok := o.(rdf.IRI)
			if !ok {
				continue
			}
			i.Add(agent, plan)
			n++
		}
	}
	return n
}
