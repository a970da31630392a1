package builder

import (
	"github.com/knakk/rdf"

	"github.com/c360studio/mapfgraph/simlog"
)

func (b *Builder) mapEnvironment(doc *simlog.Document) (int, error) {
	env := doc.Environment
	if env == nil {
		return 0, nil
	}
	fail := func(err error) (int, error) {
		return 0, recordError(SectionEnvironment, -1, env.ID, err)
	}

	node, err := b.entity("id", env.ID)
	if err != nil {
		return fail(err)
	}
	b.graph.Add(node, b.vocab.Type, b.vocab.Environment)

	if env.GridSize != nil {
		if len(env.GridSize) != 2 {
			return fail(invalidField("gridSize", "must be a [width, height] pair"))
		}
		b.graph.Add(node, b.vocab.HasGridWidth, b.integer(env.GridSize[0]))
		b.graph.Add(node, b.vocab.HasGridHeight, b.integer(env.GridSize[1]))
	}

	for i, obs := range env.Obstacles {
		if err := b.mapObstacle(node, obs); err != nil {
			return 0, recordError(SectionEnvironment+".obstacles", i, obs.ID, err)
		}
	}
	return 1, nil
}

func (b *Builder) mapObstacle(env rdf.IRI, obs simlog.Obstacle) error {
	node, err := b.entity("id", obs.ID)
	if err != nil {
		return err
	}
	cell, err := requireCell("cell", obs.Cell)
	if err != nil {
		return err
	}

	b.graph.Add(node, b.vocab.Type, b.vocab.Obstacle)
	b.graph.Add(node, b.vocab.AtLocation, b.GridLocation(cell))
	b.graph.Add(env, b.vocab.HasObstacle, node)
	return nil
}

func (b *Builder) mapAgents(doc *simlog.Document) (int, error) {
	for i, agent := range doc.Agents {
		if err := b.mapAgent(agent); err != nil {
			return i, recordError(SectionAgents, i, agent.ID, err)
		}
	}
	return len(doc.Agents), nil
}

func (b *Builder) mapAgent(agent simlog.Agent) error {
	node, err := b.entity("id", agent.ID)
	if err != nil {
		return err
	}
	b.graph.Add(node, b.vocab.Type, b.vocab.Agent)
	b.graph.Add(node, b.vocab.Type, b.vocab.Platform)

	if agent.InitialState != nil {
		cell, err := requireCell("initialState.cell", agent.InitialState.Cell)
		if err != nil {
			return err
		}
		b.graph.Add(node, b.vocab.HasInitialLocation, b.GridLocation(cell))
	}
	if agent.GoalState != nil {
		cell, err := requireCell("goalState.cell", agent.GoalState.Cell)
		if err != nil {
			return err
		}
		b.graph.Add(node, b.vocab.HasGoalLocation, b.GridLocation(cell))
	}
	return nil
}
