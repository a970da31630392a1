// Package ma provides the multi-agent pathfinding (MAPF) ontology vocabulary.
//
// The vocabulary describes simulation runs: the grid environment, agents,
// their original and resolved subplans, collision events, replanning
// strategies, conflict alerts and joint plans. It reuses three shared
// vocabularies:
//   - SOSA: agents are also sosa:Platform individuals
//   - OWL-Time: time:Instant and time:Interval for path segment validity
//   - PROV-O: prov:Activity and prov:used for replanning provenance
//
// # Semstreams Integration
//
// Predicates use three-level dotted notation (ma.category.property) and are
// registered in init() with vocabulary.Register(), carrying the ontology IRI
// through vocabulary.WithIRI():
//
//	meta := vocabulary.GetPredicateMetadata(ma.PlanCost)
//	meta.StandardIRI // "http://example.org/ma#hasPlanCost"
//
// # Instance Vocabulary
//
// Mappers do not read the registry. They receive a Vocabulary, an immutable
// set of rdf.IRI terms bound to one instance namespace:
//
//	v, err := ma.NewVocabulary(ma.Namespace)
//	agent, err := v.Entity("a1") // <http://example.org/ma#a1>
package ma
