package labplanner

import (
	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"

	"github.com/askiada/go-labplanner/internal/store"
	"github.com/askiada/go-labplanner/pkg/labplanner/model"
)

// OperationAttribute is the vertex attribute holding the operation of the
// first step producing a construct. Constructs no step produces lack it.
const OperationAttribute = "operation"

// BuildConstructGraph links every step input to the step output across all
// construction files. Vertices and edges are listed in the order steps
// declare them. A step that makes a construct depend on itself fails with a
// *MalformedStepError, except a Gel step named after the sample it runs.
func BuildConstructGraph(cfs []model.ConstructionFile) (graph.Graph[string, string], error) {
	st := store.NewMemoryStore[string, string]()
	gra := graph.NewWithStore(graph.StringHash, st, graph.Directed(), graph.PreventCycles())

	for i, cf := range cfs {
		for j, step := range cf.Steps {
			if step == nil {
				return nil, &MalformedStepError{File: i, Index: j, Reason: "step must be set"}
			}

			err := addConstruct(gra, st, step)
			if err != nil {
				return nil, errors.Wrapf(err, "unable to add step %d of construction file %d", j, i)
			}

			for _, input := range step.Inputs() {
				if inspects(step, input) {
					continue
				}

				if err := addVertex(gra, input); err != nil {
					return nil, errors.Wrapf(err, "unable to add input %s", input)
				}

				err := gra.AddEdge(input, step.Output(), graph.EdgeAttribute("label", string(step.Operation())))
				switch {
				case err == nil, errors.Is(err, graph.ErrEdgeAlreadyExists):
				case errors.Is(err, graph.ErrEdgeCreatesCycle):
					return nil, &MalformedStepError{
						File:      i,
						Index:     j,
						Operation: step.Operation(),
						Output:    step.Output(),
						Reason:    "construct " + step.Output() + " depends on itself through " + input,
					}
				default:
					return nil, errors.Wrapf(err, "unable to link %s to %s", input, step.Output())
				}
			}
		}
	}

	return gra, nil
}

// inspects reports whether step only looks at input. A gel does not make a
// new construct, so Gel{Product: "P", Sample: "P"} links nothing.
func inspects(step model.Step, input string) bool {
	return step.Operation() == model.OperationGel && input == step.Output()
}

func addVertex(gra graph.Graph[string, string], name string) error {
	err := gra.AddVertex(name)
	if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return err
	}

	return nil
}

// addConstruct adds the output of step, tagging it with the operation unless
// an earlier step already produced it.
func addConstruct(gra graph.Graph[string, string], st store.OrderedStore[string, string], step model.Step) error {
	if err := addVertex(gra, step.Output()); err != nil {
		return err
	}

	_, props, err := st.Vertex(step.Output())
	if err != nil {
		return err
	}

	if _, ok := props.Attributes[OperationAttribute]; ok {
		return nil
	}

	return st.UpdateVertex(step.Output(), graph.VertexAttribute(OperationAttribute, string(step.Operation())))
}
