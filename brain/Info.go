package brain

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

// Info holds one simulation step's worth of data for every agent
// controlled by a single brain. Rows of VectorObservations, entries of
// Rewards, AgentIDs, and LocalDone all line up agent-by-agent.
type Info struct {
	// VectorObservations holds one row per agent
	VectorObservations *mat.Dense

	// VisualObservations holds one batched tensor per camera, laid
	// out NHWC
	VisualObservations []tensor.Tensor

	Rewards  []float64
	AgentIDs []int

	// LocalDone marks agents whose episode ended on this step
	LocalDone []bool

	// MaxReached marks agents that were interrupted by a step limit
	// rather than reaching a terminal state
	MaxReached []bool
}

// NumAgents returns the number of agents captured in the Info
func (i *Info) NumAgents() int {
	return len(i.AgentIDs)
}

// Observation returns the vector observation of the agent at batch
// index n
func (i *Info) Observation(n int) mat.Vector {
	return i.VectorObservations.RowView(n)
}

// Validate returns an error if the per-agent fields of the Info do not
// line up
func (i *Info) Validate() error {
	n := len(i.AgentIDs)
	if len(i.Rewards) != n {
		return fmt.Errorf("validate: %v rewards for %v agents",
			len(i.Rewards), n)
	}
	if len(i.LocalDone) != n {
		return fmt.Errorf("validate: %v done flags for %v agents",
			len(i.LocalDone), n)
	}
	if i.VectorObservations != nil {
		if rows, _ := i.VectorObservations.Dims(); rows != n {
			return fmt.Errorf("validate: %v observation rows for %v agents",
				rows, n)
		}
	}
	for camera, visual := range i.VisualObservations {
		if visual == nil {
			return fmt.Errorf("validate: camera %v holds no observations",
				camera)
		}
		shape := visual.Shape()
		if len(shape) != 4 {
			return fmt.Errorf("validate: camera %v observations have %v "+
				"dimensions, want 4 (NHWC)", camera, len(shape))
		}
		if shape[0] != n {
			return fmt.Errorf("validate: camera %v holds %v observations "+
				"for %v agents", camera, shape[0], n)
		}
	}
	return nil
}

// AllInfo maps brain names to the Info each brain produced on a single
// simulation step
type AllInfo map[string]*Info
