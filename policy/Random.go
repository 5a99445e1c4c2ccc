package policy

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/Edlina007/ml-agents/brain"
)

// Random is a Policy that samples actions uniformly at random. It
// holds no trainable model, so SaveModel and ExportModel are no-ops.
//
// Random is useful for smoke-testing a training loop before a real
// policy is wired in, and as a stand-in policy in tests.
type Random struct {
	params brain.Parameters
	dist   distuv.Uniform
	rng    *rand.Rand
}

// NewRandom returns a Random policy for the brain described by params.
// Continuous actions are sampled uniformly from [-1, 1]; discrete
// actions are sampled uniformly from the action set.
func NewRandom(params brain.Parameters, seed uint64) (*Random, error) {
	if params.VectorActionSize <= 0 {
		return nil, fmt.Errorf("newrandom: brain %v has no actions",
			params.BrainName)
	}

	src := rand.NewSource(seed)
	return &Random{
		params: params,
		dist:   distuv.Uniform{Min: -1.0, Max: 1.0, Src: src},
		rng:    rand.New(src),
	}, nil
}

// GetAction samples one action per agent in the Info
func (r *Random) GetAction(info *brain.Info) (brain.ActionInfo, error) {
	n := info.NumAgents()
	size := r.params.VectorActionSize

	// A discrete action is a single index into the action set, a
	// continuous action is one value per action dimension
	cols := size
	if r.params.VectorActionSpaceType == brain.Discrete {
		cols = 1
	}

	actions := mat.NewDense(n, cols, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < cols; j++ {
			if r.params.VectorActionSpaceType == brain.Discrete {
				actions.Set(i, j, float64(r.rng.Intn(size)))
			} else {
				actions.Set(i, j, r.dist.Rand())
			}
		}
	}

	return brain.ActionInfo{
		Actions: actions,
		Values:  make([]float64, n),
	}, nil
}

// SaveModel implements Policy. Random has no model to checkpoint.
func (r *Random) SaveModel(step int) error { return nil }

// ExportModel implements Policy. Random has no model to export.
func (r *Random) ExportModel() error { return nil }
