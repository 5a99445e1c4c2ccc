package brain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gorgonia.org/tensor"
)

func TestInfoValidate(t *testing.T) {
	info := &Info{
		VectorObservations: mat.NewDense(2, 3, nil),
		Rewards:            []float64{0, 1},
		AgentIDs:           []int{0, 1},
		LocalDone:          []bool{false, true},
		MaxReached:         []bool{false, false},
	}
	require.NoError(t, info.Validate())
	assert.Equal(t, 2, info.NumAgents())
}

func TestInfoValidateMismatchedRewards(t *testing.T) {
	info := &Info{
		Rewards:   []float64{0},
		AgentIDs:  []int{0, 1},
		LocalDone: []bool{false, false},
	}
	err := info.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 rewards for 2 agents")
}

func TestInfoValidateMismatchedObservations(t *testing.T) {
	info := &Info{
		VectorObservations: mat.NewDense(3, 2, nil),
		Rewards:            []float64{0, 1},
		AgentIDs:           []int{0, 1},
		LocalDone:          []bool{false, false},
	}
	err := info.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 observation rows for 2 agents")
}

func TestInfoValidateVisualObservations(t *testing.T) {
	info := &Info{
		VisualObservations: []tensor.Tensor{
			tensor.New(tensor.WithShape(2, 4, 4, 3),
				tensor.Of(tensor.Float64)),
		},
		Rewards:   []float64{0, 0},
		AgentIDs:  []int{0, 1},
		LocalDone: []bool{false, false},
	}
	require.NoError(t, info.Validate())
}

func TestInfoValidateMismatchedVisualObservations(t *testing.T) {
	info := &Info{
		VisualObservations: []tensor.Tensor{
			tensor.New(tensor.WithShape(2, 4, 4, 3),
				tensor.Of(tensor.Float64)),
			tensor.New(tensor.WithShape(3, 4, 4, 3),
				tensor.Of(tensor.Float64)),
		},
		Rewards:   []float64{0, 0},
		AgentIDs:  []int{0, 1},
		LocalDone: []bool{false, false},
	}
	err := info.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "camera 1 holds 3 observations for 2 agents")
}

func TestInfoValidateNonBatchedVisualObservations(t *testing.T) {
	info := &Info{
		VisualObservations: []tensor.Tensor{
			tensor.New(tensor.WithShape(4, 4, 3), tensor.Of(tensor.Float64)),
		},
		Rewards:   []float64{0},
		AgentIDs:  []int{0},
		LocalDone: []bool{false},
	}
	err := info.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 4 (NHWC)")
}

func TestInfoObservation(t *testing.T) {
	info := &Info{
		VectorObservations: mat.NewDense(2, 2, []float64{1, 2, 3, 4}),
		Rewards:            []float64{0, 0},
		AgentIDs:           []int{0, 1},
		LocalDone:          []bool{false, false},
	}

	obs := info.Observation(1)
	assert.Equal(t, 3.0, obs.AtVec(0))
	assert.Equal(t, 4.0, obs.AtVec(1))
}

func TestResolutionChannels(t *testing.T) {
	assert.Equal(t, 3, Resolution{Width: 84, Height: 84}.Channels())
	assert.Equal(t, 1,
		Resolution{Width: 84, Height: 84, BlackAndWhite: true}.Channels())
}
