package trainer

import "gonum.org/v1/gonum/stat"

// Names of the statistics every trainer is expected to record. A
// concrete trainer may record any further statistics it likes; these
// are the ones the shared summary logic knows about.
const (
	StatCumulativeReward = "Environment/Cumulative Reward"
	StatEpisodeLength    = "Environment/Episode Length"
	StatLesson           = "Environment/Lesson"
)

// Stats accumulates named numeric samples between summary flushes.
// Samples build up under each key until the key is drained, at which
// point the key's sample sequence is reset. Stats is a consume-on-read
// accumulator, not a durable log.
//
// Stats is not safe for concurrent use. A single trainer owns its
// Stats and touches it only from the driving loop.
type Stats struct {
	samples map[string][]float64
}

// NewStats returns an empty Stats accumulator
func NewStats() *Stats {
	return &Stats{samples: make(map[string][]float64)}
}

// Add records one sample under key
func (s *Stats) Add(key string, value float64) {
	s.samples[key] = append(s.samples[key], value)
}

// Len returns the number of samples currently recorded under key
func (s *Stats) Len(key string) int {
	return len(s.samples[key])
}

// MeanStdDev returns the mean and population standard deviation of the
// samples recorded under key. The second return is false when the key
// has no samples.
func (s *Stats) MeanStdDev(key string) (float64, float64, bool) {
	samples := s.samples[key]
	if len(samples) == 0 {
		return 0, 0, false
	}
	mean, std := stat.PopMeanStdDev(samples, nil)
	return mean, std, true
}

// DrainMeans returns the mean of every key holding at least one
// sample and clears those keys' sample sequences in the same
// operation. Keys with no samples are left untouched.
func (s *Stats) DrainMeans() map[string]float64 {
	means := make(map[string]float64)
	for key, samples := range s.samples {
		if len(samples) == 0 {
			continue
		}
		means[key] = stat.Mean(samples, nil)
		s.samples[key] = nil
	}
	return means
}
