package sim

import "testing"

// scriptedSampler feeds a fixed sequence of durations to the simulator,
// making event timing fully deterministic in tests. It records the mean
// passed to each Sample call so tests can assert the draw order.
type scriptedSampler struct {
	t     *testing.T
	draws []int64
	next  int
	means []float64
}

func newScriptedSampler(t *testing.T, draws ...int64) *scriptedSampler {
	return &scriptedSampler{t: t, draws: draws}
}

func (s *scriptedSampler) Sample(mean float64) int64 {
	if s.next >= len(s.draws) {
		s.t.Fatalf("scripted sampler exhausted after %d draws", len(s.draws))
	}
	s.means = append(s.means, mean)
	d := s.draws[s.next]
	s.next++
	return d
}
