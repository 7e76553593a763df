package sim

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Finalize_NoCompletions_ZeroResult(t *testing.T) {
	m := NewMetrics()
	m.GeneratedCustomers = 2

	res := m.Finalize(0, DefaultScaleFactor)
	assert.Equal(t, Result{Generated: 2}, res)
}

func TestMetrics_Finalize_MeanResponse_DividesOutScale(t *testing.T) {
	// GIVEN responses of 100 and 200 ticks at scale 100
	m := NewMetrics()
	m.ObserveResponse(100)
	m.ObserveResponse(200)

	// WHEN finalized
	res := m.Finalize(1000, 100)

	// THEN the mean is reported in unscaled units
	assert.Equal(t, 2, res.Completed)
	assert.InDelta(t, 1.5, res.MeanResponseTime, 1e-12)
}

func TestMetrics_Finalize_Percentiles(t *testing.T) {
	// GIVEN response times 1..100 ticks at scale 1, recorded out of order
	m := NewMetrics()
	for rt := int64(100); rt >= 1; rt-- {
		m.ObserveResponse(rt)
	}

	res := m.Finalize(1000, 1)

	assert.InDelta(t, 50.0, res.P50ResponseTime, 1e-12)
	assert.InDelta(t, 90.0, res.P90ResponseTime, 1e-12)
	assert.InDelta(t, 99.0, res.P99ResponseTime, 1e-12)
}

func TestMetrics_ServerIntegral_AccumulatesBusyIntervalsOnly(t *testing.T) {
	// GIVEN a server idle over [0,10), busy over [10,25), idle to 40
	m := NewMetrics()
	m.ObserveServer(10, false) // state was idle since 0
	m.ObserveServer(25, true)  // state was busy since 10
	m.ObserveServer(40, false) // state was idle since 25

	res := m.Finalize(40, 1)
	assert.InDelta(t, 15.0/40.0, res.Utilization, 1e-12)
}

func TestMetrics_QueueIntegral_WeightsIntervalsByLength(t *testing.T) {
	// GIVEN a queue holding 0 over [0,5), 2 over [5,15), 1 over [15,20)
	m := NewMetrics()
	m.ObserveQueueLength(5, 0)
	m.ObserveQueueLength(15, 2)
	m.ObserveQueueLength(20, 1)

	res := m.Finalize(20, 1)
	assert.InDelta(t, 25.0/20.0, res.MeanQueueLength, 1e-12)
}

func TestMetrics_Finalize_Throughput_PerUnscaledUnit(t *testing.T) {
	// GIVEN 4 completions over 2000 ticks at scale 100 (20 units)
	m := NewMetrics()
	for i := 0; i < 4; i++ {
		m.ObserveResponse(int64(100 * (i + 1)))
	}

	res := m.Finalize(2000, 100)
	assert.InDelta(t, 0.2, res.Throughput, 1e-12)
}

func TestBaseline_StableLoad(t *testing.T) {
	cfg := Config{MeanInterarrival: 5.0, MeanService: 3.0}
	b := Baseline(cfg)

	assert.InDelta(t, 0.2, b.Lambda, 1e-12)
	assert.InDelta(t, 1.0/3.0, b.Mu, 1e-12)
	assert.InDelta(t, 0.6, b.OfferedLoad, 1e-12)
	require.True(t, b.Stable)
	assert.InDelta(t, 7.5, b.MeanResponse, 1e-12)
}

func TestBaseline_OverloadedQueue_NotStable(t *testing.T) {
	// Offered load 1.5: the queue grows without bound, no finite W
	cfg := Config{MeanInterarrival: 2.0, MeanService: 3.0}
	b := Baseline(cfg)

	assert.InDelta(t, 1.5, b.OfferedLoad, 1e-12)
	assert.False(t, b.Stable)
	assert.Zero(t, b.MeanResponse)
}

func TestBaseline_CriticalLoad_NotStable(t *testing.T) {
	cfg := Config{MeanInterarrival: 3.0, MeanService: 3.0}
	b := Baseline(cfg)

	assert.InDelta(t, 1.0, b.OfferedLoad, 1e-12)
	assert.False(t, b.Stable)
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	_ = w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

func TestResult_Print_ShowsResultsAndBaseline(t *testing.T) {
	cfg := Config{MeanInterarrival: 5.0, MeanService: 3.0, RunLength: 1000, Seed: 42}
	res := Result{
		MeanResponseTime: 7.2,
		Completed:        3,
		Generated:        4,
		Throughput:       0.2,
		Utilization:      0.6,
		MeanQueueLength:  0.9,
		P50ResponseTime:  6.0,
		P90ResponseTime:  14.0,
		P99ResponseTime:  20.0,
		FinalClock:       1000,
	}

	output := captureStdout(t, func() { res.Print(cfg) })

	assert.Contains(t, output, "=== Simulation Results ===")
	assert.Contains(t, output, "Discipline           : sjf")
	assert.Contains(t, output, "Mean Response Time   : 7.2000")
	assert.Contains(t, output, "P90 Response Time    : 14.0000")
	assert.Contains(t, output, "=== M/M/1 Baseline ===")
	assert.Contains(t, output, "Offered Load (rho)   : 0.6000")
	assert.Contains(t, output, "Expected Response (W): 7.5000")
}

func TestResult_Print_UnstableBaseline(t *testing.T) {
	cfg := Config{MeanInterarrival: 2.0, MeanService: 3.0, RunLength: 1000}
	res := Result{Generated: 10, FinalClock: 1000}

	output := captureStdout(t, func() { res.Print(cfg) })

	assert.Contains(t, output, "Expected Response (W): unstable (rho >= 1)")
	// no per-percentile lines without completions
	assert.NotContains(t, output, "P50 Response Time")
}
