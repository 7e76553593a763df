// Tracks simulation-wide statistics: response times, server busy time, and
// the queue-length integral, accumulated during the run and reduced to a
// Result when the end sentinel fires.

package sim

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Metrics aggregates statistics about the simulation for final reporting.
// The time-weighted integrals (busy time, queue length) are advanced by the
// Observe methods, which must be called immediately BEFORE the observed
// quantity changes so that each interval is weighted by its old value.
type Metrics struct {
	GeneratedCustomers int   // customers created (arrival scheduled)
	CompletedCustomers int   // customers whose service finished
	ResponseSum        int64 // sum of response times (in ticks)

	responses []float64 // per-customer response times (in ticks), for percentiles

	busyIntegral     int64 // ticks the server spent serving
	queueIntegral    int64 // sum over time of queue length x elapsed ticks
	lastServerChange int64 // clock at the previous ObserveServer call
	lastQueueChange  int64 // clock at the previous ObserveQueueLength call
}

// NewMetrics returns a zeroed Metrics ready for accumulation.
func NewMetrics() *Metrics {
	return &Metrics{responses: make([]float64, 0)}
}

// ObserveResponse records one completed customer's response time in ticks.
func (m *Metrics) ObserveResponse(rt int64) {
	m.ResponseSum += rt
	m.CompletedCustomers++
	m.responses = append(m.responses, float64(rt))
}

// ObserveQueueLength accumulates the queue-length integral up to now,
// weighted by length, the queue length that held since the previous call.
func (m *Metrics) ObserveQueueLength(now int64, length int) {
	m.queueIntegral += int64(length) * (now - m.lastQueueChange)
	m.lastQueueChange = now
}

// ObserveServer accumulates server busy time up to now. busy is the server
// state that held since the previous call.
func (m *Metrics) ObserveServer(now int64, busy bool) {
	if busy {
		m.busyIntegral += now - m.lastServerChange
	}
	m.lastServerChange = now
}

// Result is the outcome of one simulation run. Durations are reported in
// unscaled time units; FinalClock stays in ticks.
type Result struct {
	MeanResponseTime float64 // mean response time over completed customers
	Completed        int     // customers whose service finished before the end sentinel
	Generated        int     // customers created, including those never served
	Throughput       float64 // completions per unscaled time unit
	Utilization      float64 // fraction of the run the server was busy
	MeanQueueLength  float64 // time-averaged number of waiting customers
	P50ResponseTime  float64 // median response time
	P90ResponseTime  float64
	P99ResponseTime  float64
	FinalClock       int64 // clock at the end sentinel (in ticks)
}

// Finalize reduces the accumulated statistics to a Result. finalClock is the
// clock at the end sentinel; scale is the tick conversion factor divided
// back out of every duration. Zero completions or a zero-length run produce
// a defined zero-valued Result, not an error.
func (m *Metrics) Finalize(finalClock int64, scale float64) Result {
	res := Result{
		Completed:  m.CompletedCustomers,
		Generated:  m.GeneratedCustomers,
		FinalClock: finalClock,
	}
	if m.CompletedCustomers > 0 {
		res.MeanResponseTime = float64(m.ResponseSum) / (scale * float64(m.CompletedCustomers))
		sorted := append([]float64(nil), m.responses...)
		sort.Float64s(sorted)
		res.P50ResponseTime = stat.Quantile(0.50, stat.Empirical, sorted, nil) / scale
		res.P90ResponseTime = stat.Quantile(0.90, stat.Empirical, sorted, nil) / scale
		res.P99ResponseTime = stat.Quantile(0.99, stat.Empirical, sorted, nil) / scale
	}
	if finalClock > 0 {
		res.Utilization = float64(m.busyIntegral) / float64(finalClock)
		res.MeanQueueLength = float64(m.queueIntegral) / float64(finalClock)
		res.Throughput = float64(m.CompletedCustomers) * scale / float64(finalClock)
	}
	return res
}

// AnalyticBaseline holds the closed-form M/M/1 predictions for a
// configuration. MeanResponse is meaningful only when Stable is true;
// at offered load >= 1 the queue grows without bound and no finite mean
// response exists.
type AnalyticBaseline struct {
	Lambda       float64 // arrival rate, 1 / mean interarrival
	Mu           float64 // service rate, 1 / mean service
	OfferedLoad  float64 // rho = lambda / mu
	MeanResponse float64 // W = 1 / (mu - lambda), unscaled units
	Stable       bool
}

// Baseline computes the M/M/1 closed forms for cfg. W is only meaningful
// when the offered load is below one.
func Baseline(cfg Config) AnalyticBaseline {
	lambda := 1.0 / cfg.MeanInterarrival
	mu := 1.0 / cfg.MeanService
	b := AnalyticBaseline{
		Lambda:      lambda,
		Mu:          mu,
		OfferedLoad: lambda / mu,
	}
	if b.OfferedLoad < 1 {
		b.Stable = true
		b.MeanResponse = 1.0 / (mu - lambda)
	}
	return b
}

// Print displays the run configuration, the simulated results, and the
// analytic baseline at the end of the simulation.
func (r Result) Print(cfg Config) {
	fmt.Println("=== Simulation Results ===")
	fmt.Printf("Mean Interarrival    : %.4f\n", cfg.MeanInterarrival)
	fmt.Printf("Mean Service         : %.4f\n", cfg.MeanService)
	fmt.Printf("Run Length           : %d ticks\n", cfg.RunLength)
	fmt.Printf("Seed                 : %d\n", cfg.Seed)
	fmt.Printf("Discipline           : %s\n", NewDiscipline(cfg.Discipline).Name())
	fmt.Printf("Generated Customers  : %d\n", r.Generated)
	fmt.Printf("Completed Customers  : %d\n", r.Completed)
	if r.Completed > 0 {
		fmt.Printf("Mean Response Time   : %.4f\n", r.MeanResponseTime)
		fmt.Printf("P50 Response Time    : %.4f\n", r.P50ResponseTime)
		fmt.Printf("P90 Response Time    : %.4f\n", r.P90ResponseTime)
		fmt.Printf("P99 Response Time    : %.4f\n", r.P99ResponseTime)
	}
	fmt.Printf("Throughput           : %.4f customers/unit\n", r.Throughput)
	fmt.Printf("Server Utilization   : %.4f\n", r.Utilization)
	fmt.Printf("Mean Queue Length    : %.4f\n", r.MeanQueueLength)

	b := Baseline(cfg)
	fmt.Println("=== M/M/1 Baseline ===")
	fmt.Printf("Arrival Rate (lambda): %.4f\n", b.Lambda)
	fmt.Printf("Service Rate (mu)    : %.4f\n", b.Mu)
	fmt.Printf("Offered Load (rho)   : %.4f\n", b.OfferedLoad)
	if b.Stable {
		fmt.Printf("Expected Response (W): %.4f\n", b.MeanResponse)
	} else {
		fmt.Println("Expected Response (W): unstable (rho >= 1)")
	}
}
