// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/queueing-sim/queueing-sim/sim/trace"
)

// Simulator is the core object that holds simulation time, system state, and
// the event loop. All state lives here and is mutated only by event Execute
// methods running on the single dispatch goroutine.
type Simulator struct {
	Clock  int64
	Config Config
	// Events holds all pending simulator events: arrivals, completions, and
	// the end-of-simulation sentinel.
	Events *EventList
	// WaitQ holds customers waiting for the server, in discipline order.
	WaitQ   *WaitQueue
	Metrics *Metrics
	// Sampler draws interarrival gaps and service bursts. NewSimulator wires
	// the seeded exponential sampler; tests may replace it before Run.
	Sampler DurationSampler
	// Trace, when non-nil, receives one record per customer. Customers still
	// in the system at the end sentinel are recorded as incomplete.
	Trace *trace.Trace

	// busy is true while the server is occupied; inService is the occupying
	// customer. Exactly one customer is in service whenever busy is true.
	busy      bool
	inService *Customer

	scale  float64
	nextID int64
	done   bool
}

// NewSimulator builds a Simulator from cfg. The configuration is validated
// here so that the dispatch loop never sees malformed parameters.
func NewSimulator(cfg Config) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	scale := cfg.scale()
	return &Simulator{
		Config:  cfg,
		Events:  NewEventList(),
		WaitQ:   NewWaitQueue(NewDiscipline(cfg.Discipline)),
		Metrics: NewMetrics(),
		Sampler: NewExponentialSampler(cfg.Seed, scale),
		scale:   scale,
	}, nil
}

// Run executes the dispatch loop until the end sentinel fires, then reduces
// the accumulated statistics to a Result.
//
// The sentinel is inserted before the first arrival is generated. At run
// length zero both land at tick 0 and the sentinel wins the equal-time
// tie-break, so the run completes with zero customers served.
func (sim *Simulator) Run() (Result, error) {
	sim.Events.Insert(&EndOfSimulationEvent{time: sim.Config.RunLength})
	sim.scheduleNextArrival()

	for !sim.done {
		// get the next event to be simulated
		ev, err := sim.Events.RemoveEarliest()
		if err != nil {
			return Result{}, fmt.Errorf("dispatch loop: %w", err)
		}
		// advance the clock
		sim.Clock = ev.Timestamp()
		logrus.Debugf("[tick %07d] Executing %T", sim.Clock, ev)
		// process the event
		if err := ev.Execute(sim); err != nil {
			return Result{}, fmt.Errorf("dispatch loop at tick %d: %w", sim.Clock, err)
		}
	}

	logrus.Debugf("[tick %07d] Simulation ended", sim.Clock)
	return sim.Metrics.Finalize(sim.Clock, sim.scale), nil
}

// scheduleNextArrival creates the next customer and schedules its arrival
// one sampled interarrival gap from now. The customer's service burst is
// sampled later, when the arrival actually fires.
func (sim *Simulator) scheduleNextArrival() {
	gap := sim.Sampler.Sample(sim.Config.MeanInterarrival)
	c := &Customer{ID: sim.nextID}
	sim.nextID++
	sim.Metrics.GeneratedCustomers++
	sim.Events.Insert(&ArrivalEvent{time: sim.Clock + gap, Customer: c})
	logrus.Debugf("[tick %07d] scheduled arrival of customer %d at tick %d", sim.Clock, c.ID, sim.Clock+gap)
}

// handleArrival processes customer c reaching the system at the current
// clock. The next arrival is sampled before c's own burst: that draw order
// on the shared stream is part of the reproducible behavior.
func (sim *Simulator) handleArrival(c *Customer) error {
	sim.scheduleNextArrival()

	c.ArrivalTime = sim.Clock
	c.ServiceBurst = sim.Sampler.Sample(sim.Config.MeanService)
	c.QueueSeen = sim.WaitQ.Len()

	sim.Metrics.ObserveQueueLength(sim.Clock, sim.WaitQ.Len())
	sim.WaitQ.Enqueue(c)
	logrus.Debugf("[tick %07d] customer %d arrived with burst %d, queue %s", sim.Clock, c.ID, c.ServiceBurst, sim.WaitQ)

	if !sim.busy {
		return sim.startService()
	}
	return nil
}

// startService moves the head of the wait queue into service and schedules
// its completion one burst from now. Callers only invoke this after an
// enqueue or a non-empty check, so an underflow here is a fatal divergence
// of the busy/queue bookkeeping.
func (sim *Simulator) startService() error {
	sim.Metrics.ObserveQueueLength(sim.Clock, sim.WaitQ.Len())
	c, err := sim.WaitQ.Dequeue()
	if err != nil {
		return fmt.Errorf("start service: %w", err)
	}

	sim.Metrics.ObserveServer(sim.Clock, sim.busy)
	sim.busy = true
	sim.inService = c
	c.ServiceStart = sim.Clock

	sim.Events.Insert(&CompletionEvent{time: sim.Clock + c.ServiceBurst, Customer: c})
	logrus.Debugf("[tick %07d] customer %d entered service until tick %d", sim.Clock, c.ID, sim.Clock+c.ServiceBurst)
	return nil
}

// handleCompletion retires customer c at the current clock and hands the
// server to the next waiting customer, if any.
func (sim *Simulator) handleCompletion(c *Customer) error {
	sim.Metrics.ObserveServer(sim.Clock, sim.busy)
	sim.busy = false
	sim.inService = nil

	response := sim.Clock - c.ArrivalTime
	sim.Metrics.ObserveResponse(response)
	if sim.Trace != nil {
		sim.Trace.Record(trace.CustomerRecord{
			CustomerID:     c.ID,
			ArrivalTime:    c.ArrivalTime,
			ServiceBurst:   c.ServiceBurst,
			ServiceStart:   c.ServiceStart,
			CompletionTime: sim.Clock,
			ResponseTime:   response,
			QueueSeen:      c.QueueSeen,
			Completed:      true,
		})
	}
	logrus.Debugf("[tick %07d] customer %d completed, response %d", sim.Clock, c.ID, response)

	if sim.WaitQ.Len() > 0 {
		return sim.startService()
	}
	return nil
}

// handleEndOfSimulation flushes the time integrals up to the sentinel tick
// and stops the dispatch loop. Customers still in the system are recorded
// as incomplete trace rows; their response times are not counted.
func (sim *Simulator) handleEndOfSimulation() {
	sim.Metrics.ObserveQueueLength(sim.Clock, sim.WaitQ.Len())
	sim.Metrics.ObserveServer(sim.Clock, sim.busy)
	sim.done = true

	if sim.Trace == nil {
		return
	}
	if sim.inService != nil {
		c := sim.inService
		sim.Trace.Record(trace.CustomerRecord{
			CustomerID:   c.ID,
			ArrivalTime:  c.ArrivalTime,
			ServiceBurst: c.ServiceBurst,
			ServiceStart: c.ServiceStart,
			QueueSeen:    c.QueueSeen,
		})
	}
	for {
		c, err := sim.WaitQ.Dequeue()
		if err != nil {
			break
		}
		sim.Trace.Record(trace.CustomerRecord{
			CustomerID:   c.ID,
			ArrivalTime:  c.ArrivalTime,
			ServiceBurst: c.ServiceBurst,
			QueueSeen:    c.QueueSeen,
		})
	}
}
