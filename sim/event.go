package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event must have a Timestamp (in ticks) and an Execute method
// that advances simulation state when invoked. Execute returns an error
// only for unrecoverable invariant violations, which abort the run.
type Event interface {
	Timestamp() int64
	Execute(*Simulator) error
}

// ArrivalEvent represents a customer reaching the system.
type ArrivalEvent struct {
	time     int64     // Simulation time of arrival (in ticks)
	Customer *Customer // The incoming customer associated with this event
}

// Timestamp returns the scheduled time of the ArrivalEvent.
func (e *ArrivalEvent) Timestamp() int64 {
	return e.time
}

// Execute stamps the customer's arrival, samples its burst, enqueues it,
// and starts service if the server is idle.
func (e *ArrivalEvent) Execute(sim *Simulator) error {
	logrus.Debugf("[tick %07d] << Arrival: customer %d", e.time, e.Customer.ID)
	return sim.handleArrival(e.Customer)
}

// CompletionEvent represents the customer in service finishing its burst.
type CompletionEvent struct {
	time     int64     // Simulation time of completion (in ticks)
	Customer *Customer // The customer whose service ends at this event
}

// Timestamp returns the scheduled time of the CompletionEvent.
func (e *CompletionEvent) Timestamp() int64 {
	return e.time
}

// Execute frees the server, records the customer's response time, and
// starts the next service if anyone is waiting.
func (e *CompletionEvent) Execute(sim *Simulator) error {
	logrus.Debugf("[tick %07d] << Completion: customer %d", e.time, e.Customer.ID)
	return sim.handleCompletion(e.Customer)
}

// EndOfSimulationEvent halts the dispatch loop. Exactly one is scheduled
// per run, at the configured run length, before any arrival is generated.
// Scheduling it first means it wins the equal-time tie-break against an
// arrival at the same tick.
type EndOfSimulationEvent struct {
	time int64 // Simulation time of the end sentinel (in ticks)
}

// Timestamp returns the scheduled time of the EndOfSimulationEvent.
func (e *EndOfSimulationEvent) Timestamp() int64 {
	return e.time
}

// Execute finalizes the time-weighted statistics and stops the loop.
func (e *EndOfSimulationEvent) Execute(sim *Simulator) error {
	logrus.Debugf("[tick %07d] << EndOfSimulation", e.time)
	sim.handleEndOfSimulation()
	return nil
}
