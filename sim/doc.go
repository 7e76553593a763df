// Package sim provides the discrete-event simulation engine for a
// single-server queue with shortest-job-first scheduling.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - customer.go: the unit of work flowing through the system
//   - event.go: the event types that drive the simulation (Arrival, Completion, EndOfSimulation)
//   - simulator.go: the dispatch loop and the server state machine
//
// # Architecture
//
// The simulation advances by removing events from the EventList in
// fire-time order, moving the clock to each event's timestamp, and invoking
// its Execute method. Arrivals sample the workload and feed the WaitQueue,
// completions retire customers into Metrics, and the end sentinel halts the
// loop and produces the Result. Events with equal fire times dispatch in
// insertion order; waiting customers with equal bursts serve in arrival
// order.
//
// Supporting sub-packages:
//   - sim/trace: per-customer trace recording, CSV export, and summaries
//   - sim/record: SQLite persistence of runs and per-customer rows
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - DurationSampler: the stochastic source for interarrival gaps and service bursts
//   - Discipline: the wait queue ordering key (shortest-job-first, first-come-first-served)
package sim
