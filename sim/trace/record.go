// Package trace provides per-customer trace recording for run analysis.
// This package has no dependencies on sim/ and stores pure data types.
package trace

// CustomerRecord captures a single customer's passage through the system.
// All times are in ticks. Customers still queued or in service when the run
// ended have Completed false and zero-valued completion fields; a customer
// that never entered service additionally has ServiceStart zero.
type CustomerRecord struct {
	CustomerID     int64
	ArrivalTime    int64
	ServiceBurst   int64
	ServiceStart   int64
	CompletionTime int64
	ResponseTime   int64
	QueueSeen      int // wait queue length observed at arrival
	Completed      bool
}
