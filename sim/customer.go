// Defines the Customer struct that models an individual job in the simulation.
// Tracks arrival time, the sampled service burst, and service timestamps.

package sim

import (
	"fmt"
)

// Customer models a single job's lifecycle in the simulation.
// A customer is created when its arrival is scheduled, receives its arrival
// timestamp and service burst when the arrival fires, waits in the queue,
// holds the server for exactly one burst, and is retired at completion.
//
// A customer is referenced by exactly one owner at a time: the pending
// arrival event, the wait queue, or the scheduled completion event while in
// service.
type Customer struct {
	ID int64 // Unique identifier, assigned in generation order

	ArrivalTime  int64 // Timestamp in ticks when the customer arrived
	ServiceBurst int64 // Sampled service demand in ticks, fixed for the customer's lifetime

	ServiceStart int64 // Timestamp in ticks when service began (0 until then)
	QueueSeen    int   // Wait queue length observed at arrival, for trace output
}

// String returns a human-readable representation of a Customer.
func (c Customer) String() string {
	return fmt.Sprintf("Customer{ID: %d, ArrivalTime: %d, ServiceBurst: %d}",
		c.ID, c.ArrivalTime, c.ServiceBurst)
}
