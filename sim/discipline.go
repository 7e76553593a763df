package sim

import "fmt"

// Discipline supplies the ordering key the wait queue sorts customers by.
// Smaller keys are served first. Key MUST NOT modify the customer; only
// the return value is used.
type Discipline interface {
	Name() string
	Key(c *Customer) int64
}

// SJFDiscipline orders customers by service burst, shortest first.
// Non-preemptive: the customer already holding the server is never
// displaced, regardless of what arrives while it runs.
// Warning: SJF can starve long bursts under sustained load.
type SJFDiscipline struct{}

func (SJFDiscipline) Name() string { return "sjf" }

func (SJFDiscipline) Key(c *Customer) int64 { return c.ServiceBurst }

// FCFSDiscipline orders customers by arrival time, degenerating the queue
// to first-come-first-served. Provided for comparison runs.
type FCFSDiscipline struct{}

func (FCFSDiscipline) Name() string { return "fcfs" }

func (FCFSDiscipline) Key(c *Customer) int64 { return c.ArrivalTime }

// ValidDisciplines is the set of recognized discipline names.
// Shared by Config.Validate() and NewDiscipline() to avoid duplication.
var ValidDisciplines = map[string]bool{"": true, "sjf": true, "fcfs": true}

// IsValidDiscipline returns true if name is a recognized discipline.
func IsValidDiscipline(name string) bool {
	return ValidDisciplines[name]
}

// NewDiscipline creates a Discipline by name.
// Valid names: "sjf" (default), "fcfs". Empty string selects SJFDiscipline.
// Panics on unrecognized names; validate with IsValidDiscipline first.
func NewDiscipline(name string) Discipline {
	if !IsValidDiscipline(name) {
		panic(fmt.Sprintf("unknown discipline %q", name))
	}
	switch name {
	case "", "sjf":
		return SJFDiscipline{}
	case "fcfs":
		return FCFSDiscipline{}
	default:
		panic(fmt.Sprintf("unhandled discipline %q", name))
	}
}
