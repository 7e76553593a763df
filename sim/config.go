package sim

import "fmt"

// DefaultScaleFactor is the number of clock ticks per unscaled time unit.
// Means are multiplied by this factor before sampling so that durations
// land in a numerically comfortable integer range; reported statistics
// divide the same factor back out.
const DefaultScaleFactor = 100.0

// Config groups every parameter of a simulation run.
// RunLength is in ticks (scaled units): a run length of 1000 at the default
// scale factor covers 10 unscaled time units.
type Config struct {
	MeanInterarrival float64 `yaml:"mean_interarrival"` // mean interarrival time, unscaled units (must be > 0)
	MeanService      float64 `yaml:"mean_service"`      // mean service time, unscaled units (must be > 0)
	RunLength        int64   `yaml:"run_length"`        // simulation horizon in ticks (0 is legal: the run ends at tick 0)
	Seed             int64   `yaml:"seed"`              // seed for the shared uniform stream
	ScaleFactor      float64 `yaml:"scale_factor"`      // ticks per unscaled time unit (0 = DefaultScaleFactor)
	Discipline       string  `yaml:"discipline"`        // wait queue discipline ("" = sjf)
}

// Validate checks the configuration before a run starts, so that malformed
// parameters are rejected up front rather than discovered mid-loop.
// A zero run length is accepted: the end sentinel then fires at tick 0,
// ahead of any same-tick arrival.
func (c *Config) Validate() error {
	if c.MeanInterarrival <= 0 {
		return fmt.Errorf("mean interarrival time must be positive, got %v", c.MeanInterarrival)
	}
	if c.MeanService <= 0 {
		return fmt.Errorf("mean service time must be positive, got %v", c.MeanService)
	}
	if c.RunLength < 0 {
		return fmt.Errorf("run length must be non-negative, got %d", c.RunLength)
	}
	if c.ScaleFactor < 0 {
		return fmt.Errorf("scale factor must be positive when set, got %v", c.ScaleFactor)
	}
	if !IsValidDiscipline(c.Discipline) {
		return fmt.Errorf("unknown discipline %q", c.Discipline)
	}
	return nil
}

// scale returns the effective tick conversion factor.
func (c *Config) scale() float64 {
	if c.ScaleFactor == 0 {
		return DefaultScaleFactor
	}
	return c.ScaleFactor
}
