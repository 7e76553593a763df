package cmd

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/queueing-sim/queueing-sim/sim"
	"github.com/queueing-sim/queueing-sim/sim/record"
	"github.com/queueing-sim/queueing-sim/sim/trace"
)

var (
	// CLI flags for the simulation run
	meanInterarrival float64 // Mean interarrival time (unscaled time units)
	meanService      float64 // Mean service time (unscaled time units)
	runLength        int64   // Total simulation run length (in ticks)
	seed             int64   // Seed for the shared random stream
	scaleFactor      float64 // Ticks per unscaled time unit
	discipline       string  // Wait queue discipline
	logLevel         string  // Log verbosity level

	// CLI flags for scenario presets and output sinks
	scenariosFile string // Path to a YAML scenarios file
	scenarioName  string // Name of a preset in the scenarios file
	traceCSVPath  string // Write per-customer trace rows to this CSV file
	recordDBPath  string // Record the run into this SQLite database
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "queueing-sim",
	Short: "Discrete-event simulator for a single-server SJF queue",
}

// runCmd executes the simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the queueing simulation",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		cfg := sim.Config{
			MeanInterarrival: meanInterarrival,
			MeanService:      meanService,
			RunLength:        runLength,
			Seed:             seed,
			ScaleFactor:      scaleFactor,
			Discipline:       discipline,
		}

		// A named scenario supplies the base configuration; flags given
		// explicitly on the command line still win.
		if scenarioName != "" {
			cfg, err = ApplyScenario(scenariosFile, scenarioName, cfg, cmd.Flags())
			if err != nil {
				logrus.Fatalf("Could not load scenario %q: %v", scenarioName, err)
			}
			logrus.Infof("Using preset scenario %v", scenarioName)
		}

		logrus.Infof("Starting simulation: interarrival=%.2f, service=%.2f, run length=%d ticks, seed=%d, discipline=%q",
			cfg.MeanInterarrival, cfg.MeanService, cfg.RunLength, cfg.Seed, cfg.Discipline)

		// Initialize and run the simulator
		s, err := sim.NewSimulator(cfg)
		if err != nil {
			logrus.Fatalf("Could not initialize simulator: %v", err)
		}
		if traceCSVPath != "" || recordDBPath != "" {
			s.Trace = trace.New()
		}

		result, err := s.Run()
		if err != nil {
			logrus.Fatalf("Simulation aborted: %v", err)
		}
		result.Print(cfg)

		if traceCSVPath != "" {
			if err := s.Trace.WriteCSV(traceCSVPath); err != nil {
				logrus.Fatalf("Could not write trace CSV: %v", err)
			}
			logrus.Infof("Wrote %d trace rows to %s", len(s.Trace.Records), traceCSVPath)
		}
		if recordDBPath != "" {
			runID, err := recordRun(recordDBPath, cfg, result, s.Trace)
			if err != nil {
				logrus.Fatalf("Could not record run: %v", err)
			}
			logrus.Infof("Recorded run %s in %s", runID, recordDBPath)
		}

		logrus.Info("Simulation complete.")
	},
}

// recordRun persists the run and its per-customer rows to the SQLite
// database at path, returning the assigned run ID.
func recordRun(path string, cfg sim.Config, result sim.Result, tr *trace.Trace) (string, error) {
	rec, err := record.Open(path)
	if err != nil {
		return "", err
	}
	rec.RecordRun(record.RunRow{
		MeanInterarrival: cfg.MeanInterarrival,
		MeanService:      cfg.MeanService,
		RunLength:        cfg.RunLength,
		Seed:             cfg.Seed,
		ScaleFactor:      cfg.ScaleFactor,
		Discipline:       cfg.Discipline,
		MeanResponseTime: result.MeanResponseTime,
		Completed:        int64(result.Completed),
		Generated:        int64(result.Generated),
		Throughput:       result.Throughput,
		Utilization:      result.Utilization,
		MeanQueueLength:  result.MeanQueueLength,
		FinalClock:       result.FinalClock,
	})
	for _, row := range tr.Records {
		rec.RecordCustomer(record.CustomerRow{
			CustomerID:     row.CustomerID,
			ArrivalTime:    row.ArrivalTime,
			ServiceBurst:   row.ServiceBurst,
			ServiceStart:   row.ServiceStart,
			CompletionTime: row.CompletionTime,
			ResponseTime:   row.ResponseTime,
			QueueSeen:      int64(row.QueueSeen),
			Completed:      row.Completed,
		})
	}
	if err := rec.Close(); err != nil {
		return "", err
	}
	return rec.RunID(), nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().Float64Var(&meanInterarrival, "mean-interarrival", 5.0, "Mean interarrival time (unscaled time units)")
	runCmd.Flags().Float64Var(&meanService, "mean-service", 3.0, "Mean service time (unscaled time units)")
	runCmd.Flags().Int64Var(&runLength, "run-length", 100000, "Total simulation run length (in ticks)")
	runCmd.Flags().Int64Var(&seed, "seed", 42, "Seed for the shared random stream")
	runCmd.Flags().Float64Var(&scaleFactor, "scale-factor", sim.DefaultScaleFactor, "Ticks per unscaled time unit")
	runCmd.Flags().StringVar(&discipline, "discipline", "sjf", "Wait queue discipline (sjf, fcfs)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Scenario presets and output sinks
	runCmd.Flags().StringVar(&scenariosFile, "scenarios-file", "examples/scenarios.yaml", "Path to a YAML scenarios file")
	runCmd.Flags().StringVar(&scenarioName, "scenario", "", "Name of a preset in the scenarios file")
	runCmd.Flags().StringVar(&traceCSVPath, "trace-csv", "", "Write per-customer trace rows to this CSV file")
	runCmd.Flags().StringVar(&recordDBPath, "record-db", "", "Record the run into this SQLite database")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
