package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/queueing-sim/queueing-sim/sim/trace"
)

var summarizeFromPath string

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize a per-customer trace CSV",
	Long:  "Load a trace CSV written by `run --trace-csv` and print aggregate statistics.",
	Run: func(cmd *cobra.Command, args []string) {
		tr, err := trace.ReadCSV(summarizeFromPath)
		if err != nil {
			logrus.Fatalf("Failed to load trace %s: %v", summarizeFromPath, err)
		}

		s := trace.Summarize(tr)
		fmt.Println("=== Trace Summary ===")
		fmt.Printf("Total Customers      : %d\n", s.TotalCustomers)
		fmt.Printf("Completed            : %d\n", s.CompletedCount)
		fmt.Printf("Incomplete At End    : %d\n", s.IncompleteCount)
		if s.CompletedCount > 0 {
			fmt.Printf("Mean Response        : %.2f ticks\n", s.MeanResponse)
			fmt.Printf("Max Response         : %d ticks\n", s.MaxResponse)
		}
		fmt.Printf("Max Queue At Arrival : %d\n", s.MaxQueueSeen)
	},
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeFromPath, "from", "", "Path to a trace CSV file")
	_ = summarizeCmd.MarkFlagRequired("from")

	rootCmd.AddCommand(summarizeCmd)
}
