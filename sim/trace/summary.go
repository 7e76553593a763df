package trace

// Summary aggregates statistics from a Trace.
type Summary struct {
	TotalCustomers  int
	CompletedCount  int
	IncompleteCount int
	MeanResponse    float64 // ticks, completed customers only
	MaxResponse     int64   // ticks, completed customers only
	MaxQueueSeen    int     // largest wait queue length any customer arrived to
}

// Summarize computes aggregate statistics from a trace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(t *Trace) *Summary {
	summary := &Summary{}
	if t == nil {
		return summary
	}

	summary.TotalCustomers = len(t.Records)
	totalResponse := int64(0)
	for _, rec := range t.Records {
		if rec.Completed {
			summary.CompletedCount++
			totalResponse += rec.ResponseTime
			if rec.ResponseTime > summary.MaxResponse {
				summary.MaxResponse = rec.ResponseTime
			}
		} else {
			summary.IncompleteCount++
		}
		if rec.QueueSeen > summary.MaxQueueSeen {
			summary.MaxQueueSeen = rec.QueueSeen
		}
	}
	if summary.CompletedCount > 0 {
		summary.MeanResponse = float64(totalResponse) / float64(summary.CompletedCount)
	}

	return summary
}
