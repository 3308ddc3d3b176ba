package merge

import "fitrecon/pkg/domain"

// CohortStats summarizes participation across two assessment cycles.
type CohortStats struct {
	Total       int    `json:"total"`
	CycleA      string `json:"cycle_a"`
	CycleB      string `json:"cycle_b"`
	CycleACount int    `json:"cycle_a_count"`
	CycleBCount int    `json:"cycle_b_count"`
	BothCount   int    `json:"both_count"`
}

// ComputeStats counts participants present in cycleA, cycleB, and both.
// Pure function: no I/O, no mutation of records.
func ComputeStats(records []domain.Participant, cycleA, cycleB string) CohortStats {
	stats := CohortStats{Total: len(records), CycleA: cycleA, CycleB: cycleB}
	for _, rec := range records {
		inA := rec.HasCycle(cycleA)
		inB := rec.HasCycle(cycleB)
		if inA {
			stats.CycleACount++
		}
		if inB {
			stats.CycleBCount++
		}
		if inA && inB {
			stats.BothCount++
		}
	}
	return stats
}
