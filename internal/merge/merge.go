// Package merge folds two parsed assessment-cycle snapshots into canonical
// participant records keyed by normalized identity, and computes cohort
// counts over the merged set.
package merge

import (
	"sort"

	"fitrecon/internal/identity"
	"fitrecon/internal/tabular"
	"fitrecon/pkg/domain"
)

// Merge reconciles an earlier cycle (cycleA) with a later one (cycleB) into
// a map keyed by identity. Cycle A rows establish records; within A the
// first occurrence of an identity wins. Cycle B rows attach their
// measurement set to the existing record, or create a bare record when the
// participant is new in B. Identity fields (name, gender, location, dob)
// are set once, by whichever cycle inserted the record first; later cycles
// never backfill or overwrite them.
func Merge(cycleA []tabular.Row, labelA string, cycleB []tabular.Row, labelB, location string) map[string]domain.Participant {
	result := make(map[string]domain.Participant, len(cycleA)+len(cycleB))

	for _, row := range cycleA {
		key := identity.MatchKey(row)
		if _, exists := result[key]; exists {
			continue
		}
		rec := newRecord(row, location)
		rec.SetCycle(labelA, measurementsFrom(row))
		result[key] = rec
	}

	for _, row := range cycleB {
		key := identity.MatchKey(row)
		rec, exists := result[key]
		if !exists {
			rec = newRecord(row, location)
		}
		rec.SetCycle(labelB, measurementsFrom(row))
		result[key] = rec
	}

	return result
}

// Records materializes the merged map as a slice, discarding the identity
// keys. Output order is stabilized by (dob, phone, name) so repeated runs
// over the same inputs serialize identically.
func Records(merged map[string]domain.Participant) []domain.Participant {
	out := make([]domain.Participant, 0, len(merged))
	for _, rec := range merged {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DOB != out[j].DOB {
			return out[i].DOB < out[j].DOB
		}
		if out[i].PhoneNumber != out[j].PhoneNumber {
			return out[i].PhoneNumber < out[j].PhoneNumber
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func newRecord(row tabular.Row, location string) domain.Participant {
	return domain.Participant{
		Name:        row[identity.ColumnName],
		PhoneNumber: row[identity.ColumnPhone],
		Gender:      identity.NormalizeGender(row[identity.ColumnGender]),
		DOB:         identity.NormalizeDOB(row[identity.ColumnDay], row[identity.ColumnMonth], row[identity.ColumnYear]),
		Location:    location,
	}
}

func measurementsFrom(row tabular.Row) domain.StationMeasurements {
	return domain.StationMeasurements{
		Height:      identity.ResolveStation(row, identity.StationHeight),
		Weight:      identity.ResolveStation(row, identity.StationWeight),
		BMI:         identity.ResolveStation(row, identity.StationBMI),
		Grip:        identity.ResolveStation(row, identity.StationGrip),
		March:       identity.ResolveStation(row, identity.StationMarch),
		ArmCurl:     identity.ResolveStation(row, identity.StationArmCurl),
		SitReach:    identity.ResolveStation(row, identity.StationSitReach),
		BackStretch: identity.ResolveStation(row, identity.StationBackStretch),
		SpeedWalk:   identity.ResolveStation(row, identity.StationSpeedWalk),
		Squat:       identity.ResolveStation(row, identity.StationSquat),
	}
}
