// Package domain defines the canonical participant records produced by the
// reconciliation engine, the document-store collaborator interface, and the
// error taxonomy shared across layers.
package domain

// Gender values emitted by normalization. Raw values that are not a
// recognizable code pass through unchanged.
const (
	GenderFemale = "female"
	GenderMale   = "male"
)

// StationMeasurements holds the raw station results captured for one
// assessment cycle. Values are kept verbatim as exported, including
// "not attempted" placeholders; an empty string means the column was absent.
type StationMeasurements struct {
	Height      string `json:"height,omitempty"`
	Weight      string `json:"weight,omitempty"`
	BMI         string `json:"bmi,omitempty"`
	Grip        string `json:"grip,omitempty"`
	March       string `json:"march,omitempty"`
	ArmCurl     string `json:"arm_curl,omitempty"`
	SitReach    string `json:"sit_reach,omitempty"`
	BackStretch string `json:"back_stretch,omitempty"`
	SpeedWalk   string `json:"speed_walk,omitempty"`
	Squat       string `json:"squat,omitempty"`
}

// Participant is the merged longitudinal record for one person. Measurements
// are keyed by cycle label (a year string such as "2024") with at most one
// entry per label. The identity key used to build the record is merge-only
// scaffolding and is never stored here.
type Participant struct {
	Name         string                         `json:"name"`
	PhoneNumber  string                         `json:"phone_number"`
	Gender       string                         `json:"gender"`
	DOB          string                         `json:"dob"`
	Location     string                         `json:"location"`
	Measurements map[string]StationMeasurements `json:"measurements"`
}

// SetCycle records the measurement set for a cycle label, replacing any
// previous entry for that label.
func (p *Participant) SetCycle(label string, m StationMeasurements) {
	if p.Measurements == nil {
		p.Measurements = make(map[string]StationMeasurements, 2)
	}
	p.Measurements[label] = m
}

// HasCycle reports whether the participant carries measurements for label.
func (p Participant) HasCycle(label string) bool {
	_, ok := p.Measurements[label]
	return ok
}

// Clone returns a deep copy so stores can hand out records without sharing
// the measurements map with callers.
func (p Participant) Clone() Participant {
	out := p
	if p.Measurements != nil {
		out.Measurements = make(map[string]StationMeasurements, len(p.Measurements))
		for label, m := range p.Measurements {
			out.Measurements[label] = m
		}
	}
	return out
}

// CloneAll deep-copies a slice of participants.
func CloneAll(records []Participant) []Participant {
	if records == nil {
		return nil
	}
	out := make([]Participant, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
