package identity

import (
	"strings"

	"fitrecon/internal/tabular"
)

// Resolve returns the first candidate header present in row with a
// non-empty trimmed value, or "" when none match. Candidate order encodes
// priority, so the preferred spelling goes first.
func Resolve(row tabular.Row, candidates []string) string {
	for _, header := range candidates {
		if v := strings.TrimSpace(row[header]); v != "" {
			return v
		}
	}
	return ""
}

// Logical station names. These match the attribute names on the persisted
// measurement record.
const (
	StationHeight      = "height"
	StationWeight      = "weight"
	StationBMI         = "bmi"
	StationGrip        = "grip"
	StationMarch       = "march"
	StationArmCurl     = "arm_curl"
	StationSitReach    = "sit_reach"
	StationBackStretch = "back_stretch"
	StationSpeedWalk   = "speed_walk"
	StationSquat       = "squat"
)

// StationHeaders maps each logical station to the accepted raw header
// spellings, preferred first. The exports label most stations bilingually
// ("握力测试 (Grip Test)") but some vendors emit the short local-language
// form only; supporting a new vendor spelling is a table edit here, not a
// code change.
var StationHeaders = map[string][]string{
	StationHeight:      {"Height"},
	StationWeight:      {"Weight"},
	StationBMI:         {"BMI"},
	StationGrip:        {"握力测试 (Grip Test)", "握力测试"},
	StationMarch:       {"两分钟抬膝测验 (2 min March)", "两分钟抬膝测验"},
	StationArmCurl:     {"30秒手臂卷起 (30 secs Arm Curl)", "30秒手臂卷起"},
	StationSitReach:    {"坐姿体前弯 (Seat & Reach)", "坐姿体前弯"},
	StationBackStretch: {"抓背测验 (Back Stretch)", "抓背测验"},
	StationSpeedWalk:   {"2.44起身绕物测试 (2.44m speed walk)", "2.44起身绕物测试"},
	StationSquat:       {"30秒坐站测验  (30 secs squat)", "30秒坐站测验"},
}

// ResolveStation reads one logical station from a row via its variant table.
func ResolveStation(row tabular.Row, station string) string {
	return Resolve(row, StationHeaders[station])
}
