package fitload

// hrZone is one heart rate zone: values in [previous upper, upper) * LTHR score at rate.
type hrZone struct {
	label   string
	upper   float64
	tssRate float64
}

// Zone upper bounds as fractions of LTHR. The lower bound of the first zone is 0.
// The Z4/Z5a boundary is 0.99 LTHR, not the 100% of the published zone table.
var hrZones = []hrZone{
	{label: "Z1 low", upper: 0.73, tssRate: 20},
	{label: "Z1", upper: 0.77, tssRate: 30},
	{label: "Z1 high", upper: 0.81, tssRate: 40},
	{label: "Z2 low", upper: 0.85, tssRate: 50},
	{label: "Z2 high", upper: 0.89, tssRate: 60},
	{label: "Z3", upper: 0.93, tssRate: 70},
	{label: "Z4", upper: 0.99, tssRate: 80},
	{label: "Z5a", upper: 1.03, tssRate: 100},
	{label: "Z5b", upper: 1.06, tssRate: 120},
	{label: "Z5c", upper: 2.0, tssRate: 140},
}

// HRZoneCount is the number of heart rate zones.
const HRZoneCount = 10

// HRZone describes a classified heart rate zone.
type HRZone struct {
	Index   int     `json:"index"`
	Label   string  `json:"label"`
	MinBPM  float64 `json:"min_bpm"`
	MaxBPM  float64 `json:"max_bpm"`
	TSSRate float64 `json:"tss_per_hour"`
}

// HRZoneBounds returns the eleven zone boundaries in bpm for lthr.
func HRZoneBounds(lthr float64) []float64 {
	bounds := make([]float64, 0, len(hrZones)+1)
	bounds = append(bounds, 0)
	for _, z := range hrZones {
		bounds = append(bounds, z.upper*lthr)
	}
	return bounds
}

// HRZones returns the zone table for lthr.
func HRZones(lthr float64) []HRZone {
	out := make([]HRZone, 0, len(hrZones))
	lower := 0.0
	for i, z := range hrZones {
		upper := z.upper * lthr
		out = append(out, HRZone{
			Index:   i,
			Label:   z.label,
			MinBPM:  lower,
			MaxBPM:  upper,
			TSSRate: z.tssRate,
		})
		lower = upper
	}
	return out
}

// ClassifyHeartRate returns the zone of hr for lthr. Zones are half-open, so a value
// on a boundary belongs to the higher zone. ok is false for values below 0, at or above
// 2*lthr, NaN, or when lthr is not positive.
func ClassifyHeartRate(hr, lthr float64) (zone HRZone, ok bool) {
	if !(lthr > 0) || !isFinite(hr) || hr < 0 {
		return HRZone{}, false
	}
	lower := 0.0
	for i, z := range hrZones {
		upper := z.upper * lthr
		if hr < upper {
			return HRZone{Index: i, Label: z.label, MinBPM: lower, MaxBPM: upper, TSSRate: z.tssRate}, true
		}
		lower = upper
	}
	return HRZone{}, false
}
