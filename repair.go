package fitload

// sampleField addresses one optional sample field.
type sampleField struct {
	name string
	ref  func(s *Sample) **float64
}

var sampleFields = []sampleField{
	{name: "power", ref: func(s *Sample) **float64 { return &s.Power }},
	{name: "heart_rate", ref: func(s *Sample) **float64 { return &s.HeartRate }},
	{name: "cadence", ref: func(s *Sample) **float64 { return &s.Cadence }},
	{name: "speed", ref: func(s *Sample) **float64 { return &s.Speed }},
	{name: "position_lat", ref: func(s *Sample) **float64 { return &s.PositionLat }},
	{name: "position_long", ref: func(s *Sample) **float64 { return &s.PositionLong }},
	{name: "distance", ref: func(s *Sample) **float64 { return &s.Distance }},
}

// Repair fills missing sample values. Each field is first propagated forward from its
// most recent value, then leading gaps take the first value that follows them.
// Fields that never report a value stay missing. The input series is not modified.
func Repair(w *WorkoutSeries) *WorkoutSeries {
	out := &WorkoutSeries{samples: w.Samples()}
	for _, f := range sampleFields {
		fillField(out.samples, f)
	}
	return out
}

func fillField(samples []Sample, f sampleField) {
	first := -1
	var last *float64
	for i := range samples {
		p := f.ref(&samples[i])
		if *p != nil {
			if first < 0 {
				first = i
			}
			last = *p
			continue
		}
		if last != nil {
			*p = cloneFloat(last)
		}
	}
	if first <= 0 {
		return
	}
	lead := *f.ref(&samples[first])
	for i := 0; i < first; i++ {
		*f.ref(&samples[i]) = cloneFloat(lead)
	}
}
