package domain

// RiskInput holds at most one analysis per hazard category. A nil field means no
// data is available for that category.
type RiskInput struct {
	Flood         *FloodAnalysis         `json:"flood"`
	Hurricane     *HurricaneAnalysis     `json:"hurricane"`
	Earthquake    *EarthquakeAnalysis    `json:"earthquake"`
	Sinkhole      *SinkholeAnalysis      `json:"sinkhole"`
	Wildfire      *WildfireAnalysis      `json:"wildfire"`
	Environmental *EnvironmentalAnalysis `json:"environmental"`
	Radon         *RadonAnalysis         `json:"radon"`
	Slope         *SlopeAnalysis         `json:"slope"`
}

// Get returns the analysis for c, or a nil interface when none was supplied.
func (in RiskInput) Get(c HazardCategory) Analysis {
	// A typed nil pointer inside an interface is not == nil, so each branch
	// checks before converting.
	switch c {
	case Flood:
		if in.Flood != nil {
			return in.Flood
		}
	case Hurricane:
		if in.Hurricane != nil {
			return in.Hurricane
		}
	case Earthquake:
		if in.Earthquake != nil {
			return in.Earthquake
		}
	case Sinkhole:
		if in.Sinkhole != nil {
			return in.Sinkhole
		}
	case Wildfire:
		if in.Wildfire != nil {
			return in.Wildfire
		}
	case Environmental:
		if in.Environmental != nil {
			return in.Environmental
		}
	case Radon:
		if in.Radon != nil {
			return in.Radon
		}
	case Slope:
		if in.Slope != nil {
			return in.Slope
		}
	}
	return nil
}

// Set stores a into the field for c. A nil a clears the category; an analysis
// whose concrete type does not belong to c is ignored.
func (in *RiskInput) Set(c HazardCategory, a Analysis) {
	switch c {
	case Flood:
		if v, ok := a.(*FloodAnalysis); ok || a == nil {
			in.Flood = v
		}
	case Hurricane:
		if v, ok := a.(*HurricaneAnalysis); ok || a == nil {
			in.Hurricane = v
		}
	case Earthquake:
		if v, ok := a.(*EarthquakeAnalysis); ok || a == nil {
			in.Earthquake = v
		}
	case Sinkhole:
		if v, ok := a.(*SinkholeAnalysis); ok || a == nil {
			in.Sinkhole = v
		}
	case Wildfire:
		if v, ok := a.(*WildfireAnalysis); ok || a == nil {
			in.Wildfire = v
		}
	case Environmental:
		if v, ok := a.(*EnvironmentalAnalysis); ok || a == nil {
			in.Environmental = v
		}
	case Radon:
		if v, ok := a.(*RadonAnalysis); ok || a == nil {
			in.Radon = v
		}
	case Slope:
		if v, ok := a.(*SlopeAnalysis); ok || a == nil {
			in.Slope = v
		}
	}
}

// Missing lists the categories without an analysis, in enumeration order.
func (in RiskInput) Missing() []HazardCategory {
	var out []HazardCategory
	for _, c := range Categories {
		if in.Get(c) == nil {
			out = append(out, c)
		}
	}
	return out
}
