package domain

import "github.com/shopspring/decimal"

// Effectiveness rates how much a mitigation action reduces exposure.
type Effectiveness string

const (
	EffectivenessLow      Effectiveness = "low"
	EffectivenessMedium   Effectiveness = "medium"
	EffectivenessHigh     Effectiveness = "high"
	EffectivenessVeryHigh Effectiveness = "very_high"
)

// CostRange is an estimated spend in US dollars.
type CostRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// MitigationAction is one ranked step a buyer can take to reduce a hazard.
// Upstream suggestions carry only Category and Action.
type MitigationAction struct {
	Priority        int            `json:"priority"`
	Category        HazardCategory `json:"category"`
	Action          string         `json:"action"`
	EstimatedCost   *CostRange     `json:"estimated_cost,omitempty"`
	Effectiveness   Effectiveness  `json:"effectiveness,omitempty"`
	TimeEstimate    string         `json:"time_estimate,omitempty"`
	InsuranceImpact string         `json:"insurance_impact,omitempty"`
}

const maxMitigations = 8

type mitigationTemplate struct {
	action          string
	costMin         int64
	costMax         int64
	effectiveness   Effectiveness
	timeEstimate    string
	insuranceImpact string
}

func (t mitigationTemplate) toAction(c HazardCategory) MitigationAction {
	return MitigationAction{
		Category: c,
		Action:   t.action,
		EstimatedCost: &CostRange{
			Min: decimal.NewFromInt(t.costMin),
			Max: decimal.NewFromInt(t.costMax),
		},
		Effectiveness:   t.effectiveness,
		TimeEstimate:    t.timeEstimate,
		InsuranceImpact: t.insuranceImpact,
	}
}

var floodMitigations = []mitigationTemplate{
	{
		action:          "Elevate HVAC, water heater and electrical panel above base flood elevation",
		costMin:         3000,
		costMax:         15000,
		effectiveness:   EffectivenessHigh,
		timeEstimate:    "1-2 weeks",
		insuranceImpact: "Can lower NFIP premiums when documented on an elevation certificate",
	},
	{
		action:          "Install flood vents and a sump pump with battery backup",
		costMin:         1500,
		costMax:         6000,
		effectiveness:   EffectivenessMedium,
		timeEstimate:    "2-5 days",
		insuranceImpact: "Qualifies for engineered-opening credit in A zones",
	},
}

var hurricaneMitigations = []mitigationTemplate{
	{
		action:          "Install impact-rated windows or hurricane shutters on all openings",
		costMin:         5000,
		costMax:         25000,
		effectiveness:   EffectivenessHigh,
		timeEstimate:    "2-6 weeks",
		insuranceImpact: "Opening protection credit on windstorm premiums",
	},
	{
		action:          "Retrofit roof-to-wall connections with hurricane straps",
		costMin:         2000,
		costMax:         8000,
		effectiveness:   EffectivenessHigh,
		timeEstimate:    "1-2 weeks",
		insuranceImpact: "Roof-to-wall credit after a wind mitigation inspection",
	},
}

var earthquakeMitigations = []mitigationTemplate{
	{
		action:          "Bolt the foundation and brace cripple walls",
		costMin:         3000,
		costMax:         10000,
		effectiveness:   EffectivenessHigh,
		timeEstimate:    "1-2 weeks",
		insuranceImpact: "Retrofit discount with most earthquake carriers",
	},
	{
		action:          "Strap the water heater and install an automatic gas shutoff valve",
		costMin:         200,
		costMax:         800,
		effectiveness:   EffectivenessMedium,
		timeEstimate:    "1 day",
		insuranceImpact: "Reduces fire-following-earthquake exposure",
	},
}

var sinkholeMitigations = []mitigationTemplate{
	{
		action:          "Commission a ground-penetrating radar survey of the building footprint",
		costMin:         1500,
		costMax:         5000,
		effectiveness:   EffectivenessMedium,
		timeEstimate:    "1-2 weeks",
		insuranceImpact: "Required by many carriers before binding sinkhole coverage",
	},
	{
		action:          "Grade the lot and extend downspouts to move surface water away from the foundation",
		costMin:         500,
		costMax:         3000,
		effectiveness:   EffectivenessLow,
		timeEstimate:    "2-5 days",
		insuranceImpact: "No direct premium effect",
	},
}

var wildfireMitigations = []mitigationTemplate{
	{
		action:          "Clear a 30-foot defensible space zone and remove ladder fuels",
		costMin:         1000,
		costMax:         5000,
		effectiveness:   EffectivenessHigh,
		timeEstimate:    "1-2 weeks",
		insuranceImpact: "Often required to keep or obtain coverage in high-hazard zones",
	},
	{
		action:          "Install ember-resistant vents and a Class A roof covering",
		costMin:         2000,
		costMax:         20000,
		effectiveness:   EffectivenessHigh,
		timeEstimate:    "2-4 weeks",
		insuranceImpact: "Eligible for wildfire-prepared home discounts in some states",
	},
}

var environmentalMitigations = []mitigationTemplate{
	{
		action:          "Order a Phase I Environmental Site Assessment",
		costMin:         1500,
		costMax:         4000,
		effectiveness:   EffectivenessHigh,
		timeEstimate:    "2-4 weeks",
		insuranceImpact: "Supports the innocent landowner defense under CERCLA",
	},
	{
		action:          "Test well water for VOCs and heavy metals",
		costMin:         200,
		costMax:         600,
		effectiveness:   EffectivenessMedium,
		timeEstimate:    "1-2 weeks",
		insuranceImpact: "No direct premium effect",
	},
}

var radonMitigations = []mitigationTemplate{
	{
		action:          "Install a sub-slab depressurization system",
		costMin:         800,
		costMax:         2500,
		effectiveness:   EffectivenessVeryHigh,
		timeEstimate:    "1 day",
		insuranceImpact: "No direct premium effect",
	},
	{
		action:          "Seal foundation cracks and sump openings",
		costMin:         100,
		costMax:         500,
		effectiveness:   EffectivenessLow,
		timeEstimate:    "1-2 days",
		insuranceImpact: "No direct premium effect",
	},
}

var slopeMitigations = []mitigationTemplate{
	{
		action:          "Install subsurface drainage and a retaining wall on the downslope side",
		costMin:         5000,
		costMax:         40000,
		effectiveness:   EffectivenessHigh,
		timeEstimate:    "3-8 weeks",
		insuranceImpact: "Landslide is excluded from standard policies; reduces uninsured loss",
	},
	{
		action:          "Plant deep-rooted ground cover on exposed slopes",
		costMin:         500,
		costMax:         3000,
		effectiveness:   EffectivenessLow,
		timeEstimate:    "1 season",
		insuranceImpact: "No direct premium effect",
	},
}
