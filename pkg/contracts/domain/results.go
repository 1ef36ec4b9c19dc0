package domain

// AggregateOccCode is the SOC code of the "All Occupations" summary row in
// the national table. It anchors the US median wage and is excluded from
// occupation rankings.
const AggregateOccCode = "00-0000"

// Occupation is one (code, title) entry from the occupation list.
type Occupation struct {
	OccCode  string `json:"occ_code"`
	OccTitle string `json:"occ_title"`
}

// OccupationRank is one row of the employment ranking. Missing measures are
// NaN, never zero.
type OccupationRank struct {
	OccCode         string  `json:"occ_code"`
	OccTitle        string  `json:"occ_title"`
	TotalEmployment float64 `json:"total_employment"`
	AnnualMedian    float64 `json:"annual_median"`
	MeanWage        float64 `json:"mean_wage"`
}

// Snapshot summarizes one occupation from the national crosswalk.
// RelativeWage is the occupation's annual median divided by the US median
// wage, NaN when either side is missing or the US median is not positive.
type Snapshot struct {
	OccCode         string  `json:"occ_code"`
	OccTitle        string  `json:"occ_title"`
	AnnualMedian    float64 `json:"annual_median"`
	MeanWage        float64 `json:"mean_wage"`
	WageP10         float64 `json:"wage_p10"`
	WageP90         float64 `json:"wage_p90"`
	TotalEmployment float64 `json:"total_employment"`
	RelativeWage    float64 `json:"relative_wage"`
}

// WageDistribution is the five-point annual wage distribution for one
// occupation. Missing percentiles are NaN.
type WageDistribution struct {
	P10    float64 `json:"p10"`
	P25    float64 `json:"p25"`
	Median float64 `json:"median"`
	P75    float64 `json:"p75"`
	P90    float64 `json:"p90"`
}

// GeoWage is one geography ranked by median wage for an occupation.
// Employment and location quotient are carried when the source table has
// them; nil otherwise.
type GeoWage struct {
	AreaTitle    string   `json:"area_title"`
	AnnualMedian float64  `json:"annual_median"`
	TotEmp       *float64 `json:"tot_emp,omitempty"`
	LocQuotient  *float64 `json:"loc_quotient,omitempty"`
}

// Concentration is one geography ranked by employment concentration
// (location quotient) for an occupation.
type Concentration struct {
	AreaTitle    string   `json:"area_title"`
	LocQuotient  float64  `json:"loc_quotient"`
	TotEmp       *float64 `json:"tot_emp,omitempty"`
	AnnualMedian *float64 `json:"annual_median,omitempty"`
}

// IndustryShare is one industry's share of an occupation's employment, in
// percent of the occupation total.
type IndustryShare struct {
	Industry string  `json:"industry"`
	SharePct float64 `json:"share_pct"`
}
