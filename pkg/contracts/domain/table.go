package domain

// TableKind identifies one of the four OEWS source tables handled by the
// table store.
type TableKind string

const (
	// KindNational is the national all-industries table.
	KindNational TableKind = "national"
	// KindState is the state-level table.
	KindState TableKind = "state"
	// KindMSA is the metropolitan/micropolitan area table.
	KindMSA TableKind = "msa"
	// KindNatSector is the national industry-sector table.
	KindNatSector TableKind = "natsector"
)

// Kinds lists every table kind the store knows how to load.
func Kinds() []TableKind {
	return []TableKind{KindNational, KindState, KindMSA, KindNatSector}
}

// RawTable is the contract between the spreadsheet reader and the table
// store: one header row plus the data rows below it, all cells as the
// source encodes them (including sentinel strings like "**" or "#").
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// Row is one normalized survey record: an occupation crossed with a
// geography or an industry. Text identifiers are trimmed strings; measures
// are nil when the source cell was missing or unparseable.
type Row struct {
	OccCode    string `json:"occ_code"`
	OccTitle   string `json:"occ_title"`
	OGroup     string `json:"o_group,omitempty"`
	Area       string `json:"area,omitempty"`
	AreaTitle  string `json:"area_title,omitempty"`
	AreaType   string `json:"area_type,omitempty"`
	NAICS      string `json:"naics,omitempty"`
	NAICSTitle string `json:"naics_title,omitempty"`

	// Numeric mirror of AreaType (OEWS convention: 2=state, 4=MSA).
	AreaTypeNum *float64 `json:"area_type_num,omitempty"`

	TotEmp      *float64 `json:"tot_emp,omitempty"`
	EmpPRSE     *float64 `json:"emp_prse,omitempty"`
	Jobs1000    *float64 `json:"jobs_1000,omitempty"`
	LocQuotient *float64 `json:"loc_quotient,omitempty"`
	LocQ        *float64 `json:"loc_q,omitempty"`
	PctTotal    *float64 `json:"pct_total,omitempty"`
	PctRpt      *float64 `json:"pct_rpt,omitempty"`

	HMean    *float64 `json:"h_mean,omitempty"`
	AMean    *float64 `json:"a_mean,omitempty"`
	MeanPRSE *float64 `json:"mean_prse,omitempty"`

	HPct10  *float64 `json:"h_pct10,omitempty"`
	HPct25  *float64 `json:"h_pct25,omitempty"`
	HMedian *float64 `json:"h_median,omitempty"`
	HPct75  *float64 `json:"h_pct75,omitempty"`
	HPct90  *float64 `json:"h_pct90,omitempty"`

	APct10  *float64 `json:"a_pct10,omitempty"`
	APct25  *float64 `json:"a_pct25,omitempty"`
	AMedian *float64 `json:"a_median,omitempty"`
	APct75  *float64 `json:"a_pct75,omitempty"`
	APct90  *float64 `json:"a_pct90,omitempty"`

	// SOCCanon is the canonical NN-NNNN form of OccCode, or the trimmed
	// original when the code does not reduce to exactly seven digits.
	SOCCanon string `json:"soc_canon,omitempty"`

	// AMedianAnnual is the annual median wage with the hourly fallback
	// applied (hourly median x 2080 when the annual value is missing).
	AMedianAnnual *float64 `json:"a_median_annual,omitempty"`
}
