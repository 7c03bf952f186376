package ledger

// GradeInfo is a competency band plus its point value.
type GradeInfo struct {
	Level       string `json:"level"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

// BandFor maps a numeric average onto the fixed competency partition of
// [0,100]. Boundaries are inclusive on the lower bound of each band and
// printed report cards depend on them being exact:
//
//	>=75  EE  4
//	50-74 ME  3
//	35-49 AE  2
//	<35   BE  1
func BandFor(score float64) GradeInfo {
	switch {
	case score >= 75:
		return GradeInfo{Level: "EE", Description: "Exceeding Expectation", Points: 4}
	case score >= 50:
		return GradeInfo{Level: "ME", Description: "Meeting Expectation", Points: 3}
	case score >= 35:
		return GradeInfo{Level: "AE", Description: "Approaching Expectation", Points: 2}
	default:
		return GradeInfo{Level: "BE", Description: "Below Expectation", Points: 1}
	}
}
