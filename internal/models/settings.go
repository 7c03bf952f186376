package models

// FeeKeys enumerates every billable item a fee structure may carry, in the
// order the fee register prints them.
var FeeKeys = []string{
	"previousArrears", "admission", "diary", "development",
	"t1", "t2", "t3",
	"boarding", "breakfast", "lunch", "trip", "bookFund",
	"caution", "uniform", "studentCard", "remedial",
	"assessmentFee", "projectFee",
}

// DefaultSelectedFees is billed when a student has no explicit selection.
var DefaultSelectedFees = []string{"t1", "t2", "t3"}

// FeeStructure maps fee keys to amounts for one grade. Exactly one structure
// exists per grade.
type FeeStructure struct {
	Grade string             `json:"grade"`
	Items map[string]float64 `json:"items"`
}

// Amount returns the configured amount for a fee key, zero when unset.
func (f FeeStructure) Amount(key string) float64 {
	if f.Items == nil {
		return 0
	}
	return f.Items[key]
}

// Settings is the singleton configuration record inside a Document. Unlike
// the id-keyed collections it merges field-wise: on a full merge the remote
// settings overlay the local ones.
type Settings struct {
	SchoolName     string         `json:"schoolName"`
	SchoolAddress  string         `json:"schoolAddress,omitempty"`
	SchoolLogo     string         `json:"schoolLogo,omitempty"`
	Currency       string         `json:"currency"`
	Theme          string         `json:"theme"`
	PrimaryColor   string         `json:"primaryColor,omitempty"`
	SecondaryColor string         `json:"secondaryColor,omitempty"`
	AcademicYear   string         `json:"academicYear"`
	Grades         []string       `json:"grades"`
	FeeStructures  []FeeStructure `json:"feeStructures"`
}

// FeeStructureFor finds the fee structure of a grade, nil when absent.
func (s Settings) FeeStructureFor(grade string) *FeeStructure {
	for i := range s.FeeStructures {
		if s.FeeStructures[i].Grade == grade {
			return &s.FeeStructures[i]
		}
	}
	return nil
}

// Clone deep-copies the settings record.
func (s Settings) Clone() Settings {
	out := s
	out.Grades = append([]string(nil), s.Grades...)
	out.FeeStructures = make([]FeeStructure, len(s.FeeStructures))
	for i, fs := range s.FeeStructures {
		out.FeeStructures[i] = fs
		if fs.Items != nil {
			items := make(map[string]float64, len(fs.Items))
			for k, v := range fs.Items {
				items[k] = v
			}
			out.FeeStructures[i].Items = items
		}
	}
	return out
}

// DefaultSettings is the configuration a fresh client boots with.
func DefaultSettings() Settings {
	return Settings{
		SchoolName:   "EduTrack School",
		Currency:     "KES",
		Theme:        "light",
		AcademicYear: "2024/2025",
		Grades: []string{
			"PP1", "PP2",
			"GRADE 1", "GRADE 2", "GRADE 3", "GRADE 4", "GRADE 5", "GRADE 6",
			"GRADE 7", "GRADE 8", "GRADE 9", "GRADE 10", "GRADE 11", "GRADE 12",
		},
		FeeStructures: []FeeStructure{},
	}
}
