// Package models defines the document aggregate every client of a school
// project replicates in full, plus the records inside it.
package models

// Document is the whole replicated state of one school. A client always
// holds exactly one document; sync moves entire documents, never deltas.
type Document struct {
	Students    []Student        `json:"students"`
	Teachers    []Teacher        `json:"teachers"`
	Staff       []StaffMember    `json:"staff"`
	Assessments []Assessment     `json:"assessments"`
	Payments    []Payment        `json:"payments"`
	Remarks     []Remark         `json:"remarks"`
	Timetables  []TimetableEntry `json:"timetables"`
	Archives    []Archive        `json:"archives"`
	Settings    Settings         `json:"settings"`
}

// DefaultDocument is the state of a client that has never synced or saved:
// empty collections and default settings.
func DefaultDocument() Document {
	return Document{
		Students:    []Student{},
		Teachers:    []Teacher{},
		Staff:       []StaffMember{},
		Assessments: []Assessment{},
		Payments:    []Payment{},
		Remarks:     []Remark{},
		Timetables:  []TimetableEntry{},
		Archives:    []Archive{},
		Settings:    DefaultSettings(),
	}
}

// Clone deep-copies the document. Merge results and snapshots are built on
// clones so no caller ever holds a slice aliased into the live document.
func (d Document) Clone() Document {
	out := d
	out.Students = cloneStudents(d.Students)
	out.Teachers = append([]Teacher(nil), d.Teachers...)
	out.Staff = append([]StaffMember(nil), d.Staff...)
	out.Assessments = append([]Assessment(nil), d.Assessments...)
	out.Payments = clonePayments(d.Payments)
	out.Remarks = append([]Remark(nil), d.Remarks...)
	out.Timetables = append([]TimetableEntry(nil), d.Timetables...)
	out.Archives = cloneArchives(d.Archives)
	out.Settings = d.Settings.Clone()
	return out
}

func cloneStudents(students []Student) []Student {
	out := make([]Student, len(students))
	for i, s := range students {
		out[i] = s
		out[i].SelectedFees = append([]string(nil), s.SelectedFees...)
	}
	return out
}

func clonePayments(payments []Payment) []Payment {
	out := make([]Payment, len(payments))
	for i, p := range payments {
		out[i] = p
		if p.Items != nil {
			items := make(map[string]float64, len(p.Items))
			for k, v := range p.Items {
				items[k] = v
			}
			out[i].Items = items
		}
	}
	return out
}

func cloneArchives(archives []Archive) []Archive {
	out := make([]Archive, len(archives))
	for i, a := range archives {
		out[i] = a
		out[i].Snapshot = ArchiveSnapshot{
			Students:    cloneStudents(a.Snapshot.Students),
			Assessments: append([]Assessment(nil), a.Snapshot.Assessments...),
			Payments:    clonePayments(a.Snapshot.Payments),
			Remarks:     append([]Remark(nil), a.Snapshot.Remarks...),
		}
	}
	return out
}

// Pagination describes a paged listing response.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}
