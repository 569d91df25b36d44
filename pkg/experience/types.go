// Package experience turns free-form experience text into structured records.
//
// Each experience is written on up to three lines:
//
//	Role - Company
//	DD/MM/YYYY - DD/MM/YYYY
//	Location
//
// The package performs no I/O; callers hand it rows and receive records.
package experience

import "strconv"

// Record is one parsed work experience.
type Record struct {
	// RowIndex is the index of the source row.
	RowIndex int

	// Seq is the 1-based position of the experience within its row.
	Seq int

	LastName  string
	FirstName string
	Role      string
	Company   string
	Location  string

	// Duration is the rendered duration phrase, duration.Undetermined, or "".
	Duration string
}

// ID returns the record identifier "{RowIndex}_{Seq}".
func (r Record) ID() string {
	return strconv.Itoa(r.RowIndex) + "_" + strconv.Itoa(r.Seq)
}

// Fields returns the record as the seven ordered output columns:
// identifier, last name, first name, role, company, location, duration.
func (r Record) Fields() []string {
	return []string{r.ID(), r.LastName, r.FirstName, r.Role, r.Company, r.Location, r.Duration}
}

// Row is one person's input. Nil fields are absent cells.
type Row struct {
	Index       int
	LastName    *string
	FirstName   *string
	Experiences *string
}

// Group is one experience as found by the tokenizer.
type Group struct {
	// Title is the "Role - Company" line.
	Title string

	// Dates is the line expected to hold the date range.
	Dates string

	// Location is the third line; only meaningful when HasLocation is true.
	Location    string
	HasLocation bool
}

// Summary holds aggregate counts over a record collection.
type Summary struct {
	Records   int `json:"records"`
	People    int `json:"people"`
	Companies int `json:"companies"`
	Locations int `json:"locations"`
}
