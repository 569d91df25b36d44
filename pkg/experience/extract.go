package experience

import (
	"strings"

	"github.com/jecc/alumnex/pkg/duration"
)

// Separator splits the role from the company on a title line.
const Separator = " - "

// Extract parses every experience group of raw into records attributed to
// the given row and person.
func Extract(raw string, rowIndex int, lastName, firstName string) []Record {
	groups := Groups(raw)
	if len(groups) == 0 {
		return nil
	}

	records := make([]Record, 0, len(groups))
	for _, g := range groups {
		role, company := SplitTitle(g.Title)
		records = append(records, Record{
			RowIndex:  rowIndex,
			Seq:       len(records) + 1,
			LastName:  lastName,
			FirstName: firstName,
			Role:      role,
			Company:   company,
			Location:  g.Location,
			Duration:  duration.FromText(g.Dates),
		})
	}
	return records
}

// SplitTitle splits a title line on the first Separator.
// Without a separator the whole line is the role and company is empty.
func SplitTitle(line string) (role, company string) {
	line = strings.TrimSpace(line)
	role, company, found := strings.Cut(line, Separator)
	if !found {
		return line, ""
	}
	return strings.TrimSpace(role), strings.TrimSpace(company)
}
