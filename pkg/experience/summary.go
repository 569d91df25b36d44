package experience

// Summarize counts records, distinct people, distinct non-empty companies
// and distinct non-empty locations.
func Summarize(records []Record) Summary {
	type person struct{ last, first string }

	people := make(map[person]struct{})
	companies := make(map[string]struct{})
	locations := make(map[string]struct{})

	for _, r := range records {
		people[person{r.LastName, r.FirstName}] = struct{}{}
		if r.Company != "" {
			companies[r.Company] = struct{}{}
		}
		if r.Location != "" {
			locations[r.Location] = struct{}{}
		}
	}

	return Summary{
		Records:   len(records),
		People:    len(people),
		Companies: len(companies),
		Locations: len(locations),
	}
}
