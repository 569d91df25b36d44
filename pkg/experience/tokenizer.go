package experience

import "strings"

// Groups splits raw text into experience groups of up to three lines.
//
// Blank lines are skipped wherever they occur. A group whose text ends after
// its first line is dropped; a group that ends after its second line is kept
// without a location.
func Groups(raw string) []Group {
	lines := strings.Split(strings.TrimSpace(raw), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}

	var groups []Group
	i := 0
	next := func() (string, bool) {
		for i < len(lines) && lines[i] == "" {
			i++
		}
		if i >= len(lines) {
			return "", false
		}
		line := lines[i]
		i++
		return line, true
	}

	for {
		title, ok := next()
		if !ok {
			return groups
		}
		dates, ok := next()
		if !ok {
			return groups
		}
		g := Group{Title: title, Dates: dates}
		g.Location, g.HasLocation = next()
		groups = append(groups, g)
		if !g.HasLocation {
			return groups
		}
	}
}
