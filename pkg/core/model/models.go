package model

// Employee is a member of staff as shown to schedulers
type Employee struct {
	ID          string
	FirstName   string
	LastName    string
	Email       string
	DisplayName string
}

// ComputeDisplayNames gives each employee the shortest unambiguous name:
// the first name, then first name plus last initial, then the full name.
func ComputeDisplayNames(employees []Employee) {
	firstNameCounts := make(map[string]int)
	initialCounts := make(map[string]int)
	for _, e := range employees {
		firstNameCounts[e.FirstName]++
		if key, ok := withInitial(e); ok {
			initialCounts[key]++
		}
	}

	for i := range employees {
		e := &employees[i]

		if firstNameCounts[e.FirstName] == 1 {
			e.DisplayName = e.FirstName
			continue
		}

		if key, ok := withInitial(*e); ok && initialCounts[key] == 1 {
			e.DisplayName = key
			continue
		}

		e.DisplayName = e.FirstName + " " + e.LastName
	}
}

func withInitial(e Employee) (string, bool) {
	if e.LastName == "" {
		return "", false
	}
	return e.FirstName + " " + string([]rune(e.LastName)[0]) + ".", true
}

// DisplayNames maps employee IDs to display names
func DisplayNames(employees []Employee) map[string]string {
	names := make(map[string]string, len(employees))
	for _, e := range employees {
		names[e.ID] = e.DisplayName
	}
	return names
}
