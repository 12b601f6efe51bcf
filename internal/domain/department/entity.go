package department

type Department struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      Status `json:"status"`
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// ActiveNames returns the names an employee can be assigned to.
func ActiveNames(departments []Department) []string {
	names := make([]string, 0, len(departments))
	for _, d := range departments {
		if d.Status == StatusActive {
			names = append(names, d.Name)
		}
	}
	return names
}
