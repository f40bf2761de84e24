package resource

// TypeAll disables the type filter in ListByType.
const TypeAll = "all"

// Resource is an external link, organisation or facility. Type is a free
// tag such as journal, website or hospital; Category is professional,
// patient or hospital.
type Resource struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	URL         *string `json:"url"`
	Type        string  `json:"type"`
	Category    *string `json:"category"`
	Location    *string `json:"location"`
}
