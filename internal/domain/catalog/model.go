package catalog

// BodySystem groups diseases by the part of the body they affect.
type BodySystem struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	ImageURL    *string `json:"imageUrl"`
}

// Disease is a reference entry. BodySystemID is not checked against the
// body systems on write. Symptoms is descriptive text and unrelated to the
// Symptom entity.
type Disease struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	BodySystemID int64   `json:"bodySystemId"`
	Description  string  `json:"description"`
	Causes       *string `json:"causes"`
	Symptoms     *string `json:"symptoms"`
	Treatments   *string `json:"treatments"`
	Prevention   *string `json:"prevention"`
	ImageURL     *string `json:"imageUrl"`
}

// Symptom is one entry of the symptom checklist. Systemic symptoms have no
// body system.
type Symptom struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	BodySystemID *int64  `json:"bodySystemId"`
	Description  *string `json:"description"`
}
