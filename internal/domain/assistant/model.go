package assistant

// Probability tiers a condition may carry.
const (
	ProbabilityHigh   = "High"
	ProbabilityMedium = "Medium"
	ProbabilityLow    = "Low"
)

// UserInfo is the optional patient profile sent with a symptom check.
type UserInfo struct {
	Age            *int     `json:"age,omitempty" validate:"omitempty,gte=0"`
	Gender         string   `json:"gender,omitempty"`
	MedicalHistory []string `json:"medicalHistory,omitempty"`
}

type Condition struct {
	Name              string `json:"name"`
	Probability       string `json:"probability"`
	Description       string `json:"description"`
	WhenToSeekCare    string `json:"whenToSeekCare"`
	RelatedBodySystem string `json:"relatedBodySystem"`
}

// AnalysisResult is the answer to a symptom check. PossibleConditions is
// empty, never null, when the analysis fell back.
type AnalysisResult struct {
	PossibleConditions []Condition `json:"possibleConditions"`
	Disclaimer         string      `json:"disclaimer"`
	Recommendations    []string    `json:"recommendations"`
}

type DiseaseDetail struct {
	Overview        string   `json:"overview"`
	Causes          string   `json:"causes"`
	Symptoms        string   `json:"symptoms"`
	Diagnosis       string   `json:"diagnosis"`
	Treatments      string   `json:"treatments"`
	Prevention      string   `json:"prevention"`
	ResearchUpdates string   `json:"researchUpdates"`
	References      []string `json:"references"`
}

type NewsItem struct {
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	Content       string `json:"content"`
	Source        string `json:"source"`
	PublishedDate string `json:"publishedDate"`
	Category      string `json:"category"`
	URL           string `json:"url,omitempty"`
}

type Contact struct {
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Website string `json:"website,omitempty"`
}

type Hospital struct {
	Name          string   `json:"name"`
	Location      string   `json:"location"`
	Specialties   []string `json:"specialties"`
	Description   string   `json:"description"`
	Facilities    []string `json:"facilities"`
	Accreditation []string `json:"accreditation"`
	Contact       Contact  `json:"contact"`
}

type Doctor struct {
	Name           string   `json:"name"`
	Specialty      string   `json:"specialty"`
	Qualifications []string `json:"qualifications"`
	Experience     string   `json:"experience"`
	Hospital       string   `json:"hospital"`
	Location       string   `json:"location"`
	Languages      []string `json:"languages"`
	Expertise      []string `json:"expertise"`
	Contact        Contact  `json:"contact"`
}

// ProviderDirectory lists hospitals and doctors matching a query.
type ProviderDirectory struct {
	Hospitals []Hospital `json:"hospitals"`
	Doctors   []Doctor   `json:"doctors"`
}
