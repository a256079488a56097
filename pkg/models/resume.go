package models

// Personal is the identity block of a resume.
type Personal struct {
	Name     string `json:"name"`
	Title    string `json:"title"`
	Location string `json:"location,omitempty"`
	Email    string `json:"email,omitempty"`
	Website  string `json:"website,omitempty"`
	Summary  string `json:"summary"`
}

// Experience is one employment entry.
type Experience struct {
	Company     string   `json:"company"`
	Position    string   `json:"position"`
	Duration    string   `json:"duration"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Highlights  []string `json:"highlights"`
}

// Education is one study entry.
type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Location    string `json:"location"`
}

// Project is one portfolio entry.
type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
	URL          string   `json:"url"`
	Year         string   `json:"year"`
	Highlights   []string `json:"highlights"`
}

// ResumeData is the normalized resume shape the chat pipeline works
// with. Skill values are grouped under normalized category names.
type ResumeData struct {
	Personal     Personal            `json:"personal"`
	Experience   []Experience        `json:"experience"`
	Skills       map[string][]string `json:"skills"`
	Education    []Education         `json:"education"`
	Projects     []Project           `json:"projects"`
	Achievements []string            `json:"achievements"`
	Industries   []string            `json:"industries"`
}

// SearchResult is one hit from a resume text search.
type SearchResult struct {
	Type     string `json:"type"`
	Company  string `json:"company,omitempty"`
	Position string `json:"position,omitempty"`
	Category string `json:"category,omitempty"`
	Skill    string `json:"skill,omitempty"`
	Name     string `json:"name,omitempty"`
	Match    string `json:"match"`
}

// JobMatch scores a job description against the resume's skills.
type JobMatch struct {
	MatchScore    int      `json:"match_score"`
	MatchedSkills []string `json:"matched_skills"`
	Analysis      string   `json:"analysis"`
}
