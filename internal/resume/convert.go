package resume

import (
	"strings"

	"github.com/one-front/airesume/pkg/models"
)

// JSONResume is the subset of the JSON Resume interchange schema
// (https://jsonresume.org) this package consumes.
type JSONResume struct {
	Basics struct {
		Name     string `json:"name"`
		Label    string `json:"label"`
		Email    string `json:"email"`
		URL      string `json:"url"`
		Summary  string `json:"summary"`
		Location struct {
			City string `json:"city"`
		} `json:"location"`
	} `json:"basics"`
	Work []struct {
		Company     string   `json:"company"`
		Name        string   `json:"name"`
		Position    string   `json:"position"`
		StartDate   string   `json:"startDate"`
		EndDate     string   `json:"endDate"`
		Location    string   `json:"location"`
		Summary     string   `json:"summary"`
		Description string   `json:"description"`
		Highlights  []string `json:"highlights"`
	} `json:"work"`
	Skills []struct {
		Name     string   `json:"name"`
		Keywords []string `json:"keywords"`
	} `json:"skills"`
	Languages []struct {
		Language string `json:"language"`
		Fluency  string `json:"fluency"`
	} `json:"languages"`
	Education []struct {
		Institution string `json:"institution"`
		StudyType   string `json:"studyType"`
		Area        string `json:"area"`
		StartDate   string `json:"startDate"`
		EndDate     string `json:"endDate"`
		Location    string `json:"location"`
	} `json:"education"`
	Projects []struct {
		Name        string   `json:"name"`
		Description string   `json:"description"`
		URL         string   `json:"url"`
		StartDate   string   `json:"startDate"`
		Keywords    []string `json:"keywords"`
		Highlights  []string `json:"highlights"`
	} `json:"projects"`
}

// maxAchievements caps how many work and project highlights are carried
// into the achievements section.
const maxAchievements = 15

// ConvertJSONResume normalizes a JSON Resume document into the internal
// shape. Missing fields become zero values rather than errors.
func ConvertJSONResume(jr JSONResume) models.ResumeData {
	personal := models.Personal{
		Name:     jr.Basics.Name,
		Title:    jr.Basics.Label,
		Location: jr.Basics.Location.City,
		Email:    jr.Basics.Email,
		Website:  jr.Basics.URL,
		Summary:  jr.Basics.Summary,
	}

	var experience []models.Experience
	for _, work := range jr.Work {
		company := work.Company
		if company == "" {
			company = work.Name
		}
		end := work.EndDate
		if end == "" {
			end = "Present"
		}
		description := work.Summary
		if description == "" {
			description = work.Description
		}
		experience = append(experience, models.Experience{
			Company:     company,
			Position:    work.Position,
			Duration:    work.StartDate + " - " + end,
			Location:    work.Location,
			Description: description,
			Highlights:  work.Highlights,
		})
	}

	skills := map[string][]string{}
	for _, group := range jr.Skills {
		skills[normalizeSkillName(group.Name)] = group.Keywords
	}
	var languages []string
	for _, lang := range jr.Languages {
		languages = append(languages, lang.Language+" ("+lang.Fluency+")")
	}
	if len(languages) > 0 {
		skills["languages"] = languages
	}

	var education []models.Education
	for _, edu := range jr.Education {
		education = append(education, models.Education{
			Degree:      edu.StudyType + " in " + edu.Area,
			Institution: edu.Institution,
			Year:        edu.StartDate + " - " + edu.EndDate,
			Location:    edu.Location,
		})
	}

	var projects []models.Project
	for _, proj := range jr.Projects {
		year := proj.StartDate
		if len(year) > 4 {
			year = year[:4]
		}
		projects = append(projects, models.Project{
			Name:         proj.Name,
			Description:  proj.Description,
			Technologies: proj.Keywords,
			URL:          proj.URL,
			Year:         year,
			Highlights:   proj.Highlights,
		})
	}

	var achievements []string
	for _, work := range jr.Work {
		achievements = append(achievements, work.Highlights...)
	}
	for _, proj := range jr.Projects {
		achievements = append(achievements, proj.Highlights...)
	}
	if len(achievements) > maxAchievements {
		achievements = achievements[:maxAchievements]
	}

	return models.ResumeData{
		Personal:     personal,
		Experience:   experience,
		Skills:       skills,
		Education:    education,
		Projects:     projects,
		Achievements: achievements,
		Industries:   inferIndustries(jr),
	}
}

// normalizeSkillName turns a display heading into a stable map key, for
// example "Cloud & DevOps" becomes "cloud__devops".
func normalizeSkillName(name string) string {
	key := strings.ToLower(name)
	key = strings.ReplaceAll(key, " ", "_")
	return strings.ReplaceAll(key, "&", "")
}

// industryMarkers maps substring cues in work summaries to industry
// labels.
var industryMarkers = []struct {
	terms []string
	label string
}{
	{[]string{"finance", "fintech"}, "Financial Technology (FinTech)"},
	{[]string{"ai", "artificial intelligence"}, "Artificial Intelligence & Machine Learning"},
	{[]string{"healthcare", "insurance"}, "Healthcare & Insurance Technology"},
	{[]string{"e-commerce"}, "E-commerce & Retail"},
}

func inferIndustries(jr JSONResume) []string {
	seen := map[string]bool{}
	var industries []string
	for _, work := range jr.Work {
		summary := strings.ToLower(work.Summary)
		for _, marker := range industryMarkers {
			if seen[marker.label] {
				continue
			}
			for _, term := range marker.terms {
				if strings.Contains(summary, term) {
					seen[marker.label] = true
					industries = append(industries, marker.label)
					break
				}
			}
		}
	}
	return industries
}

// fallbackResume is the minimal resume used when no source is
// reachable. The chat still works, just with thin context.
func fallbackResume() models.ResumeData {
	return models.ResumeData{
		Personal: models.Personal{
			Name:    "Resume Candidate",
			Title:   "Senior Full-Stack Developer & AI Specialist",
			Summary: "Experienced full-stack developer with 10+ years of international experience.",
		},
		Experience:   []models.Experience{},
		Skills:       map[string][]string{},
		Education:    []models.Education{},
		Projects:     []models.Project{},
		Achievements: []string{},
		Industries:   []string{},
	}
}
