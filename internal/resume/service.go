package resume

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/one-front/airesume/pkg/models"
)

// Service answers questions about one loaded resume.
type Service interface {
	FullResume() models.ResumeData
	ExperienceSection() []models.Experience
	SkillsSection() map[string][]string
	Search(query string) []models.SearchResult
	AnalyzeJobMatch(jobDescription string) models.JobMatch
	SelectContext(question string) string
}

type resumeService struct {
	data models.ResumeData
}

// NewService wraps already-normalized resume data.
func NewService(data models.ResumeData) Service {
	return &resumeService{data: data}
}

func (s *resumeService) FullResume() models.ResumeData          { return s.data }
func (s *resumeService) ExperienceSection() []models.Experience { return s.data.Experience }
func (s *resumeService) SkillsSection() map[string][]string     { return s.data.Skills }

// Search runs a naive substring match of each query term across
// experience descriptions, individual skills and project descriptions.
func (s *resumeService) Search(query string) []models.SearchResult {
	terms := strings.Fields(strings.ToLower(query))
	var results []models.SearchResult

	for _, exp := range s.data.Experience {
		if containsAny(strings.ToLower(exp.Description), terms) {
			results = append(results, models.SearchResult{
				Type:     "experience",
				Company:  exp.Company,
				Position: exp.Position,
				Match:    exp.Description,
			})
		}
	}

	for category, skills := range s.data.Skills {
		for _, skill := range skills {
			if containsAny(strings.ToLower(skill), terms) {
				results = append(results, models.SearchResult{
					Type:     "skill",
					Category: category,
					Skill:    skill,
					Match:    category + ": " + skill,
				})
			}
		}
	}

	for _, proj := range s.data.Projects {
		if containsAny(strings.ToLower(proj.Description), terms) {
			results = append(results, models.SearchResult{
				Type:  "project",
				Name:  proj.Name,
				Match: proj.Description,
			})
		}
	}

	return results
}

func containsAny(haystack string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}

// AnalyzeJobMatch counts resume skills appearing verbatim in the job
// description, ten points per skill capped at 100.
func (s *resumeService) AnalyzeJobMatch(jobDescription string) models.JobMatch {
	jobLower := strings.ToLower(jobDescription)
	var matched []string
	for _, skills := range s.data.Skills {
		for _, skill := range skills {
			if strings.Contains(jobLower, strings.ToLower(skill)) {
				matched = append(matched, skill)
			}
		}
	}

	score := len(matched) * 10
	if score > 100 {
		score = 100
	}

	return models.JobMatch{
		MatchScore:    score,
		MatchedSkills: matched,
		Analysis:      fmt.Sprintf("Found %d matching skills. Match score: %d%%", len(matched), score),
	}
}

var (
	experienceKeywords = []string{"experience", "work", "job", "career"}
	skillKeywords      = []string{"skill", "technology", "programming", "tech"}
	searchKeywords     = []string{"search", "find"}
	searchStoplist     = map[string]bool{"search": true, "find": true, "about": true, "with": true}
)

// SelectContext picks the resume slice most relevant to the question.
// Matching is first-match-wins over keyword groups; this is a context
// budgeting heuristic for the prompt, not a search engine.
func (s *resumeService) SelectContext(question string) string {
	lower := strings.ToLower(question)

	switch {
	case containsAnyWord(lower, experienceKeywords):
		return "Work Experience:\n" + indentJSON(map[string]any{"experience": s.data.Experience})
	case containsAnyWord(lower, skillKeywords):
		return "Skills:\n" + indentJSON(map[string]any{"skills": s.data.Skills})
	case containsAnyWord(lower, searchKeywords):
		if query := extractSearchQuery(lower); query != "" {
			results := s.Search(query)
			return "Search Results:\n" + indentJSON(map[string]any{"search_results": results})
		}
	}
	return "Resume Summary:\n" + indentJSON(s.data)
}

func containsAnyWord(haystack string, words []string) bool {
	for _, w := range words {
		if strings.Contains(haystack, w) {
			return true
		}
	}
	return false
}

// extractSearchQuery keeps the first three words longer than three
// characters that are not stoplisted.
func extractSearchQuery(lower string) string {
	var terms []string
	for _, word := range strings.Fields(lower) {
		if len(word) > 3 && !searchStoplist[word] {
			terms = append(terms, word)
			if len(terms) == 3 {
				break
			}
		}
	}
	return strings.Join(terms, " ")
}

func indentJSON(v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error retrieving context: %v", err)
	}
	return string(data)
}
