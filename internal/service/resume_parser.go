package service

import (
	"bufio"
	"context"
	"io"
	"regexp"
	"strconv"
	"strings"

	appErrors "github.com/hirepulse/hirepulse-api/pkg/errors"
)

// ParsedResume is the structured record the extraction step produces. All
// fields are best effort; callers fall back to profile data when extraction
// fails or returns partial results.
type ParsedResume struct {
	Name            string   `json:"name,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years"`
	Education       []string `json:"education"`
	Companies       []string `json:"companies"`
}

// ResumeParser extracts structured fields from an uploaded resume.
type ResumeParser interface {
	Extract(ctx context.Context, document io.Reader) (*ParsedResume, error)
}

// HeuristicResumeParser is the default keyword-based extractor. It scans
// plain text for a known skill vocabulary, degree keywords and "N years"
// phrases. Good enough to seed screening scores; a real extraction service
// can be swapped in behind the same interface.
type HeuristicResumeParser struct {
	vocabulary []string
}

// NewHeuristicResumeParser constructs the parser with the default skill
// vocabulary.
func NewHeuristicResumeParser() *HeuristicResumeParser {
	return &HeuristicResumeParser{vocabulary: defaultSkillVocabulary}
}

var defaultSkillVocabulary = []string{
	"go", "golang", "python", "java", "javascript", "typescript", "c++", "rust",
	"sql", "postgresql", "mysql", "mongodb", "redis", "kafka",
	"docker", "kubernetes", "terraform", "aws", "gcp", "azure",
	"react", "angular", "vue", "node", "django", "spring",
	"machine learning", "data analysis", "rest", "grpc", "git", "linux",
}

var (
	yearsPattern  = regexp.MustCompile(`(\d{1,2})(?:\+)?\s*(?:years?|yrs?)`)
	phonePattern  = regexp.MustCompile(`\+?\d[\d\s\-]{8,14}\d`)
	degreeMarkers = []string{"bachelor", "master", "b.tech", "m.tech", "b.sc", "m.sc", "mba", "phd", "degree", "university", "college"}
)

// Extract scans the document text. Read failures are reported as an external
// service failure so callers can degrade to profile-only data.
func (p *HeuristicResumeParser) Extract(ctx context.Context, document io.Reader) (*ParsedResume, error) {
	reader := bufio.NewReader(io.LimitReader(document, 1<<20))
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrExternalService.Code, appErrors.ErrExternalService.Status, "resume extraction failed")
	}
	text := strings.ToLower(string(raw))

	parsed := &ParsedResume{}
	for _, skill := range p.vocabulary {
		if strings.Contains(text, skill) {
			parsed.Skills = append(parsed.Skills, skill)
		}
	}
	if m := yearsPattern.FindStringSubmatch(text); len(m) == 2 {
		if years, err := strconv.Atoi(m[1]); err == nil {
			parsed.ExperienceYears = years
		}
	}
	for _, marker := range degreeMarkers {
		if strings.Contains(text, marker) {
			parsed.Education = append(parsed.Education, marker)
		}
	}
	if m := phonePattern.FindString(text); m != "" {
		parsed.Phone = strings.TrimSpace(m)
	}
	return parsed, nil
}
