package service

import (
	"math"
	"strings"

	"github.com/hirepulse/hirepulse-api/internal/models"
)

// Scoring weights. Skill overlap dominates, then experience sufficiency,
// then presence of parsed education data, then location compatibility.
const (
	skillWeight      = 40.0
	experienceWeight = 30.0
	educationWeight  = 20.0
	locationWeight   = 10.0
)

// MatchProfile is the candidate-side input to scoring. It is assembled from
// the stored profile merged with whatever the resume parser extracted.
type MatchProfile struct {
	Skills          []string
	ExperienceYears int
	HasEducation    bool
	Location        string
}

// MatchScore computes a 0-100 compatibility score between a candidate
// profile and a job's requirements. Deterministic, no side effects.
func MatchScore(profile MatchProfile, job *models.Job) float64 {
	score := 0.0

	required := normalizeSkills(job.SkillsRequired)
	if len(required) > 0 {
		matched := 0
		have := normalizeSkills(profile.Skills)
		for skill := range required {
			if _, ok := have[skill]; ok {
				matched++
			}
		}
		score += float64(matched) / float64(len(required)) * skillWeight
	}

	if job.ExperienceRequired > 0 {
		if profile.ExperienceYears >= job.ExperienceRequired {
			score += experienceWeight
		} else if profile.ExperienceYears > 0 {
			score += float64(profile.ExperienceYears) / float64(job.ExperienceRequired) * experienceWeight
		}
	} else {
		score += experienceWeight
	}

	if profile.HasEducation {
		score += educationWeight
	}

	if job.Location != nil && profile.Location != "" &&
		strings.EqualFold(strings.TrimSpace(*job.Location), strings.TrimSpace(profile.Location)) {
		score += locationWeight
	}

	if score > 100 {
		score = 100
	}
	return math.Round(score*100) / 100
}

// ScreeningScore is the deterministic heuristic stamped onto applications at
// submission time: a 50-point base plus capped credit for breadth of skills
// and years of experience, clamped to [0, 100].
func ScreeningScore(skillCount, experienceYears int) int {
	if skillCount > 8 {
		skillCount = 8
	}
	if experienceYears > 10 {
		experienceYears = 10
	}
	score := 50 + skillCount*5 + experienceYears*3
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// MatchSuggestions lists the gaps between a profile and a job, used for
// resume guidance on the candidate portal.
type MatchSuggestions struct {
	MissingSkills []string `json:"missing_skills"`
	ExperienceGap int      `json:"experience_gap"`
	AddEducation  bool     `json:"add_education"`
	MatchedSkills []string `json:"matched_skills"`
}

// Suggestions computes the missing-skill and experience deltas for a
// candidate against a job.
func Suggestions(profile MatchProfile, job *models.Job) MatchSuggestions {
	out := MatchSuggestions{}
	have := normalizeSkills(profile.Skills)
	for _, skill := range job.SkillsRequired {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" {
			continue
		}
		if _, ok := have[key]; ok {
			out.MatchedSkills = append(out.MatchedSkills, skill)
		} else {
			out.MissingSkills = append(out.MissingSkills, skill)
		}
	}
	if gap := job.ExperienceRequired - profile.ExperienceYears; gap > 0 {
		out.ExperienceGap = gap
	}
	out.AddEducation = !profile.HasEducation
	return out
}

func normalizeSkills(skills []string) map[string]struct{} {
	set := make(map[string]struct{}, len(skills))
	for _, skill := range skills {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}
