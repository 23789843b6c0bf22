package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hirepulse/hirepulse-api/internal/models"
)

func TestMatchScore(t *testing.T) {
	tests := []struct {
		name    string
		profile MatchProfile
		job     models.Job
		want    float64
	}{
		{
			name: "partial skills and experience",
			profile: MatchProfile{
				Skills:          []string{"go", "postgres", "docker"},
				ExperienceYears: 4,
			},
			job: models.Job{
				SkillsRequired:     models.StringList{"go", "postgres", "docker", "kubernetes", "redis", "kafka"},
				ExperienceRequired: 5,
			},
			want: 44.0,
		},
		{
			name: "full match with education and location",
			profile: MatchProfile{
				Skills:          []string{"Go", "Postgres"},
				ExperienceYears: 6,
				HasEducation:    true,
				Location:        "Bengaluru",
			},
			job: models.Job{
				SkillsRequired:     models.StringList{"go", "postgres"},
				ExperienceRequired: 5,
				Location:           strPtr("bengaluru"),
			},
			want: 100.0,
		},
		{
			name:    "empty profile against demanding job",
			profile: MatchProfile{},
			job: models.Job{
				SkillsRequired:     models.StringList{"go"},
				ExperienceRequired: 5,
			},
			want: 0.0,
		},
		{
			name: "no experience requirement grants full experience credit",
			profile: MatchProfile{
				Skills: []string{"go"},
			},
			job: models.Job{
				SkillsRequired: models.StringList{"go"},
			},
			want: 70.0,
		},
		{
			name: "skill match is case insensitive",
			profile: MatchProfile{
				Skills:          []string{"GO", "  Postgres "},
				ExperienceYears: 10,
			},
			job: models.Job{
				SkillsRequired:     models.StringList{"go", "postgres"},
				ExperienceRequired: 3,
			},
			want: 70.0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, MatchScore(tt.profile, &tt.job), 0.001)
		})
	}
}

func TestScreeningScore(t *testing.T) {
	tests := []struct {
		name   string
		skills int
		years  int
		want   int
	}{
		{"base score with nothing", 0, 0, 50},
		{"typical profile", 4, 3, 79},
		{"skill credit caps at eight", 20, 0, 90},
		{"experience credit caps at ten", 0, 25, 80},
		{"overall clamp at hundred", 20, 25, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ScreeningScore(tt.skills, tt.years))
		})
	}
}

func TestSuggestions(t *testing.T) {
	job := &models.Job{
		SkillsRequired:     models.StringList{"go", "kafka", "redis"},
		ExperienceRequired: 7,
	}
	got := Suggestions(MatchProfile{Skills: []string{"go"}, ExperienceYears: 4}, job)

	assert.Equal(t, []string{"go"}, got.MatchedSkills)
	assert.Equal(t, []string{"kafka", "redis"}, got.MissingSkills)
	assert.Equal(t, 3, got.ExperienceGap)
	assert.True(t, got.AddEducation)
}
