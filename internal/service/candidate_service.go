package service

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/hirepulse/hirepulse-api/internal/dto"
	"github.com/hirepulse/hirepulse-api/internal/models"
	appErrors "github.com/hirepulse/hirepulse-api/pkg/errors"
	"github.com/hirepulse/hirepulse-api/pkg/storage"
)

type candidateStore interface {
	candidateReader
	List(ctx context.Context, filter dto.CandidateQuery) ([]models.Candidate, int, error)
	Update(ctx context.Context, id int64, update models.CandidateUpdate) error
	AddDocument(ctx context.Context, doc *models.CandidateDocument) error
	ListDocuments(ctx context.Context, candidateID int64) ([]models.CandidateDocument, error)
}

// CandidateService owns candidate profiles, documents and resume intake.
type CandidateService struct {
	store     candidateStore
	jobs      jobReader
	parser    ResumeParser
	files     *storage.LocalStorage
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCandidateService constructs the service.
func NewCandidateService(store candidateStore, jobs jobReader, parser ResumeParser, files *storage.LocalStorage, validate *validator.Validate, logger *zap.Logger) *CandidateService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CandidateService{store: store, jobs: jobs, parser: parser, files: files, validator: validate, logger: logger}
}

// GetByUserID fetches the profile owned by a portal account.
func (s *CandidateService) GetByUserID(ctx context.Context, userID int64) (*models.Candidate, error) {
	candidate, err := s.store.GetByUserID(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch candidate")
	}
	if candidate == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "candidate profile not found")
	}
	return candidate, nil
}

// Get fetches one candidate by id.
func (s *CandidateService) Get(ctx context.Context, id int64) (*models.Candidate, error) {
	candidate, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch candidate")
	}
	if candidate == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "candidate not found")
	}
	return candidate, nil
}

// List returns candidates matching the filter.
func (s *CandidateService) List(ctx context.Context, filter dto.CandidateQuery) ([]models.Candidate, int, error) {
	candidates, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list candidates")
	}
	return candidates, total, nil
}

// UpdateProfile applies a partial profile edit for the portal account owner.
func (s *CandidateService) UpdateProfile(ctx context.Context, userID int64, req dto.UpdateCandidateProfileRequest) (*models.Candidate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid profile payload")
	}
	candidate, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	update := models.CandidateUpdate{
		Phone:           req.Phone,
		Address:         req.Address,
		City:            req.City,
		Country:         req.Country,
		ExperienceYears: req.ExperienceYears,
		CurrentCompany:  req.CurrentCompany,
		CurrentPosition: req.CurrentPosition,
		ExpectedCTC:     req.ExpectedCTC,
		NoticePeriod:    req.NoticePeriod,
	}
	if req.Skills != nil {
		update.Skills = models.StringList(req.Skills)
	}
	if err := s.store.Update(ctx, candidate.ID, update); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update profile")
	}
	return s.Get(ctx, candidate.ID)
}

// UploadResume stores the document, runs extraction and merges the parsed
// fields into the profile. Extraction failure degrades gracefully: the file
// is kept and the profile is left as-is.
func (s *CandidateService) UploadResume(ctx context.Context, userID int64, fileName string, data []byte) (*models.CandidateDocument, *ParsedResume, error) {
	candidate, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	stored := fmt.Sprintf("resumes/%d_%s", candidate.ID, sanitizeFileName(fileName))
	relPath, err := s.files.Save(stored, data)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store resume")
	}

	size := int64(len(data))
	doc := &models.CandidateDocument{
		CandidateID:  candidate.ID,
		DocumentType: "resume",
		DocumentURL:  relPath,
		FileName:     fileName,
		FileSize:     &size,
	}
	if err := s.store.AddDocument(ctx, doc); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record resume")
	}

	parsed, err := s.parser.Extract(ctx, bytes.NewReader(data))
	if err != nil {
		s.logger.Warn("resume extraction failed, keeping profile as-is",
			zap.Int64("candidate_id", candidate.ID), zap.Error(err))
		return doc, nil, nil
	}

	update := models.CandidateUpdate{ResumeURL: &relPath}
	if len(parsed.Skills) > 0 {
		update.Skills = mergeSkills(candidate.Skills, parsed.Skills)
	}
	if parsed.ExperienceYears > candidate.ExperienceYears {
		update.ExperienceYears = &parsed.ExperienceYears
	}
	if parsed.Phone != "" && candidate.Phone == nil {
		update.Phone = &parsed.Phone
	}
	if err := s.store.Update(ctx, candidate.ID, update); err != nil {
		s.logger.Warn("failed to merge parsed resume into profile",
			zap.Int64("candidate_id", candidate.ID), zap.Error(err))
	}
	return doc, parsed, nil
}

// Documents returns the candidate's uploaded files.
func (s *CandidateService) Documents(ctx context.Context, userID int64) ([]models.CandidateDocument, error) {
	candidate, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	docs, err := s.store.ListDocuments(ctx, candidate.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list documents")
	}
	return docs, nil
}

// ResumeSuggestions computes skill and experience gaps against a job, used
// by the portal to guide resume improvements.
func (s *CandidateService) ResumeSuggestions(ctx context.Context, userID, jobID int64) (*MatchSuggestions, error) {
	candidate, err := s.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobs.GetByID(ctx, nil, jobID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch job")
	}
	if job == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "job not found")
	}

	profile := MatchProfile{
		Skills:          candidate.Skills,
		ExperienceYears: candidate.ExperienceYears,
		HasEducation:    candidate.ResumeURL != nil,
	}
	if candidate.City != nil {
		profile.Location = *candidate.City
	}
	suggestions := Suggestions(profile, job)
	return &suggestions, nil
}

func mergeSkills(existing models.StringList, parsed []string) models.StringList {
	seen := make(map[string]struct{}, len(existing))
	merged := make(models.StringList, 0, len(existing)+len(parsed))
	for _, skill := range existing {
		seen[strings.ToLower(skill)] = struct{}{}
		merged = append(merged, skill)
	}
	for _, skill := range parsed {
		if _, ok := seen[strings.ToLower(skill)]; !ok {
			merged = append(merged, skill)
		}
	}
	return merged
}

func sanitizeFileName(name string) string {
	base := filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
}
