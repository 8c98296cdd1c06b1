package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/devlinkhq/devlink/internal/domain/apperr"
	"github.com/devlinkhq/devlink/internal/domain/entity"
	"github.com/devlinkhq/devlink/internal/domain/repository"
)

// socialKeys is the fixed whitelist for the social link map; anything else
// submitted is dropped, not rejected.
var socialKeys = map[string]bool{
	"youtube":   true,
	"twitter":   true,
	"facebook":  true,
	"linkedin":  true,
	"instagram": true,
}

// ProfileService applies create/update operations to profile aggregates,
// including the ordered experience and education sub-collections.
type ProfileService struct {
	Profiles        repository.ProfileRepository
	Logger          *logrus.Logger
	ES              *elasticsearch.Client
	ESProfilesIndex string
	Github          RepoSource
}

func NewProfileService(profiles repository.ProfileRepository, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, github RepoSource) *ProfileService {
	return &ProfileService{
		Profiles:        profiles,
		Logger:          logger,
		ES:              es,
		ESProfilesIndex: esIndex,
		Github:          github,
	}
}

// UpsertProfileInput carries the scalar whitelist plus skills and social.
// Empty fields are "not submitted" and leave prior values untouched.
type UpsertProfileInput struct {
	Company        string
	Website        string
	Location       string
	Bio            string
	Status         string
	GithubUsername string
	Skills         string // comma-delimited
	Social         map[string]string
}

// Upsert merges the submitted fields into the caller's profile, creating it
// on first call. One operation, not separate create/update endpoints.
func (s *ProfileService) Upsert(ctx context.Context, userID string, in UpsertProfileInput) (*entity.Profile, error) {
	p, err := s.Profiles.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		applyProfileFields(p, in)
		if err := s.Profiles.Save(ctx, p); err != nil {
			return nil, saveErr("save profile", err)
		}
	case errors.Is(err, repository.ErrNotFound):
		p = &entity.Profile{UserID: userID}
		applyProfileFields(p, in)
		if err := s.Profiles.Create(ctx, p); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				// Concurrent first-time upsert won the insert race.
				return nil, apperr.Conflict("profile was created concurrently")
			}
			return nil, apperr.Internal("create profile", err)
		}
	default:
		return nil, apperr.Internal("load profile", err)
	}

	s.indexProfile(ctx, p)
	return p, nil
}

func applyProfileFields(p *entity.Profile, in UpsertProfileInput) {
	if in.Company != "" {
		p.Company = in.Company
	}
	if in.Website != "" {
		p.Website = in.Website
	}
	if in.Location != "" {
		p.Location = in.Location
	}
	if in.Bio != "" {
		p.Bio = in.Bio
	}
	if in.Status != "" {
		p.Status = in.Status
	}
	if in.GithubUsername != "" {
		p.GithubUsername = in.GithubUsername
	}
	if in.Skills != "" {
		p.Skills = SplitSkills(in.Skills)
	}
	if len(in.Social) > 0 {
		social := make(map[string]string, len(in.Social))
		for k, v := range in.Social {
			if socialKeys[k] && v != "" {
				social[k] = v
			}
		}
		p.Social = social
	}
}

// SplitSkills turns "go, rust, c++" into ["go","rust","c++"].
func SplitSkills(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (s *ProfileService) GetMine(ctx context.Context, userID string) (*entity.Profile, error) {
	return s.getByUser(ctx, userID)
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	return s.getByUser(ctx, userID)
}

func (s *ProfileService) getByUser(ctx context.Context, userID string) (*entity.Profile, error) {
	p, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("no profile for this user")
		}
		return nil, apperr.Internal("load profile", err)
	}
	return p, nil
}

func (s *ProfileService) GetAll(ctx context.Context) ([]entity.Profile, error) {
	profiles, err := s.Profiles.GetAll(ctx)
	if err != nil {
		return nil, apperr.Internal("list profiles", err)
	}
	return profiles, nil
}

// ExperienceInput: title, company, and from are enforced at binding time.
type ExperienceInput struct {
	Title       string
	Company     string
	Location    string
	From        string
	To          string
	Current     bool
	Description string
}

// AddExperience inserts the entry at the front of the sequence: newest
// entries sort first, always. A profile must already exist.
func (s *ProfileService) AddExperience(ctx context.Context, userID string, in ExperienceInput) (*entity.Profile, error) {
	p, err := s.getByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	exp := entity.Experience{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
		AddedAt:     &now,
	}
	p.Experience = append([]entity.Experience{exp}, p.Experience...)

	if err := s.Profiles.Save(ctx, p); err != nil {
		return nil, saveErr("save profile", err)
	}
	s.indexProfile(ctx, p)
	return p, nil
}

// RemoveExperience deletes the entry with the given id, preserving the
// relative order of the rest. An unknown id is NotFound, never a blind
// removal at a bogus index.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID string) (*entity.Profile, error) {
	p, err := s.getByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, e := range p.Experience {
		if e.ID == expID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperr.NotFound("experience entry not found")
	}
	p.Experience = append(p.Experience[:idx], p.Experience[idx+1:]...)

	if err := s.Profiles.Save(ctx, p); err != nil {
		return nil, saveErr("save profile", err)
	}
	s.indexProfile(ctx, p)
	return p, nil
}

// EducationInput: school, degree, field_of_study, and from are enforced at
// binding time.
type EducationInput struct {
	School       string
	Degree       string
	FieldOfStudy string
	From         string
	To           string
	Current      bool
	Description  string
}

func (s *ProfileService) AddEducation(ctx context.Context, userID string, in EducationInput) (*entity.Profile, error) {
	p, err := s.getByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	edu := entity.Education{
		ID:           uuid.NewString(),
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
		AddedAt:      &now,
	}
	p.Education = append([]entity.Education{edu}, p.Education...)

	if err := s.Profiles.Save(ctx, p); err != nil {
		return nil, saveErr("save profile", err)
	}
	s.indexProfile(ctx, p)
	return p, nil
}

func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (*entity.Profile, error) {
	p, err := s.getByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, e := range p.Education {
		if e.ID == eduID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperr.NotFound("education entry not found")
	}
	p.Education = append(p.Education[:idx], p.Education[idx+1:]...)

	if err := s.Profiles.Save(ctx, p); err != nil {
		return nil, saveErr("save profile", err)
	}
	s.indexProfile(ctx, p)
	return p, nil
}

// GithubRepos proxies the external repo lookup for a profile page.
func (s *ProfileService) GithubRepos(ctx context.Context, username string) ([]GithubRepo, error) {
	if s.Github == nil {
		return nil, apperr.Internal("github source not configured", nil)
	}
	repos, err := s.Github.Repos(ctx, username)
	if err != nil {
		if errors.Is(err, ErrGithubUserNotFound) {
			return nil, apperr.NotFound("no github profile found")
		}
		return nil, apperr.Internal("github lookup", err)
	}
	return repos, nil
}

func saveErr(msg string, err error) error {
	if errors.Is(err, repository.ErrVersionConflict) {
		return apperr.Conflict("profile was modified concurrently, retry")
	}
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.NotFound("no profile for this user")
	}
	return apperr.Internal(msg, err)
}

func (s *ProfileService) indexProfile(ctx context.Context, p *entity.Profile) {
	if s.ES == nil || s.ESProfilesIndex == "" {
		return
	}
	doc := map[string]any{
		"id":       p.ID,
		"user_id":  p.UserID,
		"name":     p.UserName,
		"status":   p.Status,
		"company":  p.Company,
		"location": p.Location,
		"bio":      p.Bio,
		"skills":   p.Skills,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESProfilesIndex, DocumentID: p.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("profile_id", p.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("profile_id", p.ID).Warn("es index response error")
	}
}

// Search runs a simple multi_match over the indexed profile fields.
func (s *ProfileService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESProfilesIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"name^2", "skills", "status", "company", "location", "bio"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESProfilesIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, apperr.Internal("search profiles", err)
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, apperr.Internal("decode search response", err)
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
