package application

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/devlinkhq/devlink/internal/domain/apperr"
	"github.com/devlinkhq/devlink/internal/domain/entity"
	"github.com/devlinkhq/devlink/internal/domain/repository"
)

type mockProfileRepo struct {
	createFn         func(ctx context.Context, p *entity.Profile) error
	getByUserIDFn    func(ctx context.Context, userID string) (*entity.Profile, error)
	getAllFn         func(ctx context.Context) ([]entity.Profile, error)
	saveFn           func(ctx context.Context, p *entity.Profile) error
	deleteByUserIDFn func(ctx context.Context, userID string) error
}

func (m *mockProfileRepo) Create(ctx context.Context, p *entity.Profile) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	p.ID = "profile-1"
	p.Version = 1
	return nil
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID string) (*entity.Profile, error) {
	if m.getByUserIDFn != nil {
		return m.getByUserIDFn(ctx, userID)
	}
	return nil, repository.ErrNotFound
}

func (m *mockProfileRepo) GetAll(ctx context.Context) ([]entity.Profile, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return nil, nil
}

func (m *mockProfileRepo) Save(ctx context.Context, p *entity.Profile) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, p)
	}
	return nil
}

func (m *mockProfileRepo) DeleteByUserID(ctx context.Context, userID string) error {
	if m.deleteByUserIDFn != nil {
		return m.deleteByUserIDFn(ctx, userID)
	}
	return nil
}

func newProfileService(repo repository.ProfileRepository) *ProfileService {
	return NewProfileService(repo, nil, nil, "", nil)
}

func TestSplitSkills(t *testing.T) {
	got := SplitSkills("go, rust ,c++,, ")
	want := []string{"go", "rust", "c++"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestProfileService_Upsert_CreatesWhenMissing(t *testing.T) {
	var created *entity.Profile
	repo := &mockProfileRepo{
		createFn: func(ctx context.Context, p *entity.Profile) error {
			created = p
			p.ID = "profile-1"
			p.Version = 1
			return nil
		},
	}
	svc := newProfileService(repo)

	p, err := svc.Upsert(context.Background(), "user-1", UpsertProfileInput{
		Status: "Developer",
		Skills: "go, sql",
		Social: map[string]string{"twitter": "https://twitter.com/dev", "myspace": "x"},
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if created == nil {
		t.Fatal("expected create to be called")
	}
	if p.Status != "Developer" {
		t.Errorf("status = %q", p.Status)
	}
	if !reflect.DeepEqual(p.Skills, []string{"go", "sql"}) {
		t.Errorf("skills = %v", p.Skills)
	}
	if _, ok := p.Social["myspace"]; ok {
		t.Error("non-whitelisted social key should be dropped")
	}
	if p.Social["twitter"] != "https://twitter.com/dev" {
		t.Errorf("social = %v", p.Social)
	}
}

func TestProfileService_Upsert_MergesExistingFields(t *testing.T) {
	existing := &entity.Profile{
		ID:      "profile-1",
		UserID:  "user-1",
		Company: "OldCo",
		Bio:     "old bio",
		Skills:  []string{"go"},
		Version: 3,
	}
	var saved *entity.Profile
	repo := &mockProfileRepo{
		getByUserIDFn: func(ctx context.Context, userID string) (*entity.Profile, error) {
			return existing, nil
		},
		saveFn: func(ctx context.Context, p *entity.Profile) error {
			saved = p
			return nil
		},
	}
	svc := newProfileService(repo)

	p, err := svc.Upsert(context.Background(), "user-1", UpsertProfileInput{Company: "NewCo"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if saved == nil {
		t.Fatal("expected save to be called")
	}
	if p.Company != "NewCo" {
		t.Errorf("company = %q", p.Company)
	}
	if p.Bio != "old bio" {
		t.Errorf("unsubmitted bio should be untouched, got %q", p.Bio)
	}
	if !reflect.DeepEqual(p.Skills, []string{"go"}) {
		t.Errorf("unsubmitted skills should be untouched, got %v", p.Skills)
	}
}

func TestProfileService_Upsert_VersionConflict(t *testing.T) {
	repo := &mockProfileRepo{
		getByUserIDFn: func(ctx context.Context, userID string) (*entity.Profile, error) {
			return &entity.Profile{ID: "profile-1", UserID: userID, Version: 2}, nil
		},
		saveFn: func(ctx context.Context, p *entity.Profile) error {
			return repository.ErrVersionConflict
		},
	}
	svc := newProfileService(repo)

	_, err := svc.Upsert(context.Background(), "user-1", UpsertProfileInput{Status: "x"})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestProfileService_AddExperience_NewestFirst(t *testing.T) {
	profile := &entity.Profile{
		ID:     "profile-1",
		UserID: "user-1",
		Experience: []entity.Experience{
			{ID: "e1", Title: "First Job"},
		},
		Version: 1,
	}
	repo := &mockProfileRepo{
		getByUserIDFn: func(ctx context.Context, userID string) (*entity.Profile, error) {
			return profile, nil
		},
	}
	svc := newProfileService(repo)

	p, err := svc.AddExperience(context.Background(), "user-1", ExperienceInput{
		Title: "Second Job", Company: "NewCo", From: "2024-01-01",
	})
	if err != nil {
		t.Fatalf("add experience: %v", err)
	}
	if len(p.Experience) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(p.Experience))
	}
	if p.Experience[0].Title != "Second Job" {
		t.Errorf("newest entry should be first, got %q", p.Experience[0].Title)
	}
	if p.Experience[1].ID != "e1" {
		t.Errorf("existing entry should follow, got %q", p.Experience[1].ID)
	}
	if p.Experience[0].ID == "" {
		t.Error("new entry should get an id")
	}
}

func TestProfileService_AddExperience_NoProfile(t *testing.T) {
	svc := newProfileService(&mockProfileRepo{})

	_, err := svc.AddExperience(context.Background(), "user-1", ExperienceInput{
		Title: "Job", Company: "Co", From: "2024-01-01",
	})
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestProfileService_RemoveExperience(t *testing.T) {
	profile := &entity.Profile{
		ID:     "profile-1",
		UserID: "user-1",
		Experience: []entity.Experience{
			{ID: "e1"}, {ID: "e2"}, {ID: "e3"},
		},
		Version: 1,
	}
	repo := &mockProfileRepo{
		getByUserIDFn: func(ctx context.Context, userID string) (*entity.Profile, error) {
			return profile, nil
		},
	}
	svc := newProfileService(repo)

	p, err := svc.RemoveExperience(context.Background(), "user-1", "e2")
	if err != nil {
		t.Fatalf("remove experience: %v", err)
	}
	if len(p.Experience) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(p.Experience))
	}
	if p.Experience[0].ID != "e1" || p.Experience[1].ID != "e3" {
		t.Errorf("order not preserved: %v", p.Experience)
	}
}

func TestProfileService_RemoveExperience_UnknownID(t *testing.T) {
	repo := &mockProfileRepo{
		getByUserIDFn: func(ctx context.Context, userID string) (*entity.Profile, error) {
			return &entity.Profile{ID: "profile-1", UserID: userID}, nil
		},
		saveFn: func(ctx context.Context, p *entity.Profile) error {
			t.Error("save should not be called for unknown entry")
			return nil
		},
	}
	svc := newProfileService(repo)

	_, err := svc.RemoveExperience(context.Background(), "user-1", "nope")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestProfileService_AddEducation_NewestFirst(t *testing.T) {
	profile := &entity.Profile{
		ID:     "profile-1",
		UserID: "user-1",
		Education: []entity.Education{
			{ID: "d1", School: "Old School"},
		},
		Version: 1,
	}
	repo := &mockProfileRepo{
		getByUserIDFn: func(ctx context.Context, userID string) (*entity.Profile, error) {
			return profile, nil
		},
	}
	svc := newProfileService(repo)

	p, err := svc.AddEducation(context.Background(), "user-1", EducationInput{
		School: "New School", Degree: "BSc", FieldOfStudy: "CS", From: "2020-09-01",
	})
	if err != nil {
		t.Fatalf("add education: %v", err)
	}
	if len(p.Education) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(p.Education))
	}
	if p.Education[0].School != "New School" {
		t.Errorf("newest entry should be first, got %q", p.Education[0].School)
	}
}

func TestProfileService_GetMine_NoProfile(t *testing.T) {
	svc := newProfileService(&mockProfileRepo{})

	_, err := svc.GetMine(context.Background(), "user-1")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestProfileService_GithubRepos_UserNotFound(t *testing.T) {
	svc := newProfileService(&mockProfileRepo{})
	svc.Github = repoSourceFunc(func(ctx context.Context, username string) ([]GithubRepo, error) {
		return nil, ErrGithubUserNotFound
	})

	_, err := svc.GithubRepos(context.Background(), "ghost")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

type repoSourceFunc func(ctx context.Context, username string) ([]GithubRepo, error)

func (f repoSourceFunc) Repos(ctx context.Context, username string) ([]GithubRepo, error) {
	return f(ctx, username)
}

func TestProfileService_GetAll_Error(t *testing.T) {
	repo := &mockProfileRepo{
		getAllFn: func(ctx context.Context) ([]entity.Profile, error) {
			return nil, errors.New("boom")
		},
	}
	svc := newProfileService(repo)

	_, err := svc.GetAll(context.Background())
	if !apperr.IsKind(err, apperr.KindServerError) {
		t.Errorf("expected server error, got %v", err)
	}
}
