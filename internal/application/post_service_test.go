package application

import (
	"context"
	"net/http"
	"testing"

	"github.com/devlinkhq/devlink/internal/domain/apperr"
	"github.com/devlinkhq/devlink/internal/domain/entity"
	"github.com/devlinkhq/devlink/internal/domain/repository"
)

type mockPostRepo struct {
	createFn         func(ctx context.Context, p *entity.Post) error
	getByIDFn        func(ctx context.Context, id string) (*entity.Post, error)
	getAllFn         func(ctx context.Context) ([]entity.Post, error)
	saveFn           func(ctx context.Context, p *entity.Post) error
	deleteFn         func(ctx context.Context, id string) error
	deleteByAuthorFn func(ctx context.Context, userID string) error
}

func (m *mockPostRepo) Create(ctx context.Context, p *entity.Post) error {
	if m.createFn != nil {
		return m.createFn(ctx, p)
	}
	p.ID = "post-1"
	p.Version = 1
	return nil
}

func (m *mockPostRepo) GetByID(ctx context.Context, id string) (*entity.Post, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockPostRepo) GetAll(ctx context.Context) ([]entity.Post, error) {
	if m.getAllFn != nil {
		return m.getAllFn(ctx)
	}
	return nil, nil
}

func (m *mockPostRepo) Save(ctx context.Context, p *entity.Post) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, p)
	}
	return nil
}

func (m *mockPostRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPostRepo) DeleteByAuthor(ctx context.Context, userID string) error {
	if m.deleteByAuthorFn != nil {
		return m.deleteByAuthorFn(ctx, userID)
	}
	return nil
}

type mockUserRepo struct {
	createFn     func(ctx context.Context, u *entity.User) error
	getByIDFn    func(ctx context.Context, id string) (*entity.User, error)
	getByEmailFn func(ctx context.Context, email string) (*entity.User, error)
	updateFn     func(ctx context.Context, u *entity.User) error
	deleteFn     func(ctx context.Context, id string) error
}

func (m *mockUserRepo) Create(ctx context.Context, u *entity.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, u)
	}
	u.ID = "user-1"
	return nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepo) Update(ctx context.Context, u *entity.User) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, u)
	}
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func TestPostService_Create_SnapshotsAuthor(t *testing.T) {
	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id string) (*entity.User, error) {
			return &entity.User{ID: id, Name: "Ada", AvatarURL: "https://a/ada.png"}, nil
		},
	}
	svc := NewPostService(&mockPostRepo{}, users, nil)

	p, err := svc.Create(context.Background(), "user-1", "hello world")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Name != "Ada" || p.Avatar != "https://a/ada.png" {
		t.Errorf("author snapshot missing: name=%q avatar=%q", p.Name, p.Avatar)
	}
	if p.Likes == nil || p.Comments == nil {
		t.Error("likes and comments should be empty slices, not nil")
	}
}

func TestPostService_Like(t *testing.T) {
	post := &entity.Post{ID: "post-1", UserID: "author", Likes: []entity.Like{}, Version: 1}
	posts := &mockPostRepo{
		getByIDFn: func(ctx context.Context, id string) (*entity.Post, error) {
			return post, nil
		},
	}
	svc := NewPostService(posts, &mockUserRepo{}, nil)

	likes, err := svc.Like(context.Background(), "post-1", "voter-1")
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if len(likes) != 1 || likes[0].UserID != "voter-1" {
		t.Errorf("likes = %v", likes)
	}
}

func TestPostService_Like_Duplicate(t *testing.T) {
	post := &entity.Post{
		ID:     "post-1",
		UserID: "author",
		Likes:  []entity.Like{{UserID: "voter-1"}},
	}
	posts := &mockPostRepo{
		getByIDFn: func(ctx context.Context, id string) (*entity.Post, error) {
			return post, nil
		},
		saveFn: func(ctx context.Context, p *entity.Post) error {
			t.Error("save should not be called on duplicate like")
			return nil
		},
	}
	svc := NewPostService(posts, &mockUserRepo{}, nil)

	_, err := svc.Like(context.Background(), "post-1", "voter-1")
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if got := apperr.From(err).HTTPStatus(); got != http.StatusBadRequest {
		t.Errorf("duplicate like should map to 400, got %d", got)
	}
}

func TestPostService_Unlike_Idempotent(t *testing.T) {
	post := &entity.Post{
		ID:     "post-1",
		UserID: "author",
		Likes:  []entity.Like{{UserID: "other"}},
	}
	saved := false
	posts := &mockPostRepo{
		getByIDFn: func(ctx context.Context, id string) (*entity.Post, error) {
			return post, nil
		},
		saveFn: func(ctx context.Context, p *entity.Post) error {
			saved = true
			return nil
		},
	}
	svc := NewPostService(posts, &mockUserRepo{}, nil)

	likes, err := svc.Unlike(context.Background(), "post-1", "never-liked")
	if err != nil {
		t.Fatalf("unlike by non-liker should succeed, got %v", err)
	}
	if len(likes) != 1 || likes[0].UserID != "other" {
		t.Errorf("likes = %v", likes)
	}
	if !saved {
		t.Error("unlike always saves")
	}
}

func TestPostService_Delete_NotAuthor(t *testing.T) {
	posts := &mockPostRepo{
		getByIDFn: func(ctx context.Context, id string) (*entity.Post, error) {
			return &entity.Post{ID: id, UserID: "author"}, nil
		},
		deleteFn: func(ctx context.Context, id string) error {
			t.Error("delete should not be called")
			return nil
		},
	}
	svc := NewPostService(posts, &mockUserRepo{}, nil)

	err := svc.Delete(context.Background(), "post-1", "someone-else")
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("expected forbidden, got %v", err)
	}
}

func TestPostService_Delete_Missing(t *testing.T) {
	svc := NewPostService(&mockPostRepo{}, &mockUserRepo{}, nil)

	err := svc.Delete(context.Background(), "ghost", "user-1")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestPostService_AddComment_NewestFirst(t *testing.T) {
	post := &entity.Post{
		ID:       "post-1",
		UserID:   "author",
		Comments: []entity.Comment{{ID: "c1", Text: "first"}},
	}
	posts := &mockPostRepo{
		getByIDFn: func(ctx context.Context, id string) (*entity.Post, error) {
			return post, nil
		},
	}
	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id string) (*entity.User, error) {
			return &entity.User{ID: id, Name: "Ada"}, nil
		},
	}
	svc := NewPostService(posts, users, nil)

	comments, err := svc.AddComment(context.Background(), "post-1", "user-1", "second")
	if err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(comments))
	}
	if comments[0].Text != "second" {
		t.Errorf("newest comment should be first, got %q", comments[0].Text)
	}
	if comments[0].Name != "Ada" {
		t.Errorf("commenter snapshot missing, got %q", comments[0].Name)
	}
}

func TestPostService_RemoveComment_NotAuthor(t *testing.T) {
	post := &entity.Post{
		ID:       "post-1",
		UserID:   "author",
		Comments: []entity.Comment{{ID: "c1", UserID: "commenter"}},
	}
	posts := &mockPostRepo{
		getByIDFn: func(ctx context.Context, id string) (*entity.Post, error) {
			return post, nil
		},
	}
	svc := NewPostService(posts, &mockUserRepo{}, nil)

	_, err := svc.RemoveComment(context.Background(), "post-1", "c1", "someone-else")
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Errorf("expected forbidden, got %v", err)
	}
}

func TestPostService_Like_VersionConflict(t *testing.T) {
	posts := &mockPostRepo{
		getByIDFn: func(ctx context.Context, id string) (*entity.Post, error) {
			return &entity.Post{ID: id, UserID: "author", Version: 1}, nil
		},
		saveFn: func(ctx context.Context, p *entity.Post) error {
			return repository.ErrVersionConflict
		},
	}
	svc := NewPostService(posts, &mockUserRepo{}, nil)

	_, err := svc.Like(context.Background(), "post-1", "voter-1")
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if got := apperr.From(err).HTTPStatus(); got != http.StatusConflict {
		t.Errorf("stale save should map to 409, got %d", got)
	}
}
