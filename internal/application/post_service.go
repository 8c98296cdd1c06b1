package application

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/devlinkhq/devlink/internal/domain/apperr"
	"github.com/devlinkhq/devlink/internal/domain/entity"
	"github.com/devlinkhq/devlink/internal/domain/repository"
)

// PostService applies mutations to post aggregates: likes, comments, and
// deletion. Each operation is a single load-then-save on one post, with the
// repository's version check catching concurrent writers.
type PostService struct {
	Posts  repository.PostRepository
	Users  repository.UserRepository
	Logger *logrus.Logger
}

func NewPostService(posts repository.PostRepository, users repository.UserRepository, logger *logrus.Logger) *PostService {
	return &PostService{Posts: posts, Users: users, Logger: logger}
}

// Create snapshots the author's name and avatar onto the post; the snapshot
// is not updated if the author later changes either.
func (s *PostService) Create(ctx context.Context, userID, text string) (*entity.Post, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("load user", err)
	}

	p := &entity.Post{
		UserID:   userID,
		Text:     text,
		Name:     u.Name,
		Avatar:   u.AvatarURL,
		Likes:    []entity.Like{},
		Comments: []entity.Comment{},
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		return nil, apperr.Internal("create post", err)
	}
	return p, nil
}

func (s *PostService) List(ctx context.Context) ([]entity.Post, error) {
	posts, err := s.Posts.GetAll(ctx)
	if err != nil {
		return nil, apperr.Internal("list posts", err)
	}
	return posts, nil
}

func (s *PostService) Get(ctx context.Context, postID string) (*entity.Post, error) {
	return s.load(ctx, postID)
}

// Delete removes the aggregate entirely. Only the author may do it.
func (s *PostService) Delete(ctx context.Context, postID, requesterID string) error {
	p, err := s.load(ctx, postID)
	if err != nil {
		return err
	}
	if p.UserID != requesterID {
		return apperr.Forbidden("not authorized to delete this post")
	}
	if err := s.Posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("post not found")
		}
		return apperr.Internal("delete post", err)
	}
	return nil
}

// Like is deliberately not idempotent: a second like by the same voter is
// rejected so the likes set never holds a voter twice. Callers treat the
// rejection as "already in desired state".
func (s *PostService) Like(ctx context.Context, postID, voterID string) ([]entity.Like, error) {
	p, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.LikedBy(voterID) {
		return nil, apperr.Conflict("post already liked").WithStatus(http.StatusBadRequest)
	}
	p.Likes = append(p.Likes, entity.Like{UserID: voterID})

	if err := s.savePost(ctx, p); err != nil {
		return nil, err
	}
	return p.Likes, nil
}

// Unlike removes every occurrence of the voter and always succeeds, even
// when the voter had never liked the post.
func (s *PostService) Unlike(ctx context.Context, postID, voterID string) ([]entity.Like, error) {
	p, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	kept := p.Likes[:0]
	for _, l := range p.Likes {
		if l.UserID != voterID {
			kept = append(kept, l)
		}
	}
	p.Likes = kept

	if err := s.savePost(ctx, p); err != nil {
		return nil, err
	}
	return p.Likes, nil
}

// AddComment inserts at the front, newest first.
func (s *PostService) AddComment(ctx context.Context, postID, userID, text string) ([]entity.Comment, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("load user", err)
	}
	p, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}

	c := entity.Comment{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		Name:      u.Name,
		Avatar:    u.AvatarURL,
		CreatedAt: time.Now(),
	}
	p.Comments = append([]entity.Comment{c}, p.Comments...)

	if err := s.savePost(ctx, p); err != nil {
		return nil, err
	}
	return p.Comments, nil
}

// RemoveComment deletes the comment with the given id; only its author may.
func (s *PostService) RemoveComment(ctx context.Context, postID, commentID, requesterID string) ([]entity.Comment, error) {
	p, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i, c := range p.Comments {
		if c.ID == commentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperr.NotFound("comment not found")
	}
	if p.Comments[idx].UserID != requesterID {
		return nil, apperr.Forbidden("not authorized to delete this comment")
	}
	p.Comments = append(p.Comments[:idx], p.Comments[idx+1:]...)

	if err := s.savePost(ctx, p); err != nil {
		return nil, err
	}
	return p.Comments, nil
}

func (s *PostService) load(ctx context.Context, postID string) (*entity.Post, error) {
	p, err := s.Posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("post not found")
		}
		return nil, apperr.Internal("load post", err)
	}
	return p, nil
}

func (s *PostService) savePost(ctx context.Context, p *entity.Post) error {
	if err := s.Posts.Save(ctx, p); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return apperr.Conflict("post was modified concurrently, retry")
		}
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("post not found")
		}
		return apperr.Internal("save post", err)
	}
	return nil
}
