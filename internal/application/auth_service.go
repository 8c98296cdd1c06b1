package application

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/devlinkhq/devlink/internal/domain/apperr"
	"github.com/devlinkhq/devlink/internal/domain/entity"
	"github.com/devlinkhq/devlink/internal/domain/repository"
	"github.com/devlinkhq/devlink/pkg/helpers"
	"github.com/devlinkhq/devlink/pkg/mailer"
)

// AuthService covers the identity lifecycle: registration, credential
// verification, token issuance, and account deletion (which cascades to the
// owned profile and posts).
type AuthService struct {
	Users     repository.UserRepository
	Profiles  repository.ProfileRepository
	Posts     repository.PostRepository
	JWT       *helpers.JWTManager
	Logger    *logrus.Logger
	Pub       *helpers.RabbitPublisher
	GCS       *storage.Client
	GCSBucket string
}

func NewAuthService(users repository.UserRepository, profiles repository.ProfileRepository, posts repository.PostRepository, jwt *helpers.JWTManager, logger *logrus.Logger, pub *helpers.RabbitPublisher, gcs *storage.Client, gcsBucket string) *AuthService {
	return &AuthService{
		Users:     users,
		Profiles:  profiles,
		Posts:     posts,
		JWT:       jwt,
		Logger:    logger,
		Pub:       pub,
		GCS:       gcs,
		GCSBucket: gcsBucket,
	}
}

// AuthResult bundles the identity with its freshly minted token.
type AuthResult struct {
	User        *entity.User
	Token       string
	TokenExpiry time.Time
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (*AuthResult, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, apperr.Internal("hash password", err)
	}

	u := &entity.User{
		Name:      name,
		Email:     email,
		Password:  hash,
		AvatarURL: helpers.GravatarURL(email),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperr.Conflict("email already registered")
		}
		return nil, apperr.Internal("create user", err)
	}

	token, exp, err := s.JWT.Issue(u.ID)
	if err != nil {
		return nil, apperr.Internal("issue token", err)
	}

	s.enqueueWelcomeEmail(ctx, u)

	return &AuthResult{User: u, Token: token, TokenExpiry: exp}, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		// Same answer for unknown email and wrong password.
		return nil, apperr.Unauthenticated("invalid credentials")
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, apperr.Unauthenticated("invalid credentials")
	}

	token, exp, err := s.JWT.Issue(u.ID)
	if err != nil {
		return nil, apperr.Internal("issue token", err)
	}
	return &AuthResult{User: u, Token: token, TokenExpiry: exp}, nil
}

// Me returns the authenticated identity. A valid token for a deleted user
// verifies fine at the gate, so absence is still possible here.
func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal("load user", err)
	}
	return u, nil
}

// DeleteAccount removes the user together with their profile and posts.
func (s *AuthService) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.Posts.DeleteByAuthor(ctx, userID); err != nil {
		return apperr.Internal("delete posts", err)
	}
	if err := s.Profiles.DeleteByUserID(ctx, userID); err != nil {
		return apperr.Internal("delete profile", err)
	}
	if err := s.Users.Delete(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal("delete user", err)
	}
	return nil
}

// UploadAvatar stores the image in GCS and points the identity at it.
func (s *AuthService) UploadAvatar(ctx context.Context, userID string, r io.Reader, filename, contentType string) (string, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", apperr.NotFound("user not found")
		}
		return "", apperr.Internal("load user", err)
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return "", apperr.Internal("gcs not configured", nil)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", userID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return "", apperr.Internal("upload avatar", err)
	}

	u.AvatarURL = url
	if err := s.Users.Update(ctx, u); err != nil {
		return "", apperr.Internal("update user", err)
	}
	return url, nil
}

func (s *AuthService) enqueueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: mailer.Welcome,
		Data:     map[string]any{"Name": u.Name},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
	}
}
