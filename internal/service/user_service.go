package service

import (
	"context"
	"io"

	"snapfeed/internal/cache"
	"snapfeed/internal/models"
	"snapfeed/internal/pagination"
	"snapfeed/internal/repository"
	"snapfeed/internal/storage"
	"snapfeed/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost matches the cost the original accounts were hashed with, so
// existing hashes keep verifying.
const bcryptCost = 12

// UserService handles account lifecycle and profile reads.
type UserService struct {
	userRepo repository.UserRepository
	postRepo repository.PostRepository
	blobs    storage.BlobStore
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, postRepo repository.PostRepository, blobs storage.BlobStore) *UserService {
	return &UserService{userRepo: userRepo, postRepo: postRepo, blobs: blobs}
}

type SignupInput struct {
	Nickname  string
	Email     string
	Password  string
	Image     io.Reader
	ImageName string
}

type UpdateAccountInput struct {
	UserID    uint
	Nickname  *string
	Email     *string
	Image     io.Reader
	ImageName string
}

// Signup validates the account fields, rejects taken nicknames and emails,
// stores the optional avatar, and creates the user with a hashed password.
func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	if err := validation.ValidateNickname(in.Nickname); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	if existing, err := s.userRepo.GetByNickname(ctx, in.Nickname); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Nickname already in use")
	}
	if existing, err := s.userRepo.GetByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, models.NewConflictError("Email already in use")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	var imageKey string
	if in.Image != nil {
		imageKey = newBlobKey(in.ImageName)
		if err := s.blobs.Save(ctx, imageKey, in.Image); err != nil {
			return nil, models.NewInternalError(err)
		}
	}

	user := &models.User{
		Nickname: in.Nickname,
		Email:    in.Email,
		Password: string(hash),
		Image:    imageKey,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		cleanupBlob(ctx, s.blobs, imageKey)
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and returns the account. An unknown nickname
// and a wrong password fail differently so the client can distinguish them.
func (s *UserService) Login(ctx context.Context, nickname, password string) (*models.User, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	user, err := s.userRepo.GetByNickname(ctx, nickname)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", 0)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}

// GetProfile returns the account with its posts, newest first.
func (s *UserService) GetProfile(ctx context.Context, nickname string) (*models.User, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()
	return s.userRepo.GetProfile(ctx, nickname)
}

// ListLikedPosts returns the pages of posts the named user has liked.
func (s *UserService) ListLikedPosts(ctx context.Context, nickname string, page int) ([]*models.Post, pagination.Meta, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	user, err := s.userRepo.GetByNickname(ctx, nickname)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	if user == nil {
		return nil, pagination.Meta{}, models.NewNotFoundError("User", 0)
	}

	page = pagination.Normalize(page)
	total, err := s.postRepo.CountLikedBy(ctx, user.ID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	posts, err := s.postRepo.ListLikedBy(ctx, user.ID, pagination.LikedPostsPerPage, pagination.Offset(page, pagination.LikedPostsPerPage))
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return posts, pagination.NewMeta(page, pagination.LikedPostsPerPage, total), nil
}

// UpdateAccount applies the provided fields to the caller's account. Nickname
// and email changes re-run the uniqueness checks; a new avatar replaces the
// old blob.
func (s *UserService) UpdateAccount(ctx context.Context, in UpdateAccountInput) (*models.User, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Nickname != nil && *in.Nickname != user.Nickname {
		if err := validation.ValidateNickname(*in.Nickname); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if existing, err := s.userRepo.GetByNickname(ctx, *in.Nickname); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, models.NewConflictError("Nickname already in use")
		}
		user.Nickname = *in.Nickname
	}
	if in.Email != nil && *in.Email != user.Email {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		if existing, err := s.userRepo.GetByEmail(ctx, *in.Email); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, models.NewConflictError("Email already in use")
		}
		user.Email = *in.Email
	}

	oldImage := user.Image
	var newImage string
	if in.Image != nil {
		newImage = newBlobKey(in.ImageName)
		if err := s.blobs.Save(ctx, newImage, in.Image); err != nil {
			return nil, models.NewInternalError(err)
		}
		user.Image = newImage
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		cleanupBlob(ctx, s.blobs, newImage)
		return nil, err
	}
	cache.InvalidateUser(ctx, user.ID)
	if newImage != "" && oldImage != "" {
		cleanupBlob(ctx, s.blobs, oldImage)
	}
	return user, nil
}
