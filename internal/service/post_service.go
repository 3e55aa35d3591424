package service

import (
	"context"
	"io"

	"snapfeed/internal/cache"
	"snapfeed/internal/models"
	"snapfeed/internal/pagination"
	"snapfeed/internal/repository"
	"snapfeed/internal/storage"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostService coordinates post reads and the multi-record writes around
// posts: creation with blob upload, cascading deletion, and like toggling.
type PostService struct {
	db       *gorm.DB
	postRepo repository.PostRepository
	userRepo repository.UserRepository
	blobs    storage.BlobStore
}

// NewPostService creates a new PostService.
func NewPostService(db *gorm.DB, postRepo repository.PostRepository, userRepo repository.UserRepository, blobs storage.BlobStore) *PostService {
	return &PostService{
		db:       db,
		postRepo: postRepo,
		userRepo: userRepo,
		blobs:    blobs,
	}
}

// CreatePostInput carries the fields for a new post. Image is required and is
// streamed to the blob store before the record is committed.
type CreatePostInput struct {
	CreatorID   uint
	Title       string
	Description string
	Category    string
	Image       io.Reader
	ImageName   string
}

// UpdatePostInput is a partial update: nil fields keep their prior values.
type UpdatePostInput struct {
	UserID      uint
	PostID      uint
	Title       *string
	Description *string
}

// ListPosts returns one page of posts matching the filter, newest first,
// along with the page metadata.
func (s *PostService) ListPosts(ctx context.Context, filter repository.PostFilter, page int) ([]*models.Post, pagination.Meta, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	page = pagination.Normalize(page)

	total, err := s.postRepo.Count(ctx, filter)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	posts, err := s.postRepo.List(ctx, filter,
		pagination.PostsPerPage, pagination.Offset(page, pagination.PostsPerPage))
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return posts, pagination.NewMeta(page, pagination.PostsPerPage, total), nil
}

// GetPost returns the detail view of a single post.
func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	return s.postRepo.GetDetail(ctx, id)
}

// CreatePost validates the category, verifies the creator exists, stores the
// image blob, and commits the post record. If the record write fails the
// already-uploaded blob is removed best-effort.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	if in.Title == "" {
		return nil, models.NewValidationError("Title is required")
	}
	category := models.Category(in.Category)
	if !category.Valid() {
		return nil, models.NewInvalidCategoryError(in.Category)
	}
	if in.Image == nil {
		return nil, models.NewValidationError("Image is required")
	}

	if _, err := s.userRepo.GetByID(ctx, in.CreatorID); err != nil {
		return nil, err
	}

	// Blob before record: a failed upload must not leave metadata pointing
	// at a missing blob.
	key := newBlobKey(in.ImageName)
	if err := s.blobs.Save(ctx, key, in.Image); err != nil {
		return nil, models.NewInternalError(err)
	}

	post := &models.Post{
		Title:       in.Title,
		Image:       key,
		Description: in.Description,
		Category:    category,
		CreatorID:   in.CreatorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		cleanupBlob(ctx, s.blobs, key)
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// UpdatePost applies a partial update of title and description. Only the
// creator may update a post.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	post, err := s.postRepo.GetByID(ctx, in.PostID)
	if err != nil {
		return nil, err
	}
	if post.CreatorID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		post.Title = *in.Title
	}
	if in.Description != nil {
		post.Description = *in.Description
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return s.postRepo.GetByID(ctx, post.ID)
}

// DeletePost removes a post, all of its comments, and all of its likes in a
// single transaction. Only the creator may delete a post. The image blob is
// removed best-effort after the transaction commits.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.CreatorID != userID {
		return models.NewUnauthorizedError("You can only delete your own posts")
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, post.ID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidatePost(ctx, post.ID)
	cleanupBlob(ctx, s.blobs, post.Image)
	return nil
}

// SetLike sets the like state of (userID, postID) to the explicit flag.
// like=true is idempotent: the unique (user, post) index plus ON CONFLICT DO
// NOTHING guarantees the user is recorded at most once.
func (s *PostService) SetLike(ctx context.Context, userID, postID uint, like bool) (*models.Post, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	var err error
	if like {
		err = s.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.Like{UserID: userID, PostID: postID}).Error
	} else {
		err = s.db.WithContext(ctx).
			Where("user_id = ? AND post_id = ?", userID, postID).
			Delete(&models.Like{}).Error
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.InvalidatePost(ctx, postID)
	return s.postRepo.GetByID(ctx, postID)
}
