package service

import (
	"context"

	"snapfeed/internal/cache"
	"snapfeed/internal/models"
	"snapfeed/internal/pagination"
	"snapfeed/internal/repository"

	"gorm.io/gorm"
)

const maxCommentLen = 10000

// CommentService coordinates comment writes against their owning post.
type CommentService struct {
	db          *gorm.DB
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
}

// NewCommentService creates a new CommentService.
func NewCommentService(db *gorm.DB, commentRepo repository.CommentRepository, postRepo repository.PostRepository, userRepo repository.UserRepository) *CommentService {
	return &CommentService{
		db:          db,
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

type CreateCommentInput struct {
	AuthorID uint
	PostID   uint
	Content  string
}

type DeleteCommentInput struct {
	UserID    uint
	CommentID uint
}

// CreateComment verifies the author and post exist, then commits the comment.
// The returned comment carries the author's nickname and image for display.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	if in.Content == "" {
		return nil, models.NewValidationError("Content is required")
	}
	if len(in.Content) > maxCommentLen {
		return nil, models.NewValidationError("Comment too long (max 10000 characters)")
	}

	if _, err := s.userRepo.GetByID(ctx, in.AuthorID); err != nil {
		return nil, err
	}
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		Content:  in.Content,
		AuthorID: in.AuthorID,
		PostID:   in.PostID,
	}
	if err := s.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, models.NewInternalError(err)
	}

	cache.InvalidatePost(ctx, in.PostID)
	return s.commentRepo.GetByID(ctx, comment.ID)
}

// ListComments returns one page of a post's comments, newest first.
func (s *CommentService) ListComments(ctx context.Context, postID uint, page int) ([]*models.Comment, pagination.Meta, error) {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, pagination.Meta{}, err
	}

	page = pagination.Normalize(page)

	total, err := s.commentRepo.CountByPost(ctx, postID)
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	comments, err := s.commentRepo.ListByPost(ctx, postID,
		pagination.CommentsPerPage, pagination.Offset(page, pagination.CommentsPerPage))
	if err != nil {
		return nil, pagination.Meta{}, err
	}

	return comments, pagination.NewMeta(page, pagination.CommentsPerPage, total), nil
}

// DeleteComment removes a comment. Only its author may delete it.
func (s *CommentService) DeleteComment(ctx context.Context, in DeleteCommentInput) error {
	ctx, cancel := withStoreTimeout(ctx)
	defer cancel()

	comment, err := s.commentRepo.GetByID(ctx, in.CommentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != in.UserID {
		return models.NewUnauthorizedError("You can only delete your own comments")
	}

	if err := s.db.WithContext(ctx).Delete(&models.Comment{}, in.CommentID).Error; err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidatePost(ctx, comment.PostID)
	return nil
}
