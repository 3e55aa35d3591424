package repository

import (
	"context"
	"errors"
	"strings"

	"snapfeed/internal/cache"
	"snapfeed/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostFilter narrows a post listing. Zero-valued fields are ignored; set
// fields compose with AND.
type PostFilter struct {
	// Title matches as a case-insensitive substring.
	Title string
	// Category matches exactly.
	Category models.Category
	// CreatorID matches exactly.
	CreatorID uint
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	GetDetail(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
	ListLikedBy(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error)
	CountLikedBy(ctx context.Context, userID uint) (int64, error)
	Update(ctx context.Context, post *models.Post) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.withCounts(r.db.WithContext(ctx)).
		Preload("Creator").
		First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// GetDetail loads a post with its creator and comments (with authors) for
// the detail view. The result is served cache-aside.
func (r *postRepository) GetDetail(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	key := cache.PostKey(id)

	err := cache.Aside(ctx, key, &post, cache.PostTTL, func() error {
		err := r.withCounts(r.db.WithContext(ctx)).
			Preload("Creator").
			Preload("Comments", func(db *gorm.DB) *gorm.DB {
				return db.Order("created_at DESC, id DESC")
			}).
			Preload("Comments.Author").
			First(&post, id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Post", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, filter PostFilter, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := applyPostFilter(r.withCounts(r.db.WithContext(ctx)), filter).
		Preload("Creator").
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	var count int64
	err := applyPostFilter(r.db.WithContext(ctx).Model(&models.Post{}), filter).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *postRepository) ListLikedBy(ctx context.Context, userID uint, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.withCounts(r.db.WithContext(ctx)).
		Preload("Creator").
		Joins("JOIN likes ON likes.post_id = posts.id").
		Where("likes.user_id = ?", userID).
		Order("posts.created_at DESC, posts.id DESC").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return posts, nil
}

func (r *postRepository) CountLikedBy(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Joins("JOIN likes ON likes.post_id = posts.id").
		Where("likes.user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePost(ctx, post.ID)
	return nil
}

// withCounts adds subqueries computing like and comment counts in the same
// query. Portable across PostgreSQL and SQLite.
func (r *postRepository) withCounts(db *gorm.DB) *gorm.DB {
	return db.Select("posts.*, " +
		"(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) AS comments_count, " +
		"(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS likes_count")
}

func applyPostFilter(db *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.Title != "" {
		db = db.Where("LOWER(posts.title) LIKE ?", "%"+strings.ToLower(filter.Title)+"%")
	}
	if filter.Category != "" {
		db = db.Where("posts.category = ?", filter.Category)
	}
	if filter.CreatorID != 0 {
		db = db.Where("posts.creator_id = ?", filter.CreatorID)
	}
	return db
}
