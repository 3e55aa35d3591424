package repository

import (
	"context"
	"testing"

	"snapfeed/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_ListFiltering(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedPost(t, db, alice.ID, "Mountain Sunrise", models.CategoryNature)
	seedPost(t, db, alice.ID, "City at Night", models.CategoryTravel)
	seedPost(t, db, bob.ID, "Sunrise over the sea", models.CategoryNature)

	tests := []struct {
		name   string
		filter PostFilter
		titles []string
	}{
		{
			name:   "no filter returns all, newest first",
			filter: PostFilter{},
			titles: []string{"Sunrise over the sea", "City at Night", "Mountain Sunrise"},
		},
		{
			name:   "title substring is case-insensitive",
			filter: PostFilter{Title: "sunrise"},
			titles: []string{"Sunrise over the sea", "Mountain Sunrise"},
		},
		{
			name:   "category exact match",
			filter: PostFilter{Category: models.CategoryTravel},
			titles: []string{"City at Night"},
		},
		{
			name:   "creator exact match",
			filter: PostFilter{CreatorID: bob.ID},
			titles: []string{"Sunrise over the sea"},
		},
		{
			name:   "filters compose with AND",
			filter: PostFilter{Title: "sunrise", Category: models.CategoryNature, CreatorID: alice.ID},
			titles: []string{"Mountain Sunrise"},
		},
		{
			name:   "AND composition can be empty",
			filter: PostFilter{Title: "sunrise", Category: models.CategoryTravel},
			titles: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts, err := repo.List(ctx, tt.filter, 50, 0)
			require.NoError(t, err)

			titles := make([]string, 0, len(posts))
			for _, p := range posts {
				titles = append(titles, p.Title)
			}
			assert.Equal(t, tt.titles, titles)

			count, err := repo.Count(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tt.titles)), count)
		})
	}
}

func TestPostRepository_ListCarriesCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "Counted", models.CategoryArt)

	require.NoError(t, db.Create(&models.Comment{Content: "one", AuthorID: bob.ID, PostID: post.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{Content: "two", AuthorID: alice.ID, PostID: post.ID}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: bob.ID, PostID: post.ID}).Error)

	posts, err := repo.List(ctx, PostFilter{}, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 2, posts[0].CommentsCount)
	assert.Equal(t, 1, posts[0].LikesCount)
	assert.Equal(t, "alice", posts[0].Creator.Nickname)
}

func TestPostRepository_CountsIgnoreDeletedComments(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	post := seedPost(t, db, alice.ID, "Tidy", models.CategoryOther)

	comment := &models.Comment{Content: "gone soon", AuthorID: alice.ID, PostID: post.ID}
	require.NoError(t, db.Create(comment).Error)
	require.NoError(t, db.Delete(comment).Error)

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CommentsCount)
}

func TestPostRepository_ListLikedBy(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	liked := seedPost(t, db, alice.ID, "Liked", models.CategoryFood)
	seedPost(t, db, alice.ID, "Not liked", models.CategoryFood)

	require.NoError(t, db.Create(&models.Like{UserID: bob.ID, PostID: liked.ID}).Error)

	posts, err := repo.ListLikedBy(ctx, bob.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Liked", posts[0].Title)

	count, err := repo.CountLikedBy(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = repo.CountLikedBy(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestPostRepository_GetDetailPreloads(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	post := seedPost(t, db, alice.ID, "Detailed", models.CategoryPeople)
	require.NoError(t, db.Create(&models.Comment{Content: "hello", AuthorID: bob.ID, PostID: post.ID}).Error)

	detail, err := repo.GetDetail(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", detail.Creator.Nickname)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, "bob", detail.Comments[0].Author.Nickname)
}
