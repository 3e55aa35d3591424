package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, Normalize(0))
	assert.Equal(t, 1, Normalize(-3))
	assert.Equal(t, 1, Normalize(1))
	assert.Equal(t, 7, Normalize(7))
}

func TestOffset(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, Offset(1, PostsPerPage))
	assert.Equal(t, 12, Offset(2, PostsPerPage))
	assert.Equal(t, 10, Offset(3, CommentsPerPage))
}

func TestNewMeta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page       int
		perPage    int
		totalItems int64
		want       Meta
	}{
		{
			name:       "first page of many",
			page:       1,
			perPage:    12,
			totalItems: 30,
			want: Meta{
				TotalItems:      30,
				CurrentPage:     1,
				TotalPages:      3,
				PreviousPage:    0,
				NextPage:        2,
				HasPreviousPage: false,
				HasNextPage:     true,
			},
		},
		{
			name:       "13 posts with page size 12, page 2",
			page:       2,
			perPage:    12,
			totalItems: 13,
			want: Meta{
				TotalItems:      13,
				CurrentPage:     2,
				TotalPages:      2,
				PreviousPage:    1,
				NextPage:        3,
				HasPreviousPage: true,
				HasNextPage:     false,
			},
		},
		{
			name:       "exact multiple has no partial page",
			page:       2,
			perPage:    5,
			totalItems: 10,
			want: Meta{
				TotalItems:      10,
				CurrentPage:     2,
				TotalPages:      2,
				PreviousPage:    1,
				NextPage:        3,
				HasPreviousPage: true,
				HasNextPage:     false,
			},
		},
		{
			name:       "page beyond last",
			page:       9,
			perPage:    12,
			totalItems: 13,
			want: Meta{
				TotalItems:      13,
				CurrentPage:     9,
				TotalPages:      2,
				PreviousPage:    8,
				NextPage:        10,
				HasPreviousPage: true,
				HasNextPage:     false,
			},
		},
		{
			name:       "empty collection",
			page:       1,
			perPage:    5,
			totalItems: 0,
			want: Meta{
				TotalItems:      0,
				CurrentPage:     1,
				TotalPages:      0,
				PreviousPage:    0,
				NextPage:        2,
				HasPreviousPage: false,
				HasNextPage:     false,
			},
		},
		{
			name:       "unparsable page defaults to 1",
			page:       0,
			perPage:    12,
			totalItems: 20,
			want: Meta{
				TotalItems:      20,
				CurrentPage:     1,
				TotalPages:      2,
				PreviousPage:    0,
				NextPage:        2,
				HasPreviousPage: false,
				HasNextPage:     true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NewMeta(tt.page, tt.perPage, tt.totalItems))
		})
	}
}

// hasNextPage(p) must equal perPage*p < totalItems for every valid page.
func TestNextPagePredicate(t *testing.T) {
	t.Parallel()

	const perPage = 12
	for total := int64(0); total <= 40; total++ {
		for page := 1; page <= 5; page++ {
			m := NewMeta(page, perPage, total)
			assert.Equal(t, int64(perPage)*int64(page) < total, m.HasNextPage,
				"page=%d total=%d", page, total)
			assert.Equal(t, int((total+perPage-1)/perPage), m.TotalPages,
				"page=%d total=%d", page, total)
		}
	}
}
