// Package pagination computes page windows and page metadata for listings.
package pagination

// Fixed page sizes per listing type.
const (
	PostsPerPage      = 12
	CommentsPerPage   = 5
	LikedPostsPerPage = 12
)

// Meta describes one page of a filtered listing.
type Meta struct {
	TotalItems      int64 `json:"totalItems"`
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	PreviousPage    int   `json:"previousPage"`
	NextPage        int   `json:"nextPage"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	HasNextPage     bool  `json:"hasNextPage"`
}

// Normalize clamps a requested page number to the valid range. Absent or
// unparsable page parameters arrive here as zero and default to page 1.
func Normalize(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// Offset returns the number of records to skip for the given page.
func Offset(page, perPage int) int {
	return (page - 1) * perPage
}

// NewMeta derives page metadata from the page number, the page size, and the
// total number of matching items. A page past the end yields HasNextPage=false.
func NewMeta(page, perPage int, totalItems int64) Meta {
	page = Normalize(page)
	totalPages := int((totalItems + int64(perPage) - 1) / int64(perPage))

	return Meta{
		TotalItems:      totalItems,
		CurrentPage:     page,
		TotalPages:      totalPages,
		PreviousPage:    page - 1,
		NextPage:        page + 1,
		HasPreviousPage: page > 1,
		HasNextPage:     int64(perPage)*int64(page) < totalItems,
	}
}
