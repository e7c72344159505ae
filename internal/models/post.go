package models

// Author is the embedded author of a post as returned by the blog API
type Author struct {
	Name string `json:"name"`
}

// Post represents a blog post list item
type Post struct {
	ID          string `json:"_id"`
	Title       string `json:"title"`
	Description string `json:"description"` // may contain markup
	Image       string `json:"image"`
	Author      Author `json:"user"`
}

// Pagination is the page-count metadata of a list response
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalPosts  int  `json:"totalPosts"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Normalized clamps the bounds and recomputes the next/prev flags from the page numbers
func (p Pagination) Normalized() Pagination {
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	if p.CurrentPage < 1 {
		p.CurrentPage = 1
	}
	if p.TotalPosts < 0 {
		p.TotalPosts = 0
	}
	p.HasNextPage = p.CurrentPage < p.TotalPages
	p.HasPrevPage = p.CurrentPage > 1
	return p
}

// FirstPage is the pagination state before any fetch has completed
func FirstPage() Pagination {
	return Pagination{CurrentPage: 1, TotalPages: 1}
}

// PostPage is the pagination envelope returned by the list endpoints
type PostPage struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

// ListParams selects one page of a post list
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

// DefaultPageSize is the number of posts requested per page
const DefaultPageSize = 9

// MessageResponse is the body of the write endpoints
type MessageResponse struct {
	Message string `json:"message"`
}
