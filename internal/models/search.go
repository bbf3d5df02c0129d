package models

// Result kinds returned by the mixed search endpoint.
const (
	SearchTypeUser = "user"
	SearchTypeBlog = "blog"
)

// SearchItem is one entry in the merged search result, tagged with the
// kind of entity it carries. Users always precede blogs.
type SearchItem struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}
