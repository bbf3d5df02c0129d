package repositories

import "errors"

// Sentinel errors surfaced by the repositories; handlers translate
// these into HTTP status codes.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrBlogNotFound         = errors.New("blog not found")
	ErrLikeNotFound         = errors.New("like not found")
	ErrViewNotFound         = errors.New("view not found")
	ErrFollowNotFound       = errors.New("follow not found")
	ErrSavedBlogNotFound    = errors.New("saved blog not found")
	ErrContributionNotFound = errors.New("contribution not found")
)
