package blog

import "errors"

var (
	ErrNotFound  = errors.New("blog post not found")
	ErrForbidden = errors.New("not allowed to edit this post")
)
