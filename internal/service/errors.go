package service

import "errors"

var (
	// ErrNotFound covers any lookup by id, slug or username with no row.
	ErrNotFound = errors.New("not found")
	// ErrNotAuthor is returned when a user touches a post they do not own.
	ErrNotAuthor = errors.New("not the author")

	ErrSelfFollow         = errors.New("cannot follow self")
	ErrNotFollowing       = errors.New("not following")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
