package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrClubNotFound     = fmt.Errorf("club %w", ErrNotFound)
	ErrPostNotFound     = fmt.Errorf("post %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("user %w", ErrNotFound)

	ErrMembershipNotFound = errors.New("not a member of this club")
	ErrForbidden          = errors.New("insufficient role")
	ErrNotPostOwner       = errors.New("not the author of this post")
	ErrPostClubMismatch   = errors.New("post does not belong to this club")
	ErrAlreadyMember      = errors.New("already a member of this club")
	ErrLastAdmin          = errors.New("the last admin cannot leave the club")

	ErrInvalidParam    = errors.New("invalid params")
	ErrUserExists      = errors.New("username or email already registered")
	ErrInvalidPassword = errors.New("invalid username or password")
	ErrSessionInvalid  = errors.New("session expired or logged in elsewhere")
)
