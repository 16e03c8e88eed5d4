package service

import "errors"

// Domain errors. Handlers map these to response codes; nothing below the
// handler layer ever writes HTTP status.
var (
	// handshake
	ErrCodeNotFound = errors.New("no confirmation code requested for this email")
	ErrCodeInvalid  = errors.New("confirmation code is not valid")
	ErrInvalidEmail = errors.New("email address is not valid")
	ErrNameInUse    = errors.New("username already in use")
	ErrEmailInUse   = errors.New("email already in use")

	// tokens
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")

	// catalog
	ErrTitleNotFound    = errors.New("title not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrGenreNotFound    = errors.New("genre not found")
	ErrYearOutOfRange   = errors.New("year must be between 1000 and the current year")

	// reviews
	ErrReviewNotFound  = errors.New("review not found")
	ErrAlreadyReviewed = errors.New("you already have a review for this title")
	ErrScoreTooLow     = errors.New("the minimum score must be 1")
	ErrScoreTooHigh    = errors.New("the maximum score must be 10")

	// comments
	ErrCommentNotFound = errors.New("comment not found")

	// users
	ErrUserNotFound = errors.New("user not found")
	ErrInvalidRole  = errors.New("unknown role")
)
