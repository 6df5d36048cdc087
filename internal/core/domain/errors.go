package domain

import "errors"

var (
	ErrMissingArgument = errors.New("a mandatory argument is missing")
	ErrInvalidArgument = errors.New("invalid argument")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("access forbidden")

	ErrDiscussionNotFound = errors.New("discussion not found")
	ErrAnswerNotFound     = errors.New("answer not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrReportNotFound     = errors.New("report not found")

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")

	ErrSessionNotFound = errors.New("session not found")
)

// IsNotFound reports whether err refers to a missing forum entity.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDiscussionNotFound) ||
		errors.Is(err, ErrAnswerNotFound) ||
		errors.Is(err, ErrCommentNotFound) ||
		errors.Is(err, ErrReportNotFound)
}
