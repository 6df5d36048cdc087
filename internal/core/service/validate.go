package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/dmsforum/forum/internal/core/domain"
)

func requireID(name string, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: %s", domain.ErrMissingArgument, name)
	}
	return nil
}

func requireText(name, value string, max int) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s", domain.ErrMissingArgument, name)
	}
	if utf8.RuneCountInString(value) > max {
		return fmt.Errorf("%w: %s exceeds %d characters", domain.ErrInvalidArgument, name, max)
	}
	return nil
}
