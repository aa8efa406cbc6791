package utils

import (
	"errors"
	"regexp"
	"strings"

	"github.com/wapjude/CP-2-Document-Mangement-system/internal/domain/entities"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateDocumentPayload checks a create/update body in a fixed
// order: access, then title, then content. Only the first violation is
// reported and the messages are shown to users verbatim.
func ValidateDocumentPayload(accessLevel, title, content string) error {
	if _, err := entities.ParseAccessLevel(accessLevel); err != nil {
		return errors.New("access can either be public, private or role")
	}
	if strings.TrimSpace(title) == "" {
		return errors.New("please enter a title")
	}
	if strings.TrimSpace(content) == "" {
		return errors.New("please enter content")
	}
	return nil
}

func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return errors.New("please enter a valid email")
	}
	return nil
}

func ValidatePassword(password string) error {
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}
	return nil
}
