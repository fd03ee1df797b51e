package topics

import (
	"fmt"
	"regexp"
)

var topicNamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// ValidationError means a topic name does not match ^[a-zA-Z0-9._-]+$.
type ValidationError struct {
	Name string
}

func (e *ValidationError) Error() string {
	if e.Name == "" {
		return "topic name is empty"
	}
	return fmt.Sprintf("invalid topic name %q: only letters, digits, '.', '_' and '-' are allowed", e.Name)
}

// ValidateName checks a topic name. The same rule guards provisioning and
// publishing.
func ValidateName(name string) error {
	if !topicNamePattern.MatchString(name) {
		return &ValidationError{Name: name}
	}
	return nil
}
