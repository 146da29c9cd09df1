package validation

import "fmt"

// ValidatePassword checks the password against the registration rules.
// The only hard requirement is the minimum length; field workers often
// register from feature phones, so no character-class rules apply.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}
