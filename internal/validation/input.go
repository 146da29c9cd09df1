package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Validation constants
const (
	MinPasswordLength = 6
	MobileNumberLen   = 11
	MaxNameLength     = 100
)

var mobileNumberRegex = regexp.MustCompile(`^\d{11}$`)

// ValidateEmail checks the email format.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}

	email = strings.TrimSpace(email)

	if !strings.Contains(email, "@") {
		return fmt.Errorf("email must contain @")
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("invalid email format")
	}

	localPart := strings.ToLower(parts[0])
	domainPart := strings.ToLower(parts[1])

	if len(localPart) == 0 || len(localPart) > 64 {
		return fmt.Errorf("email local part must be between 1 and 64 characters")
	}

	if len(domainPart) == 0 || len(domainPart) > 255 {
		return fmt.Errorf("email domain must be between 1 and 255 characters")
	}

	localRegex := regexp.MustCompile(`^[a-z0-9._+-]+$`)
	if !localRegex.MatchString(localPart) {
		return fmt.Errorf("email local part contains invalid characters")
	}

	domainRegex := regexp.MustCompile(`^[a-z0-9.-]+\.[a-z]{2,}$`)
	if !domainRegex.MatchString(domainPart) {
		return fmt.Errorf("email domain has an invalid format")
	}

	return nil
}

// ValidateMobileNumber checks that the number is exactly 11 digits.
func ValidateMobileNumber(number string) error {
	if number == "" {
		return fmt.Errorf("mobile number is required")
	}
	if !mobileNumberRegex.MatchString(number) {
		return fmt.Errorf("mobile number must be exactly %d digits", MobileNumberLen)
	}
	return nil
}

// ValidateNonEmpty checks that a string is not blank.
func ValidateNonEmpty(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}
