package booking

import (
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// North American 10-digit number with optional parentheses and separators.
	phonePattern = regexp.MustCompile(`^\(?([0-9]{3})\)?[-. ]?([0-9]{3})[-. ]?([0-9]{4})$`)
)

// Normalize trims surrounding whitespace from every field.
func (g GuestInfo) Normalize() GuestInfo {
	return GuestInfo{
		Name:  strings.TrimSpace(g.Name),
		Email: strings.TrimSpace(g.Email),
		Phone: strings.TrimSpace(g.Phone),
	}
}

// ValidateGuestInfo checks the contact form. It returns nil when every field
// is valid, otherwise a *ValidationError naming each bad field.
func ValidateGuestInfo(g GuestInfo) error {
	g = g.Normalize()
	fields := make(map[Field]string)

	if g.Name == "" {
		fields[FieldName] = "Name is required"
	}

	switch {
	case g.Email == "":
		fields[FieldEmail] = "Email is required"
	case !emailPattern.MatchString(g.Email):
		fields[FieldEmail] = "Please enter a valid email"
	}

	switch {
	case g.Phone == "":
		fields[FieldPhone] = "Phone number is required"
	case !phonePattern.MatchString(g.Phone):
		fields[FieldPhone] = "Please enter a valid phone number"
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: fields}
}
