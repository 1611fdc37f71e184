// Package profiles stores account details and premium activation.
package profiles

import (
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile is a user's account details.
type Profile struct {
	ID           uuid.UUID  `json:"id"`
	Username     *string    `json:"username"`
	DateOfBirth  *string    `json:"date_of_birth"`
	Gender       *string    `json:"gender"`
	IsPremium    bool       `json:"is_premium"`
	PremiumSince *time.Time `json:"premium_since,omitempty"`
	CreatedAt    time.Time  `json:"created_at,omitzero"`
	UpdatedAt    time.Time  `json:"updated_at,omitzero"`
}

// Genders are the accepted gender values.
var Genders = []string{"masculino", "feminino", "outro", "nao_informar"}

// DateLayout is the date_of_birth format.
const DateLayout = "2006-01-02"

// UpdateCommand carries editable profile fields. Blank strings clear a
// field.
type UpdateCommand struct {
	Username    *string `json:"username"`
	DateOfBirth *string `json:"date_of_birth"`
	Gender      *string `json:"gender"`
}

// ActivateCommand carries a premium activation code.
type ActivateCommand struct {
	Code string `json:"code"`
}

// DefaultProfile is returned for users who never saved a profile. The
// username defaults to the local part of email.
func DefaultProfile(id uuid.UUID, email string) Profile {
	p := Profile{ID: id}
	if local, _, _ := strings.Cut(email, "@"); local != "" {
		p.Username = &local
	}
	return p
}

// Normalize trims fields and turns blanks into nil, then validates.
func (c *UpdateCommand) Normalize(now time.Time) error {
	c.Username = blankToNil(c.Username)
	c.DateOfBirth = blankToNil(c.DateOfBirth)
	c.Gender = blankToNil(c.Gender)

	if c.Username != nil && len(*c.Username) > 64 {
		return ErrInvalidUsername
	}
	if c.Gender != nil && !slices.Contains(Genders, *c.Gender) {
		return ErrInvalidGender
	}
	if c.DateOfBirth != nil {
		dob, err := time.Parse(DateLayout, *c.DateOfBirth)
		if err != nil || dob.After(now) {
			return ErrInvalidDate
		}
	}
	return nil
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
