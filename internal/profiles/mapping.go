package profiles

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/Tonn-hash/galeria-de-prompts/pkg/query"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/repository"
)

var projection = query.
	NewProjectionMap("public", "profiles", "p").
	Project("id", "ID").
	Project("username", "Username").
	Project("date_of_birth", "DateOfBirth").
	Project("gender", "Gender").
	Project("is_premium", "IsPremium").
	Project("premium_since", "PremiumSince").
	Project("created_at", "CreatedAt").
	Project("updated_at", "UpdatedAt")

var profileConstraints = map[string]error{
	"profiles_username_key": ErrUsernameTaken,
	"profiles_gender_check": ErrInvalidGender,
}

// mapProfileError translates errors from profile writes. Named constraint
// violations take precedence over the generic unique mapping.
func mapProfileError(err error) error {
	err = repository.MapConstraint(err, profileConstraints)
	return repository.MapError(err, ErrNotFound, ErrUsernameTaken)
}

func scanProfile(s repository.Scanner) (Profile, error) {
	var p Profile
	var dob sql.NullTime
	err := s.Scan(
		&p.ID, &p.Username, &dob, &p.Gender,
		&p.IsPremium, &p.PremiumSince, &p.CreatedAt, &p.UpdatedAt,
	)
	if dob.Valid {
		d := dob.Time.Format(DateLayout)
		p.DateOfBirth = &d
	}
	return p, err
}

type codeRecord struct {
	Key        string
	SecretHash []byte
	RedeemedBy *uuid.UUID
	RedeemedAt *time.Time
	CreatedAt  time.Time
}

var codeProjection = query.
	NewProjectionMap("public", "activation_codes", "c").
	Project("key", "Key").
	Project("secret_hash", "SecretHash").
	Project("redeemed_by", "RedeemedBy").
	Project("redeemed_at", "RedeemedAt").
	Project("created_at", "CreatedAt")

func scanCode(s repository.Scanner) (codeRecord, error) {
	var c codeRecord
	err := s.Scan(&c.Key, &c.SecretHash, &c.RedeemedBy, &c.RedeemedAt, &c.CreatedAt)
	return c, err
}
