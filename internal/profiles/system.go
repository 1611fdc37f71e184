package profiles

import (
	"context"

	"github.com/google/uuid"
)

// System defines the public contract for profile operations.
type System interface {
	Handler() *Handler

	Find(ctx context.Context, userID uuid.UUID, email string) (*Profile, error)
	Upsert(ctx context.Context, userID uuid.UUID, cmd UpdateCommand) (*Profile, error)
	Activate(ctx context.Context, userID uuid.UUID, code string) (*Profile, error)
	StoreCodes(ctx context.Context, codes []ActivationCode) error
}
