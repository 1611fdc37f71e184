package profiles

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Tonn-hash/galeria-de-prompts/pkg/query"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/repository"
)

type repo struct {
	db     *sql.DB
	logger *slog.Logger
	now    func() time.Time
}

// New creates a profile repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger) System {
	return &repo{
		db:     db,
		logger: logger.With("system", "profiles"),
		now:    time.Now,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Find(ctx context.Context, userID uuid.UUID, email string) (*Profile, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", userID)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanProfile)
	if errors.Is(err, sql.ErrNoRows) {
		def := DefaultProfile(userID, email)
		return &def, nil
	}
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &p, nil
}

func (r *repo) Upsert(ctx context.Context, userID uuid.UUID, cmd UpdateCommand) (*Profile, error) {
	if err := cmd.Normalize(r.now()); err != nil {
		return nil, err
	}

	q := fmt.Sprintf(`
		INSERT INTO %s(id, username, date_of_birth, gender)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET username = EXCLUDED.username,
			date_of_birth = EXCLUDED.date_of_birth,
			gender = EXCLUDED.gender,
			updated_at = now()
		RETURNING %s`, projection.Table(), projection.Returning())

	args := []any{userID, cmd.Username, cmd.DateOfBirth, cmd.Gender}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Profile, error) {
		return repository.QueryOne(ctx, tx, q, args, scanProfile)
	})
	if err != nil {
		return nil, mapProfileError(err)
	}

	r.logger.Info("profile saved", "id", p.ID)
	return &p, nil
}

// Activate redeems code for userID and marks the profile premium. The code
// row is locked for the transaction so a code redeems at most once.
func (r *repo) Activate(ctx context.Context, userID uuid.UUID, code string) (*Profile, error) {
	key, secret, err := ParseCode(code)
	if err != nil {
		return nil, err
	}

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Profile, error) {
		findQ, findArgs := query.NewBuilder(codeProjection).ForUpdate().BuildSingle("Key", key)
		rec, err := repository.QueryOne(ctx, tx, findQ, findArgs, scanCode)
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrInvalidCode
		}
		if err != nil {
			return Profile{}, err
		}

		if !Matches(rec.SecretHash, secret) {
			return Profile{}, ErrInvalidCode
		}
		if rec.RedeemedBy != nil {
			return Profile{}, ErrCodeRedeemed
		}

		if err := repository.ExecExpectOne(
			ctx, tx,
			fmt.Sprintf("UPDATE %s SET redeemed_by = $1, redeemed_at = now() WHERE key = $2", codeProjection.Table()),
			userID, key,
		); err != nil {
			return Profile{}, fmt.Errorf("redeem code: %w", err)
		}

		premiumQ := fmt.Sprintf(`
			INSERT INTO %[1]s(id, is_premium, premium_since)
			VALUES ($1, true, now())
			ON CONFLICT (id) DO UPDATE
			SET is_premium = true,
				premium_since = COALESCE(%[1]s.premium_since, EXCLUDED.premium_since),
				updated_at = now()
			RETURNING %[2]s`, projection.Table(), projection.Returning())

		return repository.QueryOne(ctx, tx, premiumQ, []any{userID}, scanProfile)
	})

	if err != nil {
		if errors.Is(err, ErrInvalidCode) || errors.Is(err, ErrCodeRedeemed) {
			r.logger.Warn("activation rejected", "user_id", userID, "key", key, "error", err)
			return nil, err
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("premium activated", "user_id", userID, "key", key)
	return &p, nil
}

// StoreCodes inserts codes in one transaction; a duplicate key aborts all.
func (r *repo) StoreCodes(ctx context.Context, codes []ActivationCode) error {
	q := fmt.Sprintf("INSERT INTO %s(key, secret_hash) VALUES ($1, $2)", codeProjection.Table())

	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		for _, c := range codes {
			if _, err := tx.ExecContext(ctx, q, c.Key, c.Hash); err != nil {
				return struct{}{}, err
			}
		}
		return struct{}{}, nil
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("activation codes stored", "count", len(codes))
	return nil
}
