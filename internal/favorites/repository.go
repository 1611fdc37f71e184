package favorites

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Tonn-hash/galeria-de-prompts/pkg/query"
	"github.com/Tonn-hash/galeria-de-prompts/pkg/repository"
)

// Edge is a stored favorite.
type Edge struct {
	UserID    uuid.UUID
	PromptID  int
	CreatedAt time.Time
}

var projection = query.
	NewProjectionMap("public", "favorites", "f").
	Project("user_id", "UserID").
	Project("prompt_id", "PromptID").
	Project("created_at", "CreatedAt")

var defaultSort = query.SortField{Field: "CreatedAt"}

func scanEdge(s repository.Scanner) (Edge, error) {
	var e Edge
	err := s.Scan(&e.UserID, &e.PromptID, &e.CreatedAt)
	return e, err
}

type repo struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewRepository creates a PostgreSQL backend over the favorites table.
func NewRepository(db *sql.DB, logger *slog.Logger) Backend {
	return &repo{
		db:     db,
		logger: logger.With("system", "favorites"),
	}
}

func (r *repo) List(ctx context.Context, userID uuid.UUID) ([]int, error) {
	q, args := query.
		NewBuilder(projection, defaultSort).
		WhereEquals("UserID", userID).
		Build()

	edges, err := repository.QueryMany(ctx, r.db, q, args, scanEdge)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}

	ids := make([]int, len(edges))
	for i, e := range edges {
		ids[i] = e.PromptID
	}
	return ids, nil
}

func (r *repo) Add(ctx context.Context, userID uuid.UUID, promptID int) error {
	q := fmt.Sprintf(`
		INSERT INTO %s(user_id, prompt_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, prompt_id) DO NOTHING`, projection.Table())

	n, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int64, error) {
		return repository.ExecAffected(ctx, tx, q, userID, promptID)
	})
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}

	if n > 0 {
		r.logger.Info("favorite added", "user_id", userID, "prompt_id", promptID)
	}
	return nil
}

func (r *repo) Remove(ctx context.Context, userID uuid.UUID, promptID int) error {
	q := fmt.Sprintf(
		"DELETE FROM %s WHERE user_id = $1 AND prompt_id = $2",
		projection.Table(),
	)

	n, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int64, error) {
		return repository.ExecAffected(ctx, tx, q, userID, promptID)
	})
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}

	if n > 0 {
		r.logger.Info("favorite removed", "user_id", userID, "prompt_id", promptID)
	}
	return nil
}
