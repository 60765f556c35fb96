package repository

import (
	"context"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres"
)

// UserRepository provides access to user data in the database.
type UserRepository struct {
	db postgres.DBTX
}

// NewUserRepository creates a new UserRepository with the provided database handle.
func NewUserRepository(db postgres.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// GetOrCreate returns the user with the given external ID, creating it on first sight.
// The upsert keeps concurrent first requests from racing into a duplicate.
func (r *UserRepository) GetOrCreate(ctx context.Context, externalID int64) (*entities.User, error) {
	query := `
		INSERT INTO users (external_id)
		VALUES ($1)
		ON CONFLICT (external_id) DO UPDATE SET external_id = EXCLUDED.external_id
		RETURNING user_id, external_id, created_at
	`

	var user entities.User
	err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, externalID).Scan(
		&user.ID,
		&user.ExternalID,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "get or create user")
	}

	return &user, nil
}

// ListWithRepeats returns users that have at least one repeat mark, ordered by ID,
// starting after afterUserID. Used for keyset pagination by the reminder job.
func (r *UserRepository) ListWithRepeats(ctx context.Context, afterUserID int64, limit int) ([]entities.RepeatDigest, error) {
	query := `
		SELECT u.user_id, u.external_id, COUNT(r.repeat_id)
		FROM users u
		JOIN repeat_marks r ON r.user_id = u.user_id
		WHERE u.user_id > $1
		GROUP BY u.user_id, u.external_id
		ORDER BY u.user_id
		LIMIT $2
	`

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, query, afterUserID, limit)
	if err != nil {
		return nil, postgres.MapError(err, "list users with repeats")
	}
	defer rows.Close()

	var digests []entities.RepeatDigest
	for rows.Next() {
		var d entities.RepeatDigest
		if err := rows.Scan(&d.UserID, &d.ExternalID, &d.RepeatCount); err != nil {
			return nil, postgres.MapError(err, "scan repeat digest")
		}
		digests = append(digests, d)
	}

	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "iterate repeat digests")
	}

	return digests, nil
}
