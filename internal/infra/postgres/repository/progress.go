package repository

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/aliskhannn/vocab-quiz/internal/domain"
	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres"
)

// ProgressRepository stores per-user repeat and studied marks.
type ProgressRepository struct {
	db postgres.DBTX
}

// NewProgressRepository creates a new ProgressRepository with the provided database handle.
func NewProgressRepository(db postgres.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// CountRepeat returns the size of the user's repeat pool.
func (r *ProgressRepository) CountRepeat(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM repeat_marks WHERE user_id = $1", userID, "count repeat marks")
}

// CountStudied returns how many words the user has mastered.
func (r *ProgressRepository) CountStudied(ctx context.Context, userID int64) (int, error) {
	return r.count(ctx, "SELECT COUNT(*) FROM studied_marks WHERE user_id = $1", userID, "count studied marks")
}

func (r *ProgressRepository) count(ctx context.Context, query string, userID int64, op string) (int, error) {
	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, userID).Scan(&n); err != nil {
		return 0, postgres.MapError(err, op)
	}
	return n, nil
}

// RepeatAt returns the offset-th word of the user's repeat pool in word ID order.
// domain.ErrNotFound means the pool has fewer words than offset+1.
func (r *ProgressRepository) RepeatAt(ctx context.Context, userID int64, offset int) (*entities.Word, error) {
	query := `
		SELECT w.word_id, w.text_source, w.text_target, w.difficulty
		FROM repeat_marks r
		JOIN words w ON w.word_id = r.word_id
		WHERE r.user_id = $1
		ORDER BY r.word_id
		OFFSET $2
		LIMIT 1
	`

	var word entities.Word
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &word, query, userID, offset); err != nil {
		if pgxscan.NotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, postgres.MapError(err, "get repeat word")
	}

	return &word, nil
}

// AddRepeat marks the word as pending repeat. It reports false when the mark already existed.
func (r *ProgressRepository) AddRepeat(ctx context.Context, userID, wordID int64) (bool, error) {
	query := `
		INSERT INTO repeat_marks (user_id, word_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, word_id) DO NOTHING
	`

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, userID, wordID)
	if err != nil {
		return false, postgres.MapError(err, "add repeat mark")
	}

	return tag.RowsAffected() == 1, nil
}

// RemoveRepeat deletes the repeat mark. It reports false when there was none.
func (r *ProgressRepository) RemoveRepeat(ctx context.Context, userID, wordID int64) (bool, error) {
	query := "DELETE FROM repeat_marks WHERE user_id = $1 AND word_id = $2"

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, userID, wordID)
	if err != nil {
		return false, postgres.MapError(err, "remove repeat mark")
	}

	return tag.RowsAffected() > 0, nil
}

// AddStudied marks the word as mastered. It reports false when the mark already existed.
func (r *ProgressRepository) AddStudied(ctx context.Context, userID, wordID int64) (bool, error) {
	query := `
		INSERT INTO studied_marks (user_id, word_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, word_id) DO NOTHING
	`

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, userID, wordID)
	if err != nil {
		return false, postgres.MapError(err, "add studied mark")
	}

	return tag.RowsAffected() == 1, nil
}
