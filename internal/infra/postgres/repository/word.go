package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/aliskhannn/vocab-quiz/internal/domain"
	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var wordColumns = []string{"w.word_id", "w.text_source", "w.text_target", "w.difficulty"}

// WordRepository provides access to the word catalog.
type WordRepository struct {
	db postgres.DBTX
}

// NewWordRepository creates a new WordRepository with the provided database handle.
func NewWordRepository(db postgres.DBTX) *WordRepository {
	return &WordRepository{db: db}
}

// fresh restricts words to a difficulty the user has neither pending repeat nor studied.
func fresh(b sq.SelectBuilder, userID int64, d entities.Difficulty) sq.SelectBuilder {
	return b.From("words w").
		Where(sq.Eq{"w.difficulty": int(d)}).
		Where("NOT EXISTS (SELECT 1 FROM repeat_marks r WHERE r.user_id = ? AND r.word_id = w.word_id)", userID).
		Where("NOT EXISTS (SELECT 1 FROM studied_marks s WHERE s.user_id = ? AND s.word_id = w.word_id)", userID)
}

// Count returns the size of the whole catalog.
func (r *WordRepository) Count(ctx context.Context) (int, error) {
	return r.countQuery(ctx, psql.Select("COUNT(*)").From("words w"), "count words")
}

// CountByDifficulty returns the number of words of the difficulty.
func (r *WordRepository) CountByDifficulty(ctx context.Context, d entities.Difficulty) (int, error) {
	b := psql.Select("COUNT(*)").From("words w").Where(sq.Eq{"w.difficulty": int(d)})
	return r.countQuery(ctx, b, "count words by difficulty")
}

// CountFresh returns the size of the user's fresh pool for the difficulty.
func (r *WordRepository) CountFresh(ctx context.Context, userID int64, d entities.Difficulty) (int, error) {
	return r.countQuery(ctx, fresh(psql.Select("COUNT(*)"), userID, d), "count fresh words")
}

// ByDifficultyAt returns the offset-th word of the difficulty in word ID order.
func (r *WordRepository) ByDifficultyAt(ctx context.Context, d entities.Difficulty, offset int) (*entities.Word, error) {
	b := psql.Select(wordColumns...).
		From("words w").
		Where(sq.Eq{"w.difficulty": int(d)}).
		OrderBy("w.word_id").
		Offset(uint64(offset)).
		Limit(1)

	return r.getOne(ctx, b, "get word by difficulty")
}

// FreshAt returns the offset-th word of the user's fresh pool in word ID order.
func (r *WordRepository) FreshAt(ctx context.Context, userID int64, d entities.Difficulty, offset int) (*entities.Word, error) {
	b := fresh(psql.Select(wordColumns...), userID, d).
		OrderBy("w.word_id").
		Offset(uint64(offset)).
		Limit(1)

	return r.getOne(ctx, b, "get fresh word")
}

// GetByID returns a word by ID.
func (r *WordRepository) GetByID(ctx context.Context, id int64) (*entities.Word, error) {
	b := psql.Select(wordColumns...).From("words w").Where(sq.Eq{"w.word_id": id})
	return r.getOne(ctx, b, "get word")
}

// RandomDistractors returns up to limit distinct target texts of other words,
// excluding the text of word itself.
func (r *WordRepository) RandomDistractors(ctx context.Context, word *entities.Word, limit int) ([]string, error) {
	inner := psql.Select("DISTINCT w.text_target").
		From("words w").
		Where(sq.NotEq{"w.word_id": word.ID}).
		Where(sq.NotEq{"w.text_target": word.Target})

	b := psql.Select("t.text_target").
		FromSelect(inner, "t").
		OrderBy("random()").
		Limit(uint64(limit))

	return r.selectStrings(ctx, b, "get distractors")
}

// RandomTargets returns up to limit target texts sampled uniformly from the catalog.
func (r *WordRepository) RandomTargets(ctx context.Context, limit int) ([]string, error) {
	b := psql.Select("w.text_target").
		From("words w").
		OrderBy("random()").
		Limit(uint64(limit))

	return r.selectStrings(ctx, b, "get random targets")
}

// InsertBatch inserts words in one statement and returns how many rows were written.
func (r *WordRepository) InsertBatch(ctx context.Context, words []entities.Word) (int, error) {
	if len(words) == 0 {
		return 0, nil
	}

	b := psql.Insert("words").Columns("text_source", "text_target", "difficulty")
	for _, w := range words {
		b = b.Values(w.Source, w.Target, int(w.Difficulty))
	}

	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert words: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "insert words")
	}

	return int(tag.RowsAffected()), nil
}

func (r *WordRepository) countQuery(ctx context.Context, b sq.SelectBuilder, op string) (int, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s: %w", op, err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, op)
	}

	return n, nil
}

func (r *WordRepository) getOne(ctx context.Context, b sq.SelectBuilder, op string) (*entities.Word, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}

	var word entities.Word
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &word, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("%s: %w", op, domain.ErrNotFound)
		}
		return nil, postgres.MapError(err, op)
	}

	return &word, nil
}

func (r *WordRepository) selectStrings(ctx context.Context, b sq.SelectBuilder, op string) ([]string, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", op, err)
	}

	var out []string
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &out, query, args...); err != nil {
		return nil, postgres.MapError(err, op)
	}

	return out, nil
}
