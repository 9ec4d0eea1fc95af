package resumes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"resume-optimizer/resume/model"
)

const resumeColumns = `id, user_id, title, original_content, optimized_content, job_description,
optimization_score, ai_suggestions, keywords, created_at, updated_at`

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new resume.
func (r *PGRepo) Create(ctx context.Context, resume Resume) error {
	const query = `
INSERT INTO resumes (
    id,
    user_id,
    title,
    original_content,
    optimized_content,
    job_description,
    optimization_score,
    ai_suggestions,
    keywords,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	resume = resume.normalize()
	original, err := encodeJSON(resume.OriginalContent)
	if err != nil {
		return err
	}
	optimized, err := nullableJSON(resume.OptimizedContent)
	if err != nil {
		return err
	}
	suggestions, err := encodeJSON(resume.AISuggestions)
	if err != nil {
		return err
	}
	keywords, err := encodeJSON(resume.Keywords)
	if err != nil {
		return err
	}

	_, err = r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.Title,
		original,
		optimized,
		nullableString(resume.JobDescription),
		nullableInt(resume.OptimizationScore),
		suggestions,
		keywords,
		resume.CreatedAt,
		resume.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert resume: %w", err)
	}
	return nil
}

// ListByUser returns the user's resumes, most recently updated first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Resume, error) {
	if !validUUID(userID) {
		return []Resume{}, nil
	}
	query := `
SELECT ` + resumeColumns + `
FROM resumes
WHERE user_id = $1
ORDER BY updated_at DESC, created_at DESC`

	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	defer rows.Close()

	out := make([]Resume, 0)
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	return out, nil
}

// GetByID returns a resume by ID for a user.
func (r *PGRepo) GetByID(ctx context.Context, userID, resumeID string) (Resume, error) {
	if !validUUID(userID) || !validUUID(resumeID) {
		return Resume{}, ErrNotFound
	}
	query := `
SELECT ` + resumeColumns + `
FROM resumes
WHERE id = $1 AND user_id = $2
LIMIT 1`

	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, resumeID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

// Update writes the set patch fields and refreshes updated_at in one statement.
func (r *PGRepo) Update(ctx context.Context, userID, resumeID string, patch Patch, updatedAt time.Time) (Resume, error) {
	if !validUUID(userID) || !validUUID(resumeID) {
		return Resume{}, ErrNotFound
	}

	query, args, err := buildUpdate(resumeID, userID, patch, updatedAt)
	if err != nil {
		return Resume{}, err
	}
	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Resume{}, ErrNotFound
		}
		return Resume{}, err
	}
	return resume, nil
}

// Delete removes the user's resume.
func (r *PGRepo) Delete(ctx context.Context, userID, resumeID string) error {
	if !validUUID(userID) || !validUUID(resumeID) {
		return ErrNotFound
	}
	const query = `DELETE FROM resumes WHERE id = $1 AND user_id = $2`
	res, err := r.DB.ExecContext(ctx, query, resumeID, userID)
	if err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func buildUpdate(resumeID, userID string, patch Patch, updatedAt time.Time) (string, []any, error) {
	q := sq.Update("resumes").PlaceholderFormat(sq.Dollar)
	if patch.Title.Set {
		q = q.Set("title", patch.Title.Value)
	}
	if patch.OriginalContent.Set {
		raw, err := encodeJSON(patch.OriginalContent.Value.Normalize())
		if err != nil {
			return "", nil, err
		}
		q = q.Set("original_content", raw)
	}
	if patch.OptimizedContent.Set {
		raw, err := nullableJSON(patch.OptimizedContent.Value)
		if err != nil {
			return "", nil, err
		}
		q = q.Set("optimized_content", raw)
	}
	if patch.JobDescription.Set {
		q = q.Set("job_description", nullableString(patch.JobDescription.Value))
	}
	if patch.OptimizationScore.Set {
		q = q.Set("optimization_score", nullableInt(patch.OptimizationScore.Value))
	}
	if patch.AISuggestions.Set {
		raw, err := encodeJSON(model.NormalizeSuggestions(patch.AISuggestions.Value))
		if err != nil {
			return "", nil, err
		}
		q = q.Set("ai_suggestions", raw)
	}
	if patch.Keywords.Set {
		keywords := patch.Keywords.Value
		if keywords == nil {
			keywords = []string{}
		}
		raw, err := encodeJSON(keywords)
		if err != nil {
			return "", nil, err
		}
		q = q.Set("keywords", raw)
	}

	query, args, err := q.
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": resumeID}).
		Where(sq.Eq{"user_id": userID}).
		Suffix("RETURNING " + resumeColumns).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("build resume update: %w", err)
	}
	return query, args, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (Resume, error) {
	var (
		resume         Resume
		original       []byte
		optimized      []byte
		jobDescription sql.NullString
		score          sql.NullInt64
		suggestions    []byte
		keywords       []byte
	)
	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.Title,
		&original,
		&optimized,
		&jobDescription,
		&score,
		&suggestions,
		&keywords,
		&resume.CreatedAt,
		&resume.UpdatedAt,
	)
	if err != nil {
		return Resume{}, err
	}

	if len(original) > 0 {
		if err := json.Unmarshal(original, &resume.OriginalContent); err != nil {
			return Resume{}, fmt.Errorf("decode original_content: %w", err)
		}
	}
	if len(optimized) > 0 {
		var content model.Content
		if err := json.Unmarshal(optimized, &content); err != nil {
			return Resume{}, fmt.Errorf("decode optimized_content: %w", err)
		}
		resume.OptimizedContent = &content
	}
	if jobDescription.Valid {
		jd := jobDescription.String
		resume.JobDescription = &jd
	}
	if score.Valid {
		value := int(score.Int64)
		resume.OptimizationScore = &value
	}
	if len(suggestions) > 0 {
		if err := json.Unmarshal(suggestions, &resume.AISuggestions); err != nil {
			return Resume{}, fmt.Errorf("decode ai_suggestions: %w", err)
		}
	}
	if len(keywords) > 0 {
		if err := json.Unmarshal(keywords, &resume.Keywords); err != nil {
			return Resume{}, fmt.Errorf("decode keywords: %w", err)
		}
	}
	return resume.normalize(), nil
}

func encodeJSON(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return string(raw), nil
}

func nullableJSON(content *model.Content) (any, error) {
	if content == nil {
		return nil, nil
	}
	return encodeJSON(content.Normalize())
}

func nullableString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableInt(value *int) any {
	if value == nil {
		return nil
	}
	return *value
}

func validUUID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}

var _ Repo = (*PGRepo)(nil)
