package infra

import (
	"context"
	"errors"
	"fmt"

	"eduresources/internal/models"
	"eduresources/internal/ports"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresResourceRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresResourceRepo(pool *pgxpool.Pool) ports.ResourceRepository {
	return &PostgresResourceRepo{pool: pool}
}

func (r *PostgresResourceRepo) ListAll(ctx context.Context) ([]models.Resource, error) {
	query := `
		SELECT id, type, title, COALESCE(description, ''), size, file_url, COALESCE(public_id, '')
		FROM resources
		ORDER BY id DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	resources := []models.Resource{}
	for rows.Next() {
		var res models.Resource
		if err := rows.Scan(
			&res.ID,
			&res.Type,
			&res.Title,
			&res.Description,
			&res.Size,
			&res.FileURL,
			&res.PublicID,
		); err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		resources = append(resources, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}

	return resources, nil
}

func (r *PostgresResourceRepo) GetByID(ctx context.Context, id int) (*models.Resource, error) {
	query := `
		SELECT id, type, title, COALESCE(description, ''), size, file_url, COALESCE(public_id, '')
		FROM resources
		WHERE id = $1
	`

	var res models.Resource

	err := r.pool.QueryRow(ctx, query, id).Scan(
		&res.ID,
		&res.Type,
		&res.Title,
		&res.Description,
		&res.Size,
		&res.FileURL,
		&res.PublicID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("get resource by id: %w", err)
	}

	return &res, nil
}

func (r *PostgresResourceRepo) Insert(ctx context.Context, res *models.Resource) (*models.Resource, error) {
	query := `
		INSERT INTO resources (type, title, description, size, file_url, public_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	row := r.pool.QueryRow(ctx, query,
		res.Type,
		res.Title,
		res.Description,
		res.Size,
		res.FileURL,
		res.PublicID,
	)
	if err := row.Scan(&res.ID); err != nil {
		return nil, fmt.Errorf("insert resource: %w", err)
	}
	return res, nil
}

// Two fixed statements instead of an assembled column list: the with-file
// branch rewrites the blob reference, the without-file branch leaves it alone.
const (
	updateScalarsQuery = `
		UPDATE resources
		SET type = $1, title = $2, description = $3
		WHERE id = $4
		RETURNING id, type, title, COALESCE(description, ''), size, file_url, COALESCE(public_id, '')
	`
	updateWithFileQuery = `
		UPDATE resources
		SET type = $1, title = $2, description = $3, size = $4, file_url = $5, public_id = $6
		WHERE id = $7
		RETURNING id, type, title, COALESCE(description, ''), size, file_url, COALESCE(public_id, '')
	`
)

func (r *PostgresResourceRepo) Update(
	ctx context.Context,
	id int,
	fields models.ResourceFields,
	size string,
	blob *models.BlobRef,
) (*models.Resource, error) {

	var row pgx.Row
	if blob != nil {
		row = r.pool.QueryRow(ctx, updateWithFileQuery,
			fields.Type, fields.Title, fields.Description,
			size, blob.URL, blob.PublicID,
			id,
		)
	} else {
		row = r.pool.QueryRow(ctx, updateScalarsQuery,
			fields.Type, fields.Title, fields.Description,
			id,
		)
	}

	var res models.Resource
	err := row.Scan(
		&res.ID,
		&res.Type,
		&res.Title,
		&res.Description,
		&res.Size,
		&res.FileURL,
		&res.PublicID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("update resource: %w", err)
	}

	return &res, nil
}

func (r *PostgresResourceRepo) Delete(ctx context.Context, id int) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
