package ports

import (
	"context"

	"eduresources/internal/models"
)

type ResourceRepository interface {
	ListAll(ctx context.Context) ([]models.Resource, error)
	GetByID(ctx context.Context, id int) (*models.Resource, error)
	Insert(ctx context.Context, res *models.Resource) (*models.Resource, error)

	// Update always rewrites type/title/description. The file reference
	// (size, file_url, public_id) is rewritten only when blob != nil.
	Update(ctx context.Context, id int, fields models.ResourceFields, size string, blob *models.BlobRef) (*models.Resource, error)

	Delete(ctx context.Context, id int) error
}
