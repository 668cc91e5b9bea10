package ports

import (
	"context"

	"eduresources/internal/models"
)

type ResourceEvent struct {
	Action   string `json:"action"` // "created", "updated", "deleted"
	Resource int    `json:"resourceId"`
}

type ResourceService interface {
	List(ctx context.Context) ([]models.Resource, error)
	Get(ctx context.Context, id int) (*models.Resource, error)
	Add(ctx context.Context, fields models.ResourceFields, file *models.FileUpload) (*models.Resource, error)
	Update(ctx context.Context, id int, fields models.ResourceFields, file *models.FileUpload) (*models.Resource, error)
	Delete(ctx context.Context, id int) error
	Events() <-chan ResourceEvent
}
