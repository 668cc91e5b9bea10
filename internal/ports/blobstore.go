package ports

import (
	"context"

	"eduresources/internal/models"
)

type BlobStore interface {
	// Put streams one document into the remote store. It rejects anything
	// outside the pdf/doc/docx allow-list before any remote call is made.
	Put(ctx context.Context, file models.FileUpload) (*models.BlobRef, error)

	// Destroy removes the blob behind publicID. Destroying an identifier
	// that no longer exists is a no-op, not an error.
	Destroy(ctx context.Context, publicID string) error

	// IdentifierFromURL recovers the public identifier from a stored file
	// URL. Fallback for rows persisted without an explicit public_id.
	IdentifierFromURL(fileURL string) string
}
