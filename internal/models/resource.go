package models

import "io"

type Resource struct {
	ID          int    `db:"id" json:"id"`
	Type        string `db:"type" json:"type"`
	Title       string `db:"title" json:"title"`
	Description string `db:"description" json:"description"`
	Size        string `db:"size" json:"size"` // derived, "<N>.<2dp> MB" or "Unknown size"
	FileURL     string `db:"file_url" json:"file_url"`
	PublicID    string `db:"public_id" json:"public_id"`
}

// FileUpload carries one multipart file from the handler down to the blob store.
type FileUpload struct {
	Reader      io.Reader
	Size        int64 // -1 when unknown
	Name        string
	ContentType string
}

// BlobRef is what the blob store hands back after an upload.
type BlobRef struct {
	URL      string
	PublicID string
}

// ResourceFields are the caller-supplied scalar columns.
type ResourceFields struct {
	Type        string
	Title       string
	Description string
}
