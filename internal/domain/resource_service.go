package domain

import (
	"context"
	"fmt"
	"time"

	"eduresources/internal/models"
	"eduresources/internal/ports"

	"go.uber.org/zap"
)

// Explicit deadlines per call: the transport default is not enough to keep a
// stuck remote from pinning a request forever.
const (
	dbTimeout   = 5 * time.Second
	blobTimeout = 30 * time.Second
)

type ResourceService struct {
	repo  ports.ResourceRepository
	blobs ports.BlobStore
	log   *zap.SugaredLogger

	events chan ports.ResourceEvent
}

func NewResourceService(
	repo ports.ResourceRepository,
	blobs ports.BlobStore,
	log *zap.SugaredLogger,
) *ResourceService {
	return &ResourceService{
		repo:   repo,
		blobs:  blobs,
		log:    log,
		events: make(chan ports.ResourceEvent, 100),
	}
}

func (s *ResourceService) Events() <-chan ports.ResourceEvent { return s.events }

func (s *ResourceService) List(ctx context.Context) ([]models.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()
	return s.repo.ListAll(ctx)
}

func (s *ResourceService) Get(ctx context.Context, id int) (*models.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()
	return s.repo.GetByID(ctx, id)
}

// Add uploads the blob first, then inserts the row pointing at it. A failed
// insert rolls the fresh blob back so rejection never orphans an upload.
func (s *ResourceService) Add(
	ctx context.Context,
	fields models.ResourceFields,
	file *models.FileUpload,
) (*models.Resource, error) {

	if fields.Title == "" {
		return nil, models.ErrTitleRequired
	}
	if file == nil {
		return nil, models.ErrFileRequired
	}

	blob, err := s.putBlob(ctx, *file)
	if err != nil {
		return nil, err
	}

	res := &models.Resource{
		Type:        fields.Type,
		Title:       fields.Title,
		Description: fields.Description,
		Size:        formatSize(file.Size),
		FileURL:     blob.URL,
		PublicID:    blob.PublicID,
	}

	ctxDB, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	created, err := s.repo.Insert(ctxDB, res)
	if err != nil {
		s.destroyBlob(blob.PublicID, "rollback after insert failure")
		return nil, err
	}

	s.emit("created", created.ID)
	return created, nil
}

// Update rewrites the scalar fields and, when a new file arrives, replaces
// the blob reference: upload new → update row → best-effort delete of the old
// blob. The row never points at a blob whose delete preceded a failed commit;
// the worst case is an orphaned old blob, which is logged.
func (s *ResourceService) Update(
	ctx context.Context,
	id int,
	fields models.ResourceFields,
	file *models.FileUpload,
) (*models.Resource, error) {

	ctxGet, cancelGet := context.WithTimeout(ctx, dbTimeout)
	existing, err := s.repo.GetByID(ctxGet, id)
	cancelGet()
	if err != nil {
		return nil, err
	}

	var newBlob *models.BlobRef
	var size string
	if file != nil {
		newBlob, err = s.putBlob(ctx, *file)
		if err != nil {
			return nil, err
		}
		size = formatSize(file.Size)
	}

	ctxDB, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	updated, err := s.repo.Update(ctxDB, id, fields, size, newBlob)
	if err != nil {
		if newBlob != nil {
			s.destroyBlob(newBlob.PublicID, "rollback after update failure")
		}
		return nil, err
	}

	if newBlob != nil {
		if old := s.blobIdentifier(existing); old != "" {
			s.destroyBlob(old, "replace old blob")
		}
	}

	s.emit("updated", updated.ID)
	return updated, nil
}

// Delete removes the blob first, then the row. A genuine remote failure
// aborts so the row keeps its reference and the caller can retry; a missing
// blob is a no-op, so losing the row race just surfaces as not-found.
func (s *ResourceService) Delete(ctx context.Context, id int) error {
	ctxGet, cancelGet := context.WithTimeout(ctx, dbTimeout)
	existing, err := s.repo.GetByID(ctxGet, id)
	cancelGet()
	if err != nil {
		return err
	}

	if blobID := s.blobIdentifier(existing); blobID != "" {
		ctxBlob, cancelBlob := context.WithTimeout(ctx, blobTimeout)
		err := s.blobs.Destroy(ctxBlob, blobID)
		cancelBlob()
		if err != nil {
			return fmt.Errorf("destroy blob %q: %w", blobID, err)
		}
	}

	ctxDB, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	if err := s.repo.Delete(ctxDB, id); err != nil {
		return err
	}

	s.emit("deleted", id)
	return nil
}

func (s *ResourceService) putBlob(ctx context.Context, file models.FileUpload) (*models.BlobRef, error) {
	ctxBlob, cancel := context.WithTimeout(ctx, blobTimeout)
	defer cancel()
	return s.blobs.Put(ctxBlob, file)
}

// destroyBlob is the best-effort path: failures orphan a blob and are logged,
// never propagated.
func (s *ResourceService) destroyBlob(publicID, reason string) {
	ctx, cancel := context.WithTimeout(context.Background(), blobTimeout)
	defer cancel()

	if err := s.blobs.Destroy(ctx, publicID); err != nil {
		s.log.Errorw("blob destroy failed",
			"publicID", publicID,
			"reason", reason,
			"error", err,
		)
	}
}

// blobIdentifier prefers the persisted public_id; URL derivation is the
// fallback for rows created before the column existed.
func (s *ResourceService) blobIdentifier(res *models.Resource) string {
	if res.PublicID != "" {
		return res.PublicID
	}
	if res.FileURL == "" {
		return ""
	}
	return s.blobs.IdentifierFromURL(res.FileURL)
}

func formatSize(bytes int64) string {
	if bytes < 0 {
		return "Unknown size"
	}
	return fmt.Sprintf("%.2f MB", float64(bytes)/1048576)
}

func (s *ResourceService) emit(action string, id int) {
	select {
	case s.events <- ports.ResourceEvent{Action: action, Resource: id}:
	default:
		s.log.Warnw("event dropped, feed buffer full", "action", action, "resourceID", id)
	}
}
