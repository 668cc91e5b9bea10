package infra

import (
	"context"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"eduresources/internal/config"
	"eduresources/internal/models"
	"eduresources/internal/ports"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// blobFolder is the fixed namespace inside the bucket. IdentifierFromURL
// depends on it: keys are always "resources/<publicID><ext>".
const blobFolder = "resources"

var allowedContentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

type MinioBlobStore struct {
	client *minio.Client
	bucket string
}

func NewMinioBlobStore(ctx context.Context, cfg config.MinioConfig) (ports.BlobStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	ctxBucket, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctxBucket, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctxBucket, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("make bucket %q: %w", cfg.Bucket, err)
		}
	}

	return &MinioBlobStore{client: client, bucket: cfg.Bucket}, nil
}

func (s *MinioBlobStore) Put(ctx context.Context, file models.FileUpload) (*models.BlobRef, error) {
	contentType := resolveContentType(file.ContentType, file.Name)
	if !allowedContentTypes[contentType] {
		return nil, models.ErrUnsupportedFileType
	}

	publicID := uuid.NewString()
	key := blobFolder + "/" + publicID + path.Ext(file.Name)

	_, err := s.client.PutObject(ctx, s.bucket, key, file.Reader, file.Size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return nil, fmt.Errorf("put object %q: %w", key, err)
	}

	return &models.BlobRef{
		URL:      s.client.EndpointURL().String() + "/" + s.bucket + "/" + key,
		PublicID: publicID,
	}, nil
}

// Destroy locates the object by key prefix so the stored extension does not
// matter. Removing an identifier that no longer exists is a no-op.
func (s *MinioBlobStore) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return nil
	}

	prefix := blobFolder + "/" + publicID
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return fmt.Errorf("list objects %q: %w", prefix, obj.Err)
		}
		// prefix match only: "resources/<id>" or "resources/<id>.<ext>"
		rest := strings.TrimPrefix(obj.Key, prefix)
		if rest != "" && !strings.HasPrefix(rest, ".") {
			continue
		}
		if err := s.client.RemoveObject(ctx, s.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("remove object %q: %w", obj.Key, err)
		}
	}

	return nil
}

// IdentifierFromURL inverts Put's key construction: the path segment after
// the storage folder, extension stripped. Returns "" when the URL does not
// point into the folder.
func (s *MinioBlobStore) IdentifierFromURL(fileURL string) string {
	marker := "/" + blobFolder + "/"
	idx := strings.LastIndex(fileURL, marker)
	if idx < 0 {
		return ""
	}
	name := fileURL[idx+len(marker):]
	if name == "" || strings.Contains(name, "/") {
		return ""
	}
	return strings.TrimSuffix(name, path.Ext(name))
}

// .doc/.docx are not in the stdlib builtin table on every platform.
var contentTypeByExt = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

func resolveContentType(contentType, filename string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	contentType = strings.TrimSpace(strings.ToLower(contentType))
	if contentType == "" || contentType == "application/octet-stream" {
		ext := strings.ToLower(path.Ext(filename))
		if byExt, ok := contentTypeByExt[ext]; ok {
			contentType = byExt
		} else if byExt := mime.TypeByExtension(ext); byExt != "" {
			contentType = byExt
		}
	}
	return contentType
}
