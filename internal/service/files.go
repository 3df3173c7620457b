package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/and161185/classroom-gateway/internal/errs"
	"github.com/and161185/classroom-gateway/internal/model"
	"github.com/and161185/classroom-gateway/internal/storage"
	"github.com/gofrs/uuid/v5"
)

// keyPrefix namespaces uploaded objects inside the bucket.
const keyPrefix = "uploads/"

// FileService defines the asset gateway operations.
type FileService interface {
	// Upload stores raw bytes under a collision-resistant key and returns
	// the caller-visible object metadata.
	Upload(ctx context.Context, data []byte, originalName, contentType string) (model.StorageObject, error)
	// List returns the bucket's current contents with public URLs recomputed.
	List(ctx context.Context) ([]model.StorageObject, error)
	// Delete removes an object by its storage key.
	Delete(ctx context.Context, key string) error
}

type FileServiceImpl struct {
	store storage.ObjectStorage
	now   func() time.Time
}

// NewFileService constructs FileService around an object storage handle.
func NewFileService(store storage.ObjectStorage) *FileServiceImpl {
	return &FileServiceImpl{store: store, now: time.Now}
}

// Upload rejects empty input before any network I/O, then puts the bytes
// under a fresh storage key.
func (s *FileServiceImpl) Upload(ctx context.Context, data []byte, originalName, contentType string) (model.StorageObject, error) {
	if len(data) == 0 {
		return model.StorageObject{}, fmt.Errorf("%w: no file uploaded", errs.ErrInvalidInput)
	}
	if originalName == "" {
		return model.StorageObject{}, fmt.Errorf("%w: missing file name", errs.ErrInvalidInput)
	}

	key, err := s.storageKey(originalName)
	if err != nil {
		return model.StorageObject{}, err
	}
	if err := s.store.Put(ctx, key, data, contentType); err != nil {
		return model.StorageObject{}, err
	}

	return model.StorageObject{
		Name:        path.Base(originalName),
		Key:         key,
		ContentType: contentType,
		Size:        int64(len(data)),
		CreatedAt:   s.now(),
		URL:         s.store.PublicURL(key),
	}, nil
}

// List maps backend metadata to caller-visible objects. URLs are recomputed
// on every call; the gateway keeps no index of its own.
func (s *FileServiceImpl) List(ctx context.Context) ([]model.StorageObject, error) {
	infos, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.StorageObject, 0, len(infos))
	for _, info := range infos {
		out = append(out, model.StorageObject{
			Name:      displayName(info.Key),
			Key:       info.Key,
			Size:      info.Size,
			CreatedAt: info.LastModified,
			URL:       s.store.PublicURL(info.Key),
		})
	}
	return out, nil
}

// Delete removes an object by key. An already-absent object surfaces as
// errs.ErrNotFound, never as a crash.
func (s *FileServiceImpl) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("%w: missing storage key", errs.ErrInvalidInput)
	}
	return s.store.Delete(ctx, key)
}

// storageKey builds "uploads/<unix-nano>_<uuid>_<base name>". The timestamp
// makes keys sort by upload time; the uuid removes any collision window
// between concurrent uploads of the same name.
func (s *FileServiceImpl) storageKey(originalName string) (string, error) {
	uid, err := uuid.NewV4()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d_%s_%s", keyPrefix, s.now().UnixNano(), uid, path.Base(originalName)), nil
}

// displayName recovers the original file name from a storage key. Keys that
// predate or bypass the naming scheme fall back to the raw key.
func displayName(key string) string {
	rest := strings.TrimPrefix(key, keyPrefix)
	parts := strings.SplitN(rest, "_", 3)
	if len(parts) == 3 {
		return parts[2]
	}
	return rest
}
