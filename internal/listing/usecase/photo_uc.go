package usecase

import (
	"context"
	"fmt"
	"net/url"
	"path"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/estatehub/listing-service/internal/listing/domain"
)

const (
	// MaxUploadBatch bounds how many images one upload request may carry.
	MaxUploadBatch = 10
	// MaxImageSize is the per-file limit, 5 MB.
	MaxImageSize = 5 << 20
)

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// ObjectStorage is the narrow contract to the external image store. Delete
// takes the object identifier, not a URL; deleting an absent object is not an
// error.
type ObjectStorage interface {
	Upload(ctx context.Context, fileName string, data []byte) (string, error)
	Delete(ctx context.Context, identifier string) error
}

type ImageUpload struct {
	FileName string
	Data     []byte
}

type PhotoUsecase struct {
	storage ObjectStorage
	logger  *zap.Logger
}

func NewPhotoUsecase(storage ObjectStorage, logger *zap.Logger) *PhotoUsecase {
	return &PhotoUsecase{storage: storage, logger: logger}
}

// UploadImages stores a batch of image payloads and returns their external
// URLs with the original filenames as captions, in input order. The whole
// batch is rejected on the first oversize file or disallowed encoding;
// nothing is uploaded in that case.
func (uc *PhotoUsecase) UploadImages(ctx context.Context, files []ImageUpload) ([]domain.Image, error) {
	if len(files) == 0 {
		return nil, &domain.ValidationError{Field: "images", Message: "no images uploaded"}
	}
	if len(files) > MaxUploadBatch {
		return nil, &domain.ValidationError{Field: "images", Message: fmt.Sprintf("at most %d images per upload", MaxUploadBatch)}
	}
	for _, f := range files {
		if len(f.Data) > MaxImageSize {
			return nil, &domain.ValidationError{Field: "images", Message: "file is too large, maximum size is 5MB: " + f.FileName}
		}
		if !allowedImageExts[strings.ToLower(path.Ext(f.FileName))] {
			return nil, &domain.ValidationError{Field: "images", Message: "only jpg, jpeg, png and webp files are allowed: " + f.FileName}
		}
	}

	images := make([]domain.Image, 0, len(files))
	for _, f := range files {
		fileURL, err := uc.storage.Upload(ctx, f.FileName, f.Data)
		if err != nil {
			uc.logger.Error("failed to upload image", zap.String("file_name", f.FileName), zap.Error(err))
			return nil, err
		}
		images = append(images, domain.Image{URL: fileURL, Caption: f.FileName})
	}
	return images, nil
}

// RemoveImages issues a delete for every image object concurrently and waits
// for all attempts to settle. Individual failures are logged warnings; the
// caller's deletion proceeds regardless, so an unreachable object store can
// never make a listing undeletable.
func (uc *PhotoUsecase) RemoveImages(ctx context.Context, images []domain.Image) {
	var wg sync.WaitGroup
	for _, img := range images {
		identifier := objectIdentifier(img.URL)
		if identifier == "" {
			uc.logger.Warn("cannot derive object identifier from image url", zap.String("url", img.URL))
			continue
		}
		wg.Add(1)
		go func(identifier, rawURL string) {
			defer wg.Done()
			if err := uc.storage.Delete(ctx, identifier); err != nil {
				uc.logger.Warn("failed to delete image object",
					zap.String("identifier", identifier),
					zap.String("url", rawURL),
					zap.Error(err))
			}
		}(identifier, img.URL)
	}
	wg.Wait()
}

// objectIdentifier derives the external store's object identifier from a
// stored URL: the filename component of the path, stripped of its extension.
func objectIdentifier(rawURL string) string {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	base := path.Base(p)
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
