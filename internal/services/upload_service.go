package services

import (
	"bytes"
	"context"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Unknownlegend09/ff-tournament/internal/models"
	"github.com/Unknownlegend09/ff-tournament/internal/repository"
	"github.com/Unknownlegend09/ff-tournament/internal/storage"
)

// UploadService stores payment-proof files and records them in the
// uploads collection. There is intentionally no content-type allowlist
// and no size cap; the upload surface mirrors the original behavior.
type UploadService struct {
	uploads repository.UploadRepository
	store   storage.Store
	logger  *zap.SugaredLogger
}

func NewUploadService(uploads repository.UploadRepository, store storage.Store, logger *zap.SugaredLogger) *UploadService {
	return &UploadService{uploads: uploads, store: store, logger: logger}
}

// Store persists the file under a generated name preserving the original
// extension and returns the upload record carrying its URL. For images a
// 320px JPEG thumbnail is stored alongside; thumbnail failures never fail
// the upload.
func (s *UploadService) Store(ctx context.Context, userID, filename, contentType string, data []byte) (*models.Upload, error) {
	id := uuid.NewString()
	key := id + filepath.Ext(filename)

	url, err := s.store.Save(ctx, key, contentType, data)
	if err != nil {
		return nil, err
	}

	up := &models.Upload{
		ID:          id,
		UserID:      userID,
		Key:         key,
		URL:         url,
		ContentType: contentType,
		Size:        int64(len(data)),
		CreatedAt:   time.Now().UTC(),
	}

	if strings.HasPrefix(contentType, "image/") {
		if thumb, err := makeThumbnail(data); err == nil {
			thumbKey := id + "_thumb.jpg"
			if _, err := s.store.Save(ctx, thumbKey, "image/jpeg", thumb); err == nil {
				up.Thumbnail = thumbKey
			}
		} else {
			s.logger.Debugw("thumbnail generation skipped", "key", key, "err", err)
		}
	}

	if err := s.uploads.Insert(ctx, up); err != nil {
		return nil, err
	}
	s.logger.Infow("file uploaded", "key", key, "user_id", userID, "size", up.Size)
	return up, nil
}

func makeThumbnail(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	thumb := imaging.Resize(img, 320, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
