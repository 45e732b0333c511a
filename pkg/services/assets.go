package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Sharma12321/SreeHari-Portfolio/pkg/logging"
	"github.com/Sharma12321/SreeHari-Portfolio/pkg/models"
)

// ErrEmptyAsset is returned when an upload carries no data
var ErrEmptyAsset = errors.New("asset data is empty")

// AssetStore persists the latest photo and resume
type AssetStore interface {
	Save(ctx context.Context, kind models.AssetKind, data string) error
	Latest(ctx context.Context, kind models.AssetKind) (string, bool, error)
}

// AssetService handles the profile photo and resume uploads
type AssetService struct {
	store  AssetStore
	logger zerolog.Logger
}

func NewAssetService(store AssetStore, logger zerolog.Logger) *AssetService {
	return &AssetService{
		store:  store,
		logger: logging.Component(logger, "assets"),
	}
}

// Upload stores data as the newest value for kind
func (s *AssetService) Upload(ctx context.Context, kind models.AssetKind, data string) error {
	if strings.TrimSpace(data) == "" {
		return ErrEmptyAsset
	}
	if err := s.store.Save(ctx, kind, data); err != nil {
		return fmt.Errorf("error saving %s: %w", kind, err)
	}
	s.logger.Info().Str("kind", string(kind)).Int("bytes", len(data)).Msg("Stored asset")
	return nil
}

// LatestPhoto returns the newest photo data URL
func (s *AssetService) LatestPhoto(ctx context.Context) (string, bool, error) {
	return s.store.Latest(ctx, models.AssetPhoto)
}

// LatestResumeURL returns the newest resume as a PDF data URL
func (s *AssetService) LatestResumeURL(ctx context.Context) (string, bool, error) {
	data, ok, err := s.store.Latest(ctx, models.AssetResume)
	if err != nil || !ok {
		return "", ok, err
	}
	return ResumeDataURL(data), true, nil
}

// ResumeDataURL re-labels a stored data URL as application/pdf. The base64
// payload is whatever follows the first comma, or the whole value if there is none.
func ResumeDataURL(stored string) string {
	payload := stored
	if _, after, found := strings.Cut(stored, ","); found {
		payload = after
	}
	return "data:application/pdf;base64," + payload
}
