package status

import (
	"fmt"
	"log/slog"
	"mime"
	"statushub/internal/config"
	"statushub/internal/core/domain"
	"statushub/internal/core/port"
	"strings"
)

type statusService struct {
	uow       port.UnitOfWork
	media     port.MediaStorage
	publisher port.EventPublisher
	statusCfg config.StatusConfig
	logger    *slog.Logger
}

// NewStatusService creates a new status service
func NewStatusService(uow port.UnitOfWork, media port.MediaStorage, publisher port.EventPublisher, cfg config.StatusConfig, logger *slog.Logger) port.StatusService {
	return &statusService{
		uow:       uow,
		media:     media,
		publisher: publisher,
		statusCfg: cfg,
		logger:    logger,
	}
}

// AllowedMediaMimeTypes is a whitelist of supported media MIME types and
// their extensions. Deterministic, does NOT rely on OS mime databases.
var AllowedMediaMimeTypes = map[string]string{
	// Images
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",

	// Videos
	"video/mp4":       ".mp4",
	"video/webm":      ".webm",
	"video/quicktime": ".mov",
}

// mediaExtension validates the media MIME type against the declared content
// type and returns the storage-key extension.
func mediaExtension(declared domain.ContentType, contentType string) (string, error) {
	mimeType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrInvalidMediaType, contentType)
	}

	ext, ok := AllowedMediaMimeTypes[mimeType]
	if !ok {
		return "", fmt.Errorf("%w: unsupported MIME type %s", domain.ErrInvalidMediaType, mimeType)
	}

	kind := domain.ContentTypeImage
	if strings.HasPrefix(mimeType, "video/") {
		kind = domain.ContentTypeVideo
	}
	if kind != declared {
		return "", fmt.Errorf("%w: %s media for a %s status", domain.ErrInvalidMediaType, mimeType, declared)
	}

	return ext, nil
}

// validateInput rejects malformed content before any network call. The
// declared content type fixes exactly which fields must be supplied.
func validateInput(in port.CreateStatusInput) error {

	if !in.ContentType.Valid() {
		return fmt.Errorf("%w: unknown content type %q", domain.ErrInvalidContent, in.ContentType)
	}

	switch in.ContentType {
	case domain.ContentTypeText:
		if strings.TrimSpace(in.TextContent) == "" {
			return fmt.Errorf("%w: text status requires text content", domain.ErrInvalidContent)
		}
		if len(in.Media) > 0 {
			return fmt.Errorf("%w: text status must not carry media", domain.ErrInvalidContent)
		}
	default:
		if len(in.Media) == 0 {
			return fmt.Errorf("%w: %s status requires media", domain.ErrInvalidContent, in.ContentType)
		}
		if in.TextContent != "" {
			return fmt.Errorf("%w: media status must not carry text", domain.ErrInvalidContent)
		}
	}

	if !in.Privacy.Valid() {
		return fmt.Errorf("%w: unknown privacy level %q", domain.ErrInvalidPrivacy, in.Privacy)
	}

	if in.Privacy == domain.PrivacyCustom && len(in.AllowedViewerIDs) == 0 {
		return fmt.Errorf("%w: custom privacy requires a non-empty allow list", domain.ErrInvalidPrivacy)
	}
	if in.Privacy != domain.PrivacyCustom && len(in.AllowedViewerIDs) > 0 {
		return fmt.Errorf("%w: allow list is only valid with custom privacy", domain.ErrInvalidPrivacy)
	}

	return nil
}
