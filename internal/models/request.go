package models

import (
	"fmt"
	"slices"
)

// CreateDownloadRequest is the body of POST /api/downloads.
type CreateDownloadRequest struct {
	Platform     string `json:"platform" validate:"required,oneof=tiktok instagram youtube twitter"`
	DownloadType string `json:"downloadType" validate:"required"`
	Value        string `json:"value" validate:"required"`
	Limit        int    `json:"limit" validate:"omitempty,gt=0"`
}

// downloadTypes lists the request variants each platform understands.
var downloadTypes = map[string][]string{
	PlatformTiktok:    {"username", "keyword", "hashtag", "bulk"},
	PlatformInstagram: {"url", "username", "story"},
}

// ValidateDownloadType checks the per-platform downloadType rules.
// Platforms without a published variant list accept any non-empty type.
func (r CreateDownloadRequest) ValidateDownloadType() error {
	allowed, ok := downloadTypes[r.Platform]
	if !ok {
		return nil
	}
	if slices.Contains(allowed, r.DownloadType) {
		return nil
	}
	return fmt.Errorf("%w: download type %q is not supported for %s", ErrValidation, r.DownloadType, r.Platform)
}
