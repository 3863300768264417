package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContentType represents the kind of content a status carries
type ContentType string

const (
	ContentTypeText  ContentType = "text"
	ContentTypeImage ContentType = "image"
	ContentTypeVideo ContentType = "video"
)

// Valid reports whether the content type is one of the known kinds
func (c ContentType) Valid() bool {
	switch c {
	case ContentTypeText, ContentTypeImage, ContentTypeVideo:
		return true
	}
	return false
}

// HasMedia reports whether the content type carries a blob-store object
func (c ContentType) HasMedia() bool {
	return c == ContentTypeImage || c == ContentTypeVideo
}

// PrivacyLevel represents who may view a status
type PrivacyLevel string

const (
	PrivacyPublic    PrivacyLevel = "public"
	PrivacyFriends   PrivacyLevel = "friends"
	PrivacyFollowers PrivacyLevel = "followers"
	PrivacyOnlyMe    PrivacyLevel = "only_me"
	PrivacyCustom    PrivacyLevel = "custom"
)

// Valid reports whether the privacy level is one of the known levels
func (p PrivacyLevel) Valid() bool {
	switch p {
	case PrivacyPublic, PrivacyFriends, PrivacyFollowers, PrivacyOnlyMe, PrivacyCustom:
		return true
	}
	return false
}

// Status represents an ephemeral content unit
type Status struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	ContentType ContentType
	TextContent string
	MediaPath   string
	Privacy     PrivacyLevel
	CreatedAt   time.Time
	ExpiresAt   time.Time
	Archived    bool
	ArchivedAt  *time.Time
}

// Active reports whether the status is still visible at the given instant
func (s *Status) Active(now time.Time) bool {
	return !s.Archived && s.ExpiresAt.After(now)
}

// StatusView records that one viewer has seen one status
type StatusView struct {
	StatusID uuid.UUID
	ViewerID uuid.UUID
	ViewedAt time.Time
}

// VisibilityException is an explicit allow entry for a custom-privacy status
type VisibilityException struct {
	StatusID      uuid.UUID
	AllowedUserID uuid.UUID
}
