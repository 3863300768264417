package domain

import "github.com/google/uuid"

// FeedItem is the aggregated one-per-owner latest-status entry surfaced to a viewer.
// It is derived, never persisted.
type FeedItem struct {
	UserID      uuid.UUID
	Latest      Status
	HasUnviewed bool
	Profile     *Profile
}

// Profile represents the display fields of a status owner
type Profile struct {
	ID          uuid.UUID
	Username    string
	DisplayName string
	AvatarPath  string
}
