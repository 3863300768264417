package domain

import "errors"

// ErrStatusNotFound is an error thrown when a status is not found
var ErrStatusNotFound = errors.New("status not found")

// ErrNotStatusOwner is an error thrown when a caller acts on a status it does not own
var ErrNotStatusOwner = errors.New("not the status owner")

// ErrInvalidContent is an error thrown when the content does not match the declared type
var ErrInvalidContent = errors.New("invalid status content")

// ErrInvalidPrivacy is an error thrown when the privacy level or allow list is invalid
var ErrInvalidPrivacy = errors.New("invalid privacy settings")

// ErrInvalidMediaType is an error thrown when the media MIME type is not supported
var ErrInvalidMediaType = errors.New("invalid media type")

// ErrMediaTooBig is an error thrown when the media payload exceeds the size limit
var ErrMediaTooBig = errors.New("media too big")

// ErrMediaUploadFailed is an error thrown when the blob store rejects an upload
var ErrMediaUploadFailed = errors.New("media upload failed")

// ErrStatusNotVisible is an error thrown when a viewer is not allowed to see a status
var ErrStatusNotVisible = errors.New("status not visible")

// ErrNoMedia is an error thrown when a media URL is requested for a text status
var ErrNoMedia = errors.New("status has no media")
