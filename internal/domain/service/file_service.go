package service

import (
	"context"
	"io"
)

// PhotoUploader sends a profile photo to the marketplace and returns the URL
// it will be served from.
type PhotoUploader interface {
	UploadProfilePhoto(ctx context.Context, filename, contentType string, file io.Reader) (string, error)
}
