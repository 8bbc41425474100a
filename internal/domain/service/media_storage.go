package service

import (
	"context"
	"io"
)

type UploadResult struct {
	URL        string
	ObjectName string
	Size       int64
}

// MediaStorage is the object-store boundary. Object names are chosen by
// the caller; the store only persists bytes and hands back a public URL.
type MediaStorage interface {
	Upload(ctx context.Context, file io.Reader, contentType, objectName string) (*UploadResult, error)
	Delete(ctx context.Context, objectName string) error
	Close() error
}
