package qrcode

import (
	"context"
	"errors"
)

var (
	ErrNotFound = errors.New("qr code not found")
	ErrExists   = errors.New("qr code already exists")
)

// Storage persists rendered QR code images by filename.
type Storage interface {
	// Save stores the image. It returns ErrExists if the name is taken.
	Save(ctx context.Context, name string, png []byte) error
	// Load returns the image bytes or ErrNotFound.
	Load(ctx context.Context, name string) ([]byte, error)
	// Exists reports whether an image with that name is stored.
	Exists(ctx context.Context, name string) (bool, error)
	// Delete removes the image or returns ErrNotFound.
	Delete(ctx context.Context, name string) error
	// List returns stored image names in lexical order.
	List(ctx context.Context) ([]string, error)
	// Ping checks that the backend is reachable.
	Ping(ctx context.Context) error
}
