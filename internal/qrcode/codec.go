package qrcode

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

var (
	// ErrInvalidURL is returned when a string is not an absolute URL with a scheme and host.
	ErrInvalidURL = errors.New("invalid url")
	// ErrDecode is returned when a filename token cannot be turned back into a URL.
	ErrDecode = errors.New("invalid encoded url")
	// ErrNameTooLong is returned when a URL encodes to a filename no filesystem will accept.
	ErrNameTooLong = errors.New("encoded url too long")
)

const (
	// FileExtension is appended to every stored QR code image.
	FileExtension = ".png"
	// MaxFilenameLength is NAME_MAX on common filesystems.
	MaxFilenameLength = 255
)

// URL is a validated, normalized absolute URL.
type URL string

// EncodedURL is the URL-safe, unpadded base64 form of a URL used as a filename stem.
type EncodedURL string

// ValidateAndNormalize parses raw and reassembles it into its canonical form.
// Re-normalizing a normalized URL yields the same string.
func ValidateAndNormalize(raw string) (URL, error) {
	if !utf8.ValidString(raw) {
		return "", fmt.Errorf("%w: not valid utf-8", ErrInvalidURL)
	}

	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidURL, err.Error())
	}

	if u.Scheme == "" {
		return "", fmt.Errorf("%w: missing scheme", ErrInvalidURL)
	}

	if u.Hostname() == "" {
		return "", fmt.Errorf("%w: missing host", ErrInvalidURL)
	}

	return URL(u.String()), nil
}

// Encode converts a URL into a filename-safe token.
func Encode(u URL) EncodedURL {
	encoded := base64.URLEncoding.EncodeToString([]byte(u))

	return EncodedURL(strings.TrimRight(encoded, "="))
}

// Decode restores the URL a token was produced from.
func Decode(token EncodedURL) (URL, error) {
	s := string(token)
	if n := len(s) % 4; n != 0 {
		s += strings.Repeat("=", 4-n)
	}

	raw, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrDecode, err.Error())
	}

	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: not valid utf-8", ErrDecode)
	}

	return URL(raw), nil
}

// Filename returns the stored image name for u.
func Filename(u URL) string {
	return string(Encode(u)) + FileExtension
}

// CheckFilename returns ErrNameTooLong when name exceeds MaxFilenameLength.
func CheckFilename(name string) error {
	if len(name) > MaxFilenameLength {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrNameTooLong, len(name), MaxFilenameLength)
	}

	return nil
}

// ParseFilename decodes a stored image name back into its URL.
func ParseFilename(name string) (URL, error) {
	stem, ok := strings.CutSuffix(name, FileExtension)
	if !ok || stem == "" {
		return "", fmt.Errorf("%w: expected a %s filename", ErrDecode, FileExtension)
	}

	return Decode(EncodedURL(stem))
}
