// Package media turns inline base64 image payloads into hosted URLs.
package media

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// MaxImageBytes caps a decoded upload.
const MaxImageBytes = 5 << 20

var (
	// ErrDisabled is returned when no media host is configured.
	ErrDisabled = errors.New("image uploads are not configured")
	// ErrInvalidImage is returned for payloads that are not a decodable image.
	ErrInvalidImage = errors.New("invalid image payload")
)

// Uploader stores an object on the media host and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, name string, data []byte, contentType string) (string, error)
}

type Service struct {
	uploader Uploader
	folder   string
}

// NewService returns a Service. A nil uploader disables uploads.
func NewService(uploader Uploader, folder string) *Service {
	return &Service{uploader: uploader, folder: folder}
}

// Enabled reports whether images can be uploaded.
func (s *Service) Enabled() bool {
	return s != nil && s.uploader != nil
}

// UploadImage decodes the payload, checks that it is an image and uploads it
// under a random name.
func (s *Service) UploadImage(ctx context.Context, payload string) (string, error) {
	if !s.Enabled() {
		return "", ErrDisabled
	}
	data, err := Decode(payload)
	if err != nil {
		return "", err
	}
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", ErrInvalidImage, mtype.String())
	}

	name := path.Join(s.folder, uuid.NewString()+mtype.Extension())
	url, err := s.uploader.Upload(ctx, name, data, mtype.String())
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	return url, nil
}

// Decode accepts either a data URI ("data:image/png;base64,....") or bare
// base64 in standard or URL alphabet.
func Decode(payload string) ([]byte, error) {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, "data:") {
		comma := strings.IndexByte(payload, ',')
		if comma < 0 || !strings.HasSuffix(payload[:comma], ";base64") {
			return nil, fmt.Errorf("%w: malformed data URI", ErrInvalidImage)
		}
		payload = payload[comma+1:]
	}
	if payload == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidImage)
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxImageBytes+3 {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrInvalidImage, MaxImageBytes)
	}

	for _, enc := range []*base64.Encoding{base64.StdEncoding, base64.RawStdEncoding, base64.URLEncoding, base64.RawURLEncoding} {
		if data, err := enc.DecodeString(payload); err == nil {
			return data, nil
		}
	}
	return nil, fmt.Errorf("%w: not base64", ErrInvalidImage)
}
