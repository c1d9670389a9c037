package avatar

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrInvalidImage covers every way a submitted picture can be unusable:
// malformed encoding, too large, or not an image at all.
var ErrInvalidImage = errors.New("invalid image payload")

// Image is a decoded, sniffed profile picture.
type Image struct {
	Data        []byte
	ContentType string
	Extension   string // with leading dot, e.g. ".png"
}

// DecodePayload accepts a base64 data URL ("data:image/png;base64,...") or
// bare base64 and returns the decoded image. The declared media type is
// ignored; the content type comes from sniffing the bytes.
func DecodePayload(payload string, maxBytes int64) (*Image, error) {
	encoded := strings.TrimSpace(payload)
	if strings.HasPrefix(encoded, "data:") {
		header, body, ok := strings.Cut(encoded, ",")
		if !ok || !strings.HasSuffix(header, ";base64") {
			return nil, fmt.Errorf("%w: expected a base64 data URL", ErrInvalidImage)
		}
		encoded = body
	}
	if encoded == "" {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidImage)
	}

	if maxBytes > 0 && int64(base64.StdEncoding.DecodedLen(len(encoded))) > maxBytes+2 {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrInvalidImage, maxBytes)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: larger than %d bytes", ErrInvalidImage, maxBytes)
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, fmt.Errorf("%w: detected %s", ErrInvalidImage, mtype.String())
	}

	return &Image{
		Data:        data,
		ContentType: mtype.String(),
		Extension:   mtype.Extension(),
	}, nil
}
