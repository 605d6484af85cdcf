package extract

import (
	"encoding/base64"
	"strings"

	"github.com/appointly/scheduler-assistant/internal/common"
)

// NewRawInput validates and normalizes caller input. It fails with
// common.ErrInvalidInput when both text and image are absent/empty; the
// pipeline is never invoked in that case. Image bytes are passed through
// untouched apart from base64 encoding — no transcoding, no format checks.
func NewRawInput(text string, image []byte, mediaType string) (RawInput, error) {
	text = strings.TrimSpace(text)
	if text == "" && len(image) == 0 {
		return RawInput{}, common.NewAppError("EMPTY_INPUT",
			"either text or an image is required", common.ErrInvalidInput)
	}

	in := RawInput{Text: text}
	if len(image) > 0 {
		mt := strings.TrimSpace(mediaType)
		if mt == "" {
			mt = "application/octet-stream"
		}
		in.Image = &ImageAttachment{
			Data:      base64.StdEncoding.EncodeToString(image),
			MediaType: mt,
		}
	}
	return in, nil
}
