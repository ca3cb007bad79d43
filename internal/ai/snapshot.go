package ai

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/anthonynsimon/bild/transform"
)

// snapshotMaxWidth caps the scene capture sent to the AI services; full
// framebuffer dumps waste upload time without helping the models.
const snapshotMaxWidth = 960

// EncodeSnapshot downscales a scene capture and encodes it as the JPEG data
// URL the AI services expect.
func EncodeSnapshot(img image.Image) (string, error) {
	if img == nil {
		return "", fmt.Errorf("encode snapshot: nil image")
	}

	b := img.Bounds()
	if b.Dx() > snapshotMaxWidth {
		h := b.Dy() * snapshotMaxWidth / b.Dx()
		img = transform.Resize(img, snapshotMaxWidth, h, transform.Linear)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 60}); err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
