package media

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	maxPhotoSize = 512
	webpQuality  = 80
)

// NormalizePhoto decodifica jpeg/png, reduz para no máximo 512px no
// lado maior e reencoda em webp (formato único no bucket).
func NormalizePhoto(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > maxPhotoSize || h > maxPhotoSize {
		if w >= h {
			h = h * maxPhotoSize / w
			w = maxPhotoSize
		} else {
			w = w * maxPhotoSize / h
			h = maxPhotoSize
		}

		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var buf bytes.Buffer
	if err := webp.Encode(&buf, src, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}

	return buf.Bytes(), nil
}
