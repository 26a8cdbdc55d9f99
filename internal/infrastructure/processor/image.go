package processor

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
)

var ErrInvalidImage = errors.New("file is not a decodable image")

type ResizeOption struct {
	Width   int
	Height  int
	Quality int // 1-100
}

type ProcessedImage struct {
	Data        []byte
	ContentType string
	Width       int
	Height      int
	Resized     bool
}

// NormalizeThumbnail checks that data decodes as an image and fits it inside
// the bounds of opt. Images already inside the bounds are returned untouched.
// webp is passed through because imaging has no webp decoder.
func NormalizeThumbnail(data []byte, contentType string, opt ResizeOption) (*ProcessedImage, error) {
	if contentType == "image/webp" {
		return &ProcessedImage{Data: data, ContentType: contentType}, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	b := img.Bounds()
	out := &ProcessedImage{
		Data:        data,
		ContentType: contentType,
		Width:       b.Dx(),
		Height:      b.Dy(),
	}
	if opt.Width <= 0 || opt.Height <= 0 || (b.Dx() <= opt.Width && b.Dy() <= opt.Height) {
		return out, nil
	}

	resized := imaging.Fit(img, opt.Width, opt.Height, imaging.Lanczos)

	var buf bytes.Buffer
	if contentType == "image/png" {
		err = imaging.Encode(&buf, resized, imaging.PNG)
	} else {
		quality := opt.Quality
		if quality <= 0 || quality > 100 {
			quality = 85
		}
		err = imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(quality))
		out.ContentType = "image/jpeg"
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	rb := resized.Bounds()
	out.Data = buf.Bytes()
	out.Width = rb.Dx()
	out.Height = rb.Dy()
	out.Resized = true
	return out, nil
}
