package common

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/nfnt/resize"
)

type ProcessedImage struct {
	Data     []byte
	MimeType string
	Width    int
	Height   int
}

// ProcessImage decodes the artifact payload, downscales it when an edge
// exceeds maxEdge, and reports the final pixel dimensions. Gif payloads
// keep only their first frame when resized.
func ProcessImage(mime string, data []byte, maxEdge int) (*ProcessedImage, error) {
	img, err := decodeImg(mime, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if maxEdge > 0 && (w > maxEdge || h > maxEdge) {
		img = resize.Thumbnail(uint(maxEdge), uint(maxEdge), img, resize.Lanczos2)
		bounds = img.Bounds()
		w, h = bounds.Dx(), bounds.Dy()

		data, err = encodeImg(mime, img)
		if err != nil {
			return nil, err
		}
	}

	return &ProcessedImage{
		Data:     data,
		MimeType: mime,
		Width:    w,
		Height:   h,
	}, nil
}

func decodeImg(mime string, data io.Reader) (img image.Image, err error) {
	switch mime {
	case "image/jpeg":
		img, err = jpeg.Decode(data)
	case "image/png", "application/octet-stream":
		img, err = png.Decode(data)
	case "image/gif":
		img, err = gif.Decode(data)
	default:
		return nil, fmt.Errorf("We just accept jpeg, gif or png")
	}
	return img, err
}

func encodeImg(mime string, img image.Image) (b []byte, err error) {
	buf := new(bytes.Buffer)

	switch mime {
	case "image/jpeg":
		err = jpeg.Encode(buf, img, nil)
	case "image/png", "application/octet-stream":
		err = png.Encode(buf, img)
	case "image/gif":
		err = gif.Encode(buf, img, nil)
	default:
		return nil, fmt.Errorf("We just accept jpeg, gif or png")
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), err
}
