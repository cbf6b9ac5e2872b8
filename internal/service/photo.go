package service

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // register the PNG decoder
)

// photoQuality is the JPEG quality journal photos are stored at.
const photoQuality = 80

// compressPhoto re-encodes a PNG or JPEG image as JPEG at photoQuality.
// Bytes that do not decode as an image are returned unchanged; an empty
// input means no photo and yields nil.
func compressPhoto(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return data
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: photoQuality}); err != nil {
		return data
	}
	return buf.Bytes()
}
