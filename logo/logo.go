// Package logo ingests invoice logos.
//
// A logo arrives as an opaque byte blob and is stored on the invoice as a
// data URI, verbatim. Before drawing, the renderer asks for a form the PDF
// engine can embed: PNG, JPEG and GIF pass through, BMP, TIFF and WebP are
// re-encoded as PNG.
package logo

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder

	auditreport "github.com/kakehashi-asia/auditreport"
)

// MaxSize is the largest accepted logo blob.
const MaxSize = 4 << 20

// Image types understood by the PDF engine.
const (
	TypePNG  = "PNG"
	TypeJPEG = "JPG"
	TypeGIF  = "GIF"
)

var accepted = map[string]string{
	"image/png":  TypePNG,
	"image/jpeg": TypeJPEG,
	"image/gif":  TypeGIF,
	"image/bmp":  "",
	"image/tiff": "",
	"image/webp": "",
}

// Sniff returns the MIME type of data if it is a supported raster image.
func Sniff(data []byte) (string, error) {
	if len(data) == 0 {
		return "", auditreport.Errorf("logo.Sniff", auditreport.ErrInvalidImage, "empty payload")
	}
	if len(data) > MaxSize {
		return "", auditreport.Errorf("logo.Sniff", auditreport.ErrInvalidImage, "%d bytes exceeds %d", len(data), MaxSize)
	}
	mt := mimetype.Detect(data)
	for mime := range accepted {
		if mt.Is(mime) {
			return mime, nil
		}
	}
	return "", auditreport.Errorf("logo.Sniff", auditreport.ErrInvalidImage, "unsupported type %s", mt.String())
}

// DataURI sniffs data and returns it as a base64 data URI.
func DataURI(data []byte) (string, error) {
	mime, err := Sniff(data)
	if err != nil {
		return "", err
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// ParseDataURI splits a base64 data URI into its MIME type and payload.
func ParseDataURI(uri string) (string, []byte, error) {
	const op = "logo.ParseDataURI"

	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, auditreport.Errorf(op, auditreport.ErrInvalidImage, "not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, auditreport.Errorf(op, auditreport.ErrInvalidImage, "missing payload")
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, auditreport.Errorf(op, auditreport.ErrInvalidImage, "payload is not base64")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, auditreport.Errorf(op, auditreport.ErrInvalidImage, "%v", err)
	}
	return mime, data, nil
}

// Image is a logo ready for the PDF engine.
type Image struct {
	Type   string // TypePNG, TypeJPEG or TypeGIF
	Data   []byte
	Width  int
	Height int
}

// Prepare decodes a stored data URI into an Image. The declared MIME type
// is ignored; the payload is sniffed again.
func Prepare(uri string) (*Image, error) {
	_, data, err := ParseDataURI(uri)
	if err != nil {
		return nil, err
	}
	mime, err := Sniff(data)
	if err != nil {
		return nil, err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, auditreport.Errorf("logo.Prepare", auditreport.ErrInvalidImage, "%v", err)
	}
	if typ := accepted[mime]; typ != "" {
		return &Image{Type: typ, Data: data, Width: cfg.Width, Height: cfg.Height}, nil
	}

	converted, err := toPNG(data)
	if err != nil {
		return nil, auditreport.Errorf("logo.Prepare", auditreport.ErrInvalidImage, "%v", err)
	}
	return &Image{Type: TypePNG, Data: converted, Width: cfg.Width, Height: cfg.Height}, nil
}

func toPNG(data []byte) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("re-encoding %s: %w", format, err)
	}
	return buf.Bytes(), nil
}
