package pdfform

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"log/slog"
	"strings"

	// Decoders for data-URI validation.
	_ "image/jpeg"
	_ "image/png"

	"github.com/go-pdf/fpdf"

	"github.com/goliatone/go-reportgen/pkg/formdata"
	"github.com/goliatone/go-reportgen/pkg/logging"
	"github.com/goliatone/go-reportgen/pkg/schema"
)

const (
	photoWidth    = 60.0
	photoHeight   = 45.0
	signatureBoxW = 70.0
	signatureBoxH = 25.0
)

// decodedImage is a validated inline image ready for embedding.
type decodedImage struct {
	format string
	data   []byte
	width  int
	height int
}

// parseDataURI decodes a data: URI and validates its payload with the image
// decoders. Registering a broken image would poison the whole fpdf document,
// so anything unparsable is rejected here instead.
func parseDataURI(raw string) (*decodedImage, error) {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "data:image/") {
		return nil, fmt.Errorf("not an image data uri")
	}
	head, payload, found := strings.Cut(raw, ",")
	if !found || !strings.Contains(head, ";base64") {
		return nil, fmt.Errorf("missing base64 payload")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	switch format {
	case "png", "jpeg":
	default:
		return nil, fmt.Errorf("unsupported image format %q", format)
	}
	return &decodedImage{format: format, data: data, width: cfg.Width, height: cfg.Height}, nil
}

// embedImage registers and places a validated image, constrained to the given
// box while preserving aspect ratio. The name must be unique per document.
func (c *canvas) embedImage(name string, img *decodedImage, x, y, maxW, maxH float64) (w, h float64) {
	w, h = maxW, maxH
	if img.width > 0 && img.height > 0 {
		ratio := float64(img.width) / float64(img.height)
		if maxW/maxH > ratio {
			w = maxH * ratio
		} else {
			h = maxW / ratio
		}
	}

	imageType := "PNG"
	if img.format == "jpeg" {
		imageType = "JPG"
	}
	c.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: imageType}, bytes.NewReader(img.data))
	c.pdf.ImageOptions(name, x, y, w, h, false, fpdf.ImageOptions{ImageType: imageType}, 0, "")
	return w, h
}

// photoCaption digs a display name out of a photo record.
func photoCaption(record map[string]any) string {
	for _, key := range []string{"name", "filename", "label", "description", "url", "path"} {
		if v, ok := record[key]; ok {
			if s := strings.TrimSpace(formdata.Stringify(v)); s != "" {
				return s
			}
		}
	}
	return ""
}

// photoData extracts the inline image payload from a photo value, which may
// be a bare data-URI string or a record carrying one. Strings without a
// data-URI prefix are descriptive labels, not images.
func photoData(value any) (uri string, caption string) {
	switch v := value.(type) {
	case string:
		if strings.HasPrefix(strings.TrimSpace(v), "data:image/") {
			return v, ""
		}
		return "", strings.TrimSpace(v)
	case map[string]any:
		caption = photoCaption(v)
		for _, key := range []string{"data", "dataUri", "dataURI", "src", "image", "content"} {
			if s, ok := v[key].(string); ok && strings.HasPrefix(strings.TrimSpace(s), "data:image/") {
				return s, caption
			}
		}
		return "", caption
	default:
		return "", ""
	}
}

// renderPhoto embeds one photo or an array of photos. Photos that cannot be
// decoded fall back to a text caption so one bad upload never sinks the
// report.
func renderPhoto(c *canvas, field schema.Field, value any, ok bool) {
	c.ensureRoom(breakPhoto)
	c.writeLabel(c.cleanText(field.Label))

	if !ok || value == nil {
		c.writeValue(placeholderNoPhoto)
		return
	}

	photos, isArray := value.([]any)
	if !isArray {
		photos = []any{value}
	}
	if len(photos) == 0 {
		c.writeValue(placeholderNoPhoto)
		return
	}

	for i, photo := range photos {
		c.ensureRoom(breakPhoto)
		c.drawPhoto(field, i, photo)
	}
	c.lc.Advance(2)
}

func (c *canvas) drawPhoto(field schema.Field, index int, photo any) {
	uri, caption := photoData(photo)

	// No embeddable payload: render the label itself, bulleted, so
	// descriptive entries still appear in the report.
	if uri == "" {
		if caption == "" {
			c.writeValue(placeholderNoPhoto)
			return
		}
		c.writeValue("• " + caption)
		return
	}

	img, err := parseDataURI(uri)
	if err != nil {
		logging.Logger().Warn("photo skipped",
			slog.String("field", field.Key()),
			slog.Int("index", index),
			slog.String("reason", err.Error()))
		c.writeValue(captionImageFailed)
		return
	}

	name := c.imageName("photo-" + field.Key())
	_, h := c.embedImage(name, img, c.lc.Left(), c.lc.Y, photoWidth, photoHeight)
	c.lc.Advance(h + 1)

	if caption != "" {
		c.writeWrapped(caption, "I", 8, c.style.Muted)
	}
	c.lc.Advance(2)
}
