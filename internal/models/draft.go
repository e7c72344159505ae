package models

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

// ErrInvalidDataURL is returned for a preview that is not a base64 data URL
var ErrInvalidDataURL = errors.New("invalid data URL")

// ImageFile is an uploaded cover image held in memory
type ImageFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Empty reports whether no image bytes were provided
func (f *ImageFile) Empty() bool {
	return f == nil || len(f.Data) == 0
}

// DetectedType returns the declared content type, sniffing the bytes when none was sent
func (f *ImageFile) DetectedType() string {
	if f.ContentType != "" && f.ContentType != "application/octet-stream" {
		return f.ContentType
	}
	return http.DetectContentType(f.Data)
}

// DataURL renders the image as a data URL for previews
func (f *ImageFile) DataURL() string {
	if f.Empty() {
		return ""
	}
	return "data:" + f.DetectedType() + ";base64," + base64.StdEncoding.EncodeToString(f.Data)
}

// ImageFromDataURL decodes a preview produced by DataURL back into an image
func ImageFromDataURL(dataURL, filename string) (*ImageFile, error) {
	rest, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return nil, ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, ErrInvalidDataURL
	}
	contentType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return nil, ErrInvalidDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidDataURL
	}
	return &ImageFile{Filename: filename, ContentType: contentType, Data: data}, nil
}

// Draft is the transient create-post form state
type Draft struct {
	Title        string
	Body         string // rich-text markup from the editor
	Image        *ImageFile
	ImagePreview string
}

// Reset discards every draft field
func (d *Draft) Reset() {
	d.Title = ""
	d.Body = ""
	d.Image = nil
	d.ImagePreview = ""
}

// NewPostRequest is the multipart payload sent to the create endpoint
type NewPostRequest struct {
	Title       string
	Description string
	Image       ImageFile
}
