package validation

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is an uploaded picture that passed validation.
type Image struct {
	Filename string
	MimeType string
	Format   string
	Width    int
	Height   int
	Data     []byte
}

// ReadImage loads an uploaded file and validates it with CheckImage.
func ReadImage(fileHeader *multipart.FileHeader, maxSize int64) (*Image, error) {
	if fileHeader.Size > maxSize {
		return nil, tooLarge(fileHeader.Filename, maxSize)
	}
	mimeType, err := DetectMimeType(fileHeader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMimeType, err)
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	return CheckImage(fileHeader.Filename, mimeType, data, maxSize)
}

// CheckImage accepts data only if it is declared as image/*, fits in
// maxSize and decodes as one of the registered image formats.
func CheckImage(filename, mimeType string, data []byte, maxSize int64) (*Image, error) {
	if !strings.HasPrefix(mimeType, "image/") {
		return nil, fmt.Errorf("%w: %s (file: %s)", ErrInvalidMimeType, mimeType, filename)
	}
	if int64(len(data)) > maxSize {
		return nil, tooLarge(filename, maxSize)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidImage, filename, err)
	}

	return &Image{
		Filename: filename,
		MimeType: mimeType,
		Format:   format,
		Width:    cfg.Width,
		Height:   cfg.Height,
		Data:     data,
	}, nil
}

func tooLarge(filename string, maxSize int64) error {
	return fmt.Errorf("%w: %s exceeds the limit of %.0f MB", ErrPayloadTooLarge, filename, FormatSizeMB(maxSize))
}
