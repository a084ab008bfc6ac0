package utils

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	// MaxFileSize is 10MB in bytes
	MaxFileSize = 10 * 1024 * 1024
)

// AllowedImageTypes are the content types accepted for cloth pictures
var AllowedImageTypes = []string{"image/png", "image/jpeg", "image/webp", "image/gif"}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ImageFile is a validated upload read into memory
type ImageFile struct {
	Filename    string
	ContentType string
	Extension   string
	Data        []byte
}

// ReadImageFile checks the size of the uploaded file, sniffs its content
// and returns the bytes when they are an accepted image type
func ReadImageFile(fileHeader *multipart.FileHeader) (*ImageFile, error) {
	if fileHeader == nil {
		return nil, &FileUploadError{Code: "NO_FILE", Message: "No file uploaded"}
	}
	if fileHeader.Size > MaxFileSize {
		return nil, fileTooLarge()
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, MaxFileSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	return ValidateImageBytes(fileHeader.Filename, data)
}

// ValidateImageBytes applies the size and content type rules to raw bytes
func ValidateImageBytes(filename string, data []byte) (*ImageFile, error) {
	if len(data) == 0 {
		return nil, &FileUploadError{Code: "NO_FILE", Message: "No file uploaded"}
	}
	if len(data) > MaxFileSize {
		return nil, fileTooLarge()
	}

	mtype, err := mimetype.DetectReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}
	contentType := strings.SplitN(mtype.String(), ";", 2)[0]
	if !slices.Contains(AllowedImageTypes, contentType) {
		return nil, &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: "Only PNG, JPEG, WEBP and GIF images are allowed",
		}
	}

	return &ImageFile{
		Filename:    filepath.Base(filename),
		ContentType: contentType,
		Extension:   mtype.Extension(),
		Data:        data,
	}, nil
}

// ExtensionFor returns the file extension for an allowed image content type
func ExtensionFor(contentType string) (string, bool) {
	switch contentType {
	case "image/png":
		return ".png", true
	case "image/jpeg":
		return ".jpg", true
	case "image/webp":
		return ".webp", true
	case "image/gif":
		return ".gif", true
	}
	return "", false
}

func fileTooLarge() *FileUploadError {
	return &FileUploadError{
		Code:    "FILE_TOO_LARGE",
		Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
	}
}
