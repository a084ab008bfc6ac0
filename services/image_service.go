package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Azeezfasasi/lasu-mba-cloth/metrics"
	"github.com/Azeezfasasi/lasu-mba-cloth/utils"
)

// signedUploadTTL is how long a pre-authorized upload URL stays valid
const signedUploadTTL = 15 * time.Minute

// UploadedImage is what the media host returns for a stored image
type UploadedImage struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// SignedUpload lets a browser upload straight into the preset folder
type SignedUpload struct {
	UploadURL   string    `json:"uploadUrl"`
	Method      string    `json:"method"`
	ContentType string    `json:"contentType"`
	PublicID    string    `json:"publicId"`
	URL         string    `json:"url"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// ImageService handles cloth image upload, deletion and upload signing
type ImageService interface {
	// UploadImage validates and stores an image, returning its URL and deletion handle
	UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (*UploadedImage, error)

	// DeleteImages removes every listed image in one request
	DeleteImages(ctx context.Context, publicIDs []string) error

	// SignUpload pre-authorizes a direct upload of the given content type
	SignUpload(ctx context.Context, contentType string) (*SignedUpload, error)
}

// S3ImageService implements ImageService on top of an S3 bucket.
// Objects live under the configured preset folder.
type S3ImageService struct {
	s3Service S3Interface
	folder    string
	metrics   *metrics.Metrics
}

func NewS3ImageService(s3Service S3Interface, folder string, m *metrics.Metrics) *S3ImageService {
	return &S3ImageService{
		s3Service: s3Service,
		folder:    strings.Trim(folder, "/"),
		metrics:   m,
	}
}

func (s *S3ImageService) newKey(ext string) string {
	name := uuid.NewString() + ext
	if s.folder == "" {
		return name
	}
	return path.Join(s.folder, name)
}

// UploadImage validates and uploads an image file to the bucket
func (s *S3ImageService) UploadImage(ctx context.Context, fileHeader *multipart.FileHeader) (*UploadedImage, error) {
	img, err := utils.ReadImageFile(fileHeader)
	if err != nil {
		return nil, err
	}

	key := s.newKey(img.Extension)
	if err := s.s3Service.PutObject(ctx, key, img.ContentType, img.Data); err != nil {
		s.metrics.IncMedia("upload", false)
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}
	s.metrics.IncMedia("upload", true)

	return &UploadedImage{URL: s.s3Service.PublicURL(key), PublicID: key}, nil
}

// DeleteImages deletes images from the bucket; blank ids are skipped
func (s *S3ImageService) DeleteImages(ctx context.Context, publicIDs []string) error {
	keys := make([]string, 0, len(publicIDs))
	for _, id := range publicIDs {
		if id = strings.TrimSpace(id); id != "" {
			keys = append(keys, id)
		}
	}
	if len(keys) == 0 {
		return nil
	}

	if err := s.s3Service.DeleteObjects(ctx, keys); err != nil {
		s.metrics.IncMedia("delete", false)
		return fmt.Errorf("failed to delete images: %w", err)
	}
	s.metrics.IncMedia("delete", true)
	return nil
}

// SignUpload presigns a PUT for a new object in the preset folder
func (s *S3ImageService) SignUpload(ctx context.Context, contentType string) (*SignedUpload, error) {
	ext, ok := utils.ExtensionFor(contentType)
	if !ok {
		return nil, utils.NewValidationError("contentType must be one of: " + strings.Join(utils.AllowedImageTypes, ", "))
	}

	key := s.newKey(ext)
	url, err := s.s3Service.PresignPut(ctx, key, contentType, signedUploadTTL)
	if err != nil {
		s.metrics.IncMedia("sign", false)
		return nil, fmt.Errorf("failed to sign upload: %w", err)
	}
	s.metrics.IncMedia("sign", true)

	return &SignedUpload{
		UploadURL:   url,
		Method:      "PUT",
		ContentType: contentType,
		PublicID:    key,
		URL:         s.s3Service.PublicURL(key),
		ExpiresAt:   time.Now().Add(signedUploadTTL),
	}, nil
}
