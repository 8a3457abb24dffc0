package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStorageService implements StorageService on Cloudinary.
type CloudinaryStorageService struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}

// NewCloudinaryStorageService creates a CloudinaryStorageService from account credentials.
func NewCloudinaryStorageService(cloudName, apiKey, apiSecret string) (*CloudinaryStorageService, error) {
	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudinary: %w", err)
	}
	return &CloudinaryStorageService{cld: cld, cloudName: cloudName}, nil
}

// UploadFile uploads r into folder and returns the secure delivery URL.
func (s *CloudinaryStorageService) UploadFile(ctx context.Context, r io.Reader, filename, folder string) (string, error) {
	objectPath, err := objectName(folder, filename)
	if err != nil {
		return "", err
	}
	publicID := strings.TrimSuffix(path.Base(objectPath), path.Ext(objectPath))
	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:   folder,
		PublicID: publicID,
	})
	if err != nil {
		return "", fmt.Errorf("CloudinaryStorageService: failed to upload file: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("CloudinaryStorageService: no URL returned")
	}
	return result.SecureURL, nil
}

// DeleteFile destroys the asset behind a Cloudinary delivery URL.
func (s *CloudinaryStorageService) DeleteFile(ctx context.Context, publicURL string) error {
	publicID, err := CloudinaryPublicID(s.cloudName, publicURL)
	if err != nil {
		return err
	}
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("CloudinaryStorageService: failed to delete file: %w", err)
	}
	return nil
}

// CloudinaryPublicID extracts the public ID from a delivery URL such as
// https://res.cloudinary.com/<cloud>/image/upload/v1712/packages/ab12-bromo.jpg.
func CloudinaryPublicID(cloudName, publicURL string) (string, error) {
	u, err := url.Parse(publicURL)
	if err != nil || u.Host != "res.cloudinary.com" {
		return "", ErrForeignURL
	}
	parts := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	if len(parts) < 4 || parts[0] != cloudName || parts[2] != "upload" {
		return "", ErrForeignURL
	}
	rest := parts[3:]
	if len(rest) > 1 && strings.HasPrefix(rest[0], "v") && isDigits(rest[0][1:]) {
		rest = rest[1:]
	}
	id := strings.Join(rest, "/")
	return strings.TrimSuffix(id, path.Ext(id)), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
