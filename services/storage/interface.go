package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// Folders images may be uploaded to.
var Folders = map[string]bool{
	"packages":     true,
	"blog":         true,
	"destinations": true,
	"landing":      true,
	"gallery":      true,
}

var (
	// ErrUnknownFolder rejects uploads outside Folders.
	ErrUnknownFolder = errors.New("unknown upload folder")
	// ErrForeignURL is returned when asked to delete a URL this storage did not issue.
	ErrForeignURL = errors.New("url does not belong to this storage")
)

// StorageService defines the interface for image storage operations.
type StorageService interface {
	// UploadFile stores r under folder and returns its public URL.
	UploadFile(ctx context.Context, r io.Reader, filename, folder string) (string, error)
	// DeleteFile removes the object behind a public URL issued by UploadFile.
	DeleteFile(ctx context.Context, publicURL string) error
}

// FirebaseStorageService implements StorageService on the Firebase Storage bucket.
type FirebaseStorageService struct {
	client     *storage.Client
	bucketName string
}

// NewFirebaseStorageService wraps a storage client for bucketName.
func NewFirebaseStorageService(client *storage.Client, bucketName string) (*FirebaseStorageService, error) {
	if client == nil || bucketName == "" {
		return nil, fmt.Errorf("firebase storage: client and bucket are required")
	}
	return &FirebaseStorageService{client: client, bucketName: bucketName}, nil
}

func (s *FirebaseStorageService) UploadFile(ctx context.Context, r io.Reader, filename, folder string) (string, error) {
	objectPath, err := objectName(folder, filename)
	if err != nil {
		return "", err
	}
	obj := s.client.Bucket(s.bucketName).Object(objectPath)
	w := obj.NewWriter(ctx)

	if ext := filepath.Ext(filename); ext != "" {
		w.ObjectAttrs.ContentType = mime.TypeByExtension(ext)
	}
	w.ObjectAttrs.CacheControl = "public, max-age=31536000"

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to copy file to storage: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %w", err)
	}
	return FirebaseURL(s.bucketName, objectPath), nil
}

func (s *FirebaseStorageService) DeleteFile(ctx context.Context, publicURL string) error {
	objectPath, err := FirebaseObjectPath(s.bucketName, publicURL)
	if err != nil {
		return err
	}
	err = s.client.Bucket(s.bucketName).Object(objectPath).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// FirebaseURL is the public download URL of an object, as issued by the Firebase SDKs.
func FirebaseURL(bucket, objectPath string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media", bucket, url.PathEscape(objectPath))
}

// FirebaseObjectPath recovers the object path from a Firebase download URL or a
// storage.googleapis.com URL of bucket.
func FirebaseObjectPath(bucket, publicURL string) (string, error) {
	u, err := url.Parse(publicURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrForeignURL, err)
	}
	switch u.Host {
	case "firebasestorage.googleapis.com":
		prefix := "/v0/b/" + bucket + "/o/"
		escaped := u.EscapedPath()
		if !strings.HasPrefix(escaped, prefix) {
			return "", ErrForeignURL
		}
		return url.PathUnescape(strings.TrimPrefix(escaped, prefix))
	case "storage.googleapis.com":
		prefix := "/" + bucket + "/"
		if !strings.HasPrefix(u.Path, prefix) {
			return "", ErrForeignURL
		}
		return strings.TrimPrefix(u.Path, prefix), nil
	}
	return "", ErrForeignURL
}

// objectName places a unique, sanitised file name under folder.
func objectName(folder, filename string) (string, error) {
	if !Folders[folder] {
		return "", fmt.Errorf("%w: %s", ErrUnknownFolder, folder)
	}
	base := strings.ToLower(path.Base(filepath.ToSlash(filename)))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		}
		return -1
	}, base)
	if base == "" || base == "." {
		base = "image"
	}
	return fmt.Sprintf("%s/%s-%s", folder, uuid.New().String()[:8], base), nil
}
