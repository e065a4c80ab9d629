package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/apperrors"
)

const defaultMaxUploadBytes = 5 << 20

// UploadPolicy bounds what an upload may be
type UploadPolicy struct {
	MaxBytes   int64
	Extensions []string
}

// GenericImagePolicy applies to user avatars and category images
func GenericImagePolicy(maxBytes int64) UploadPolicy {
	return UploadPolicy{MaxBytes: maxBytes, Extensions: []string{"jpeg", "jpg", "png", "gif"}}
}

// RecipeImagePolicy is stricter than the generic one: no gif
func RecipeImagePolicy(maxBytes int64) UploadPolicy {
	return UploadPolicy{MaxBytes: maxBytes, Extensions: []string{"jpg", "jpeg", "png"}}
}

// Verdict is the outcome of screening an upload
type Verdict struct {
	Accepted bool
	Reason   string
}

func accepted() Verdict               { return Verdict{Accepted: true} }
func rejected(reason string) Verdict { return Verdict{Reason: reason} }

// AllowsExtension reports whether name ends in one of the allowed extensions
func (p UploadPolicy) AllowsExtension(name string) bool {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	if ext == "" {
		return false
	}
	for _, allowed := range p.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Screen checks a file name and size against the policy
func (p UploadPolicy) Screen(filename string, size int64) Verdict {
	maxBytes := p.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	if !p.AllowsExtension(filename) {
		return rejected(fmt.Sprintf("Unsupported file type, allowed: %s", strings.Join(p.Extensions, ", ")))
	}
	if size > maxBytes {
		return rejected(fmt.Sprintf("File too large, maximum is %d MB", maxBytes>>20))
	}
	return accepted()
}

// MediaStore persists upload bytes and returns the URL they are served from.
// Delete takes a URL returned by Put.
type MediaStore interface {
	Put(ctx context.Context, ext, contentType string, body io.Reader, size int64) (string, error)
	Delete(ctx context.Context, url string) error
}

// MediaService screens uploads and hands accepted ones to a MediaStore
type MediaService struct {
	store    MediaStore
	maxBytes int64
}

// NewMediaService creates a new MediaService instance
func NewMediaService(store MediaStore, maxBytes int64) *MediaService {
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	return &MediaService{store: store, maxBytes: maxBytes}
}

// MaxBytes is the largest upload either policy accepts
func (s *MediaService) MaxBytes() int64 {
	return s.maxBytes
}

// GenericPolicy returns the policy for non-recipe images
func (s *MediaService) GenericPolicy() UploadPolicy {
	return GenericImagePolicy(s.maxBytes)
}

// RecipePolicy returns the policy for recipe images
func (s *MediaService) RecipePolicy() UploadPolicy {
	return RecipeImagePolicy(s.maxBytes)
}

// Ingest screens file against policy and stores it. A rejected file is an
// UnsupportedMedia error, never a silent drop.
func (s *MediaService) Ingest(ctx context.Context, file *multipart.FileHeader, policy UploadPolicy) (string, error) {
	if file == nil {
		return "", apperrors.Validation("Image file is required")
	}

	verdict := policy.Screen(file.Filename, file.Size)
	if !verdict.Accepted {
		return "", apperrors.UnsupportedMedia(verdict.Reason)
	}

	src, err := file.Open()
	if err != nil {
		return "", apperrors.Internal(fmt.Errorf("failed to open upload: %w", err))
	}
	defer func() { _ = src.Close() }()

	ext := strings.ToLower(path.Ext(file.Filename))
	contentType := file.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = mime.TypeByExtension(ext)
	}

	url, err := s.store.Put(ctx, ext, contentType, src, file.Size)
	if err != nil {
		return "", apperrors.Internal(fmt.Errorf("failed to store upload: %w", err))
	}
	return url, nil
}

// Discard removes a stored upload whose owning record was never written.
// Failures are logged, the caller is already on an error path.
func (s *MediaService) Discard(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := s.store.Delete(ctx, url); err != nil {
		log.Printf("[MediaService] Failed to discard upload %s: %v", url, err)
	}
}

// DiskStore writes uploads under Dir and serves them from URLPrefix
type DiskStore struct {
	Dir       string
	URLPrefix string
	seq       atomic.Uint32
}

// NewDiskStore creates dir if needed
func NewDiskStore(dir, urlPrefix string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &DiskStore{Dir: dir, URLPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// Put stores body as <timestamp><ext>
func (d *DiskStore) Put(ctx context.Context, ext, contentType string, body io.Reader, size int64) (string, error) {
	name := fmt.Sprintf("%d%03d%s", time.Now().UnixMilli(), d.seq.Add(1)%1000, ext)
	dst, err := os.OpenFile(filepath.Join(d.Dir, name), os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(dst, body); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return "", err
	}
	if err := dst.Close(); err != nil {
		return "", err
	}
	return d.URLPrefix + "/" + name, nil
}

// Delete removes the file behind a URL returned by Put. URLs outside
// URLPrefix are ignored.
func (d *DiskStore) Delete(ctx context.Context, url string) error {
	name, ok := strings.CutPrefix(url, d.URLPrefix+"/")
	if !ok || name == "" || name != filepath.Base(name) {
		return nil
	}
	err := os.Remove(filepath.Join(d.Dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// S3Store uploads to the configured bucket and returns the bucket's public URL
type S3Store struct {
	s3Config *config.S3Config
}

func NewS3Store(s3Config *config.S3Config) *S3Store {
	return &S3Store{s3Config: s3Config}
}

// Put uploads body under uploads/<uuid><ext>
func (s *S3Store) Put(ctx context.Context, ext, contentType string, body io.Reader, size int64) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}

	key := fmt.Sprintf("uploads/%s%s", uuid.New().String(), ext)
	_, err = s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := s.s3Config.PublicURL(key)
	log.Printf("[MediaService] Uploaded image to S3: %s", publicURL)
	return publicURL, nil
}

// Delete removes the object behind a URL returned by Put
func (s *S3Store) Delete(ctx context.Context, url string) error {
	key, ok := strings.CutPrefix(url, s.s3Config.PublicURL(""))
	if !ok || key == "" {
		return nil
	}
	_, err := s.s3Config.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}
