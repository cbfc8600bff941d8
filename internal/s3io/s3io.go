// Package s3io manages object storage configuration and upload URL
// construction for progress photo uploads.
package s3io

import (
	"context"
	"fmt"
	"strings"
	"sync"

	dErrors "originstamp/pkg/domain-errors"
)

// Config holds the object storage settings. Endpoint is optional: when set,
// uploads go to a custom S3-compatible endpoint, otherwise to AWS in
// virtual-host form.
type Config struct {
	BucketName      string `json:"bucket_name"`
	Region          string `json:"region"`
	AccessKeyID     string `json:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key,omitempty"`
	Endpoint        string `json:"endpoint,omitempty"`
}

// UploadFile describes the file an upload URL is requested for.
type UploadFile struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	FileSize    uint64 `json:"file_size"`
}

// Service holds the storage configuration and builds upload URLs.
type Service struct {
	mu     sync.RWMutex
	config *Config
}

// NewService creates a Service with no configuration set.
func NewService() *Service {
	return &Service{}
}

// Configure replaces the storage configuration.
func (s *Service) Configure(_ context.Context, config Config) error {
	if config.BucketName == "" {
		return dErrors.New(dErrors.CodeValidation, "bucket_name cannot be empty")
	}
	if config.Endpoint == "" && config.Region == "" {
		return dErrors.New(dErrors.CodeValidation, "region is required when no endpoint is set")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := config
	s.config = &cfg
	return nil
}

// Config returns the current configuration, or not-found when unset.
func (s *Service) Config(_ context.Context) (Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.config == nil {
		return Config{}, dErrors.New(dErrors.CodeNotFound, "object storage is not configured")
	}
	return *s.config, nil
}

// Configured reports whether storage settings are present.
func (s *Service) Configured(_ context.Context) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config != nil
}

// UploadURL builds the object URL for a file. The object key is the bare
// filename; the session only scopes authorization, not the key.
func (s *Service) UploadURL(_ context.Context, _ string, file UploadFile) (string, error) {
	if file.Filename == "" {
		return "", dErrors.New(dErrors.CodeValidation, "filename cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.config == nil {
		return "", dErrors.New(dErrors.CodeInvariantViolation, "object storage is not configured")
	}

	var base string
	if s.config.Endpoint != "" {
		base = fmt.Sprintf("%s/%s", strings.TrimRight(s.config.Endpoint, "/"), s.config.BucketName)
	} else {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", s.config.BucketName, s.config.Region)
	}
	return fmt.Sprintf("%s/%s", base, file.Filename), nil
}
