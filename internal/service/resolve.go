package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/campuslink/campuslink/internal/storage"
)

// Picture is a resolved profile-picture blob
type Picture struct {
	Key         string
	ContentType string
	Data        []byte
}

// pictureExtensions is the probe order for profile pictures. The order is
// an observable contract: an account holding both a .jpg and a .png
// always resolves to the .jpg.
var pictureExtensions = []string{".jpeg", ".jpg", ".png"}

// maxResolveWorkers bounds concurrent per-item lookups during list joins
const maxResolveWorkers = 8

// ResolveProfilePicture probes the blob store for the account's picture
// under each known extension, in fixed order, and returns the first hit.
// Returns nil when no picture is stored or the probes fail; probe
// failures are logged, never surfaced.
func (s *Service) ResolveProfilePicture(ctx context.Context, accountID int64) *Picture {
	for _, ext := range pictureExtensions {
		key := pictureKey(accountID, ext)
		data, err := s.blobs.Download(ctx, key)
		if err != nil {
			if !errors.Is(err, storage.ErrObjectNotFound) {
				s.logger.Error("Profile picture probe failed",
					zap.Int64("account_id", accountID),
					zap.String("key", key),
					zap.Error(err))
			}
			continue
		}
		return &Picture{
			Key:         key,
			ContentType: contentTypeForExt(ext),
			Data:        data,
		}
	}
	return nil
}

// UploadProfilePicture stores a new picture for the account. All
// alternate-extension blobs are removed first so a stale image under a
// different extension can never win a future lookup.
func (s *Service) UploadProfilePicture(ctx context.Context, accountID int64, ext string, data []byte) error {
	if !validPictureExt(ext) {
		return fmt.Errorf("unsupported picture extension %q", ext)
	}

	keys := make([]string, 0, len(pictureExtensions))
	for _, e := range pictureExtensions {
		keys = append(keys, pictureKey(accountID, e))
	}
	if err := s.blobs.Remove(ctx, keys); err != nil {
		return remoteErr(err)
	}

	if err := s.blobs.Upload(ctx, pictureKey(accountID, ext), data, contentTypeForExt(ext)); err != nil {
		return remoteErr(err)
	}
	return nil
}

func pictureKey(accountID int64, ext string) string {
	return fmt.Sprintf("%d%s", accountID, ext)
}

func validPictureExt(ext string) bool {
	for _, e := range pictureExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

func contentTypeForExt(ext string) string {
	switch ext {
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}

// fanOut runs fn for every index in [0, n) on a bounded worker pool and
// waits for completion. Item lookups during list resolution are mutually
// independent reads; output order is the caller's indexed slice.
func fanOut(n int, fn func(i int)) {
	if n == 0 {
		return
	}

	workers := maxResolveWorkers
	if n < workers {
		workers = n
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(i)
		}(i)
	}
	wg.Wait()
}
