package assetupload

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/fishy/errbatch"
	"golang.org/x/sync/errgroup"

	"github.com/input-output-hk/catalyst-forge-libs/assetupload/build"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/internal/logging"
	"github.com/input-output-hk/catalyst-forge-libs/assetupload/remote"
)

// Result summarizes one UploadAll call.
type Result struct {
	// Uploaded holds one entry per successful put, ordered by key.
	Uploaded []*remote.PutResult
	// Deleted lists the asset names removed from the compilation.
	Deleted []string
	// Failed is the number of puts that returned an error.
	Failed int
	// Bytes is the total size of the uploaded objects.
	Bytes int64
	// Duration is how long the whole batch took.
	Duration time.Duration
}

// BatchError is returned by UploadAll when more than one put fails.
type BatchError struct {
	batch *errbatch.ErrBatch
}

func (e *BatchError) Error() string {
	return e.batch.Error()
}

// Unwrap returns every failed put, in completion order.
func (e *BatchError) Unwrap() []error {
	return e.batch.GetErrors()
}

// Uploader stores a batch of assets through an ObjectClient.
type Uploader struct {
	cfg    Config
	client remote.ObjectClient
	logger *slog.Logger
}

// NewUploader creates an Uploader. Progress lines go to logger only when
// cfg.EnableLog is set.
func NewUploader(cfg Config, client remote.ObjectClient, logger *slog.Logger) *Uploader {
	if !cfg.EnableLog {
		logger = nil
	}
	return &Uploader{
		cfg:    cfg,
		client: client,
		logger: logging.Or(logger),
	}
}

// UploadAll puts every asset under cfg.RemoteKey(name). Uploads start
// together unless a concurrency cap is configured. In delete mode each asset
// is removed from comp once its own put succeeded.
//
// Every put runs to completion even when another one fails. A single failure
// is returned as is; several are returned as a *BatchError. The
// Result is returned in both cases.
func (u *Uploader) UploadAll(ctx context.Context, comp *build.Compilation, assets []Asset) (*Result, error) {
	start := time.Now()
	result := &Result{}

	if len(assets) == 0 {
		result.Duration = time.Since(start)
		return result, nil
	}

	var (
		mu      sync.Mutex
		settled int
		failed  = &errbatch.ErrBatch{}
		g       errgroup.Group
	)
	total := len(assets)

	if u.cfg.Concurrency > 0 {
		g.SetLimit(u.cfg.Concurrency)
	}

	fail := func(err error) error {
		mu.Lock()
		failed.Add(err)
		result.Failed++
		mu.Unlock()
		return err
	}

	for _, a := range assets {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fail(fmt.Errorf("upload %s panicked: %v", a.Name, r))
				}
			}()

			key := u.cfg.RemoteKey(a.Name)

			put, err := u.client.Put(ctx, key, a.Content)
			if err != nil {
				return fail(err)
			}
			if put == nil {
				put = &remote.PutResult{Key: key, Size: int64(len(a.Content))}
			}

			deleted := false
			if u.cfg.DeleteMode && comp != nil {
				deleted = comp.DeleteAsset(a.Name)
			}

			mu.Lock()
			defer mu.Unlock()

			settled++
			result.Uploaded = append(result.Uploaded, put)
			result.Bytes += put.Size
			if deleted {
				result.Deleted = append(result.Deleted, a.Name)
			}

			if settled == 1 {
				u.logger.Info("upload started", slog.Int("assets", total))
			}
			u.logger.Info("asset uploaded",
				slog.String("name", a.Name),
				slog.String("key", key),
				slog.Int64("bytes", put.Size),
				slog.String("etag", put.ETag),
			)
			if settled == total {
				u.logger.Info("upload finished",
					slog.Int("assets", total),
					slog.Int64("bytes", result.Bytes),
					slog.Duration("duration", time.Since(start)),
				)
			}

			return nil
		})
	}

	waitErr := g.Wait()

	sort.Slice(result.Uploaded, func(i, j int) bool { return result.Uploaded[i].Key < result.Uploaded[j].Key })
	sort.Strings(result.Deleted)
	result.Duration = time.Since(start)

	if waitErr == nil {
		return result, nil
	}
	if errs := failed.GetErrors(); len(errs) > 1 {
		return result, &BatchError{batch: failed}
	}
	return result, failed.Compile()
}
