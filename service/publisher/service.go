package publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"
	"github.com/viant/ssmdoc/internal/logattr"
	"github.com/viant/ssmdoc/tracing"
)

// Service copies build artifacts into a bucket location
type Service struct {
	fs      afs.Service
	options []storage.Option
	logger  *slog.Logger
}

// Publish copies every file directly under outputURL into bucketURL.
// A failed copy does not stop the remaining ones; failures are joined into the returned error.
func (s *Service) Publish(ctx context.Context, outputURL, bucketURL string) (ret []*Asset, err error) {
	ctx, span := tracing.StartSpan(ctx, "publisher.publish")
	span.WithAttributes(map[string]string{"output.url": outputURL, "bucket.url": bucketURL})
	defer func() { tracing.EndSpan(span, err) }()

	objects, err := s.fs.List(ctx, outputURL, s.options...)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts at %s: %w", outputURL, err)
	}
	var errs []error
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		destURL := url.Join(bucketURL, object.Name())
		logger := s.logger.With(logattr.URL(object.URL()), slog.String("dest", destURL))
		if copyErr := s.fs.Copy(ctx, object.URL(), destURL, s.options...); copyErr != nil {
			logger.Error("failed to publish artifact", logattr.Error(copyErr))
			errs = append(errs, fmt.Errorf("failed to publish %s: %w", object.Name(), copyErr))
			continue
		}
		logger.Info("published artifact")
		ret = append(ret, &Asset{
			URL:         destURL,
			Name:        object.Name(),
			Size:        object.Size(),
			ModTime:     object.ModTime(),
			ContentType: ContentType(object.Name()),
		})
	}
	span.WithCount("published", len(ret))
	return ret, errors.Join(errs...)
}

// New creates a publisher
func New(fs afs.Service, options ...Option) *Service {
	ret := &Service{fs: fs, logger: slog.Default()}
	for _, option := range options {
		option(ret)
	}
	return ret
}
