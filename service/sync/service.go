package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/ssmdoc/internal/logattr"
	"github.com/viant/ssmdoc/service/meta"
	"github.com/viant/ssmdoc/service/registry"
	"github.com/viant/ssmdoc/tracing"
)

// Document sync actions
const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionUnchanged = "unchanged"
)

// DocumentChange reports a document sync
type DocumentChange struct {
	Name           string
	URL            string
	Action         string
	LatestVersion  string
	DefaultVersion string
	Diff           *Diff
}

// Service synchronises build artifacts and sharing permissions with a document registry
type Service struct {
	registry     registry.Service
	metaService  *meta.Service
	documentType string
	logger       *slog.Logger
}

// SyncDocuments registers every <name>.json artifact found under outputURL.
// Missing documents are created; documents whose content differs get a new default version.
func (s *Service) SyncDocuments(ctx context.Context, outputURL string) (ret []*DocumentChange, err error) {
	ctx, span := tracing.StartSpan(ctx, "sync.documents")
	span.WithAttributes(map[string]string{"output.url": outputURL})
	defer func() { tracing.EndSpan(span, err) }()

	URL := s.metaService.URL(outputURL)
	objects, err := s.metaService.FS().List(ctx, URL, s.metaService.Options()...)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts at %s: %w", URL, err)
	}
	var errs []error
	for _, object := range objects {
		if object.IsDir() || !strings.EqualFold(path.Ext(object.Name()), ".json") {
			continue
		}
		name := strings.TrimSuffix(object.Name(), path.Ext(object.Name()))
		change, syncErr := s.syncDocument(ctx, name, object.URL())
		if syncErr != nil {
			s.logger.Error("failed to sync document", logattr.Document(name), logattr.Error(syncErr))
			errs = append(errs, syncErr)
			continue
		}
		ret = append(ret, change)
	}
	span.WithCount("documents", len(ret))
	return ret, errors.Join(errs...)
}

func (s *Service) syncDocument(ctx context.Context, name, URL string) (*DocumentChange, error) {
	desired, err := s.metaService.Download(ctx, URL)
	if err != nil {
		return nil, err
	}
	if !json.Valid(desired) {
		return nil, fmt.Errorf("invalid document content: %s", URL)
	}
	change := &DocumentChange{Name: name, URL: URL}
	logger := s.logger.With(logattr.Document(name))
	current, err := s.registry.GetDocument(ctx, name, registry.LatestVersion)
	switch {
	case errors.Is(err, registry.ErrDocumentNotFound):
		description, err := s.registry.CreateDocument(ctx, &registry.CreateInput{
			Name:           name,
			Content:        string(desired),
			DocumentType:   s.documentType,
			DocumentFormat: registry.DocumentFormatJSON,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", name, err)
		}
		change.Action = ActionCreated
		change.LatestVersion, change.DefaultVersion = description.LatestVersion, description.DefaultVersion
		logger.Info("created document", slog.String("version", description.LatestVersion))
		return change, nil
	case err != nil:
		return nil, fmt.Errorf("failed to get %s: %w", name, err)
	}

	equal, err := EqualJSON([]byte(current.Content), desired)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if equal {
		change.Action = ActionUnchanged
		change.LatestVersion = current.Version
		logger.Debug("document has no changes")
		return change, nil
	}
	if change.Diff, err = UnifiedDiff(name, []byte(current.Content), desired); err != nil {
		return nil, err
	}
	description, err := s.registry.UpdateDocument(ctx, name, string(desired))
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", name, err)
	}
	if description, err = s.registry.SetDefaultVersion(ctx, name, description.LatestVersion); err != nil {
		return nil, fmt.Errorf("failed to set default version of %s: %w", name, err)
	}
	change.Action = ActionUpdated
	change.LatestVersion, change.DefaultVersion = description.LatestVersion, description.DefaultVersion
	logger.Info("updated document",
		slog.String("version", description.LatestVersion),
		slog.Int("added", change.Diff.Added),
		slog.Int("changed", change.Diff.Changed),
		slog.Int("deleted", change.Diff.Deleted))
	return change, nil
}

// LoadPermissions loads a permission config
func (s *Service) LoadPermissions(ctx context.Context, URL string) (*PermissionConfig, error) {
	ret := &PermissionConfig{}
	if err := s.metaService.Load(ctx, URL, ret); err != nil {
		return nil, fmt.Errorf("failed to load permissions: %w", err)
	}
	return ret, nil
}

// SyncPermissions shares each document with its desired accounts and unshares the others.
// The registry is modified only for documents whose sharing changes.
func (s *Service) SyncPermissions(ctx context.Context, permissions []*Permission) (ret []*PermissionChange, err error) {
	ctx, span := tracing.StartSpan(ctx, "sync.permissions")
	defer func() { tracing.EndSpan(span, err) }()

	var errs []error
	for _, permission := range permissions {
		if permission == nil {
			continue
		}
		change, syncErr := s.syncPermission(ctx, permission)
		if syncErr != nil {
			s.logger.Error("failed to sync permissions", logattr.Document(permission.Name), logattr.Error(syncErr))
			errs = append(errs, syncErr)
			continue
		}
		ret = append(ret, change)
	}
	return ret, errors.Join(errs...)
}

func (s *Service) syncPermission(ctx context.Context, permission *Permission) (*PermissionChange, error) {
	current, err := s.registry.DescribePermission(ctx, permission.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to describe permissions of %s: %w", permission.Name, err)
	}
	change := &PermissionChange{Name: permission.Name}
	change.Shared, change.Unshared = planSharing(permission.AccountIDs(), current)
	logger := s.logger.With(logattr.Document(permission.Name))
	if len(change.Shared) == 0 && len(change.Unshared) == 0 {
		logger.Debug("permissions have no changes")
		return change, nil
	}
	if err = s.registry.ModifyPermission(ctx, permission.Name, change.Shared, change.Unshared); err != nil {
		return nil, fmt.Errorf("failed to modify permissions of %s: %w", permission.Name, err)
	}
	change.Modified = true
	logger.Info("updated permissions",
		logattr.Accounts("shared", change.Shared),
		logattr.Accounts("unshared", change.Unshared))
	return change, nil
}

// New creates a sync service
func New(documents registry.Service, options ...Option) *Service {
	ret := &Service{
		registry:     documents,
		documentType: registry.DocumentTypeAutomation,
		logger:       slog.Default(),
	}
	for _, option := range options {
		option(ret)
	}
	if ret.metaService == nil {
		ret.metaService = meta.New(afs.New(), "")
	}
	return ret
}
