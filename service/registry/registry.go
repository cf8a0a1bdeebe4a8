// Package registry defines the document registry the build artifacts are synchronised with
package registry

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/ssmdoc/service/dao"
)

const (
	// LatestVersion selects the most recent version of a document
	LatestVersion = "$LATEST"
	// DefaultVersion selects the default version of a document
	DefaultVersion = "$DEFAULT"

	DocumentTypeAutomation = "Automation"
	DocumentFormatJSON     = "JSON"
)

var (
	ErrDocumentNotFound = fmt.Errorf("document %w", dao.ErrNotFound)
	ErrVersionNotFound  = fmt.Errorf("document version %w", dao.ErrNotFound)
	ErrDocumentExists   = fmt.Errorf("document already exists")
)

type (
	// Description describes a registered document
	Description struct {
		ID             string    `json:"id"`
		Name           string    `json:"name"`
		DocumentType   string    `json:"documentType"`
		DocumentFormat string    `json:"documentFormat"`
		LatestVersion  string    `json:"latestVersion"`
		DefaultVersion string    `json:"defaultVersion"`
		CreatedDate    time.Time `json:"createdDate"`
		UpdatedDate    time.Time `json:"updatedDate"`
	}

	// Content is a document version content
	Content struct {
		Name    string
		Version string
		Content string
	}

	// CreateInput defines a new document
	CreateInput struct {
		Name           string
		Content        string
		DocumentType   string
		DocumentFormat string
	}

	// Service is a versioned document registry with account sharing
	Service interface {
		// GetDocument returns a version content; version may be LatestVersion or DefaultVersion
		GetDocument(ctx context.Context, name, version string) (*Content, error)

		CreateDocument(ctx context.Context, input *CreateInput) (*Description, error)

		// UpdateDocument stores content as a new version
		UpdateDocument(ctx context.Context, name, content string) (*Description, error)

		SetDefaultVersion(ctx context.Context, name, version string) (*Description, error)

		// DescribePermission returns the accounts the document is shared with
		DescribePermission(ctx context.Context, name string) ([]string, error)

		ModifyPermission(ctx context.Context, name string, add, remove []string) error
	}
)
