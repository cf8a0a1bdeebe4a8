package registry

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/viant/ssmdoc/internal/clock"
	"github.com/viant/ssmdoc/internal/idgen"
	"github.com/viant/ssmdoc/service/dao"
	"github.com/viant/ssmdoc/service/dao/criteria"
)

// Record is the persisted state of a registered document
type Record struct {
	Description
	// Versions holds the content of version n at index n-1
	Versions []string `json:"versions"`
	Accounts []string `json:"accounts,omitempty"`
}

// MatchRecord filters records by a "Name" parameter
func MatchRecord(record *Record, parameter *dao.Parameter) bool {
	return criteria.MatchField("Name", record.Name, parameter)
}

// Store implements Service over any keyed record store
type Store struct {
	mu      sync.Mutex
	records dao.Service[string, Record]
}

var _ Service = (*Store)(nil)

func (s *Store) GetDocument(ctx context.Context, name, version string) (*Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}
	switch version {
	case "", LatestVersion:
		version = record.LatestVersion
	case DefaultVersion:
		version = record.DefaultVersion
	}
	index, err := versionIndex(record, version)
	if err != nil {
		return nil, err
	}
	return &Content{Name: name, Version: version, Content: record.Versions[index]}, nil
}

func (s *Store) CreateDocument(ctx context.Context, input *CreateInput) (*Description, error) {
	if input == nil {
		return nil, dao.ErrNilEntity
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.records.Load(ctx, input.Name)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%s: %w", input.Name, ErrDocumentExists)
	case !errors.Is(err, dao.ErrNotFound):
		return nil, err
	}
	now := clock.Now()
	record := &Record{
		Description: Description{
			ID:             idgen.New(),
			Name:           input.Name,
			DocumentType:   orDefault(input.DocumentType, DocumentTypeAutomation),
			DocumentFormat: orDefault(input.DocumentFormat, DocumentFormatJSON),
			LatestVersion:  "1",
			DefaultVersion: "1",
			CreatedDate:    now,
			UpdatedDate:    now,
		},
		Versions: []string{input.Content},
	}
	return s.save(ctx, record)
}

func (s *Store) UpdateDocument(ctx context.Context, name, content string) (*Description, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}
	record.Versions = append(record.Versions, content)
	record.LatestVersion = strconv.Itoa(len(record.Versions))
	record.UpdatedDate = clock.Now()
	return s.save(ctx, record)
}

func (s *Store) SetDefaultVersion(ctx context.Context, name, version string) (*Description, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}
	if version == LatestVersion {
		version = record.LatestVersion
	}
	if _, err = versionIndex(record, version); err != nil {
		return nil, err
	}
	record.DefaultVersion = version
	return s.save(ctx, record)
}

func (s *Store) DescribePermission(ctx context.Context, name string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, err := s.load(ctx, name)
	if err != nil {
		return nil, err
	}
	return slices.Clone(record.Accounts), nil
}

func (s *Store) ModifyPermission(ctx context.Context, name string, add, remove []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, err := s.load(ctx, name)
	if err != nil {
		return err
	}
	accounts := slices.DeleteFunc(slices.Clone(record.Accounts), func(account string) bool {
		return slices.Contains(remove, account)
	})
	for _, account := range add {
		if !slices.Contains(accounts, account) {
			accounts = append(accounts, account)
		}
	}
	record.Accounts = accounts
	_, err = s.save(ctx, record)
	return err
}

// Documents lists the registered documents, optionally filtered by a "Name" parameter
func (s *Store) Documents(ctx context.Context, parameters ...*dao.Parameter) ([]*Description, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records, err := s.records.List(ctx, parameters...)
	if err != nil {
		return nil, err
	}
	ret := make([]*Description, 0, len(records))
	for _, record := range records {
		description := record.Description
		ret = append(ret, &description)
	}
	return ret, nil
}

func (s *Store) load(ctx context.Context, name string) (*Record, error) {
	record, err := s.records.Load(ctx, name)
	if errors.Is(err, dao.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", name, ErrDocumentNotFound)
	}
	return record, err
}

func (s *Store) save(ctx context.Context, record *Record) (*Description, error) {
	if err := s.records.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save document %s: %w", record.Name, err)
	}
	description := record.Description
	return &description, nil
}

func versionIndex(record *Record, version string) (int, error) {
	number, err := strconv.Atoi(version)
	if err != nil || number < 1 || number > len(record.Versions) {
		return 0, fmt.Errorf("%s version %s: %w", record.Name, version, ErrVersionNotFound)
	}
	return number - 1, nil
}

func orDefault(value, defaultValue string) string {
	if value == "" {
		return defaultValue
	}
	return value
}

// NewStore creates a registry keeping records in the supplied store, keyed by document name
func NewStore(records dao.Service[string, Record]) *Store {
	return &Store{records: records}
}

// RecordKey returns the record store key
func RecordKey(record *Record) string {
	return record.Name
}
