package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/chleo-smith/consent-gateway/internal/model"
)

var (
	// ErrNotInitialized is returned when the backing document never loaded
	ErrNotInitialized = errors.New("mock store is not initialized")
	// ErrCustomerNotFound is returned when no customer matches the id
	ErrCustomerNotFound = errors.New("customer not found in mock store")
	// ErrConsentsNotFound is returned when no consent record matches the id
	ErrConsentsNotFound = errors.New("consents not found in mock store")
	// ErrConsentNotFound is returned when the sequence number points past the record
	ErrConsentNotFound = errors.New("consent not found in mock store")
)

// Document is the persisted layout of the fallback datasource
type Document struct {
	Customers []model.Customer      `json:"customers"`
	Consents  []model.ConsentRecord `json:"consents"`
}

// ConsentStore is the fallback datasource used when upstream is unreachable
type ConsentStore interface {
	FindCustomer(ctx context.Context, id string) (*model.Customer, error)
	FindConsents(ctx context.Context, id string) (*model.ConsentRecord, error)
	UpdateConsent(ctx context.Context, id string, sequence int, status model.ConsentStatus, statusType model.ConsentStatusType) (*model.Consent, error)
}

// FileStore keeps the whole document in memory behind one RWMutex and
// flushes every mutation synchronously to the backing JSON file, so a
// completed update is always visible to the next read.
type FileStore struct {
	mu    sync.RWMutex
	path  string
	doc   *Document
	clock func() time.Time
}

// Load reads the JSON document from path and builds a ready FileStore.
// Consents lacking a stable identifier get one assigned, and the amended
// document is written back so identifiers survive restarts.
func Load(path string) (*FileStore, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mock store document - %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse mock store document - %w", err)
	}

	s := &FileStore{path: path, doc: &doc, clock: time.Now}
	if s.assignConsentIDs() {
		if err := s.flush(); err != nil {
			return nil, err
		}
	}

	logrus.Infof("mock store loaded from %s: %d customers, %d consent records", path, len(doc.Customers), len(doc.Consents))
	return s, nil
}

// Uninitialized builds a FileStore whose operations all fail with
// ErrNotInitialized. Used when the backing document is unavailable but the
// server should still come up.
func Uninitialized(path string) *FileStore {
	return &FileStore{path: path, clock: time.Now}
}

// WithClock overrides the timestamp source, test hook
func (s *FileStore) WithClock(clock func() time.Time) *FileStore {
	s.clock = clock
	return s
}

func (s *FileStore) FindCustomer(_ context.Context, id string) (*model.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc == nil {
		return nil, ErrNotInitialized
	}

	for i := range s.doc.Customers {
		if s.doc.Customers[i].CustomerID == id {
			cust := s.doc.Customers[i]
			return &cust, nil
		}
	}
	return nil, ErrCustomerNotFound
}

func (s *FileStore) FindConsents(_ context.Context, id string) (*model.ConsentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.doc == nil {
		return nil, ErrNotInitialized
	}

	record := s.findRecord(id)
	if record == nil {
		return nil, ErrConsentsNotFound
	}

	copied := copyRecord(record)
	return &copied, nil
}

func (s *FileStore) UpdateConsent(_ context.Context, id string, sequence int, status model.ConsentStatus, statusType model.ConsentStatusType) (*model.Consent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.doc == nil {
		return nil, ErrNotInitialized
	}

	record := s.findRecord(id)
	if record == nil {
		return nil, ErrConsentsNotFound
	}

	target, err := locateConsent(record, sequence)
	if err != nil {
		return nil, err
	}

	target.Status = status
	target.StatusType = statusType
	target.LastUpdated = s.clock().UTC()

	if err := s.flush(); err != nil {
		return nil, err
	}

	updated := *target
	return &updated, nil
}

// locateConsent maps a 1-based sequence number onto the consent at that
// position when all business units' consent lists are concatenated in
// declaration order. This flattened ordering must match what FindConsents
// returns, it is the identity contract the UI relies on.
func locateConsent(record *model.ConsentRecord, sequence int) (*model.Consent, error) {
	idx := sequence - 1
	if idx < 0 {
		return nil, ErrConsentNotFound
	}

	var count int
	for bu := range record.BusinessUnits {
		for c := range record.BusinessUnits[bu].Consents {
			if count == idx {
				return &record.BusinessUnits[bu].Consents[c], nil
			}
			count++
		}
	}
	return nil, ErrConsentNotFound
}

func (s *FileStore) findRecord(id string) *model.ConsentRecord {
	for i := range s.doc.Consents {
		if s.doc.Consents[i].CustomerID == id {
			return &s.doc.Consents[i]
		}
	}
	return nil
}

func (s *FileStore) assignConsentIDs() bool {
	var assigned bool
	for r := range s.doc.Consents {
		record := &s.doc.Consents[r]
		for bu := range record.BusinessUnits {
			consents := record.BusinessUnits[bu].Consents
			for c := range consents {
				if consents[c].ID == "" {
					consents[c].ID = uuid.NewString()
					assigned = true
				}
			}
		}
	}
	return assigned
}

// flush writes the document back to disk, caller must hold the write lock
func (s *FileStore) flush() error {
	raw, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode mock store document - %w", err)
	}

	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to persist mock store document - %w", err)
	}
	return nil
}

func copyRecord(record *model.ConsentRecord) model.ConsentRecord {
	copied := model.ConsentRecord{
		CustomerID:    record.CustomerID,
		BusinessUnits: make([]model.BusinessUnitConsents, len(record.BusinessUnits)),
	}
	for i := range record.BusinessUnits {
		copied.BusinessUnits[i] = model.BusinessUnitConsents{
			BusinessUnit: record.BusinessUnits[i].BusinessUnit,
			Consents:     append([]model.Consent(nil), record.BusinessUnits[i].Consents...),
		}
	}
	return copied
}
