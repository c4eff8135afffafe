package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/chleo-smith/consent-gateway/internal/model"
)

const (
	knownCustomerID   = "9001015009087"
	unknownCustomerID = "9912315009087"
)

var fixedNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

type fileStoreTestSuite struct {
	suite.Suite
	path  string
	store *FileStore
}

func (s *fileStoreTestSuite) SetupTest() {
	s.path = filepath.Join(s.T().TempDir(), "db.json")

	doc := Document{
		Customers: []model.Customer{
			{
				CustomerID:    knownCustomerID,
				IsValid:       true,
				CustomerName:  "Thandi Mokoena",
				BusinessUnits: []string{"Personal Loans", "Insurance"},
			},
		},
		Consents: []model.ConsentRecord{
			{
				CustomerID: knownCustomerID,
				BusinessUnits: []model.BusinessUnitConsents{
					{
						BusinessUnit: "Personal Loans",
						Consents: []model.Consent{
							{ContactMethod: "Email", Status: "Accepted", StatusType: "Implicit", LastUpdated: fixedNow.Add(-24 * time.Hour)},
							{ContactMethod: "SMS", Status: "Declined", StatusType: "Explicit", LastUpdated: fixedNow.Add(-24 * time.Hour)},
						},
					},
					{
						BusinessUnit: "Insurance",
						Consents: []model.Consent{
							{ContactMethod: "Phone", Status: "Accepted", StatusType: "Explicit", LastUpdated: fixedNow.Add(-24 * time.Hour)},
						},
					},
				},
			},
		},
	}

	raw, err := json.Marshal(&doc)
	s.Require().NoError(err)
	s.Require().NoError(os.WriteFile(s.path, raw, 0o644))

	st, err := Load(s.path)
	s.Require().NoError(err)
	s.store = st.WithClock(func() time.Time { return fixedNow })
}

func (s *fileStoreTestSuite) TestFindCustomer() {
	ctx := context.Background()

	s.T().Log("known customer is returned")
	{
		cust, err := s.store.FindCustomer(ctx, knownCustomerID)
		s.Require().NoError(err)
		s.Assert().Equal("Thandi Mokoena", cust.CustomerName)
	}

	s.T().Log("unknown customer reports not found")
	{
		_, err := s.store.FindCustomer(ctx, unknownCustomerID)
		s.Assert().ErrorIs(err, ErrCustomerNotFound)
	}
}

func (s *fileStoreTestSuite) TestFindConsents() {
	ctx := context.Background()

	s.T().Log("consent record is returned with all business units")
	{
		record, err := s.store.FindConsents(ctx, knownCustomerID)
		s.Require().NoError(err)
		s.Assert().Equal(2, len(record.BusinessUnits))
		s.Assert().Equal(3, record.TotalConsents())
	}

	s.T().Log("unknown customer reports not found")
	{
		_, err := s.store.FindConsents(ctx, unknownCustomerID)
		s.Assert().ErrorIs(err, ErrConsentsNotFound)
	}
}

func (s *fileStoreTestSuite) TestConsentIDsAssignedOnLoad() {
	ctx := context.Background()

	record, err := s.store.FindConsents(ctx, knownCustomerID)
	s.Require().NoError(err)

	seen := make(map[string]struct{})
	for _, bu := range record.BusinessUnits {
		for _, consent := range bu.Consents {
			s.Assert().NotEmpty(consent.ID, "every consent must get a stable identifier")
			seen[consent.ID] = struct{}{}
		}
	}
	s.Assert().Equal(record.TotalConsents(), len(seen), "identifiers must be unique")

	s.T().Log("identifiers survive a reload")
	{
		reloaded, err := Load(s.path)
		s.Require().NoError(err)

		again, err := reloaded.FindConsents(ctx, knownCustomerID)
		s.Require().NoError(err)
		s.Assert().Equal(record.BusinessUnits[0].Consents[0].ID, again.BusinessUnits[0].Consents[0].ID)
	}
}

func (s *fileStoreTestSuite) TestUpdateConsentFlattenedSequence() {
	ctx := context.Background()

	s.T().Log("sequence 3 resolves to the first consent of the second business unit")
	{
		updated, err := s.store.UpdateConsent(ctx, knownCustomerID, 3, model.ConsentStatusDeclined, model.ConsentStatusTypeExplicit)
		s.Require().NoError(err)
		s.Assert().Equal("Phone", updated.ContactMethod)
		s.Assert().Equal(model.ConsentStatusDeclined, updated.Status)
		s.Assert().Equal(model.ConsentStatusTypeExplicit, updated.StatusType)
		s.Assert().Equal(fixedNow, updated.LastUpdated)
	}

	s.T().Log("the write is visible on the next read")
	{
		record, err := s.store.FindConsents(ctx, knownCustomerID)
		s.Require().NoError(err)
		s.Assert().Equal(model.ConsentStatusDeclined, record.BusinessUnits[1].Consents[0].Status)
	}

	s.T().Log("the write is flushed to disk")
	{
		reloaded, err := Load(s.path)
		s.Require().NoError(err)

		record, err := reloaded.FindConsents(ctx, knownCustomerID)
		s.Require().NoError(err)
		s.Assert().Equal(model.ConsentStatusDeclined, record.BusinessUnits[1].Consents[0].Status)
	}
}

func (s *fileStoreTestSuite) TestUpdateConsentIdempotent() {
	ctx := context.Background()

	first, err := s.store.UpdateConsent(ctx, knownCustomerID, 1, model.ConsentStatusAccepted, model.ConsentStatusTypeExplicit)
	s.Require().NoError(err)

	second, err := s.store.UpdateConsent(ctx, knownCustomerID, 1, model.ConsentStatusAccepted, model.ConsentStatusTypeExplicit)
	s.Require().NoError(err)

	s.Assert().Equal(first.Status, second.Status)
	s.Assert().Equal(first.StatusType, second.StatusType)
	s.Assert().Equal(first.ContactMethod, second.ContactMethod)
}

func (s *fileStoreTestSuite) TestUpdateConsentBounds() {
	ctx := context.Background()

	s.T().Log("sequence one past the total reports not found")
	{
		_, err := s.store.UpdateConsent(ctx, knownCustomerID, 4, model.ConsentStatusAccepted, model.ConsentStatusTypeExplicit)
		s.Assert().ErrorIs(err, ErrConsentNotFound)
	}

	s.T().Log("zero sequence reports not found")
	{
		_, err := s.store.UpdateConsent(ctx, knownCustomerID, 0, model.ConsentStatusAccepted, model.ConsentStatusTypeExplicit)
		s.Assert().ErrorIs(err, ErrConsentNotFound)
	}

	s.T().Log("unknown customer reports missing record")
	{
		_, err := s.store.UpdateConsent(ctx, unknownCustomerID, 1, model.ConsentStatusAccepted, model.ConsentStatusTypeExplicit)
		s.Assert().ErrorIs(err, ErrConsentsNotFound)
	}
}

func (s *fileStoreTestSuite) TestUninitializedStore() {
	ctx := context.Background()
	st := Uninitialized(s.path)

	_, err := st.FindCustomer(ctx, knownCustomerID)
	s.Assert().ErrorIs(err, ErrNotInitialized)

	_, err = st.FindConsents(ctx, knownCustomerID)
	s.Assert().ErrorIs(err, ErrNotInitialized)

	_, err = st.UpdateConsent(ctx, knownCustomerID, 1, model.ConsentStatusAccepted, model.ConsentStatusTypeExplicit)
	s.Assert().ErrorIs(err, ErrNotInitialized)
}

func (s *fileStoreTestSuite) TestLoadMissingFile() {
	_, err := Load(filepath.Join(s.T().TempDir(), "absent.json"))
	s.Assert().Error(err)
}

func TestFileStoreTestSuite(t *testing.T) {
	suite.Run(t, new(fileStoreTestSuite))
}
