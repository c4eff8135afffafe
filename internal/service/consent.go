package service

import (
	"context"
	goerrors "errors"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/chleo-smith/consent-gateway/internal/cache"
	"github.com/chleo-smith/consent-gateway/internal/errors"
	"github.com/chleo-smith/consent-gateway/internal/model"
	"github.com/chleo-smith/consent-gateway/internal/store"
	"github.com/chleo-smith/consent-gateway/internal/upstream"
	"github.com/chleo-smith/consent-gateway/internal/validation"
)

// Source tags reported in the response envelope
const (
	SourceUpstream     = "upstream-api"
	SourceMockFallback = "mock-fallback"
	SourceCache        = "cache"
)

// CustomerResult is a resolved customer lookup with its datasource tag
type CustomerResult struct {
	Source   string
	Customer *model.Customer
}

// ConsentsResult is a resolved consents lookup with its datasource tag
type ConsentsResult struct {
	Source string
	Record *model.ConsentRecord
}

// UpdateResult is an applied consent update with its datasource tag
type UpdateResult struct {
	Source  string
	Consent *model.Consent
}

// ConsentService orchestrates upstream calls with mock-store fallback
type ConsentService interface {
	CustomerByID(ctx context.Context, id string) (*CustomerResult, error)
	ConsentsByID(ctx context.Context, id string) (*ConsentsResult, error)
	UpdateConsent(ctx context.Context, id string, sequence int, status, statusType string) (*UpdateResult, error)
}

type consentService struct {
	upstream        upstream.Client
	store           store.ConsentStore
	cache           cache.CustomerCache
	fallbackEnabled bool
	now             func() time.Time
}

// NewConsentService builds new ConsentService. The cache is optional and may be nil.
func NewConsentService(up upstream.Client, st store.ConsentStore, ch cache.CustomerCache, fallbackEnabled bool) ConsentService {
	return &consentService{
		upstream:        up,
		store:           st,
		cache:           ch,
		fallbackEnabled: fallbackEnabled,
		now:             time.Now,
	}
}

func (s *consentService) CustomerByID(ctx context.Context, id string) (*CustomerResult, error) {
	if apiErr := validation.ValidateNationalID(id, s.now()); apiErr != nil {
		return nil, apiErr
	}

	if s.cache != nil {
		cached, err := s.cache.FindByID(ctx, id)
		if err != nil {
			logrus.Warnf("customer cache lookup failed for %s - %v", id, err)
		}
		if cached != nil {
			return &CustomerResult{Source: SourceCache, Customer: cached}, nil
		}
	}

	cust, err := s.upstream.FetchCustomer(ctx, id)
	if err == nil {
		if s.cache != nil {
			if cacheErr := s.cache.Cache(ctx, cust); cacheErr != nil {
				logrus.Warnf("failed to cache customer %s - %v", id, cacheErr)
			}
		}
		return &CustomerResult{Source: SourceUpstream, Customer: cust}, nil
	}

	upErr, apiErr := s.classify(err, id)
	if apiErr != nil {
		return nil, apiErr
	}
	if upErr.Kind == upstream.KindNotFound {
		return nil, errors.NewAPIError(errors.CodeCustomerNotFound, http.StatusNotFound, "Customer not found").
			WithSource(SourceUpstream).
			WithCustomerID(id)
	}

	if !s.fallbackEnabled {
		return nil, s.upstreamFailure(upErr, id)
	}

	logrus.Warnf("upstream customer lookup failed for %s, falling back to mock store - %v", id, upErr)
	fallback, err := s.store.FindCustomer(ctx, id)
	if err != nil {
		return nil, s.storeFailure(err, errors.CodeCustomerNotFound, "Customer not found", id)
	}
	return &CustomerResult{Source: SourceMockFallback, Customer: fallback}, nil
}

func (s *consentService) ConsentsByID(ctx context.Context, id string) (*ConsentsResult, error) {
	if apiErr := validation.ValidateNationalID(id, s.now()); apiErr != nil {
		return nil, apiErr
	}

	record, err := s.upstream.FetchConsents(ctx, id)
	if err == nil {
		return &ConsentsResult{Source: SourceUpstream, Record: record}, nil
	}

	upErr, apiErr := s.classify(err, id)
	if apiErr != nil {
		return nil, apiErr
	}
	if upErr.Kind == upstream.KindNotFound {
		return nil, errors.NewAPIError(errors.CodeConsentsNotFound, http.StatusNotFound, "No consents found for this customer").
			WithSource(SourceUpstream).
			WithCustomerID(id)
	}

	if !s.fallbackEnabled {
		return nil, s.upstreamFailure(upErr, id)
	}

	logrus.Warnf("upstream consents lookup failed for %s, falling back to mock store - %v", id, upErr)
	fallback, err := s.store.FindConsents(ctx, id)
	if err != nil {
		return nil, s.storeFailure(err, errors.CodeConsentsNotFound, "No consents found for this customer", id)
	}
	return &ConsentsResult{Source: SourceMockFallback, Record: fallback}, nil
}

func (s *consentService) UpdateConsent(ctx context.Context, id string, sequence int, status, statusType string) (*UpdateResult, error) {
	if apiErr := validation.ValidateNationalID(id, s.now()); apiErr != nil {
		return nil, apiErr
	}

	seqID := strconv.Itoa(sequence)
	if sequence < 1 {
		return nil, errors.NewAPIError(errors.CodeInvalidConsentData, http.StatusBadRequest, "Consent sequence number must be a positive integer").
			WithCustomerID(id).
			WithConsentID(seqID)
	}

	normStatus, ok := model.ParseConsentStatus(status)
	if !ok {
		return nil, errors.NewAPIError(errors.CodeInvalidConsentData, http.StatusBadRequest, "Invalid status or statusType in request body").
			WithCustomerID(id).
			WithConsentID(seqID)
	}
	normStatusType, ok := model.ParseConsentStatusType(statusType)
	if !ok {
		return nil, errors.NewAPIError(errors.CodeInvalidConsentData, http.StatusBadRequest, "Invalid status or statusType in request body").
			WithCustomerID(id).
			WithConsentID(seqID)
	}

	upd := upstream.ConsentUpdate{Status: normStatus, StatusType: normStatusType}
	consent, err := s.upstream.UpdateConsent(ctx, id, sequence, upd)
	if err == nil {
		return &UpdateResult{Source: SourceUpstream, Consent: consent}, nil
	}

	upErr, apiErr := s.classify(err, id)
	if apiErr != nil {
		return nil, apiErr
	}
	if upErr.Kind == upstream.KindNotFound {
		return nil, errors.NewAPIError(errors.CodeConsentNotFound, http.StatusNotFound, "Consent not found for update").
			WithSource(SourceUpstream).
			WithCustomerID(id).
			WithConsentID(seqID)
	}

	if !s.fallbackEnabled {
		return nil, s.upstreamFailure(upErr, id).WithConsentID(seqID)
	}

	logrus.Warnf("upstream consent update failed for %s/%d, falling back to mock store - %v", id, sequence, upErr)
	updated, err := s.store.UpdateConsent(ctx, id, sequence, normStatus, normStatusType)
	if err != nil {
		return nil, s.storeFailure(err, errors.CodeConsentNotFound, "Consent not found for update", id).WithConsentID(seqID)
	}
	return &UpdateResult{Source: SourceMockFallback, Consent: updated}, nil
}

// classify narrows an upstream client error, anything else becomes a plain 500
func (s *consentService) classify(err error, id string) (*upstream.Error, *errors.APIError) {
	var upErr *upstream.Error
	if goerrors.As(err, &upErr) {
		return upErr, nil
	}
	logrus.Errorf("unexpected error from upstream client for %s - %v", id, err)
	return nil, errors.ServerError().WithCustomerID(id).WithDetails(err.Error())
}

func (s *consentService) upstreamFailure(upErr *upstream.Error, id string) *errors.APIError {
	var apiErr *errors.APIError
	switch upErr.Kind {
	case upstream.KindBadJSON:
		apiErr = errors.NewAPIError(errors.CodeInvalidJSONResponse, http.StatusBadGateway, "Upstream service returned malformed data").
			WithSource("parse-error")
	case upstream.KindBadShape:
		apiErr = errors.NewAPIError(errors.CodeInvalidResponseFormat, http.StatusBadGateway, "Upstream service returned an invalid format").
			WithSource("api-error")
	case upstream.KindTimeout, upstream.KindNetwork:
		apiErr = errors.NewAPIError(errors.CodeAPIConnectionError, http.StatusServiceUnavailable, "Unable to connect to customer consent service").
			WithSource("network-error")
	default:
		apiErr = errors.NewAPIError(errors.CodeAPIConnectionError, http.StatusBadGateway, "Upstream service error").
			WithSource("api-error")
	}
	return apiErr.WithCustomerID(id).WithDetails(upErr.Error())
}

func (s *consentService) storeFailure(err error, notFoundCode errors.Code, notFoundMsg, id string) *errors.APIError {
	switch {
	case goerrors.Is(err, store.ErrCustomerNotFound), goerrors.Is(err, store.ErrConsentsNotFound):
		return errors.NewAPIError(notFoundCode, http.StatusNotFound, "Mock API fallback: "+notFoundMsg).
			WithSource(SourceMockFallback).
			WithCustomerID(id)
	case goerrors.Is(err, store.ErrConsentNotFound):
		return errors.NewAPIError(errors.CodeConsentNotFound, http.StatusNotFound, "Mock API fallback: Consent not found").
			WithSource(SourceMockFallback).
			WithCustomerID(id)
	case goerrors.Is(err, store.ErrNotInitialized):
		return errors.NewAPIError(errors.CodeDatabaseNotInitialized, http.StatusInternalServerError, "Mock database is not initialized").
			WithSource(SourceMockFallback).
			WithCustomerID(id)
	default:
		logrus.Errorf("mock store operation failed for %s - %v", id, err)
		return errors.NewAPIError(errors.CodeDatabaseError, http.StatusInternalServerError, "Internal server error").
			WithSource("mock-error").
			WithCustomerID(id).
			WithDetails(err.Error())
	}
}
