package refund

import (
	"context"
	"encoding/json"
	"net/url"

	"storefront-payments/internal/credential"
	"storefront-payments/internal/transaction"

	"github.com/stretchr/testify/mock"
)

type MockTransactionRepo struct {
	mock.Mock
}

func (m *MockTransactionRepo) Create(ctx context.Context, t *transaction.Transaction) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTransactionRepo) GetByReference(ctx context.Context, reference string) (*transaction.Transaction, error) {
	args := m.Called(ctx, reference)
	if tx := args.Get(0); tx != nil {
		return tx.(*transaction.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepo) GetByProviderReference(ctx context.Context, providerReference string) (*transaction.Transaction, error) {
	args := m.Called(ctx, providerReference)
	if tx := args.Get(0); tx != nil {
		return tx.(*transaction.Transaction), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockTransactionRepo) UpdateState(ctx context.Context, reference string, state transaction.State, message string) error {
	args := m.Called(ctx, reference, state, message)
	return args.Error(0)
}

func (m *MockTransactionRepo) UpdateAmount(ctx context.Context, reference string, amount float64) error {
	args := m.Called(ctx, reference, amount)
	return args.Error(0)
}

func (m *MockTransactionRepo) SetProviderReference(ctx context.Context, reference, providerReference string) error {
	args := m.Called(ctx, reference, providerReference)
	return args.Error(0)
}

func (m *MockTransactionRepo) UpdateSettlement(ctx context.Context, providerReference string, s transaction.Settlement) (bool, error) {
	args := m.Called(ctx, providerReference, s)
	return args.Bool(0), args.Error(1)
}

type MockCredentialService struct {
	mock.Mock
}

func (m *MockCredentialService) Create(ctx context.Context, c *credential.Credential) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCredentialService) Resolve(ctx context.Context, providerID int64, currency string) (*credential.Credential, error) {
	args := m.Called(ctx, providerID, currency)
	if c := args.Get(0); c != nil {
		return c.(*credential.Credential), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockCredentialService) Provider(ctx context.Context, providerID int64) (*credential.Provider, error) {
	args := m.Called(ctx, providerID)
	if p := args.Get(0); p != nil {
		return p.(*credential.Provider), args.Error(1)
	}
	return nil, args.Error(1)
}

// MockCaller records the last outbound call and returns a canned JSON
// body.
type MockCaller struct {
	mock.Mock

	LastURL   string
	LastQuery url.Values
	LastData  url.Values
}

func (m *MockCaller) Call(ctx context.Context, rawURL, method string, query url.Values, data url.Values, bearerToken string) (json.RawMessage, error) {
	m.LastURL = rawURL
	m.LastQuery = query
	m.LastData = data

	args := m.Called(ctx, rawURL, method, query, data, bearerToken)
	if raw := args.Get(0); raw != nil {
		return raw.(json.RawMessage), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) SchedulePostProcessing(ctx context.Context, reference string) {
	m.Called(ctx, reference)
}
