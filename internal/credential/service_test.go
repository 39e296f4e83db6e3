package credential

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) SaveCredential(ctx context.Context, c *Credential) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) GetCredential(ctx context.Context, providerID int64, currency string) (*Credential, error) {
	args := m.Called(ctx, providerID, currency)
	if c := args.Get(0); c != nil {
		return c.(*Credential), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockRepository) GetProvider(ctx context.Context, providerID int64) (*Provider, error) {
	args := m.Called(ctx, providerID)
	if p := args.Get(0); p != nil {
		return p.(*Provider), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestService_Create(t *testing.T) {
	t.Run("Success normalizes currency", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		c := &Credential{ProviderID: 1, Currency: " inr ", MerchantKey: "k", MerchantSalt: "s"}
		repo.On("SaveCredential", mock.Anything, c).Return(nil)

		err := svc.Create(context.Background(), c)
		assert.NoError(t, err)
		assert.Equal(t, "INR", c.Currency)
		repo.AssertExpectations(t)
	})

	t.Run("Blank key rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		err := svc.Create(context.Background(), &Credential{
			ProviderID: 1, Currency: "INR", MerchantKey: "   ", MerchantSalt: "s",
		})
		assert.ErrorIs(t, err, ErrValidation)
		repo.AssertNotCalled(t, "SaveCredential")
	})

	t.Run("Blank salt and currency rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		err := svc.Create(context.Background(), &Credential{ProviderID: 1, MerchantKey: "k"})
		assert.ErrorIs(t, err, ErrValidation)
		assert.Contains(t, err.Error(), "currency")
		assert.Contains(t, err.Error(), "merchant_salt")
	})

	t.Run("Duplicate surfaces from repository", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("SaveCredential", mock.Anything, mock.Anything).Return(ErrDuplicateCredential)

		err := svc.Create(context.Background(), &Credential{
			ProviderID: 1, Currency: "INR", MerchantKey: "k", MerchantSalt: "s",
		})
		assert.ErrorIs(t, err, ErrDuplicateCredential)
	})
}

func TestService_Resolve(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		want := &Credential{ProviderID: 1, Currency: "INR", MerchantKey: "k", MerchantSalt: "s"}
		repo.On("GetCredential", mock.Anything, int64(1), "INR").Return(want, nil)

		got, err := svc.Resolve(context.Background(), 1, "inr")
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("NotFound", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetCredential", mock.Anything, int64(1), "USD").Return(nil, ErrCredentialNotFound)

		_, err := svc.Resolve(context.Background(), 1, "USD")
		assert.ErrorIs(t, err, ErrCredentialNotFound)
	})
}
