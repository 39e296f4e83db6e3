package checkout

import (
	"context"
	"testing"

	"storefront-payments/internal/credential"
	"storefront-payments/internal/signature"
	"storefront-payments/internal/transaction"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

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

func testTx() *transaction.Transaction {
	return &transaction.Transaction{
		Reference:  "TXN_TEST_001",
		ProviderID: 1,
		Amount:     100.0,
		Currency:   "INR",
		State:      transaction.StatePending,
	}
}

func testCustomer() *Customer {
	return &Customer{Name: "John Doe", Email: "john@example.com", Phone: "9999999999"}
}

func TestRenderer_RenderValues(t *testing.T) {
	engine := signature.NewEngine(nil)
	cred := &credential.Credential{
		ProviderID: 1, Currency: "INR",
		MerchantKey: "merchantKey123", MerchantSalt: "salt123",
	}

	t.Run("Success_TestMode", func(t *testing.T) {
		creds := new(MockCredentialService)
		creds.On("Resolve", mock.Anything, int64(1), "INR").Return(cred, nil)

		r := NewRenderer(engine, creds, "https://shop.example.com")
		provider := &credential.Provider{ID: 1, State: credential.StateTest}

		values, err := r.RenderValues(context.Background(), testTx(), provider, testCustomer(), sampleOrder())
		require.NoError(t, err)

		assert.Equal(t, 14, values["api_version"])
		assert.Equal(t, "merchantKey123", values["key"])
		assert.Equal(t, "100.00", values["amount"])
		assert.Equal(t, "John", values["firstname"])
		assert.Equal(t, "SO42", values["udf1"])
		assert.Equal(t, "TXN_TEST_001", values["udf2"])
		assert.Equal(t, SourceOrder, values["udf3"])
		assert.NotEmpty(t, values["txnid"])
		assert.Equal(t, "https://shop.example.com/payment/payu/process", values["surl"])
		assert.Contains(t, values["curl"], "txn_ref=TXN_TEST_001")
		assert.Equal(t, "https://test.payu.in/_payment", values["action_url"])

		// The hash must reproduce under the same spec and salt.
		expected, err := engine.Sign(signature.SpecPayment, values, "salt123")
		require.NoError(t, err)
		assert.Equal(t, expected, values["hash"])
		assert.Len(t, values["hash"], 128)
	})

	t.Run("Success_LiveMode", func(t *testing.T) {
		creds := new(MockCredentialService)
		creds.On("Resolve", mock.Anything, int64(1), "INR").Return(cred, nil)

		r := NewRenderer(engine, creds, "https://shop.example.com")
		provider := &credential.Provider{ID: 1, State: credential.StateEnabled}

		values, err := r.RenderValues(context.Background(), testTx(), provider, testCustomer(), sampleOrder())
		require.NoError(t, err)
		assert.Equal(t, "https://secure.payu.in/_payment", values["action_url"])
	})

	t.Run("MissingCustomer", func(t *testing.T) {
		creds := new(MockCredentialService)
		r := NewRenderer(engine, creds, "https://shop.example.com")
		provider := &credential.Provider{ID: 1, State: credential.StateTest}

		_, err := r.RenderValues(context.Background(), testTx(), provider, nil, sampleOrder())
		assert.ErrorIs(t, err, ErrMissingCustomer)
	})

	t.Run("MissingCustomerFields", func(t *testing.T) {
		creds := new(MockCredentialService)
		r := NewRenderer(engine, creds, "https://shop.example.com")
		provider := &credential.Provider{ID: 1, State: credential.StateTest}

		customer := &Customer{Name: "John Doe"}
		_, err := r.RenderValues(context.Background(), testTx(), provider, customer, sampleOrder())
		assert.ErrorIs(t, err, ErrMissingCustomerFields)
		assert.Contains(t, err.Error(), "email")
		assert.Contains(t, err.Error(), "phone")
	})

	t.Run("NoCredentialForCurrency", func(t *testing.T) {
		creds := new(MockCredentialService)
		creds.On("Resolve", mock.Anything, int64(1), "INR").
			Return(nil, credential.ErrCredentialNotFound)

		r := NewRenderer(engine, creds, "https://shop.example.com")
		provider := &credential.Provider{ID: 1, State: credential.StateTest}

		_, err := r.RenderValues(context.Background(), testTx(), provider, testCustomer(), sampleOrder())
		assert.ErrorIs(t, err, credential.ErrCredentialNotFound)
	})
}
