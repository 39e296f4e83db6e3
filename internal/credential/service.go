package credential

import (
	"context"
	"fmt"
	"strings"

	"storefront-payments/internal/logger"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, c *Credential) error
	Resolve(ctx context.Context, providerID int64, currency string) (*Credential, error)
	Provider(ctx context.Context, providerID int64) (*Provider, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create stores a per-currency credential. Blank currency, key or salt
// is rejected before touching the database.
func (s *service) Create(ctx context.Context, c *Credential) error {
	var missing []string
	if strings.TrimSpace(c.Currency) == "" {
		missing = append(missing, "currency")
	}
	if strings.TrimSpace(c.MerchantKey) == "" {
		missing = append(missing, "merchant_key")
	}
	if strings.TrimSpace(c.MerchantSalt) == "" {
		missing = append(missing, "merchant_salt")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}

	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))

	if err := s.repo.SaveCredential(ctx, c); err != nil {
		return err
	}

	logger.FromCtx(ctx).Info("credential stored",
		zap.Int64("provider_id", c.ProviderID),
		zap.String("currency", c.Currency),
	)
	return nil
}

// Resolve returns the credential applying to the given provider and
// currency.
func (s *service) Resolve(ctx context.Context, providerID int64, currency string) (*Credential, error) {
	return s.repo.GetCredential(ctx, providerID, strings.ToUpper(strings.TrimSpace(currency)))
}

func (s *service) Provider(ctx context.Context, providerID int64) (*Provider, error) {
	return s.repo.GetProvider(ctx, providerID)
}
