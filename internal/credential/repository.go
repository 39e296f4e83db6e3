package credential

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

type Repository interface {
	SaveCredential(ctx context.Context, c *Credential) error
	GetCredential(ctx context.Context, providerID int64, currency string) (*Credential, error)
	GetProvider(ctx context.Context, providerID int64) (*Provider, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) SaveCredential(ctx context.Context, c *Credential) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO payu_credentials (provider_id, currency, merchant_key, merchant_salt, cross_border)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, c.ProviderID, c.Currency, c.MerchantKey, c.MerchantSalt, c.CrossBorder).Scan(&c.ID)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == PgUniqueViolation {
		return ErrDuplicateCredential
	}
	return err
}

func (r *repository) GetCredential(ctx context.Context, providerID int64, currency string) (*Credential, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, provider_id, currency, merchant_key, merchant_salt, cross_border, created_at
		FROM payu_credentials WHERE provider_id = $1 AND currency = $2
	`, providerID, currency)

	var c Credential
	err := row.Scan(
		&c.ID, &c.ProviderID, &c.Currency, &c.MerchantKey,
		&c.MerchantSalt, &c.CrossBorder, &c.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCredentialNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) GetProvider(ctx context.Context, providerID int64) (*Provider, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, state, created_at FROM payment_providers WHERE id = $1
	`, providerID)

	var p Provider
	err := row.Scan(&p.ID, &p.Name, &p.State, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProviderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
