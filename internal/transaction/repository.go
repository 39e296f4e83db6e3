package transaction

import (
	"context"
	"database/sql"
	"errors"
)

type Repository interface {
	Create(ctx context.Context, t *Transaction) error
	GetByReference(ctx context.Context, reference string) (*Transaction, error)
	GetByProviderReference(ctx context.Context, providerReference string) (*Transaction, error)
	UpdateState(ctx context.Context, reference string, state State, message string) error
	UpdateAmount(ctx context.Context, reference string, amount float64) error
	SetProviderReference(ctx context.Context, reference, providerReference string) error
	// UpdateSettlement matches by provider reference and reports
	// whether a row was touched.
	UpdateSettlement(ctx context.Context, providerReference string, s Settlement) (bool, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const txColumns = `
	id, reference, provider_id, amount, currency, state, state_message,
	provider_reference, settled_amount, total_service_fee,
	settlement_currency, utr_number, created_at, updated_at`

func (r *repository) scanOne(row *sql.Row) (*Transaction, error) {
	var t Transaction
	var providerReference sql.NullString
	var stateMessage sql.NullString

	err := row.Scan(
		&t.ID, &t.Reference, &t.ProviderID, &t.Amount, &t.Currency,
		&t.State, &stateMessage, &providerReference,
		&t.SettledAmount, &t.TotalServiceFee, &t.SettlementCurrency,
		&t.UTRNumber, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	t.StateMessage = stateMessage.String
	t.ProviderReference = providerReference.String
	return &t, nil
}

func (r *repository) Create(ctx context.Context, t *Transaction) error {
	return r.db.QueryRowContext(ctx, `
		INSERT INTO payment_transactions (reference, provider_id, amount, currency, state)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, t.Reference, t.ProviderID, t.Amount, t.Currency, t.State).Scan(&t.ID)
}

func (r *repository) GetByReference(ctx context.Context, reference string) (*Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+txColumns+`
		FROM payment_transactions WHERE reference = $1
	`, reference)
	return r.scanOne(row)
}

func (r *repository) GetByProviderReference(ctx context.Context, providerReference string) (*Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+txColumns+`
		FROM payment_transactions WHERE provider_reference = $1
	`, providerReference)
	return r.scanOne(row)
}

func (r *repository) UpdateState(ctx context.Context, reference string, state State, message string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payment_transactions
		SET state = $1, state_message = $2, updated_at = now()
		WHERE reference = $3
	`, state, message, reference)
	return err
}

func (r *repository) UpdateAmount(ctx context.Context, reference string, amount float64) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payment_transactions SET amount = $1, updated_at = now() WHERE reference = $2
	`, amount, reference)
	return err
}

func (r *repository) SetProviderReference(ctx context.Context, reference, providerReference string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE payment_transactions SET provider_reference = $1, updated_at = now() WHERE reference = $2
	`, providerReference, reference)
	return err
}

func (r *repository) UpdateSettlement(ctx context.Context, providerReference string, s Settlement) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payment_transactions
		SET settled_amount = $1, total_service_fee = $2,
		    settlement_currency = $3, utr_number = $4, updated_at = now()
		WHERE provider_reference = $5
	`, s.NetAmount, s.TotalServiceFee, s.Currency, s.UTRNumber, providerReference)
	if err != nil {
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
