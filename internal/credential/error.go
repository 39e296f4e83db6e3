package credential

import "errors"

var (
	ErrValidation          = errors.New("currency, merchant key and merchant salt are all required")
	ErrCredentialNotFound  = errors.New("no credential for provider and currency")
	ErrDuplicateCredential = errors.New("credential already exists for provider and currency")
	ErrProviderNotFound    = errors.New("provider not found")

	// Postgres unique violation, as reported by lib/pq.
	PgUniqueViolation = "23505"
)
