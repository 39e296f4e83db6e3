package credential

import "time"

// ProviderState mirrors the provider record's lifecycle. Test and
// enabled providers hit different gateway hosts; disabled providers
// accept no new payments.
type ProviderState string

const (
	StateTest     ProviderState = "test"
	StateEnabled  ProviderState = "enabled"
	StateDisabled ProviderState = "disabled"
)

type Provider struct {
	ID        int64
	Name      string
	State     ProviderState
	CreatedAt time.Time
}

// IsTest reports whether the provider targets the sandbox hosts.
func (p Provider) IsTest() bool {
	return p.State == StateTest
}

// Credential is a per-currency merchant key/salt pair. Exactly one
// exists per (provider, currency).
type Credential struct {
	ID           int64
	ProviderID   int64
	Currency     string
	MerchantKey  string
	MerchantSalt string
	CrossBorder  bool
	CreatedAt    time.Time
}
