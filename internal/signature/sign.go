package signature

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
)

// edgeTrimRegex removes leading/trailing runs of whitespace or pipes,
// which appear when trailing optional fields are empty.
var edgeTrimRegex = regexp.MustCompile(`^[\s|]+|[\s|]+$`)

// Engine computes and verifies PayU SHA-512 hashes against a spec
// registry.
type Engine struct {
	specs Registry
}

func NewEngine(specs Registry) *Engine {
	if specs == nil {
		specs = DefaultRegistry()
	}
	return &Engine{specs: specs}
}

func safeStr(val any) string {
	if val == nil {
		return ""
	}
	return strings.TrimSpace(fmt.Sprintf("%v", val))
}

// Sign joins the spec's fields with pipes, substituting the salt at the
// sentinel position and the stringified value (missing treated as
// empty) everywhere else, and returns the lowercase hex SHA-512 digest.
func (e *Engine) Sign(name SpecName, values map[string]any, salt string) (string, error) {
	keys, ok := e.specs[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownSpec, name)
	}

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		if key == SaltSentinel {
			parts = append(parts, salt)
			continue
		}
		parts = append(parts, safeStr(values[key]))
	}

	hashString := edgeTrimRegex.ReplaceAllString(strings.Join(parts, "|"), "")

	sum := sha512.Sum512([]byte(hashString))
	return hex.EncodeToString(sum[:]), nil
}

// Verify recomputes the hash for the given spec and compares it
// case-insensitively against the gateway-supplied value.
func (e *Engine) Verify(name SpecName, values map[string]any, salt, gatewayHash string) error {
	if gatewayHash == "" {
		return ErrMissingHash
	}

	expected, err := e.Sign(name, values, salt)
	if err != nil {
		return err
	}

	if !strings.EqualFold(expected, gatewayHash) {
		return ErrSignatureMismatch
	}
	return nil
}
