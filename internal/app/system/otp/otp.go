// Package otp issues and verifies one-time login codes keyed by phone.
//
// One outstanding code per phone: storing a new code overwrites the
// previous one, so there is never ambiguity about which code is current.
// Codes are single use: a successful verification deletes the entry,
// which prevents replay inside the TTL window.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/dalemusser/nexohub/internal/app/system/kv"
	"go.uber.org/zap"
)

const (
	// CodeLength is the number of digits in a login code.
	CodeLength = 6
	// TTL is how long a code is valid after issuance.
	TTL = 5 * time.Minute

	keyPrefix = "otp:"
)

// Issuer generates, stores, and verifies one-time codes.
type Issuer struct {
	store kv.Store
	log   *zap.Logger
}

// NewIssuer creates an Issuer backed by the given KV store.
func NewIssuer(store kv.Store, logger *zap.Logger) *Issuer {
	return &Issuer{store: store, log: logger}
}

// Generate returns a 6-digit code drawn uniformly from [100000, 999999].
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// Issue generates a code and stores it for phone (normalized by the
// caller), overwriting any prior unconsumed code.
func (i *Issuer) Issue(ctx context.Context, phone string) (string, error) {
	code, err := Generate()
	if err != nil {
		return "", err
	}
	if err := i.store.SetWithTTL(ctx, keyPrefix+phone, code, TTL); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return code, nil
}

// Verify reports whether code matches the outstanding code for phone.
// It fails closed: an unreachable store, an absent key, or a mismatch
// all return false. On a match the entry is deleted before returning.
func (i *Issuer) Verify(ctx context.Context, phone, code string) bool {
	stored, err := i.store.Get(ctx, keyPrefix+phone)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			i.log.Warn("otp store unreachable, denying", zap.Error(err))
		}
		return false
	}
	if stored != code {
		return false
	}

	// Single use: consume on match. A failed delete still counts as a
	// successful verification; the code was correct.
	if err := i.store.Delete(ctx, keyPrefix+phone); err != nil {
		i.log.Warn("otp consume failed", zap.Error(err))
	}
	return true
}
