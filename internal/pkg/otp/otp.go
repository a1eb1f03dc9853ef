// Package otp issues the short-lived numeric codes that prove control of an email address.
package otp

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"time"
)

// DefaultTTL is how long an issued code stays valid.
const DefaultTTL = time.Hour

const (
	minCode = 100000
	maxCode = 999999
)

// Issuer produces (code, expiry) pairs. Persisting them is the caller's job.
type Issuer struct {
	ttl    time.Duration
	now    func() time.Time
	random io.Reader
}

type Option func(*Issuer)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

// WithRandom overrides the entropy source.
func WithRandom(r io.Reader) Option {
	return func(i *Issuer) { i.random = r }
}

// WithTTL overrides DefaultTTL. Non-positive values are ignored.
func WithTTL(ttl time.Duration) Option {
	return func(i *Issuer) {
		if ttl > 0 {
			i.ttl = ttl
		}
	}
}

func NewIssuer(opts ...Option) *Issuer {
	i := &Issuer{ttl: DefaultTTL, now: time.Now, random: rand.Reader}
	for _, o := range opts {
		o(i)
	}
	return i
}

// Issue draws a code uniformly from [100000, 999999] and pairs it with now+TTL.
// Codes are scoped per account, so collisions across accounts are allowed.
func (i *Issuer) Issue() (string, time.Time, error) {
	n, err := rand.Int(i.random, big.NewInt(maxCode-minCode+1))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate verification code: %w", err)
	}
	code := fmt.Sprintf("%06d", n.Int64()+minCode)
	return code, i.now().UTC().Add(i.ttl), nil
}
