package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
)

// VerdictKeyOpts holds the check options that can change a verdict.
type VerdictKeyOpts struct {
	MaxDepth int
	Trace    bool
}

// Keyer derives cache keys.
type Keyer interface {
	// VerdictKey returns the key for the verdict on tokens.
	VerdictKey(tokens []int, opts VerdictKeyOpts) string
}

// DefaultKeyer produces "verdict:<sha256>" keys over the canonical form of
// the island description.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// VerdictKey implements Keyer.
func (DefaultKeyer) VerdictKey(tokens []int, opts VerdictKeyOpts) string {
	return "verdict:" + digest(canonical(tokens, opts))
}

// canonical renders the options followed by the space-separated tokens,
// e.g. "depth=4096 trace=false|5 1 2 5".
func canonical(tokens []int, opts VerdictKeyOpts) []byte {
	b := fmt.Appendf(nil, "depth=%d trace=%t|", opts.MaxDepth, opts.Trace)
	for i, t := range tokens {
		if i > 0 {
			b = append(b, ' ')
		}
		b = strconv.AppendInt(b, int64(t), 10)
	}
	return b
}

// ScopedKeyer prefixes every key so several deployments can share one Redis
// instance without seeing each other's verdicts.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the default keyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// VerdictKey implements Keyer.
func (k *ScopedKeyer) VerdictKey(tokens []int, opts VerdictKeyOpts) string {
	return k.prefix + k.inner.VerdictKey(tokens, opts)
}

// digest is the hex SHA-256 of data. File cache paths use it as well.
func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
