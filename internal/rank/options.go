package rank

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownVariant is returned when a variant name is not recognized.
var ErrUnknownVariant = errors.New("unknown pagerank variant")

// ErrInvalidDamping is returned when the damped variant is configured with a
// damping factor outside [0, 1].
var ErrInvalidDamping = errors.New("damping factor out of range")

// Variant selects the propagation rule used after initialization.
type Variant string

const (
	// VariantUndamped pushes each node's rank evenly along its out-edges.
	// Dangling nodes contribute nothing, so total mass can shrink.
	VariantUndamped Variant = "undamped"

	// VariantDamped mixes link-following with a uniform teleport term and
	// redistributes dangling mass uniformly. Total mass stays 1.
	VariantDamped Variant = "damped"
)

// ParseVariant maps a case-insensitive name to a Variant. The empty string
// selects VariantUndamped.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case "", VariantUndamped:
		return VariantUndamped, nil
	case VariantDamped:
		return VariantDamped, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// Options configures a rank computation.
type Options struct {
	Variant Variant
	Damping float64 // only used by VariantDamped; typically 0.85

	// Observer, if set, is notified as the computation progresses.
	Observer Observer
}

// DefaultOptions returns the undamped variant with damping preset to 0.85
// for callers that switch to VariantDamped.
func DefaultOptions() Options {
	return Options{
		Variant: VariantUndamped,
		Damping: 0.85,
	}
}

// Validate checks the variant and, for the damped variant, the damping
// factor.
func (o Options) Validate() error {
	switch o.Variant {
	case VariantUndamped:
		return nil
	case VariantDamped:
		if !(o.Damping >= 0 && o.Damping <= 1) {
			return fmt.Errorf("%w: %g", ErrInvalidDamping, o.Damping)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownVariant, o.Variant)
}
