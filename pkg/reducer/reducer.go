// Package reducer provides the matching engine's "signature" collaborator:
// weak-head/strong normal form reduction, AC-aware convertibility, and the
// AC flatten/unflatten primitives the engine leans on during matching. The
// engine only ever calls through the Reducer interface; this package's own
// implementation is a minimal reference reducer sufficient to exercise and
// test the engine, not a full Lambda-Pi-Modulo normalizer — normalization
// and rewriting themselves are out of scope here.
package reducer

import (
	"context"

	"github.com/lambdapi-match/pimatch/pkg/term"
)

// Reducer is the matching engine's view of the kernel's signature: normal
// forms and convertibility.
type Reducer interface {
	// WHNF returns the weak-head normal form of t.
	WHNF(ctx context.Context, t term.Term) term.Term

	// SNF returns the strong normal form of t.
	SNF(ctx context.Context, t term.Term) term.Term

	// AreConvertible reports whether t1 and t2 are beta-eta convertible,
	// AC-aware (two ACNode terms over the same symbol compare as multisets).
	AreConvertible(ctx context.Context, t1, t2 term.Term) bool
}

// ACFlavour tags whether an AC symbol has a neutral element (ACU) or not
// (plain AC).
type ACFlavour struct {
	// Neutral is non-nil iff this is ACU; its value is the neutral term.
	Neutral term.Term
}

// IsACU reports whether this flavour carries a neutral element.
func (f ACFlavour) IsACU() bool { return f.Neutral != nil }

// ACIdent identifies an AC or ACU symbol. Equality is structural on Symbol
// alone.
type ACIdent struct {
	Symbol  string
	Flavour ACFlavour
}

// Equal compares two ACIdents by symbol name only.
func (a ACIdent) Equal(b ACIdent) bool { return a.Symbol == b.Symbol }
