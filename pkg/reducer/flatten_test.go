package reducer

import (
	"testing"

	"github.com/lambdapi-match/pimatch/pkg/term"
)

func identitySNF(t term.Term) term.Term { return t }

func TestFlattenACNestedNodes(t *testing.T) {
	// +(+(a, b), c) flattens to [a, b, c].
	inner := term.ACNode{Symbol: "+", Terms: []term.Term{term.Const{Name: "a"}, term.Const{Name: "b"}}}
	outer := term.ACNode{Symbol: "+", Terms: []term.Term{inner, term.Const{Name: "c"}}}

	got := FlattenAC(identitySNF, "+", outer)
	want := []term.Term{term.Const{Name: "a"}, term.Const{Name: "b"}, term.Const{Name: "c"}}
	assertTermsEqual(t, got, want)
}

func TestFlattenACNonMatchingHeadIsSingleton(t *testing.T) {
	in := term.Const{Name: "a"}
	got := FlattenAC(identitySNF, "+", in)
	assertTermsEqual(t, got, []term.Term{in})
}

func TestUnflattenACEmptyACU(t *testing.T) {
	ident := ACIdent{Symbol: "+", Flavour: ACFlavour{Neutral: term.Const{Name: "0"}}}
	got := UnflattenAC(ident, nil)
	if !got.Equal(term.Const{Name: "0"}) {
		t.Errorf("UnflattenAC(ACU, []) = %v, want neutral", got)
	}
}

func TestUnflattenACSingleIsIdentity(t *testing.T) {
	ident := ACIdent{Symbol: "+"}
	a := term.Const{Name: "a"}
	if got := UnflattenAC(ident, []term.Term{a}); !got.Equal(a) {
		t.Errorf("UnflattenAC(ident, [a]) = %v, want a", got)
	}
}

func TestUnflattenACMultipleBuildsNode(t *testing.T) {
	ident := ACIdent{Symbol: "+"}
	a, b := term.Const{Name: "a"}, term.Const{Name: "b"}
	got := UnflattenAC(ident, []term.Term{a, b})
	want := term.ACNode{Symbol: "+", Terms: []term.Term{a, b}}
	if !got.Equal(want) {
		t.Errorf("UnflattenAC(ident, [a,b]) = %v, want %v", got, want)
	}
}

func TestRemoveOneConvertibleRemovesFirstMatch(t *testing.T) {
	a, b, c := term.Const{Name: "a"}, term.Const{Name: "b"}, term.Const{Name: "c"}
	ts := []term.Term{a, b, a, c}

	got, ok := RemoveOneConvertible(ts, func(t term.Term) bool { return t.Equal(a) })
	if !ok {
		t.Fatal("RemoveOneConvertible returned ok=false, want true")
	}
	want := []term.Term{b, a, c}
	assertTermsEqual(t, got, want)
}

func TestRemoveOneConvertibleNoMatch(t *testing.T) {
	a, b := term.Const{Name: "a"}, term.Const{Name: "b"}
	ts := []term.Term{a, b}

	got, ok := RemoveOneConvertible(ts, func(t term.Term) bool { return t.Equal(term.Const{Name: "z"}) })
	if ok {
		t.Error("RemoveOneConvertible returned ok=true, want false")
	}
	assertTermsEqual(t, got, ts)
}

func assertTermsEqual(t *testing.T, got, want []term.Term) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len(got) = %d, want %d (got=%v)", len(got), len(want), got)
	}
	for i := range got {
		if !got[i].Equal(want[i]) {
			t.Errorf("got[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
