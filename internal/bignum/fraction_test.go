package bignum

import "testing"

func mustFraction(t *testing.T, num int64, den uint64) Fraction {
	t.Helper()
	f, err := NewFraction(IntFromInt64(num), UintFromUint64(den))
	if err != nil {
		t.Fatalf("NewFraction(%d, %d): %v", num, den, err)
	}
	return f
}

func TestFractionReducesToLowestTerms(t *testing.T) {
	f := mustFraction(t, 6, 8)
	if got, want := FormatInt(f.Num), "3"; got != want {
		t.Errorf("Num = %s, want %s", got, want)
	}
	if got, want := FormatUint(f.Den), "4"; got != want {
		t.Errorf("Den = %s, want %s", got, want)
	}
}

func TestFractionCollapsesToIntegerWhenDenIsOne(t *testing.T) {
	f := mustFraction(t, 9, 3)
	if !f.IsInteger() {
		t.Fatalf("9/3 should collapse to an integer, got Den=%s", FormatUint(f.Den))
	}
	if got, want := FormatInt(f.Num), "3"; got != want {
		t.Errorf("Num = %s, want %s", got, want)
	}
}

func TestFractionArithmetic(t *testing.T) {
	half := mustFraction(t, 1, 2)
	third := mustFraction(t, 1, 3)

	sum, err := FractionAdd(half, third)
	if err != nil {
		t.Fatalf("FractionAdd: %v", err)
	}
	if got := FractionCmp(sum, mustFraction(t, 5, 6)); got != 0 {
		t.Errorf("1/2 + 1/3 != 5/6, cmp=%d", got)
	}

	diff, err := FractionSub(half, third)
	if err != nil {
		t.Fatalf("FractionSub: %v", err)
	}
	if got := FractionCmp(diff, mustFraction(t, 1, 6)); got != 0 {
		t.Errorf("1/2 - 1/3 != 1/6, cmp=%d", got)
	}

	prod, err := FractionMul(half, third)
	if err != nil {
		t.Fatalf("FractionMul: %v", err)
	}
	if got := FractionCmp(prod, mustFraction(t, 1, 6)); got != 0 {
		t.Errorf("1/2 * 1/3 != 1/6, cmp=%d", got)
	}

	quot, err := FractionDiv(half, third)
	if err != nil {
		t.Fatalf("FractionDiv: %v", err)
	}
	if got := FractionCmp(quot, mustFraction(t, 3, 2)); got != 0 {
		t.Errorf("1/2 / 1/3 != 3/2, cmp=%d", got)
	}
}

func TestFractionDivByZeroDenominatorRejected(t *testing.T) {
	if _, err := NewFraction(IntFromInt64(1), UintZero()); err != ErrDivByZero {
		t.Fatalf("expected ErrDivByZero, got %v", err)
	}
}

func TestFractionNegativeNumeratorReducesSignCorrectly(t *testing.T) {
	f := mustFraction(t, -6, 9)
	if !f.Num.Neg {
		t.Fatalf("expected negative numerator")
	}
	if got, want := FormatInt(f.Num), "-2"; got != want {
		t.Errorf("Num = %s, want %s", got, want)
	}
	if got, want := FormatUint(f.Den), "3"; got != want {
		t.Errorf("Den = %s, want %s", got, want)
	}
}
