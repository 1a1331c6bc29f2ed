package bignum

import "testing"

func TestUintPow(t *testing.T) {
	got, err := UintPow(UintFromUint32(2), UintFromUint32(10))
	if err != nil {
		t.Fatalf("UintPow: %v", err)
	}
	if got.Cmp(UintFromUint32(1024)) != 0 {
		t.Fatalf("2^10 = %s, want 1024", FormatUint(got))
	}
}

func TestUintPowZeroExponentIsOne(t *testing.T) {
	got, err := UintPow(UintFromUint32(7), UintZero())
	if err != nil {
		t.Fatalf("UintPow: %v", err)
	}
	if got.Cmp(UintFromUint32(1)) != 0 {
		t.Fatalf("7^0 = %s, want 1", FormatUint(got))
	}
}

func TestIntPowPreservesSignOnOddExponent(t *testing.T) {
	got, err := IntPow(IntFromInt64(-3), UintFromUint32(3))
	if err != nil {
		t.Fatalf("IntPow: %v", err)
	}
	if got.Cmp(IntFromInt64(-27)) != 0 {
		t.Fatalf("(-3)^3 = %s, want -27", FormatInt(got))
	}
}

func TestIntPowLawOfExponents(t *testing.T) {
	base := IntFromInt64(5)
	b, c := UintFromUint32(3), UintFromUint32(4)
	lhsExp, err := UintAdd(b, c)
	if err != nil {
		t.Fatalf("UintAdd: %v", err)
	}
	lhs, err := IntPow(base, lhsExp)
	if err != nil {
		t.Fatalf("IntPow: %v", err)
	}
	powB, err := IntPow(base, b)
	if err != nil {
		t.Fatalf("IntPow: %v", err)
	}
	powC, err := IntPow(base, c)
	if err != nil {
		t.Fatalf("IntPow: %v", err)
	}
	rhs, err := IntMul(powB, powC)
	if err != nil {
		t.Fatalf("IntMul: %v", err)
	}
	if lhs.Cmp(rhs) != 0 {
		t.Fatalf("5^(3+4) = %s, but 5^3 * 5^4 = %s", FormatInt(lhs), FormatInt(rhs))
	}
}

func TestGcdOfCoprimeIsOne(t *testing.T) {
	g, err := Gcd(UintFromUint32(17), UintFromUint32(13))
	if err != nil {
		t.Fatalf("Gcd: %v", err)
	}
	if g.Cmp(UintFromUint32(1)) != 0 {
		t.Fatalf("gcd(17,13) = %s, want 1", FormatUint(g))
	}
}

func TestGcdOfCommonFactor(t *testing.T) {
	g, err := Gcd(UintFromUint32(48), UintFromUint32(18))
	if err != nil {
		t.Fatalf("Gcd: %v", err)
	}
	if g.Cmp(UintFromUint32(6)) != 0 {
		t.Fatalf("gcd(48,18) = %s, want 6", FormatUint(g))
	}
}

func TestIntAddCommutativeAndAssociative(t *testing.T) {
	a, b, c := IntFromInt64(123456789), IntFromInt64(-987654321), IntFromInt64(42)

	ab, err := IntAdd(a, b)
	if err != nil {
		t.Fatalf("IntAdd: %v", err)
	}
	ba, err := IntAdd(b, a)
	if err != nil {
		t.Fatalf("IntAdd: %v", err)
	}
	if ab.Cmp(ba) != 0 {
		t.Fatalf("a+b != b+a")
	}

	abc1, err := IntAdd(ab, c)
	if err != nil {
		t.Fatalf("IntAdd: %v", err)
	}
	bc, err := IntAdd(b, c)
	if err != nil {
		t.Fatalf("IntAdd: %v", err)
	}
	abc2, err := IntAdd(a, bc)
	if err != nil {
		t.Fatalf("IntAdd: %v", err)
	}
	if abc1.Cmp(abc2) != 0 {
		t.Fatalf("(a+b)+c != a+(b+c)")
	}
}

func TestIntDivModSignMatchesDividend(t *testing.T) {
	a := IntFromInt64(-7)
	b := IntFromInt64(3)
	q, r, err := IntDivMod(a, b)
	if err != nil {
		t.Fatalf("IntDivMod: %v", err)
	}
	// (a/b)*b + r == a
	prod, err := IntMul(q, b)
	if err != nil {
		t.Fatalf("IntMul: %v", err)
	}
	sum, err := IntAdd(prod, r)
	if err != nil {
		t.Fatalf("IntAdd: %v", err)
	}
	if sum.Cmp(a) != 0 {
		t.Fatalf("(a/b)*b+r = %s, want %s", FormatInt(sum), FormatInt(a))
	}
	if !r.Neg {
		t.Fatalf("remainder %s should carry the dividend's sign", FormatInt(r))
	}
}
