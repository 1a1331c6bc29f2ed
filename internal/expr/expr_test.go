package expr

import (
	"testing"

	"rplcalc/internal/object"
)

func intLeaf(v int64) Node { return leafInt(v) }

func symLeaf(name string) Node { return Node{Tag: object.Symbol, Payload: []byte(name)} }

func intValue(t *testing.T, n Node) int64 {
	t.Helper()
	if !n.isLeaf() {
		t.Fatalf("intValue: %+v is not a leaf", n)
	}
	i, err := object.DecodeInt(n.Tag, n.Payload)
	if err != nil {
		t.Fatalf("DecodeInt: %v", err)
	}
	v, _ := i.Int64()
	return v
}

func TestEvalConstantArithmeticTree(t *testing.T) {
	// (2 + 3) * 4
	tree := binary(object.Mul, binary(object.Add, intLeaf(2), intLeaf(3)), intLeaf(4))
	f, err := EvalConstant(tree)
	if err != nil {
		t.Fatalf("EvalConstant: %v", err)
	}
	if got := f.Float64(); got != 20 {
		t.Fatalf("EvalConstant = %v, want 20", got)
	}
}

func TestEvalConstantRejectsFreeSymbol(t *testing.T) {
	tree := binary(object.Add, symLeaf("x"), intLeaf(1))
	if _, err := EvalConstant(tree); err == nil {
		t.Fatalf("EvalConstant with a free symbol should fail")
	}
}

func TestEvalConstantRejectsDivideByZero(t *testing.T) {
	tree := binary(object.Div, intLeaf(1), intLeaf(0))
	if _, err := EvalConstant(tree); err == nil {
		t.Fatalf("EvalConstant of 1/0 should fail")
	}
}

func TestSimplifyFoldsConstantArithmetic(t *testing.T) {
	tree := binary(object.Add, intLeaf(2), intLeaf(3))
	got, err := Simplify(tree, Budget{MaxRewrites: 10})
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if !got.isLeaf() || intValue(t, got) != 5 {
		t.Fatalf("Simplify(2+3) = %+v, want leaf 5", got)
	}
}

func TestSimplifyEliminatesAdditiveIdentity(t *testing.T) {
	// x + 0 -> x
	tree := binary(object.Add, symLeaf("x"), intLeaf(0))
	got, err := Simplify(tree, Budget{MaxRewrites: 10})
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if !got.isSymbol() || string(got.Payload) != "x" {
		t.Fatalf("Simplify(x+0) = %+v, want symbol x", got)
	}
}

func TestSimplifyEliminatesMultiplicativeIdentity(t *testing.T) {
	// 1 * x -> x
	tree := binary(object.Mul, intLeaf(1), symLeaf("x"))
	got, err := Simplify(tree, Budget{MaxRewrites: 10})
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if !got.isSymbol() || string(got.Payload) != "x" {
		t.Fatalf("Simplify(1*x) = %+v, want symbol x", got)
	}
}

func TestSimplifyZeroTimesAnything(t *testing.T) {
	tree := binary(object.Mul, intLeaf(0), symLeaf("x"))
	got, err := Simplify(tree, Budget{MaxRewrites: 10})
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if !got.isLeaf() || intValue(t, got) != 0 {
		t.Fatalf("Simplify(0*x) = %+v, want leaf 0", got)
	}
}

func TestExpandDistributesMultiplicationOverSum(t *testing.T) {
	// x * (y + 1)  ->  x*y + x*1, which Simplify would further fold to x*y+x;
	// Expand alone just distributes, so check the shape rather than folding.
	tree := binary(object.Mul, symLeaf("x"), binary(object.Add, symLeaf("y"), intLeaf(1)))
	got, err := Expand(tree, Budget{MaxRewrites: 10})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got.Tag != object.Add || len(got.Args) != 2 {
		t.Fatalf("Expand(x*(y+1)) = %+v, want a top-level Add", got)
	}
}

func TestBudgetExhaustionStopsRewriting(t *testing.T) {
	tree := binary(object.Add, intLeaf(2), intLeaf(3))
	got, err := Simplify(tree, Budget{MaxRewrites: 0})
	if err != nil {
		t.Fatalf("Simplify: %v", err)
	}
	if got.isLeaf() {
		t.Fatalf("Simplify with a zero rewrite budget should leave the tree untouched, got %+v", got)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	tree := binary(object.Mul, binary(object.Add, intLeaf(1), intLeaf(2)), symLeaf("x"))
	children := Encode(tree)

	decoded, err := Decode(children)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !equalShape(tree, decoded) {
		t.Fatalf("round trip changed shape: got %+v, want %+v", decoded, tree)
	}
}
