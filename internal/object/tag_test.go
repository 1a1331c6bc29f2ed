package object

import "testing"

func TestIntegerRangeCoversOnlyIntegerKinds(t *testing.T) {
	for t2 := PosInt; t2 <= BasedBignum; t2++ {
		if !t2.IsInteger() {
			t.Errorf("tag %d expected IsInteger", t2)
		}
	}
	if PosFraction.IsInteger() {
		t.Errorf("PosFraction should not be an integer kind")
	}
}

func TestRealRangeIncludesIntegersFractionsAndDecimals(t *testing.T) {
	for _, tg := range []Tag{PosInt, NegInt, PosFraction, NegBigFraction, Decimal32, Decimal128} {
		if !tg.IsReal() {
			t.Errorf("tag %d expected IsReal", tg)
		}
	}
	if Rectangular.IsReal() {
		t.Errorf("Rectangular should not be real")
	}
}

func TestComplexRangeIsRectangularAndPolarOnly(t *testing.T) {
	if !Rectangular.IsComplex() || !Polar.IsComplex() {
		t.Errorf("Rectangular/Polar must be complex")
	}
	if Decimal64.IsComplex() {
		t.Errorf("Decimal64 should not be complex")
	}
}

func TestAlgebraicRangeExcludesTextAndComposites(t *testing.T) {
	if !Expression.IsAlgebraic() || !Symbol.IsAlgebraic() || !PosInt.IsAlgebraic() {
		t.Errorf("numbers/symbol/expression must be algebraic")
	}
	if Text.IsAlgebraic() || List.IsAlgebraic() || Program.IsAlgebraic() {
		t.Errorf("text/list/program must not be algebraic")
	}
}

func TestCommandTagsStartAfterDataKinds(t *testing.T) {
	if !firstCommandTag.IsCommand() {
		t.Fatalf("firstCommandTag must be a command tag")
	}
	if Font.IsCommand() {
		t.Fatalf("Font must not be a command tag")
	}
}

func TestImmediateExcludesSymbolsAndCommands(t *testing.T) {
	if PosInt.IsImmediate() != true {
		t.Errorf("PosInt should be immediate")
	}
	if Symbol.IsImmediate() {
		t.Errorf("Symbol should not be immediate (deferred evaluation)")
	}
	addTag, ok := ByName("Add")
	if !ok {
		t.Fatalf("Add command missing from table")
	}
	if addTag.Tag.IsImmediate() {
		t.Errorf("commands should not be immediate")
	}
}

func TestControlStructureTagsAreComposite(t *testing.T) {
	for tg := IfThenCtl; tg <= IfErrThenElseCtl; tg++ {
		if !tg.IsComposite() {
			t.Errorf("control tag %d should be composite", tg)
		}
		if !tg.IsControl() {
			t.Errorf("control tag %d should report IsControl", tg)
		}
	}
}
