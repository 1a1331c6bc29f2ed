package expr

import (
	"rplcalc/internal/bignum"
	"rplcalc/internal/object"
)

// rule is one local rewrite: given a node whose children have already been
// rewritten, it either returns a replacement and true, or leaves n
// untouched and returns false.
type rule func(n Node) (Node, bool)

// rewriteAll walks n bottom-up, rewriting children first, then repeatedly
// applying rules at the current node until none fires or budget is spent
// (spec.md §4.8 "rewrite_all ... capped by maxrewrites").
func rewriteAll(n Node, budget *Budget, rules []rule) Node {
	if !n.isLeaf() {
		for i := range n.Args {
			n.Args[i] = rewriteAll(n.Args[i], budget, rules)
		}
	}
	for {
		changed := false
		for _, r := range rules {
			if next, ok := r(n); ok {
				if !budget.spend() {
					return n
				}
				n = next
				changed = true
				break
			}
		}
		if !changed {
			return n
		}
		if !n.isLeaf() {
			for i := range n.Args {
				n.Args[i] = rewriteAll(n.Args[i], budget, rules)
			}
		}
	}
}

// Expand distributes multiplication over addition/subtraction and expands
// small positive integer powers of a sum (spec.md §4.8 "expand: distributes
// products over sums").
func Expand(n Node, budget Budget) (Node, error) {
	return rewriteAll(n, &budget, expandRules), nil
}

var expandRules = []rule{
	ruleExpandPow,
	ruleDistributeMulLeft,
	ruleDistributeMulRight,
}

func ruleDistributeMulLeft(n Node) (Node, bool) {
	if n.Tag != object.Mul || len(n.Args) != 2 {
		return n, false
	}
	left := n.Args[0]
	right := n.Args[1]
	if left.Tag == object.Add {
		return binary(object.Add, binary(object.Mul, left.Args[0], right), binary(object.Mul, left.Args[1], right)), true
	}
	if left.Tag == object.Sub {
		return binary(object.Sub, binary(object.Mul, left.Args[0], right), binary(object.Mul, left.Args[1], right)), true
	}
	return n, false
}

func ruleDistributeMulRight(n Node) (Node, bool) {
	if n.Tag != object.Mul || len(n.Args) != 2 {
		return n, false
	}
	left := n.Args[0]
	right := n.Args[1]
	if right.Tag == object.Add {
		return binary(object.Add, binary(object.Mul, left, right.Args[0]), binary(object.Mul, left, right.Args[1])), true
	}
	if right.Tag == object.Sub {
		return binary(object.Sub, binary(object.Mul, left, right.Args[0]), binary(object.Mul, left, right.Args[1])), true
	}
	return n, false
}

// ruleExpandPow turns a small positive integer power into repeated
// multiplication, so the distribute rules can take it from there.
func ruleExpandPow(n Node) (Node, bool) {
	if n.Tag != object.Pow || len(n.Args) != 2 {
		return n, false
	}
	base, exp := n.Args[0], n.Args[1]
	if base.isSymbol() || base.Tag == object.Add || base.Tag == object.Sub {
		k, ok := smallExponent(exp)
		if !ok || k < 2 || k > 8 {
			return n, false
		}
		result := base
		for i := int64(1); i < k; i++ {
			result = binary(object.Mul, result, base)
		}
		return result, true
	}
	return n, false
}

func smallExponent(n Node) (int64, bool) {
	if !n.isNumber() || !n.Tag.IsInteger() || isBasedTag(n.Tag) {
		return 0, false
	}
	i, err := object.DecodeInt(n.Tag, n.Payload)
	if err != nil || i.Neg {
		return 0, false
	}
	v, ok := i.Int64()
	return v, ok
}

// Collect combines like terms sharing a common symbolic factor (spec.md
// §4.8 "collect: the inverse of expand, gathering terms back together").
func Collect(n Node, budget Budget) (Node, error) {
	return rewriteAll(n, &budget, collectRules), nil
}

var collectRules = []rule{ruleCollectAdd, ruleFoldConst}

func ruleCollectAdd(n Node) (Node, bool) {
	if n.Tag != object.Add || len(n.Args) != 2 {
		return n, false
	}
	a, b := n.Args[0], n.Args[1]
	ca, ba, okA := splitCoefficient(a)
	cb, bb, okB := splitCoefficient(b)
	if !okA || !okB || !equalShape(ba, bb) {
		return n, false
	}
	return binary(object.Mul, binary(object.Add, ca, cb), ba), true
}

// splitCoefficient reports n's (coefficient, base) decomposition: a bare
// term x is (1, x); a product coeff*x is (coeff, x) when coeff is a
// numeric literal.
func splitCoefficient(n Node) (coeff, base Node, ok bool) {
	if n.Tag == object.Mul && len(n.Args) == 2 {
		if n.Args[0].isNumber() {
			return n.Args[0], n.Args[1], true
		}
		if n.Args[1].isNumber() {
			return n.Args[1], n.Args[0], true
		}
		return Node{}, Node{}, false
	}
	if n.isNumber() {
		return Node{}, Node{}, false
	}
	return leafInt(1), n, true
}

// Simplify applies identity elimination and exact constant folding to a
// fixpoint (spec.md §4.8 "simplify: a fixed repertoire of identity and
// constant-folding rules").
func Simplify(n Node, budget Budget) (Node, error) {
	return rewriteAll(n, &budget, simplifyRules), nil
}

var simplifyRules = []rule{
	ruleFoldConst,
	ruleIdentity,
}

func ruleFoldConst(n Node) (Node, bool) {
	if n.isLeaf() || !n.Tag.IsCommand() {
		return n, false
	}
	vals := make([]bignum.Fraction, len(n.Args))
	for i, a := range n.Args {
		f, ok := leafToFraction(a)
		if !ok {
			return n, false
		}
		vals[i] = f
	}
	switch n.Tag {
	case object.Add:
		r, err := bignum.FractionAdd(vals[0], vals[1])
		return foldResult(r, err)
	case object.Sub:
		r, err := bignum.FractionSub(vals[0], vals[1])
		return foldResult(r, err)
	case object.Mul:
		r, err := bignum.FractionMul(vals[0], vals[1])
		return foldResult(r, err)
	case object.Div:
		if vals[1].Num.IsZero() {
			return n, false
		}
		r, err := bignum.FractionDiv(vals[0], vals[1])
		return foldResult(r, err)
	case object.Neg:
		f := vals[0]
		f.Num = f.Num.Negated()
		return foldResult(f, nil)
	default:
		return n, false
	}
}

func foldResult(f bignum.Fraction, err error) (Node, bool) {
	if err != nil {
		return Node{}, false
	}
	return fractionLeaf(f), true
}

func ruleIdentity(n Node) (Node, bool) {
	if n.isLeaf() || len(n.Args) == 0 {
		return n, false
	}
	switch n.Tag {
	case object.Add:
		if isZero(n.Args[0]) {
			return n.Args[1], true
		}
		if isZero(n.Args[1]) {
			return n.Args[0], true
		}
	case object.Sub:
		if isZero(n.Args[1]) {
			return n.Args[0], true
		}
		if isZero(n.Args[0]) {
			return Node{Tag: object.Neg, Args: []Node{n.Args[1]}}, true
		}
	case object.Mul:
		if isZero(n.Args[0]) || isZero(n.Args[1]) {
			return leafInt(0), true
		}
		if isOne(n.Args[0]) {
			return n.Args[1], true
		}
		if isOne(n.Args[1]) {
			return n.Args[0], true
		}
	case object.Div:
		if isOne(n.Args[1]) {
			return n.Args[0], true
		}
	case object.Pow:
		if isZero(n.Args[1]) {
			return leafInt(1), true
		}
		if isOne(n.Args[1]) {
			return n.Args[0], true
		}
	case object.Neg:
		if n.Args[0].Tag == object.Neg {
			return n.Args[0].Args[0], true
		}
	}
	return n, false
}

func isZero(n Node) bool {
	f, ok := leafToFraction(n)
	return ok && f.Num.IsZero()
}

func isOne(n Node) bool {
	f, ok := leafToFraction(n)
	return ok && f.Den.Cmp(f.Num.Abs()) == 0 && !f.Num.IsZero() && !f.Num.Neg
}

// FactorOut pulls a common factor out of the top-level sum, the inverse of
// one step of expand (spec.md §4.8 "factor_out: extracts a shared
// multiplicative factor from a sum").
func FactorOut(n Node, budget Budget) (Node, error) {
	if n.Tag != object.Add && n.Tag != object.Sub {
		return n, nil
	}
	ca, ba, okA := splitCoefficient(n.Args[0])
	cb, bb, okB := splitCoefficient(n.Args[1])
	if okA && okB && equalShape(ba, bb) {
		return binary(object.Mul, ba, binary(n.Tag, ca, cb)), nil
	}
	fa, ga, okA2 := splitFactor(n.Args[0])
	fb, gb, okB2 := splitFactor(n.Args[1])
	if okA2 && okB2 && equalShape(fa, fb) {
		return binary(object.Mul, fa, binary(n.Tag, ga, gb)), nil
	}
	return n, nil
}

// splitFactor decomposes a product node into (one factor, the rest);
// used when neither side of a sum is a bare numeric-coefficient term.
func splitFactor(n Node) (factor, rest Node, ok bool) {
	if n.Tag != object.Mul || len(n.Args) != 2 {
		return Node{}, Node{}, false
	}
	return n.Args[0], n.Args[1], true
}

func isBasedTag(tag object.Tag) bool {
	return tag == object.BasedInt || tag == object.BasedBignum
}

func leafToFraction(n Node) (bignum.Fraction, bool) {
	if !n.isNumber() {
		return bignum.Fraction{}, false
	}
	switch {
	case n.Tag.IsFraction():
		f, err := object.DecodeFraction(n.Tag, n.Payload)
		if err != nil {
			return bignum.Fraction{}, false
		}
		return f, true
	case n.Tag.IsInteger() && !isBasedTag(n.Tag):
		i, err := object.DecodeInt(n.Tag, n.Payload)
		if err != nil {
			return bignum.Fraction{}, false
		}
		return bignum.FractionFromInt(i), true
	default:
		return bignum.Fraction{}, false
	}
}

func fractionLeaf(f bignum.Fraction) Node {
	reduced, err := f.Reduce()
	if err != nil {
		reduced = f
	}
	if reduced.IsInteger() {
		tag, payload := object.EncodeInt(reduced.Num)
		return Node{Tag: tag, Payload: payload}
	}
	tag, payload := object.EncodeFraction(reduced)
	return Node{Tag: tag, Payload: payload}
}
