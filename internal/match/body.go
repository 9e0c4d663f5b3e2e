package match

import (
	"github.com/ludo-technologies/eacdiff/internal/comparer"
	"github.com/ludo-technologies/eacdiff/internal/syntax"
)

// BodyDiff is the comparison of two bodies: the node match, its edit
// script, a structural distance and the comparisons of matched lambdas
type BodyDiff struct {
	Match    *Match
	Edits    []Edit
	Distance float64
	Lambdas  []LambdaDiff
}

// LambdaDiff is the comparison of the bodies of a matched lambda pair
type LambdaDiff struct {
	Old  *syntax.Node
	New  *syntax.Node
	Body *BodyDiff
}

// Unchanged reports whether the bodies and every nested lambda body are
// the same
func (d *BodyDiff) Unchanged() bool {
	if len(d.Edits) > 0 || d.Distance > 0 {
		return false
	}
	for _, lambda := range d.Lambdas {
		if !lambda.Body.Unchanged() {
			return false
		}
	}
	return true
}

// CompareBodies matches two bodies with a comparer confined to them, then
// compares the bodies of every matched lambda pair the same way
func CompareBodies(oldBody, newBody *syntax.Node, opts Options) *BodyDiff {
	depth := opts.MaxLambdaDepth
	if depth <= 0 {
		depth = DefaultMaxLambdaDepth
	}
	return compareBodies(oldBody, newBody, opts, depth)
}

func compareBodies(oldBody, newBody *syntax.Node, opts Options, depth int) *BodyDiff {
	cmp := comparer.New(oldBody, newBody)
	m := Compute(cmp, cmp.OldRoot(), cmp.NewRoot(), opts)

	diff := &BodyDiff{
		Match:    m,
		Edits:    EditScript(m),
		Distance: TreeDistance(cmp, cmp.OldRoot(), cmp.NewRoot()),
	}
	if depth <= 1 {
		return diff
	}

	for _, pair := range m.Matches() {
		if !pair.Old.Kind.IsLambda() || !pair.New.Kind.IsLambda() {
			continue
		}
		oldLambdaBody := pair.Old.Field(syntax.RoleBody)
		newLambdaBody := pair.New.Field(syntax.RoleBody)
		if oldLambdaBody == nil || newLambdaBody == nil {
			continue
		}
		diff.Lambdas = append(diff.Lambdas, LambdaDiff{
			Old:  pair.Old,
			New:  pair.New,
			Body: compareBodies(oldLambdaBody, newLambdaBody, opts, depth-1),
		})
	}
	return diff
}
