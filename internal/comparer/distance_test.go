package comparer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	s "github.com/ludo-technologies/eacdiff/internal/syntax"
)

func TestComputeStringDistance(t *testing.T) {
	tests := []struct {
		left, right string
		expected    float64
	}{
		{"", "", 0},
		{"x", "x", 0},
		{"x", "y", 1},
		{"abc", "abd", 1.0 / 3},
		{"count", "counter", 2.0 / 7},
		{"", "abc", 1},
		{"résumé", "resume", 2.0 / 6},
	}

	for _, tt := range tests {
		t.Run(tt.left+"/"+tt.right, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ComputeStringDistance(tt.left, tt.right), 1e-9)
			assert.InDelta(t, tt.expected, ComputeStringDistance(tt.right, tt.left), 1e-9)
		})
	}
}

func TestComputeDistance_Nil(t *testing.T) {
	assert.Equal(t, 0.0, ComputeDistance(nil, nil))
	assert.Equal(t, 1.0, ComputeDistance(s.Block(), nil))
	assert.Equal(t, 1.0, ComputeDistance(nil, s.Block()))
	assert.Equal(t, 0.0, ComputeTokenDistance(nil, nil))
	assert.Equal(t, 1.0, ComputeTokenDistance(s.Identifier("a"), nil))
}

func TestComputeDistance_Tokens(t *testing.T) {
	// { H ( e ) ; } vs { H ( null ) ; }: six of seven tokens in common
	left := s.Block(s.Call("H", s.IdentifierName("e")))
	right := s.Block(s.Call("H", s.Null()))
	assert.InDelta(t, 1.0/7, ComputeDistance(left, right), 1e-9)

	// tokens compare by kind as well as text
	assert.Equal(t, 1.0, ComputeTokensDistance(
		[]*s.Node{s.Identifier("null")},
		[]*s.Node{s.Keyword("null")}))

	assert.Equal(t, 0.0, ComputeTokensDistance(nil, nil))
	assert.Equal(t, 1.0, ComputeTokensDistance(nil, []*s.Node{s.Identifier("a")}))
}

func TestComputeValueDistance(t *testing.T) {
	assert.Equal(t, ExactMatchDistance, ComputeValueDistance(s.Call("F"), s.Call("F")))
	assert.InDelta(t, 0.25, ComputeValueDistance(s.Call("F"), s.Call("G")), 1e-9)
}

func TestGetDistance_NeverZeroForDifferentNodes(t *testing.T) {
	// the weighted distance ignores the yielded value
	left := s.YieldReturn(s.Binary("+", s.IdentifierName("a"), s.IdentifierName("b")))
	right := s.YieldReturn(s.NumericLiteral("42"))

	weighted, ok := Default.TryComputeWeightedDistance(left, right)
	assert.True(t, ok)
	assert.Equal(t, 0.0, weighted)

	assert.Equal(t, EpsilonDistance, Default.GetDistance(left, right))
	assert.Equal(t, 0.0, Default.GetDistance(left, s.YieldReturn(s.Binary("+", s.IdentifierName("a"), s.IdentifierName("b")))))
}

func TestGetDistance_FallsBackToValueDistance(t *testing.T) {
	left := s.Return(s.IdentifierName("a"))
	right := s.Return(s.IdentifierName("b"))

	_, ok := Default.TryComputeWeightedDistance(left, right)
	assert.False(t, ok)
	assert.InDelta(t, 1.0/3, Default.GetDistance(left, right), 1e-9)
}
