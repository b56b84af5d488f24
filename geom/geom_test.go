package geom

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testEps = 1e-12

func randomVecs(n int, width float64) []Vec2 {
	vs := make([]Vec2, n)
	for i := range vs {
		vs[i] = Vec2{width * (rand.Float64() - 0.5), width * (rand.Float64() - 0.5)}
	}
	return vs
}

func TestArithmetic(t *testing.T) {
	a, b := Vec2{3, -4}, Vec2{0.5, 2}

	assert.Equal(t, Vec2{3.5, -2}, a.Add(b))
	assert.Equal(t, Vec2{2.5, -6}, a.Sub(b))
	assert.Equal(t, Vec2{6, -8}, a.Scale(2))
	assert.Equal(t, Vec2{1.5, -2}, a.Div(2))
	assert.Equal(t, 5.0, a.Len())
	assert.Equal(t, -6.5, a.Dot(b))
	assert.Equal(t, 5.0, a.Dist(Vec2{}))

	// Operations never modify the receiver.
	assert.Equal(t, Vec2{3, -4}, a)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, Vec2{}, Vec2{}.Normalize(), "zero vector")
	assert.Equal(t, 0.0, Vec2{}.Normalize().Len())

	for i, v := range randomVecs(1000, 1e3) {
		if v == (Vec2{}) {
			continue
		}
		l := v.Normalize().Len()
		if math.Abs(l-1) > testEps {
			t.Errorf("%d) %v normalized to length %g", i, v, l)
		}
	}

	tiny := Vec2{1e-100, -1e-100}
	assert.InDelta(t, 1.0, tiny.Normalize().Len(), testEps, "tiny vector")
}

func TestLerp(t *testing.T) {
	table := []struct {
		a, b Vec2
		t    float64
		res  Vec2
	}{
		{Vec2{0, 0}, Vec2{10, 20}, 0, Vec2{0, 0}},
		{Vec2{0, 0}, Vec2{10, 20}, 1, Vec2{10, 20}},
		{Vec2{0, 0}, Vec2{10, 20}, 0.5, Vec2{5, 10}},
		{Vec2{-2, 4}, Vec2{2, 0}, 0.25, Vec2{-1, 3}},
		{Vec2{1, 1}, Vec2{2, 2}, 2, Vec2{3, 3}},
	}

	for i, test := range table {
		res := test.a.Lerp(test.b, test.t)
		if res != test.res {
			t.Errorf("%d) Expected %v.Lerp(%v, %g) = %v, got %v",
				i, test.a, test.b, test.t, test.res, res)
		}
	}
}

func TestDistSymmetric(t *testing.T) {
	vs := randomVecs(200, 100)
	for i := 1; i < len(vs); i++ {
		assert.Equal(t, vs[i].Dist(vs[i-1]), vs[i-1].Dist(vs[i]))
	}
}

func TestGrid(t *testing.T) {
	g := NewGrid([2]int{2, 3}, [2]int{4, 5})
	assert.Equal(t, 20, g.Area)

	for y := 3; y < 8; y++ {
		for x := 2; x < 6; x++ {
			idx, ok := g.IdxCheck(x, y)
			if !ok {
				t.Errorf("(%d, %d) reported out of bounds", x, y)
				continue
			}
			cx, cy := g.Coords(idx)
			if cx != x || cy != y {
				t.Errorf("Index %d of (%d, %d) maps back to (%d, %d)",
					idx, x, y, cx, cy)
			}
		}
	}

	_, ok := g.IdxCheck(6, 3)
	assert.False(t, ok)
	_, ok = g.IdxCheck(2, 2)
	assert.False(t, ok)
}

func BenchmarkNormalize(b *testing.B) {
	vs := randomVecs(1000, 1.0)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		vs[i%len(vs)].Normalize()
	}
}
