package view

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const float64EqualityThreshold = 1e-6

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= float64EqualityThreshold
}

func polyAlmostEqual(a, b []mgl64.Vec3) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		for k := 0; k < 3; k++ {
			if !almostEqual(a[i][k], b[i][k]) {
				return false
			}
		}
	}
	return true
}

func TestClipNear(t *testing.T) {
	// near plane at z = -10
	testCases := []struct {
		name     string
		input    []mgl64.Vec3
		expected []mgl64.Vec3
	}{
		{
			name:     "Polygon fully in front of near plane",
			input:    []mgl64.Vec3{{0, 0, -20}, {1, 0, -20}, {0, 1, -20}},
			expected: []mgl64.Vec3{{0, 0, -20}, {1, 0, -20}, {0, 1, -20}},
		},
		{
			name:     "Polygon fully behind near plane",
			input:    []mgl64.Vec3{{0, 0, -5}, {1, 0, -5}, {0, 1, -5}},
			expected: nil,
		},
		{
			name:  "One vertex behind near plane",
			input: []mgl64.Vec3{{0, 0, -20}, {2, 0, -20}, {0, 0, 0}},
			expected: []mgl64.Vec3{
				{0, 0, -10},
				{0, 0, -20},
				{2, 0, -20},
				{1, 0, -10},
			},
		},
		{
			name:     "Two vertices behind near plane",
			input:    []mgl64.Vec3{{0, 0, -20}, {2, 0, 0}, {0, 2, 0}},
			expected: []mgl64.Vec3{{0, 1, -10}, {0, 0, -20}, {1, 0, -10}},
		},
		{
			name:     "Vertex on the near plane counts as inside",
			input:    []mgl64.Vec3{{0, 0, -10}, {1, 0, -10}, {0, 1, -10}},
			expected: []mgl64.Vec3{{0, 0, -10}, {1, 0, -10}, {0, 1, -10}},
		},
		{
			name:     "Empty polygon",
			input:    nil,
			expected: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			clipped := ClipNear(tc.input, 10)
			if !polyAlmostEqual(clipped, tc.expected) {
				t.Errorf("ClipNear() = %v, want %v", clipped, tc.expected)
			}
		})
	}
}

func TestIntersectNear(t *testing.T) {
	testCases := []struct {
		name     string
		p1, p2   mgl64.Vec3
		expected mgl64.Vec3
	}{
		{"Standard intersection", mgl64.Vec3{0, 0, -20}, mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, -10}},
		{"Diagonal line", mgl64.Vec3{-4, 2, -5}, mgl64.Vec3{4, 6, -15}, mgl64.Vec3{0, 4, -10}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result := intersectNear(tc.p1, tc.p2, 10)
			if !polyAlmostEqual([]mgl64.Vec3{result}, []mgl64.Vec3{tc.expected}) {
				t.Errorf("intersectNear() = %v, want %v", result, tc.expected)
			}
		})
	}
}

func TestProjectFace(t *testing.T) {
	p := &Projector{Distance: 10, FovY: mgl64.DegToRad(45), Width: 100, Height: 100}
	points := []mgl64.Vec3{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}, {0, 0, 50}}

	xs, ys, ok := p.ProjectFace(points, []int{0, 1, 2, 3})
	if !ok || len(xs) != 4 {
		t.Fatalf("ProjectFace(square) = %v, %v, %v", xs, ys, ok)
	}
	for i := range xs {
		x, y, _ := p.Project(points[i])
		if math.Abs(float64(xs[i])-x) > 1e-3 || math.Abs(float64(ys[i])-y) > 1e-3 {
			t.Errorf("corner %d at (%g, %g), Project gives (%g, %g)", i, xs[i], ys[i], x, y)
		}
	}

	if _, _, ok := p.ProjectFace([]mgl64.Vec3{{0, 0, 20}, {1, 0, 20}, {0, 1, 20}}, []int{0, 1, 2}); ok {
		t.Error("face behind the camera reported visible")
	}

	// crossing the near plane leaves a clipped polygon
	if xs, _, ok := p.ProjectFace(points, []int{0, 1, 4}); !ok || len(xs) != 4 {
		t.Errorf("ProjectFace(crossing) = %d corners, ok %v; want 4, true", len(xs), ok)
	}
}
