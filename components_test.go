package meshtopo

import "testing"

func TestConnectedComponentsPrimal(t *testing.T) {
	testCases := []struct {
		name      string
		fx        fixture
		wantNCC   int
		wantLabel []int
	}{
		{"triangle", triangle, 1, []int{0}},
		{"cube", cube, 1, []int{0, 0, 0, 0, 0, 0}},
		// The fans only touch at a vertex.
		{"bowtie", bowtie, 2, []int{0, 0, 1, 1}},
		{"book", book, 1, []int{0, 0, 0}},
		{"triangle then cube", join(triangle, cube), 2, []int{0, 1, 1, 1, 1, 1, 1}},
		{
			name:      "isolated faces",
			fx:        fixture{9, [][]int{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}}},
			wantNCC:   3,
			wantLabel: []int{0, 1, 2},
		},
		{
			// Labels follow the first face of each component.
			name:      "interleaved",
			fx:        fixture{6, [][]int{{0, 1, 2}, {3, 4, 5}, {2, 1, 0}}},
			wantNCC:   2,
			wantLabel: []int{0, 1, 0},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			label, nCC := tc.fx.mesh(t).ConnectedComponentsPrimal()
			if nCC != tc.wantNCC {
				t.Errorf("nCC = %d, want %d", nCC, tc.wantNCC)
			}
			if !equalInts(label, tc.wantLabel) {
				t.Errorf("labels = %v, want %v", label, tc.wantLabel)
			}
		})
	}
}

func TestConnectedComponentsDual(t *testing.T) {
	testCases := []struct {
		name      string
		fx        fixture
		wantNCC   int
		wantLabel []int
	}{
		{"triangle", triangle, 1, []int{0, 0, 0}},
		// Vertex 0 joins both fans.
		{"bowtie", bowtie, 1, []int{0, 0, 0, 0, 0, 0, 0}},
		{
			name:      "unreferenced vertices",
			fx:        fixture{7, [][]int{{1, 2, 3}, {4, 5, 6}}},
			wantNCC:   3,
			wantLabel: []int{0, 1, 1, 1, 2, 2, 2},
		},
		{
			name:      "trailing isolated",
			fx:        fixture{5, [][]int{{2, 0, 1}}},
			wantNCC:   3,
			wantLabel: []int{0, 0, 0, 1, 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			label, nCC := tc.fx.mesh(t).ConnectedComponentsDual()
			if nCC != tc.wantNCC {
				t.Errorf("nCC = %d, want %d", nCC, tc.wantNCC)
			}
			if !equalInts(label, tc.wantLabel) {
				t.Errorf("labels = %v, want %v", label, tc.wantLabel)
			}
		})
	}
}

func TestComponentLabelsPartition(t *testing.T) {
	meshes := map[string]fixture{
		"cube":    cube,
		"grid":    grid(4),
		"bowtie":  bowtie,
		"mobius":  mobius,
		"several": join(join(tetrahedron, book), fixture{4, [][]int{{0, 1, 2}}}),
	}

	for name, fx := range meshes {
		t.Run(name, func(t *testing.T) {
			m := fx.mesh(t)

			label, nCC := m.ConnectedComponentsPrimal()
			checkPartition(t, "primal", label, nCC, m.NumFaces())

			label, nCC = m.ConnectedComponentsDual()
			checkPartition(t, "dual", label, nCC, m.NumVertices())
		})
	}
}

func checkPartition(t *testing.T, kind string, label []int, nCC, n int) {
	t.Helper()
	if len(label) != n {
		t.Fatalf("%s: %d labels, want %d", kind, len(label), n)
	}
	sizes := ComponentSizes(label, nCC)
	total := 0
	for l, s := range sizes {
		if s == 0 {
			t.Errorf("%s: label %d is unused", kind, l)
		}
		total += s
	}
	if total != n {
		t.Errorf("%s: component sizes sum to %d, want %d", kind, total, n)
	}
}
