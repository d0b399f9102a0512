package store

import (
	"reflect"
	"testing"
)

type ranked struct {
	name      string
	relevance float64
}

func TestTopByRelevance(t *testing.T) {
	items := []ranked{
		{"a", 0.2},
		{"b", 0.9},
		{"c", 0.9},
		{"d", 0.1},
	}

	rel := func(r ranked) float64 { return r.relevance }

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "top three keeps tie order", n: 3, want: []string{"b", "c", "a"}},
		{name: "n larger than input", n: 10, want: []string{"b", "c", "a", "d"}},
		{name: "zero n", n: 0, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TopByRelevance(items, tt.n, rel)
			names := make([]string, len(got))
			for i, r := range got {
				names[i] = r.name
			}
			if !reflect.DeepEqual(names, tt.want) {
				t.Errorf("TopByRelevance(n=%d) = %v, want %v", tt.n, names, tt.want)
			}
		})
	}

	// Input order must survive the call.
	if items[0].name != "a" || items[3].name != "d" {
		t.Error("input slice was reordered")
	}
}
