package utils

import "testing"

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name     string
		existing Label
		incoming Label
		want     Label
	}{
		{
			name:     "both present accumulate",
			existing: Label{Value: "collaborative", Source: "scorer"},
			incoming: Label{Value: "popularity", Source: "scorer"},
			want:     Label{Value: "collaborative|popularity", Source: "scorer,scorer"},
		},
		{
			name:     "empty existing takes incoming",
			existing: Label{},
			incoming: Label{Value: "trending", Source: "scorer"},
			want:     Label{Value: "trending", Source: "scorer"},
		},
		{
			name:     "empty incoming keeps existing",
			existing: Label{Value: "content", Source: "scorer"},
			incoming: Label{},
			want:     Label{Value: "content", Source: "scorer"},
		},
		{
			name:     "missing source on one side",
			existing: Label{Value: "a"},
			incoming: Label{Value: "b", Source: "s"},
			want:     Label{Value: "a|b", Source: "s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MergeLabel(tt.existing, tt.incoming); got != tt.want {
				t.Errorf("MergeLabel() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
