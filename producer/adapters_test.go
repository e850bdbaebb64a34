package producer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ToSlice[T any](p *Producer[T]) (slice []T) {
	for p.Next() {
		slice = append(slice, p.Value())
	}
	return
}

func TestFromSlice(t *testing.T) {
	tests := []struct {
		name string
		want []int
	}{
		{"nil", nil},
		{"single", []int{1}},
		{"multiple", []int{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSlice(FromSlice(tt.want)); !cmp.Equal(tt.want, got) {
				t.Error(cmp.Diff(tt.want, got))
			}
		})
	}
}

func TestFromMap(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]int
		want  []Pair[string, int]
	}{
		{"empty", map[string]int{}, nil},
		{"single", map[string]int{"a": 1}, []Pair[string, int]{{"a", 1}}},
		{"sorted", map[string]int{"z": 3, "x": 1, "y": 2}, []Pair[string, int]{{"x", 1}, {"y", 2}, {"z", 3}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToSlice(FromMap(tt.input)); !cmp.Equal(tt.want, got) {
				t.Error(cmp.Diff(tt.want, got))
			}
		})
	}
}
