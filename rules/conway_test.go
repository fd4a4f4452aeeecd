package rules

import "testing"

func TestNextState(t *testing.T) {
	tests := []struct {
		name      string
		alive     bool
		neighbors int
		want      bool
	}{
		{"lonely cell dies", true, 0, false},
		{"one neighbor dies", true, 1, false},
		{"two neighbors survives", true, 2, true},
		{"three neighbors survives", true, 3, true},
		{"four neighbors dies", true, 4, false},
		{"eight neighbors dies", true, 8, false},
		{"dead with three is born", false, 3, true},
		{"dead with two stays dead", false, 2, false},
		{"dead with four stays dead", false, 4, false},
		{"dead with zero stays dead", false, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NextState(tt.alive, tt.neighbors); got != tt.want {
				t.Fatalf("NextState(%v, %d) = %v, expected %v", tt.alive, tt.neighbors, got, tt.want)
			}
		})
	}
}
