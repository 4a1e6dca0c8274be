package display

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestFit(t *testing.T) {
	tests := map[string]struct {
		input string
		width int
		exp   string
	}{
		"fits":      {input: "#1 3s ago", width: 20, exp: "#1 3s ago"},
		"exact":     {input: "#1 3s ago", width: 9, exp: "#1 3s ago"},
		"cut":       {input: "#1 3s ago", width: 6, exp: "#1 3s…"},
		"unlimited": {input: "#12 120s ago (40 objects)", width: 0, exp: "#12 120s ago (40 objects)"},
		"empty":     {input: "", width: 5, exp: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "fit", Fit(tt.input, tt.width), tt.exp)
		})
	}
}
