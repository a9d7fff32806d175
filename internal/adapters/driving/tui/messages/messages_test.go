package messages

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFocus_String(t *testing.T) {
	tests := []struct {
		focus    Focus
		expected string
	}{
		{FocusInput, "input"},
		{FocusList, "list"},
		{Focus(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.focus.String())
		})
	}
}
