package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already normalized", "+79990001122", "+79990001122"},
		{"leading eight", "89990001122", "+79990001122"},
		{"formatted", "8 (999) 000-11-22", "+79990001122"},
		{"formatted international", "+7 (999) 000-11-22", "+79990001122"},
		{"short number untouched", "8122", "8122"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.input))
		})
	}
}

func TestGetDisplayName(t *testing.T) {
	named := &User{Name: "Ivan", Phone: "+79990001122"}
	assert.Equal(t, "Ivan", named.GetDisplayName())

	anonymous := &User{Name: "  ", Phone: "+79990001122"}
	assert.Equal(t, "+79990001122", anonymous.GetDisplayName())
}
