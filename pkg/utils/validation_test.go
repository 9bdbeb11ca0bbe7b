package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePackageName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "simple name", input: "dashboard", wantErr: false},
		{name: "with hyphen", input: "demo-plugin", wantErr: false},
		{name: "with dot", input: "ajenti.usage", wantErr: false},
		{name: "with underscore", input: "task_manager", wantErr: false},
		{name: "leading digit", input: "2fa", wantErr: false},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "uppercase", input: "Dashboard", wantErr: true},
		{name: "leading hyphen", input: "-dashboard", wantErr: true},
		{name: "path traversal", input: "../etc", wantErr: true},
		{name: "embedded slash", input: "a/b", wantErr: true},
		{name: "backslash", input: `a\b`, wantErr: true},
		{name: "spaces inside", input: "my plugin", wantErr: true},
		{name: "too long", input: strings.Repeat("a", MaxPackageNameLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePackageName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizePackageName(t *testing.T) {
	assert.Equal(t, "dashboard", SanitizePackageName("  Dashboard  "))
	assert.Equal(t, "my-plugin", SanitizePackageName("My Plugin"))
	assert.Len(t, SanitizePackageName(strings.Repeat("x", 80)), MaxPackageNameLength)
}
