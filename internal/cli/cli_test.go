package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Ashish-Jain-dev/voicestudio/internal/domain"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"FALSE", false},
		{"42", 42},
		{"3.5", 3.5},
		{"ws://localhost:7880", "ws://localhost:7880"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseValue(tt.in), "input %q", tt.in)
	}
}

func TestBuiltinTemplatesCoverAllIDs(t *testing.T) {
	ids := map[string]bool{}
	for _, tmpl := range builtinTemplates() {
		ids[tmpl.ID] = true
	}
	for _, want := range []string{
		domain.TemplateGeneral,
		domain.TemplateProject,
		domain.TemplateTechStack,
		domain.TemplateClient,
	} {
		assert.True(t, ids[want], "missing template %s", want)
	}
}
