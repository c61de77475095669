package config

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/tpasm/internal/options"
)

func TestCreateLogger(t *testing.T) {
	tests := []struct {
		name  string
		debug bool
		quiet bool
	}{
		{name: "default"},
		{name: "debug", debug: true},
		{name: "quiet", quiet: true},
		{name: "debug wins over quiet", debug: true, quiet: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := CreateLogger(options.Program{Debug: tt.debug, Quiet: tt.quiet})
			assert.NotNil(t, logger)
		})
	}
}
