package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		expectError bool
	}{
		{
			name:        "missing port",
			cfg:         Config{DBName: "nexus"},
			expectError: true,
		},
		{
			name:        "missing db name",
			cfg:         Config{Port: "8000"},
			expectError: true,
		},
		{
			name:        "development defaults pass",
			cfg:         Config{Port: "8000", DBName: "nexus", DBPassword: "password", Env: "development"},
			expectError: false,
		},
		{
			name:        "production rejects default password",
			cfg:         Config{Port: "8000", DBName: "nexus", DBPassword: "password", Env: "production"},
			expectError: true,
		},
		{
			name:        "production rejects empty password",
			cfg:         Config{Port: "8000", DBName: "nexus", Env: "prod"},
			expectError: true,
		},
		{
			name:        "production with strong password passes",
			cfg:         Config{Port: "8000", DBName: "nexus", DBPassword: "sTr0ng-and-long", Env: "production"},
			expectError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
