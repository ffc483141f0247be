package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty database path returns ErrDBPathEmpty",
			config:  Config{DBPath: "", LogLevel: LogLevelWarn},
			wantErr: ErrDBPathEmpty,
		},
		{
			name:    "unknown log level returns ErrLogLevelUnknown",
			config:  Config{DBPath: "/tmp/vibedocs.db", LogLevel: "verbose"},
			wantErr: ErrLogLevelUnknown,
		},
		{
			name:   "valid config",
			config: Config{DBPath: "/tmp/vibedocs.db", LogLevel: LogLevelDebug},
		},
		{
			name:   "empty log level is valid at config level",
			config: Config{DBPath: "/tmp/vibedocs.db"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFeatureSameEntry(t *testing.T) {
	base := Feature{ID: 1, Name: "Auth", Description: "Login flow", Completed: true, Category: "Core"}

	other := base
	other.ID = 7
	assert.True(t, base.SameEntry(other), "identity is ignored")

	other.Completed = false
	assert.False(t, base.SameEntry(other))

	other = base
	other.Category = "Extras"
	assert.False(t, base.SameEntry(other))
}
