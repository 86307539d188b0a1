package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaspick/oaserrors"
)

func TestValidateSingleInputSource(t *testing.T) {
	tests := []struct {
		name    string
		sources []Source
		wantErr error
		message string
	}{
		{
			name:    "exactly one",
			sources: []Source{{"file", true}, {"content", false}},
		},
		{
			name:    "none",
			sources: []Source{{"file", false}, {"url", false}, {"content", false}},
			wantErr: oaserrors.ErrInputMissing,
			message: "exactly one of file, url, or content must be provided",
		},
		{
			name:    "two",
			sources: []Source{{"file", true}, {"content", true}},
			wantErr: oaserrors.ErrConfig,
			message: "configuration error for file+content: exactly one of file or content must be provided",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSingleInputSource(tt.sources...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestValidateSingleInputSource_NoSources(t *testing.T) {
	err := ValidateSingleInputSource()
	require.Error(t, err)
	assert.Equal(t, "exactly one of the inputs must be provided", err.Error())
}
