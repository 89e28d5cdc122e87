package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoringConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     ScoringConfig
		wantErr bool
	}{
		{
			name: "default parameters",
			cfg:  ScoringConfig{BaseScoreMax: 90, ModelScoreMax: 24, ModelWeight: 2.5, Divisor: 150},
		},
		{
			name:    "divisor does not match the maxima",
			cfg:     ScoringConfig{BaseScoreMax: 90, ModelScoreMax: 20, ModelWeight: 2.5, Divisor: 150},
			wantErr: true,
		},
		{
			name:    "zero divisor",
			cfg:     ScoringConfig{BaseScoreMax: 90, ModelScoreMax: 24, ModelWeight: 2.5},
			wantErr: true,
		},
		{
			name:    "negative base",
			cfg:     ScoringConfig{BaseScoreMax: -90, ModelScoreMax: 24, ModelWeight: 2.5, Divisor: 150},
			wantErr: true,
		},
		{
			name: "rescaled parameters stay valid",
			cfg:  ScoringConfig{BaseScoreMax: 45, ModelScoreMax: 12, ModelWeight: 2.5, Divisor: 75},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
