package service

import (
	"aiact_backend/internal/model"
	"aiact_backend/internal/util"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratedModel(t *testing.T, slug string, scores map[string]*float64) *model.AIModel {
	t.Helper()
	raw, err := json.Marshal(scores)
	require.NoError(t, err)
	return &model.AIModel{Slug: slug, Name: slug, PrincipleScores: raw}
}

func ptr(v float64) *float64 { return &v }

func TestCapabilityScoreComputation(t *testing.T) {
	svc := NewModelScoreService(nil, nil, 24)

	tests := []struct {
		name   string
		scores map[string]*float64
		want   float64
	}{
		{
			name: "all principles evaluated",
			scores: map[string]*float64{
				model.PrincipleTechnical:    ptr(3.2),
				model.PrinciplePrivacy:      ptr(2.87),
				model.PrincipleTransparency: ptr(3.0),
				model.PrincipleFairness:     ptr(3.0),
			},
			want: 12.07,
		},
		{
			// Missing principles scale the rest up so partially rated
			// models compare on the same range.
			name: "one principle unevaluated",
			scores: map[string]*float64{
				model.PrincipleTechnical:    ptr(3.0),
				model.PrinciplePrivacy:      nil,
				model.PrincipleTransparency: ptr(2.8),
				model.PrincipleFairness:     ptr(2.6),
			},
			want: 11.2,
		},
		{
			name: "single principle evaluated",
			scores: map[string]*float64{
				model.PrincipleTechnical: ptr(2.5),
			},
			want: 10,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			score, err := svc.compute(ratedModel(t, "m", tc.scores))
			require.NoError(t, err)
			assert.InDelta(t, tc.want, score, 1e-9)
		})
	}
}

func TestCapabilityScoreCappedAtMax(t *testing.T) {
	svc := NewModelScoreService(nil, nil, 24)

	score, err := svc.compute(ratedModel(t, "m", map[string]*float64{
		model.PrincipleTechnical:    ptr(9),
		model.PrinciplePrivacy:      ptr(9),
		model.PrincipleTransparency: ptr(9),
		model.PrincipleFairness:     ptr(9),
	}))
	require.NoError(t, err)
	assert.Equal(t, 24.0, score)
}

func TestCapabilityScoreNoEvaluatedPrinciple(t *testing.T) {
	svc := NewModelScoreService(nil, nil, 24)

	_, err := svc.compute(ratedModel(t, "m", map[string]*float64{
		model.PrincipleTechnical: nil,
		model.PrinciplePrivacy:   nil,
	}))
	assert.ErrorIs(t, err, util.ErrModelScoreMissing)

	_, err = svc.compute(ratedModel(t, "m", nil))
	assert.ErrorIs(t, err, util.ErrModelScoreMissing)
}

func TestCapabilityScoreMalformedRatings(t *testing.T) {
	svc := NewModelScoreService(nil, nil, 24)
	m := &model.AIModel{Slug: "m", PrincipleScores: []byte("{not json")}

	_, err := svc.compute(m)
	assert.ErrorIs(t, err, util.ErrModelScoreMissing)
}
