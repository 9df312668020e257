package models

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aimuhasebi/platform/pkg/constants"
)

func TestClassifyTrend_NoPrevious(t *testing.T) {
	assert.Equal(t, constants.TrendStable, ClassifyTrend(75, nil))
}

func TestClassifyTrend_DeadBand(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     constants.TrendDirection
	}{
		{"rise beyond dead band", 75, 69, constants.TrendIncreasing},
		{"rise exactly at dead band stays stable", 75, 70, constants.TrendStable},
		{"rise within dead band", 74, 70, constants.TrendStable},
		{"drop beyond dead band", 60, 70, constants.TrendDecreasing},
		{"drop exactly at dead band stays stable", 65, 70, constants.TrendStable},
		{"drop within dead band", 66, 70, constants.TrendStable},
		{"no change", 70, 70, constants.TrendStable},
		{"large jump", 100, 0, constants.TrendIncreasing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prev := tt.previous
			assert.Equal(t, tt.want, ClassifyTrend(tt.current, &prev))
		})
	}
}
