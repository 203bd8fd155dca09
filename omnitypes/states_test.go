package omnitypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackyardStateReady(t *testing.T) {
	tests := []struct {
		state BackyardState
		ready bool
	}{
		{BackyardOff, true},
		{BackyardOn, true},
		{BackyardServiceMode, false},
		{BackyardConfigMode, false},
		{BackyardTimedServiceMode, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ready, tt.state.Ready(), "state %d", tt.state)
	}
}

func TestFilterStateSettled(t *testing.T) {
	assert.True(t, FilterOff.Settled())
	assert.True(t, FilterOn.Settled())
	assert.False(t, FilterPriming.Settled())
	assert.False(t, FilterCooldown.Settled())
	assert.False(t, FilterSuperchlorinate.Settled())
}

func TestColorLogicPowerStateSettled(t *testing.T) {
	assert.True(t, LightOff.Settled())
	assert.True(t, LightActive.Settled())
	assert.False(t, LightPoweringOff.Settled())
	assert.False(t, LightChangingShow.Settled())
	assert.False(t, LightFifteenSecsWhite.Settled())
	assert.False(t, LightCooldown.Settled())
}

func TestLightEnumRanges(t *testing.T) {
	assert.True(t, ShowVoodooLounge.Valid())
	assert.True(t, ShowBrightYellow.Valid())
	assert.False(t, ColorLogicShow(-1).Valid())
	assert.False(t, ColorLogicShow(27).Valid())

	assert.True(t, SpeedSixteenTimes.Valid())
	assert.False(t, ColorLogicSpeed(9).Valid())

	assert.True(t, BrightnessFull.Valid())
	assert.False(t, ColorLogicBrightness(5).Valid())
}

func TestHeaterModeValid(t *testing.T) {
	assert.True(t, HeaterModeHeat.Valid())
	assert.True(t, HeaterModeAuto.Valid())
	assert.False(t, HeaterMode(3).Valid())
}
