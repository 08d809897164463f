package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		code int
		want IconKind
	}{
		{-1, IconOvercast},
		{0, IconClear},
		{1, IconPartlyCloudy},
		{3, IconPartlyCloudy},
		{4, IconOvercast},
		{44, IconOvercast},
		{45, IconFog},
		{46, IconOvercast},
		{48, IconFog},
		{49, IconOvercast},
		{50, IconOvercast},
		{51, IconRain},
		{67, IconRain},
		{68, IconOvercast},
		{70, IconOvercast},
		{71, IconSnow},
		{75, IconSnow},
		{76, IconOvercast},
		{79, IconOvercast},
		{80, IconRain},
		{82, IconRain},
		{83, IconOvercast},
		{94, IconOvercast},
		{95, IconStorm},
		{99, IconStorm},
		{1000, IconStorm},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.code), "code %d", tt.code)
	}
}

func TestIconAssets(t *testing.T) {
	assert.Equal(t, "assets/images/icon-sunny.webp", IconClear.Asset())
	assert.Equal(t, "assets/images/icon-rain.webp", Classify(81).Asset())
	assert.Equal(t, "assets/images/icon-overcast.webp", IconKind("bogus").Asset())
}
