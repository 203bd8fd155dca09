package omnitypes

// ColorLogicShow is a color light show number. The value set below is the
// OmniDirect/V2 superset; older light models accept a prefix of it. The
// controller rejects shows a light does not support, so no model check is
// done here.
type ColorLogicShow int

const (
	ShowVoodooLounge ColorLogicShow = iota
	ShowDeepBlueSea
	ShowRoyalBlue
	ShowAfternoonSky
	ShowAquaGreen
	ShowEmerald
	ShowCloudWhite
	ShowWarmRed
	ShowFlamingo
	ShowVividViolet
	ShowSangria
	ShowTwilight
	ShowTranquility
	ShowGemstone
	ShowUSA
	ShowMardiGras
	ShowCoolCabaret
	ShowYellow
	ShowOrange
	ShowGold
	ShowMint
	ShowTeal
	ShowBurntOrange
	ShowPureWhite
	ShowCrispWhite
	ShowWarmWhite
	ShowBrightYellow
)

// Valid reports whether the show number is in the known range.
func (s ColorLogicShow) Valid() bool {
	return s >= ShowVoodooLounge && s <= ShowBrightYellow
}

// ColorLogicSpeed is the show animation speed, from one sixteenth to
// sixteen times normal.
type ColorLogicSpeed int

const (
	SpeedOneSixteenth ColorLogicSpeed = iota
	SpeedOneEighth
	SpeedOneQuarter
	SpeedOneHalf
	SpeedOneTimes
	SpeedTwoTimes
	SpeedFourTimes
	SpeedEightTimes
	SpeedSixteenTimes
)

// Valid reports whether the speed is in the accepted range.
func (s ColorLogicSpeed) Valid() bool {
	return s >= SpeedOneSixteenth && s <= SpeedSixteenTimes
}

// ColorLogicBrightness is the light brightness in 20 percent steps.
type ColorLogicBrightness int

const (
	BrightnessTwentyPercent ColorLogicBrightness = iota
	BrightnessFortyPercent
	BrightnessSixtyPercent
	BrightnessEightyPercent
	BrightnessFull
)

// Valid reports whether the brightness is in the accepted range.
func (b ColorLogicBrightness) Valid() bool {
	return b >= BrightnessTwentyPercent && b <= BrightnessFull
}
