package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// Fixed timestep. The game runs at ebiten's default 60 TPS and all
	// timers/physics advance by this amount once per Update.
	FrameSeconds = 1.0 / 60.0
)
