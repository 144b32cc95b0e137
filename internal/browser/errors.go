package browser

import "go.trai.ch/zerr"

var (
	// ErrIncompatibleAxis indicates two plots naming different slider axes alike.
	ErrIncompatibleAxis = zerr.New("browser: incompatible axis")

	// ErrUnknownSlider indicates a slider name or control the browser did not build.
	ErrUnknownSlider = zerr.New("browser: unknown slider")
)
