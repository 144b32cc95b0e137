package config

import "go.trai.ch/zerr"

var (
	ErrUnknownCube   = zerr.New("config: unknown cube")
	ErrUnknownKind   = zerr.New("config: unknown plot kind")
	ErrUnknownPreset = zerr.New("config: unknown preset")
	ErrBadCoordSpec  = zerr.New("config: bad coordinate spec")
)
