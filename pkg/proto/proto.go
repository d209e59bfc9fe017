package proto

import (
	"image"
)

// Screen is a display the canvas can be pushed to.
type Screen interface {
	Startup() error
	Shutdown() error

	SetLight(light uint8) error
	SetRotate(landscape bool, invert bool) error

	// Size is the drawable area after rotation.
	Size() image.Point
	DrawBitmap(at image.Point, img image.Image) error
}
