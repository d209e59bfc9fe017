package main

import (
	"strings"

	"go.uber.org/zap"

	"urpaint/pkg/device/inch35"
	"urpaint/pkg/device/remote"
	"urpaint/pkg/device/virtual"
	"urpaint/pkg/proto"
)

// openScreen creates an in-memory screen for "virtual:WxH", dials a screen
// server when name looks like host:port and opens the serial port otherwise.
func openScreen(name string, logger *zap.Logger) (proto.Screen, error) {
	var dev proto.Screen
	var err error

	switch {
	case strings.HasPrefix(name, virtual.Prefix):
		dev, err = virtual.Open(name, logger)
	case strings.Contains(name, ":"):
		dev, err = remote.Dial(name)
	default:
		dev, err = inch35.Open(name, logger)
	}
	if err != nil {
		return nil, err
	}

	if err := dev.Startup(); err != nil {
		return nil, err
	}
	if err := dev.SetLight(*light); err != nil {
		return nil, err
	}
	if err := dev.SetRotate(*landscape, *invert); err != nil {
		return nil, err
	}

	return dev, nil
}
