package inch35

import (
	"bytes"
	"encoding/binary"
	"image"
	"io"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"urpaint/pkg/bitmap"
	"urpaint/pkg/proto"
)

const (
	Restart    = 101
	Shutdown   = 108
	Startup    = 109
	SetLight   = 110
	SetRotate  = 121
	SetMirror  = 122
	DrawPixels = 195
	DrawBitmap = 197
)

const (
	Width  = 320
	Height = 480
)

var SerialOptions = proto.Options{
	DTR:         true,
	RTS:         true,
	BaudRate:    115200,
	ReadTimeout: time.Millisecond,
}

// Open finds the screen on the serial bus by name.
func Open(name string, logger *zap.Logger) (*Inch35, error) {
	port, err := proto.OpenSerial(name, &SerialOptions, logger)
	if err != nil {
		return nil, err
	}
	return New(port, logger), nil
}

// New drives a 3.5 inch 320x480 USB screen through w.
func New(w io.Writer, logger *zap.Logger) *Inch35 {
	return &Inch35{
		w:      w,
		logger: logger,
		width:  Width,
		height: Height,
	}
}

type Inch35 struct {
	w      io.Writer
	logger *zap.Logger
	width  int
	height int
}

func (i *Inch35) Startup() error {
	return i.sendCMD(Startup)
}

func (i *Inch35) Shutdown() error {
	return i.sendCMD(Shutdown)
}

// SetLight takes a brightness in percent, the device counts backwards.
func (i *Inch35) SetLight(light uint8) error {
	if light > 100 {
		light = 100
	}
	return i.sendCMD(SetLight, int((1-float64(light)/100)*255))
}

func (i *Inch35) SetRotate(landscape bool, invert bool) error {
	i.width, i.height = Width, Height

	ov := 100
	if landscape {
		ov++
		i.width, i.height = Height, Width
	}
	if invert {
		ov++
	}

	var bs bytes.Buffer
	bs.WriteByte(uint8(ov))
	_ = binary.Write(&bs, binary.BigEndian, uint16(i.width))
	_ = binary.Write(&bs, binary.BigEndian, uint16(i.height))

	return i.sendOpt(SetRotate, 16, bs.Bytes())
}

func (i *Inch35) Size() image.Point {
	return image.Pt(i.width, i.height)
}

func (i *Inch35) DrawBitmap(at image.Point, img image.Image) error {
	size := img.Bounds().Size()
	if at.X < 0 || at.Y < 0 {
		return errors.New("negative position")
	} else if size.X+at.X > i.width {
		return errors.New("width overflow")
	} else if size.Y+at.Y > i.height {
		return errors.New("height overflow")
	} else if size.X == 0 || size.Y == 0 {
		return nil
	}

	if err := i.sendCMD(DrawBitmap, at.X, at.Y, at.X+size.X-1, at.Y+size.Y-1); err != nil {
		return err
	}

	return i.sendBytes(bitmap.Encode(img))
}

func (i *Inch35) Close() error {
	if c, ok := i.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
