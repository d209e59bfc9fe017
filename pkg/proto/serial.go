package proto

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.bug.st/serial"
	"go.uber.org/zap"
)

var ErrPortNotFound = errors.New("USB port not found")

type Options struct {
	DTR         bool
	RTS         bool
	BaudRate    int
	ReadTimeout time.Duration
}

// OpenSerial opens the first port whose name contains name, so a partial
// name such as "ttyACM" or "usbmodemUSB35INCH" is enough.
func OpenSerial(name string, opts *Options, logger *zap.Logger) (*Serial, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, err
	}

	var matched string
	for _, p := range ports {
		if strings.Contains(p, name) {
			matched = p
			break
		}
	}
	if matched == "" {
		return nil, errors.Wrap(ErrPortNotFound, name)
	}

	port, err := serial.Open(matched, &serial.Mode{BaudRate: opts.BaudRate})
	if err != nil {
		return nil, err
	}

	if err := port.SetDTR(opts.DTR); err != nil {
		_ = port.Close()
		return nil, err
	}

	if err := port.SetRTS(opts.RTS); err != nil {
		_ = port.Close()
		return nil, err
	}

	if opts.ReadTimeout > 0 {
		if err := port.SetReadTimeout(opts.ReadTimeout); err != nil {
			_ = port.Close()
			return nil, err
		}
	}

	logger.With(zap.String("port", matched), zap.Int("baud", opts.BaudRate)).Debug("serial-opened")
	return &Serial{name: matched, port: port}, nil
}

type Serial struct {
	name string
	port serial.Port
}

func (s *Serial) Name() string {
	return s.name
}

func (s *Serial) Close() error {
	return s.port.Close()
}

func (s *Serial) Read(p []byte) (n int, err error) {
	return s.port.Read(p)
}

func (s *Serial) Write(p []byte) (n int, err error) {
	return s.port.Write(p)
}
