package inch35

import (
	"fmt"
	"time"

	"github.com/inhies/go-bytesize"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (i *Inch35) sendCMD(code uint8, vars ...int) error {
	if len(vars) > 4 {
		return errors.New("too many vars")
	}

	var v [4]int
	copy(v[:], vars)

	return i.sendRaw(code, v, nil)
}

func (i *Inch35) sendOpt(code uint8, fixed int, payload []byte) error {
	if len(payload) > fixed-6 {
		return errors.New("too many bytes")
	}

	buf := make([]byte, fixed)
	copy(buf[6:], payload)

	return i.sendRaw(code, [4]int{}, buf)
}

// sendRaw packs four coordinates of 10, 10, 10 and 12 bits followed by the
// command code into the first six bytes of buf.
func (i *Inch35) sendRaw(code uint8, v [4]int, buf []byte) error {
	if len(buf) == 0 {
		buf = make([]byte, 6)
	}

	buf[0] = byte(v[0] >> 2)
	buf[1] = byte(((v[0] & 3) << 6) + (v[1] >> 4))
	buf[2] = byte(((v[1] & 0xF) << 4) + (v[2] >> 6))
	buf[3] = byte(((v[2] & 0x3F) << 2) + (v[3] >> 8))
	buf[4] = byte(v[3] & 0xFF)
	buf[5] = code

	return i.sendBytes(buf)
}

func (i *Inch35) sendBytes(buf []byte) error {
	start := time.Now()
	sent, err := i.w.Write(buf)
	if err != nil {
		return fmt.Errorf("serial write failed: %w", err)
	}
	cost := time.Since(start)

	ext := ""
	if len(buf) <= 16 {
		ext = fmt.Sprintf("%x", buf)
	}

	i.logger.With(
		zap.String("sent", bytesize.New(float64(sent)).String()),
		zap.Duration("cost", cost),
		zap.String("data", ext),
	).Debug("transfer")

	return nil
}
