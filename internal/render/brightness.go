package render

import (
	"os"
	"strconv"
	"strings"

	"github.com/rileyhilliard/ledmon/internal/logger"
)

// Brightness resolves the output intensity ceiling for a frame: the
// configured maximum, capped by the integer in File when it can be read.
type Brightness struct {
	Max  uint8
	File string

	log      logger.Logger
	readFile func(string) ([]byte, error)
	lastErr  string
}

// NewBrightness creates a brightness source. An empty file disables the cap.
func NewBrightness(max uint8, file string, log logger.Logger) *Brightness {
	if log == nil {
		log = logger.Noop()
	}
	return &Brightness{Max: max, File: file, log: log, readFile: os.ReadFile}
}

// Level returns min(Max, file value). A missing, unreadable or malformed file
// falls back to Max. Not safe for concurrent use.
func (b *Brightness) Level() uint8 {
	if b.File == "" {
		return b.Max
	}

	v, err := b.readLevel()
	if err != nil {
		// log once per distinct problem, the file is re-read every frame
		if msg := err.Error(); msg != b.lastErr {
			b.log.Debug("brightness file %s unusable, using max_brightness %d: %v", b.File, b.Max, err)
			b.lastErr = msg
		}
		return b.Max
	}
	b.lastErr = ""

	if v < int(b.Max) {
		return uint8(v)
	}
	return b.Max
}

func (b *Brightness) readLevel() (int, error) {
	data, err := b.readFile(b.File)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, err
	}
	if v < 0 {
		v = 0
	}
	return v, nil
}
