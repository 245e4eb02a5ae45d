// Package loader handles ROM file loading operations.
package loader

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/retroenv/chip8vm/internal/vm"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/arch/system/nes/cartridge"
	"github.com/retroenv/retrogolib/log"
)

// Loader handles loading ROM files from disk.
type Loader struct {
	logger *log.Logger
}

// New creates a new ROM loader.
func New(logger *log.Logger) *Loader {
	return &Loader{
		logger: logger,
	}
}

// Load reads a headerless CHIP-8 ROM file and returns the program image.
// Zero padding that exceeds the program space is dropped, a program that does
// not fit into memory returns an error.
func (l *Loader) Load(path string) ([]byte, error) {
	if system := DetectSystem(path); system != arch.CHIP8System {
		l.logger.Warn("File extension does not indicate a CHIP-8 ROM",
			log.String("file", path),
			log.Stringer("system", system))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	cart, err := cartridge.LoadBuffer(file)
	if err != nil {
		return nil, fmt.Errorf("loading ROM: %w", err)
	}

	image := cart.PRG
	if len(image) > vm.MaxProgramSize {
		image = bytes.TrimRight(image, "\x00")
	}
	if len(image) > vm.MaxProgramSize {
		return nil, fmt.Errorf("loading ROM %s with %d bytes: %w", path, len(image), vm.ErrProgramTooLarge)
	}

	l.logger.Debug("ROM loaded",
		log.String("file", path),
		log.Int("size", len(image)))
	return image, nil
}

// DetectSystem determines the system type based on the file extension.
func DetectSystem(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".ch8", ".c8", ".rom":
		return arch.CHIP8System
	case ".nes":
		return arch.NES
	default:
		return ""
	}
}
