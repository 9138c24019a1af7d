//go:build !linux

package gpio

import (
	"errors"

	"go.uber.org/zap"

	"github.com/itohio/golamp/pkg/config"
	"github.com/itohio/golamp/pkg/hal"
)

// Board is not available on non-Linux platforms.
type Board struct{}

// Open returns an error on non-Linux platforms.
func Open(cfg config.HardwareConfig, logger *zap.Logger) (*Board, error) {
	return nil, errors.New("gpio: not supported on this platform (requires Linux)")
}

// Board returns an empty aggregate.
func (b *Board) Board() hal.Board {
	return hal.Board{}
}

// Close does nothing on non-Linux platforms.
func (b *Board) Close() error {
	return nil
}
