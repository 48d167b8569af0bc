// ABOUTME: Error values returned by buffer conversion
// ABOUTME: Sentinels plus a typed error carrying the rejected channel counts
package audio

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedChannelConversion is matched by every *ChannelConversionError
	ErrUnsupportedChannelConversion = errors.New("unsupported channel conversion")

	// ErrInvalidBitDepth is returned for depths the int32 storage cannot represent
	ErrInvalidBitDepth = errors.New("invalid bit depth")

	// ErrMisalignedSamples is returned when a sample slice does not divide into whole frames
	ErrMisalignedSamples = errors.New("samples do not align to frames")
)

// ChannelConversionError reports a channel count pair with no conversion rule
type ChannelConversionError struct {
	Old int
	New int
}

func (e *ChannelConversionError) Error() string {
	return fmt.Sprintf("conversion of sample data from %d channels to %d channels is unsupported", e.Old, e.New)
}

// Is makes errors.Is(err, ErrUnsupportedChannelConversion) succeed
func (e *ChannelConversionError) Is(target error) bool {
	return target == ErrUnsupportedChannelConversion
}
