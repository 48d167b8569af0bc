// ABOUTME: Bit depth conversion for PCM samples
// ABOUTME: Shift-based rescaling with special handling for unsigned 8-bit
package audio

import "fmt"

// ConvertBitDepth rescales every sample from oldBits to newBits by bit shifting.
// 8-bit is unsigned with a 128 offset, every other depth is signed and zero-centred.
// Narrowing truncates (arithmetic shift), it neither rounds nor dithers.
// The result never shares storage with samples.
func ConvertBitDepth(samples []int32, oldBits, newBits int) ([]int32, error) {
	if err := checkBitDepth(oldBits); err != nil {
		return nil, err
	}
	if err := checkBitDepth(newBits); err != nil {
		return nil, err
	}

	out := make([]int32, len(samples))
	if oldBits == newBits {
		copy(out, samples)
		return out, nil
	}

	shift := newBits - oldBits
	if shift < 0 {
		shift = -shift
	}

	switch {
	case oldBits == 8:
		for i, s := range samples {
			out[i] = (s - Offset8Bit) << shift
		}
	case newBits == 8:
		for i, s := range samples {
			out[i] = (s >> shift) + Offset8Bit
		}
	case newBits > oldBits:
		for i, s := range samples {
			out[i] = s << shift
		}
	default:
		for i, s := range samples {
			out[i] = s >> shift
		}
	}
	return out, nil
}

func checkBitDepth(bits int) error {
	if bits < 1 || bits > MaxBitDepth {
		return fmt.Errorf("%w: %d (must be 1-%d)", ErrInvalidBitDepth, bits, MaxBitDepth)
	}
	return nil
}
