// ABOUTME: Channel count conversion for interleaved PCM
// ABOUTME: Duplicates mono, averages down to mono, or keeps the first two channels
package audio

import "fmt"

// ConvertChannels remaps interleaved samples from oldChannels to newChannels.
// The result never shares storage with samples. Supported transitions:
//
//	1 -> N (N >= 2)  every channel gets the mono value
//	N -> 1 (N >= 2)  floor of the channel average
//	N -> 2 (N > 2)   first two channels, the rest are dropped
//
// Any other pair returns a *ChannelConversionError. Input that does not
// divide into whole oldChannels frames returns ErrMisalignedSamples.
func ConvertChannels(samples []int32, oldChannels, newChannels int) ([]int32, error) {
	if !channelsSupported(oldChannels, newChannels) {
		return nil, &ChannelConversionError{Old: oldChannels, New: newChannels}
	}
	if len(samples)%oldChannels != 0 {
		return nil, fmt.Errorf("%w: %d samples for %d channels", ErrMisalignedSamples, len(samples), oldChannels)
	}

	switch {
	case oldChannels == newChannels:
		return append([]int32(nil), samples...), nil

	case oldChannels == 1 && newChannels == 2:
		// Mono and stereo dominate real files, so they get their own loops
		out := make([]int32, len(samples)*2)
		for i, s := range samples {
			out[i*2] = s
			out[i*2+1] = s
		}
		return out, nil

	case oldChannels == 2 && newChannels == 1:
		out := make([]int32, len(samples)/2)
		for i := range out {
			out[i] = int32(floorDiv(int64(samples[i*2])+int64(samples[i*2+1]), 2))
		}
		return out, nil

	case oldChannels == 1 && newChannels > 2:
		out := make([]int32, len(samples)*newChannels)
		for i, s := range samples {
			frame := out[i*newChannels : (i+1)*newChannels]
			for ch := range frame {
				frame[ch] = s
			}
		}
		return out, nil

	case oldChannels > 2 && newChannels == 1:
		frames := len(samples) / oldChannels
		out := make([]int32, frames)
		for i := range out {
			var sum int64
			for _, s := range samples[i*oldChannels : (i+1)*oldChannels] {
				sum += int64(s)
			}
			out[i] = int32(floorDiv(sum, int64(oldChannels)))
		}
		return out, nil

	case oldChannels > 2 && newChannels == 2:
		frames := len(samples) / oldChannels
		out := make([]int32, frames*2)
		for i := 0; i < frames; i++ {
			out[i*2] = samples[i*oldChannels]
			out[i*2+1] = samples[i*oldChannels+1]
		}
		return out, nil
	}

	return nil, &ChannelConversionError{Old: oldChannels, New: newChannels}
}

func channelsSupported(oldChannels, newChannels int) bool {
	switch {
	case oldChannels < 1 || newChannels < 1:
		return false
	case oldChannels == newChannels, oldChannels == 1, newChannels == 1:
		return true
	default:
		return newChannels == 2
	}
}

// floorDiv divides rounding toward negative infinity.
// Go's / truncates toward zero, which differs for negative sums.
func floorDiv(a, n int64) int64 {
	q := a / n
	if a%n != 0 && (a < 0) != (n < 0) {
		q--
	}
	return q
}
