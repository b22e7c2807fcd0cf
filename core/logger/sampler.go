package logger

import (
	"strconv"
	"strings"
	"sync/atomic"
)

// ratioSampler admits num out of every den events, deterministically by
// position in the stream. A zero ratio admits everything.
type ratioSampler struct {
	// packed as num<<32 | den so Set and Allow stay lock-free
	ratio atomic.Uint64
	seq   atomic.Uint64
}

func newRatioSampler(num, den int) *ratioSampler {
	s := &ratioSampler{}
	s.Set(num, den)
	return s
}

// Set replaces the sampling ratio. Non-positive values disable sampling.
func (s *ratioSampler) Set(num, den int) {
	if num <= 0 || den <= 0 {
		s.ratio.Store(0)
		return
	}
	if num > den {
		num = den
	}
	s.ratio.Store(uint64(num)<<32 | uint64(uint32(den)))
	s.seq.Store(0)
}

// Allow reports whether the next event passes the sampling gate.
func (s *ratioSampler) Allow() bool {
	packed := s.ratio.Load()
	if packed == 0 {
		return true
	}
	num := packed >> 32
	den := packed & 0xffffffff
	n := s.seq.Add(1)
	return (n-1)%den < num
}

// parseRatioSpec parses "num/den" or a bare "N" (meaning 1/N).
// Malformed input yields the zero ratio, i.e. no sampling.
func parseRatioSpec(spec string) (int, int) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return 0, 0
	}
	if num, den, found := strings.Cut(spec, "/"); found {
		n, errN := strconv.Atoi(strings.TrimSpace(num))
		d, errD := strconv.Atoi(strings.TrimSpace(den))
		if errN == nil && errD == nil {
			return n, d
		}
		return 0, 0
	}
	if n, err := strconv.Atoi(spec); err == nil && n > 0 {
		return 1, n
	}
	return 0, 0
}
