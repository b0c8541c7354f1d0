package audio

import (
	"math"
	"sync/atomic"
)

// RMS нормированная громкость блока сэмплов в диапазоне [0, 1]
func RMS(samples []int16) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		v := float64(s) / math.MaxInt16
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// Meter последнее измеренное значение уровня для индикатора
type Meter struct {
	bits atomic.Uint64
}

func (m *Meter) Observe(samples []int16) {
	m.bits.Store(math.Float64bits(RMS(samples)))
}

func (m *Meter) Level() float64 {
	return math.Float64frombits(m.bits.Load())
}

func (m *Meter) Reset() {
	m.bits.Store(0)
}
