package tui

import "strings"

// RingBuffer is a fixed-capacity float64 history. Once full, each Push
// evicts the oldest sample. Used for the CPU and memory charts.
type RingBuffer struct {
	data  []float64
	start int
	count int
}

// NewRingBuffer creates a buffer holding up to capacity samples.
// A capacity below 1 is raised to 1.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer{data: make([]float64, capacity)}
}

// Push appends a sample, evicting the oldest when full.
func (r *RingBuffer) Push(v float64) {
	if r.count < len(r.data) {
		r.data[(r.start+r.count)%len(r.data)] = v
		r.count++
		return
	}
	r.data[r.start] = v
	r.start = (r.start + 1) % len(r.data)
}

// Len returns the number of stored samples.
func (r *RingBuffer) Len() int { return r.count }

// Cap returns the buffer capacity.
func (r *RingBuffer) Cap() int { return len(r.data) }

// Last returns the most recent sample, or 0 when empty.
func (r *RingBuffer) Last() float64 {
	if r.count == 0 {
		return 0
	}
	return r.data[(r.start+r.count-1)%len(r.data)]
}

// Slice returns the samples in insertion order.
func (r *RingBuffer) Slice() []float64 {
	out := make([]float64, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.data[(r.start+i)%len(r.data)]
	}
	return out
}

// Resize changes the capacity, keeping the most recent samples that fit.
func (r *RingBuffer) Resize(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	old := r.Slice()
	if len(old) > capacity {
		old = old[len(old)-capacity:]
	}
	r.data = make([]float64, capacity)
	r.start = 0
	r.count = copy(r.data, old)
}

// Reset discards all samples.
func (r *RingBuffer) Reset() {
	r.start = 0
	r.count = 0
}

// sparkBlocks maps a normalized sample to one of eight block heights.
var sparkBlocks = []rune("▁▂▃▄▅▆▇█")

// RenderSparkline renders values in [0, 100] as a one-line block chart,
// right-aligned in width cells. Values outside the range are clamped.
func RenderSparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	var b strings.Builder
	for i := len(values); i < width; i++ {
		b.WriteRune(' ')
	}
	for _, v := range values {
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		idx := int(v / 100 * float64(len(sparkBlocks)-1))
		b.WriteRune(sparkBlocks[idx])
	}
	return b.String()
}

// RenderBrailleChart renders values in [0, 100] as a multi-row braille
// chart, each cell packing two columns of four dots. Rows are returned
// top-first, ready to be joined with newlines.
func RenderBrailleChart(values []float64, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}

	cols := width * 2
	if len(values) > cols {
		values = values[len(values)-cols:]
	}

	// Dot heights per column, 0..height*4.
	levels := make([]int, cols)
	offset := cols - len(values)
	for i, v := range values {
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		levels[offset+i] = int(v / 100 * float64(height*4))
	}

	// Braille dot bits by (row within cell, column within cell).
	dotBits := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	rows := make([]string, height)
	for row := 0; row < height; row++ {
		var b strings.Builder
		for cell := 0; cell < width; cell++ {
			bits := 0
			for sub := 0; sub < 2; sub++ {
				level := levels[cell*2+sub]
				for dot := 0; dot < 4; dot++ {
					// Dot height measured from the chart bottom.
					dotHeight := (height-1-row)*4 + (4 - dot)
					if level >= dotHeight {
						bits |= dotBits[dot][sub]
					}
				}
			}
			b.WriteRune(rune(0x2800 + bits))
		}
		rows[row] = b.String()
	}
	return rows
}
