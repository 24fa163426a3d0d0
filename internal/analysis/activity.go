package analysis

import (
	"math"
	"strings"

	"github.com/samber/lo"

	"github.com/san-kum/castplay/internal/timeline"
)

// Activity returns the number of output bytes falling in each bucket of
// width seconds, covering [0, duration]. A frame at exactly duration lands
// in the last bucket.
func Activity(frames []timeline.Frame, duration, width float64) []float64 {
	if width <= 0 {
		return nil
	}
	n := int(math.Ceil(duration / width))
	if n == 0 {
		n = 1
	}
	buckets := make([]float64, n)
	for _, f := range frames {
		i := int(f.Time / width)
		i = min(max(i, 0), n-1)
		buckets[i] += float64(len(f.Data))
	}
	return buckets
}

// Peak returns the index and value of the busiest bucket.
func Peak(buckets []float64) (int, float64) {
	if len(buckets) == 0 {
		return -1, 0
	}
	i := 0
	for j, v := range buckets {
		if v > buckets[i] {
			i = j
		}
	}
	return i, buckets[i]
}

var sparks = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders values as one line of block characters, resampled to
// at most width cells by summing neighbours.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if len(values) > width {
		chunk := int(math.Ceil(float64(len(values)) / float64(width)))
		values = lo.Map(lo.Chunk(values, chunk), func(c []float64, _ int) float64 {
			return lo.Sum(c)
		})
	}

	top := lo.Max(values)
	var sb strings.Builder
	for _, v := range values {
		if top <= 0 || v <= 0 {
			sb.WriteRune(' ')
			continue
		}
		idx := int(v / top * float64(len(sparks)-1))
		sb.WriteRune(sparks[idx])
	}
	return sb.String()
}
