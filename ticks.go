package lambdapol

import (
	"math"
	"strconv"

	"gonum.org/v1/plot"
)

// PreciseTicks labels an axis with round values whose printed precision
// follows the tick spacing, so that narrow ranges such as an invariant
// mass window keep distinct labels.
type PreciseTicks struct {
	NSuggestedTicks int
}

func (t PreciseTicks) Ticks(min, max float64) []plot.Tick {
	if t.NSuggestedTicks == 0 {
		t.NSuggestedTicks = 4
	}
	if max <= min {
		panic("illegal range")
	}

	tens := math.Pow10(int(math.Floor(math.Log10(max - min))))
	n := (max - min) / tens
	for n < float64(t.NSuggestedTicks)-1 {
		tens /= 10
		n = (max - min) / tens
	}

	mult := int(n / float64(t.NSuggestedTicks-1))
	switch mult {
	case 7:
		mult = 6
	case 9:
		mult = 8
	}
	delta := float64(mult) * tens

	ticks := majorTicks(min, max, delta)
	return append(ticks, minorTicks(min, max, minorDelta(delta, mult), ticks)...)
}

// majorTicks returns the labelled ticks every delta within [min, max].
func majorTicks(min, max, delta float64) []plot.Tick {
	var values []float64
	val := math.Floor(min/delta) * delta
	for ; val <= max; val += delta {
		if val >= min {
			values = append(values, val)
		}
	}

	prec := int(math.Ceil(math.Log10(val)) - math.Floor(math.Log10(delta)))
	ticks := make([]plot.Tick, 0, len(values))
	for _, v := range values {
		v = round(v, prec)
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', -1, 64)})
	}
	return ticks
}

func minorDelta(major float64, mult int) float64 {
	switch mult {
	case 3, 6:
		return major / 3
	case 5:
		return major / 5
	}
	return major / 2
}

func minorTicks(min, max, delta float64, major []plot.Tick) []plot.Tick {
	var ticks []plot.Tick
	for val := math.Floor(min/delta) * delta; val <= max; val += delta {
		if val < min || hasTick(major, val) {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: val})
	}
	return ticks
}

func hasTick(ticks []plot.Tick, v float64) bool {
	for _, t := range ticks {
		if t.Value == v {
			return true
		}
	}
	return false
}

func round(x float64, prec int) float64 {
	if x == 0 {
		// no negative zero
		return 0
	}
	if prec >= 0 && x == math.Trunc(x) {
		return x
	}
	pow := math.Pow10(prec)
	intermed := x * pow
	if math.IsInf(intermed, 0) {
		return x
	}
	if x < 0 {
		x = math.Ceil(intermed - 0.5)
	} else {
		x = math.Floor(intermed + 0.5)
	}
	if x == 0 {
		return 0
	}
	return x / pow
}

// PiTicks labels an angle axis in units of pi/Divisions, with a minor
// tick halfway between labels.
type PiTicks struct {
	Divisions int
}

func (t PiTicks) Ticks(min, max float64) []plot.Tick {
	if t.Divisions <= 0 {
		t.Divisions = 2
	}
	if max <= min {
		panic("illegal range")
	}

	step := math.Pi / float64(t.Divisions)
	var ticks []plot.Tick
	for k := math.Ceil(min / step * 2); k*step/2 <= max; k++ {
		v := k * step / 2
		if int(k)%2 != 0 {
			ticks = append(ticks, plot.Tick{Value: v})
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: piLabel(int(k)/2, t.Divisions)})
	}
	return ticks
}

// piLabel formats num*pi/den in lowest terms.
func piLabel(num, den int) string {
	if num == 0 {
		return "0"
	}
	g := gcd(abs(num), den)
	num, den = num/g, den/g

	s := "π"
	switch num {
	case 1:
	case -1:
		s = "-π"
	default:
		s = strconv.Itoa(num) + "π"
	}
	if den != 1 {
		s += "/" + strconv.Itoa(den)
	}
	return s
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
