package lambdapol

import (
	"fmt"
	"strconv"

	"github.com/decibelcooper/lambdapol/binning"
)

// FloatArrayFlags collects a repeated float flag, e.g. -vtxedge -10
// -vtxedge 0 -vtxedge 10. The first occurrence replaces the defaults.
type FloatArrayFlags struct {
	Array   []float64
	beenSet bool
}

func (f *FloatArrayFlags) Set(valueStr string) error {
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return err
	}

	if !f.beenSet {
		f.beenSet = true
		f.Array = nil
	}

	f.Array = append(f.Array, value)
	return nil
}

func (f *FloatArrayFlags) String() string {
	return fmt.Sprint(f.Array)
}

// IsSet reports whether the flag appeared on the command line.
func (f *FloatArrayFlags) IsSet() bool { return f.beenSet }

// Override replaces spec with the collected bin edges when the flag was
// given.
func (f *FloatArrayFlags) Override(spec *binning.AxisSpec) error {
	if !f.beenSet {
		return nil
	}
	next := binning.AxisSpec{Edges: append([]float64(nil), f.Array...)}
	if _, err := next.Axis(); err != nil {
		return err
	}
	*spec = next
	return nil
}
