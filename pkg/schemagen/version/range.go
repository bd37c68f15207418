package version

import (
	"github.com/pkg/errors"
)

// Range is an inclusive version range
type Range struct {
	Lower string
	Upper string
}

// Validate checks that both bounds parse and that Lower is not greater than Upper
func (r Range) Validate() error {
	c, err := Compare(r.Lower, r.Upper)
	if err != nil {
		return err
	}
	if c > 0 {
		return errors.Errorf("lower bound %s is greater than upper bound %s", r.Lower, r.Upper)
	}

	return nil
}

// Contains reports whether Lower <= v <= Upper
func (r Range) Contains(v string) (bool, error) {
	lower, err := Compare(v, r.Lower)
	if err != nil {
		return false, err
	}
	upper, err := Compare(v, r.Upper)
	if err != nil {
		return false, err
	}

	return lower >= 0 && upper <= 0, nil
}

func (r Range) String() string {
	return "[" + r.Lower + ", " + r.Upper + "]"
}
