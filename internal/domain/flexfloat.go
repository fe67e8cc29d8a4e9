package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// FlexFloat is a float64 that also accepts quoted numerics on the wire.
// PZEM firmware builds differ on whether they send `"voltage": 230.1` or
// `"voltage": "230.1"`; both decode to the same value here.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return fmt.Errorf("numeric value required, got null")
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid numeric value %q", s)
	}
	*f = FlexFloat(v)
	return nil
}

func (f FlexFloat) Float64() float64 { return float64(f) }
