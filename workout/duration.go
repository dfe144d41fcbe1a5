package workout

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Duration is a workout duration in minutes as entered at the boundary. The
// raw value is kept lossless: JSON numbers and strings both unmarshal, and a
// value that fails to parse still round-trips unchanged. Aggregations decide
// what to do with unparsable values; the ledger never rejects them.
type Duration struct {
	raw string
}

// Minutes creates a Duration from a known-good minute count.
func Minutes(n int) Duration {
	return Duration{raw: strconv.Itoa(n)}
}

// ParseDuration wraps a free-form boundary value without validating it.
func ParseDuration(raw string) Duration {
	return Duration{raw: strings.TrimSpace(raw)}
}

// Minutes returns the parsed minute count. ok is false when the raw value is
// not a non-negative integer; such entries contribute zero to aggregates.
func (d Duration) Minutes() (int, bool) {
	n, err := strconv.Atoi(d.raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// String returns the raw value as entered.
func (d Duration) String() string {
	return d.raw
}

// MarshalJSON emits a JSON number when the raw value parses, otherwise the
// raw string, matching what was originally logged.
func (d Duration) MarshalJSON() ([]byte, error) {
	if n, ok := d.Minutes(); ok {
		return json.Marshal(n)
	}
	return json.Marshal(d.raw)
}

// UnmarshalJSON accepts a JSON number or string.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		d.raw = strings.TrimSpace(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	d.raw = n.String()
	return nil
}
