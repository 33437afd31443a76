package api

import (
	"encoding/json/v2"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// Loan timestamp layouts accepted on the wire, tried in order. The admin
// client historically sent "2006-01-02 15:04" on create and ISO 8601 on
// update; both are accepted everywhere now. Responses emit RFC 3339.
var loanTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// FlexTime is a timestamp that unmarshals from any accepted layout.
// It always marshals to RFC 3339 for consistency.
type FlexTime struct {
	time.Time
}

// UnmarshalJSON handles flexible timestamp parsing from JSON.
func (ft *FlexTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string, got %s", string(data))
	}
	for _, layout := range loanTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ft.Time = t
			return nil
		}
	}
	return fmt.Errorf("cannot parse timestamp %q: use \"2006-01-02 15:04\" or ISO 8601", s)
}

// MarshalJSON outputs the timestamp in RFC 3339 format.
func (ft FlexTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(ft.Format(time.RFC3339))
}

// Schema tells huma to accept a plain string here; parsing is done by
// UnmarshalJSON, not by schema validation.
func (ft FlexTime) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		Type:        huma.TypeString,
		Description: `Timestamp in "2006-01-02 15:04" or ISO 8601 format`,
	}
}

// ToTime returns the underlying time.Time value.
func (ft FlexTime) ToTime() time.Time {
	return ft.Time
}

// TimePtr returns a *time.Time, or nil for a nil receiver.
func (ft *FlexTime) TimePtr() *time.Time {
	if ft == nil {
		return nil
	}
	t := ft.Time
	return &t
}

// FlexInt is an integer that also unmarshals from a numeric string
// ("2" becomes 2). Non-numeric input is a parse error, not a crash.
type FlexInt int

// UnmarshalJSON handles flexible integer parsing from JSON.
func (fi *FlexInt) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		var unquoted string
		if err := json.Unmarshal(data, &unquoted); err != nil {
			return err
		}
		s = strings.TrimSpace(unquoted)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("cannot parse %s as an integer", string(data))
	}
	*fi = FlexInt(n)
	return nil
}

// MarshalJSON outputs a plain JSON number.
func (fi FlexInt) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(fi))
}

// Schema allows either a number or a numeric string on the wire.
func (fi FlexInt) Schema(_ huma.Registry) *huma.Schema {
	return &huma.Schema{
		OneOf: []*huma.Schema{
			{Type: huma.TypeInteger},
			{Type: huma.TypeString},
		},
		Description: "Integer, or a string containing one",
	}
}

// Int returns the underlying int value.
func (fi FlexInt) Int() int {
	return int(fi)
}

// IntPtr returns a *int, or nil for a nil receiver.
func (fi *FlexInt) IntPtr() *int {
	if fi == nil {
		return nil
	}
	n := int(*fi)
	return &n
}
