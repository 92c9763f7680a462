package domain

import (
	"testing"
)

// FuzzParseComponentID checks that parsing never panics and that any accepted
// input round-trips through String.
func FuzzParseComponentID(f *testing.F) {
	f.Add("")
	f.Add("1")
	f.Add("9223372036854775807")
	f.Add("9223372036854775808")
	f.Add("-1")
	f.Add("'; DROP TABLE components;--")
	f.Add(string([]byte{0x00, 0x01, 0x02}))

	f.Fuzz(func(t *testing.T, input string) {
		id, err := ParseComponentID(input)
		if err != nil {
			return
		}
		if id < 1 {
			t.Errorf("accepted non-positive id %d from %q", id, input)
		}
		if id.String() != input {
			t.Errorf("round trip changed %q to %q", input, id.String())
		}
	})
}
