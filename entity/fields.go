package entity

import "net/url"

// Fields is a gateway field set keyed by the exact, case-sensitive protocol names.
// A key that is not present is absent; it is never the same as an empty value.
type Fields map[string]string

// Get returns the value of name and whether it is present.
func (f Fields) Get(name string) (string, bool) {
	value, ok := f[name]
	return value, ok
}

// Set stores value under name, skipping empty values so optional fields stay absent.
func (f Fields) Set(name, value string) {
	if value == "" {
		return
	}
	f[name] = value
}

func (f Fields) Clone() Fields {
	clone := make(Fields, len(f))
	for k, v := range f {
		clone[k] = v
	}
	return clone
}

// Encode returns the application/x-www-form-urlencoded body.
func (f Fields) Encode() string {
	values := make(url.Values, len(f))
	for k, v := range f {
		values.Set(k, v)
	}
	return values.Encode()
}
