package release

import (
	"fmt"
	"strings"
)

// Variant selects the version grammar.
type Variant string

const (
	// Binary is the generic grammar embedded into executables.
	Binary Variant = "binary"
	// Deb follows the Debian policy for the version control field.
	Deb Variant = "deb"
	// RPM follows the Fedora package versioning guidelines.
	RPM Variant = "rpm"
)

// Variants lists every supported variant in display order.
func Variants() []Variant {
	return []Variant{Binary, Deb, RPM}
}

// ParseVariant converts user input into a Variant.
func ParseVariant(s string) (Variant, error) {
	switch v := Variant(strings.ToLower(strings.TrimSpace(s))); v {
	case Binary, Deb, RPM:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q (expected one of binary, deb, rpm)", ErrUnknownVariant, s)
	}
}

// String implements pflag.Value.
func (v *Variant) String() string {
	if *v == "" {
		return string(Binary)
	}

	return string(*v)
}

// Set implements pflag.Value.
func (v *Variant) Set(s string) error {
	parsed, err := ParseVariant(s)
	if err != nil {
		return err
	}

	*v = parsed

	return nil
}

// Type implements pflag.Value.
func (v *Variant) Type() string {
	return "variant"
}
