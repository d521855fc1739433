package release

import (
	"strconv"
	"strings"
)

// Request carries everything needed to render a version string.
type Request struct {
	// Variant selects the grammar.
	Variant Variant
	// Version is the X.Y.Z part.
	Version string
	// Offering is the packaging tier.
	Offering Offering
	// Distance is the commit distance; zero selects the release templates.
	Distance int
	// ShortHash is the abbreviated commit identifier for development builds.
	ShortHash string
	// Suffix is an optional custom tag appended after the offering.
	Suffix string
}

// Format renders the request according to its variant.
//
//	binary  release: VERSION-OFFERING[-SUFFIX]
//	        dev:     VERSION+DISTANCE~SHORTHASH-OFFERING[-SUFFIX]
//	deb     release: VERSION-OFFERING[-SUFFIX]-1
//	        dev:     VERSION+DISTANCE~SHORTHASH-OFFERING[-SUFFIX]-1
//	rpm     release: VERSION-1.OFFERING[.SUFFIX]
//	        dev:     VERSION-0.DISTANCE.SHORTHASH.OFFERING[.SUFFIX]
//
// Unknown variants render with the binary grammar.
func Format(req Request) string {
	var b strings.Builder

	if req.Variant == RPM {
		b.WriteString(req.Version)

		if req.Distance == 0 {
			b.WriteString("-1.")
		} else {
			b.WriteString("-0.")
			b.WriteString(strconv.Itoa(req.Distance))
			b.WriteByte('.')
			b.WriteString(req.ShortHash)
			b.WriteByte('.')
		}

		b.WriteString(string(req.Offering))
		appendSuffix(&b, '.', req.Suffix)

		return b.String()
	}

	b.WriteString(req.Version)

	if req.Distance != 0 {
		b.WriteByte('+')
		b.WriteString(strconv.Itoa(req.Distance))
		b.WriteByte('~')
		b.WriteString(req.ShortHash)
	}

	b.WriteByte('-')
	b.WriteString(string(req.Offering))
	appendSuffix(&b, '-', req.Suffix)

	if req.Variant == Deb {
		b.WriteString("-1")
	}

	return b.String()
}

// RequestFor builds a format request from a resolution result.
// Release results never carry a distance or short hash.
func RequestFor(resolved *Resolved, variant Variant, offering Offering, suffix string) Request {
	req := Request{
		Variant:  variant,
		Version:  resolved.Version.String(),
		Offering: offering,
		Suffix:   suffix,
	}

	if !resolved.IsRelease() {
		req.Distance = resolved.Distance
		req.ShortHash = resolved.ShortHash
	}

	return req
}

func appendSuffix(b *strings.Builder, sep byte, suffix string) {
	if suffix == "" {
		return
	}

	b.WriteByte(sep)
	b.WriteString(suffix)
}
