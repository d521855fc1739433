package release

// Offering is the packaging tier of the product.
type Offering string

const (
	// Community is the default offering.
	Community Offering = "community"
	// Enterprise is selected with --enterprise.
	Enterprise Offering = "enterprise"
)

// OfferingFor maps the enterprise switch to an offering.
func OfferingFor(enterprise bool) Offering {
	if enterprise {
		return Enterprise
	}

	return Community
}
