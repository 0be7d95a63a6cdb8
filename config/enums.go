package config

// Specification of requested output shape.
// ENUM(page, fragment)
type OutputFmt int

func (o OutputFmt) Ext() string {
	return ".html"
}

// Standalone reports whether the output is a complete page rather than an
// embeddable fragment.
func (o OutputFmt) Standalone() bool {
	return o == OutputFmtPage
}
