// ABOUTME: Version and product identification constants
// ABOUTME: Reported by the CLIs and written to logs at startup
package version

const (
	// Version is the release version
	Version = "0.3.0"

	// Product is the product name
	Product = "Sendspin PCM"

	// Manufacturer identifies who ships the tools
	Manufacturer = "Sendspin"
)

// String returns "Product Version"
func String() string {
	return Product + " " + Version
}
