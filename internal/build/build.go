// Package build holds build-time information.
package build

// These values default to development placeholders and are overwritten by
// linker flags, for example -X go.trai.ch/muleboot/internal/build.Version=1.2.3.
var (
	// Version is the application version.
	Version = "dev"
	// Commit is the source revision the binary was built from.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// String returns the version followed by the commit and build date when known.
func String() string {
	s := Version
	if Commit != "none" {
		s += " (" + Commit
		if Date != "unknown" {
			s += ", " + Date
		}
		s += ")"
	}
	return s
}
