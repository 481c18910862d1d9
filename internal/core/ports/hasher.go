package ports

// Hasher computes content fingerprints.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// Sum returns the hex fingerprint of data.
	Sum(data []byte) string
}
