package signer

// Signer interface for signing listing snapshots
type Signer interface {
	// SignDetached creates an armored detached signature (<snapshot>.asc)
	SignDetached(data []byte) ([]byte, error)

	// GetPublicKey returns the public key
	GetPublicKey() ([]byte, error)
}

// Verifier interface for checking snapshot signatures
type Verifier interface {
	// VerifyDetached checks an armored detached signature over data and
	// returns a description of the signing key
	VerifyDetached(data, signature []byte) (string, error)
}
