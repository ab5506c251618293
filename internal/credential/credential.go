// Package credential provides typed optional API credentials.
//
// A missing credential is a normal condition, not an error: fetchers check
// Available and fall back to sample data or skip their upstream entirely.
package credential

// Credential is an optional secret value. The zero value is absent.
type Credential struct {
	value string
}

// New wraps a raw credential value. An empty string yields an absent credential.
func New(value string) Credential {
	return Credential{value: value}
}

// Available reports whether the credential was provided.
func (c Credential) Available() bool {
	return c.value != ""
}

// Value returns the raw credential for use in requests.
func (c Credential) Value() string {
	return c.value
}

// String returns a redacted form so credentials never reach logs verbatim.
func (c Credential) String() string {
	if !c.Available() {
		return "(unset)"
	}
	return "(redacted)"
}

// PairAvailable reports whether both halves of an id/secret pair are present.
func PairAvailable(id, secret Credential) bool {
	return id.Available() && secret.Available()
}
