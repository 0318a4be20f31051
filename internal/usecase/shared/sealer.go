package shared

// Sealer encrypts values that must not be stored in clear text, such as refund
// bank account numbers.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}
