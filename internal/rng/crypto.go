package rng

import (
	"crypto/rand"
	"math/big"
)

// Crypto draws from crypto/rand. The zero value is ready to use.
type Crypto struct{}

// Intn returns a uniform random int in [0, n)
// Panics if the underlying source fails
func (Crypto) Intn(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic(err)
	}

	return int(v.Int64())
}
