package market

import "math/big"

// Offer is a marketplace contract listing, decoded once at the chain gateway
// boundary. Offers are a live projection and are never persisted locally.
type Offer struct {
	ID             uint64
	Creator        string
	Collection     string
	Token          string
	Price          *big.Int
	AvailableCount uint32
}
