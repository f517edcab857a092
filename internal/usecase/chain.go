package usecase

import (
	"context"
	"math/big"

	"github.com/chainfoot/nft-fantasy/internal/domain/market"
)

// Transaction statuses reported by the chain API. Anything outside this set
// is treated as a terminal failure.
const (
	TxStatusPending  = "pending"
	TxStatusSuccess  = "success"
	TxStatusExecuted = "executed"
	TxStatusFail     = "fail"
	TxStatusInvalid  = "invalid"
)

// ChainTransaction is the slice of a chain transaction the payment checks
// need: who paid whom, how much, and where the transaction stands.
type ChainTransaction struct {
	Hash     string
	Sender   string
	Receiver string
	Value    *big.Int
	Status   string
}

// ChainGateway is the outbound port to the blockchain API. Implementations
// live under external/ and must translate transport failures into
// ErrDependencyUnavailable-wrapped errors.
type ChainGateway interface {
	// GetTransaction fetches a transaction by hash. Returns ErrNotFound when
	// the chain API does not know the hash yet.
	GetTransaction(ctx context.Context, hash string) (ChainTransaction, error)
	// GetAccountBalance returns the spendable native balance of an address.
	GetAccountBalance(ctx context.Context, address string) (*big.Int, error)
	// GetOffers queries the marketplace contract for all live offers in the
	// configured collection.
	GetOffers(ctx context.Context) ([]market.Offer, error)
	// GetOfferAvailability returns how many editions of one offer remain.
	GetOfferAvailability(ctx context.Context, offerID uint64) (uint32, error)
}
