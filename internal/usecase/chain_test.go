package usecase

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/chainfoot/nft-fantasy/internal/domain/market"
)

type txResponse struct {
	tx  ChainTransaction
	err error
}

// fakeChain scripts chain responses per hash: responses are consumed in
// order and the last one repeats.
type fakeChain struct {
	mu          sync.Mutex
	txResponses map[string][]txResponse
	txCalls     int

	balance    *big.Int
	balanceErr error

	offers          []market.Offer
	offersErr       error
	availability    map[uint64]uint32
	availabilityErr map[uint64]error
}

func (f *fakeChain) GetTransaction(_ context.Context, hash string) (ChainTransaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.txCalls++
	queue := f.txResponses[hash]
	if len(queue) == 0 {
		return ChainTransaction{}, fmt.Errorf("%w: tx=%s", ErrNotFound, hash)
	}
	resp := queue[0]
	if len(queue) > 1 {
		f.txResponses[hash] = queue[1:]
	}
	return resp.tx, resp.err
}

func (f *fakeChain) GetAccountBalance(_ context.Context, _ string) (*big.Int, error) {
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	if f.balance == nil {
		return big.NewInt(0), nil
	}
	return new(big.Int).Set(f.balance), nil
}

func (f *fakeChain) GetOffers(_ context.Context) ([]market.Offer, error) {
	if f.offersErr != nil {
		return nil, f.offersErr
	}
	return f.offers, nil
}

func (f *fakeChain) GetOfferAvailability(_ context.Context, offerID uint64) (uint32, error) {
	if err := f.availabilityErr[offerID]; err != nil {
		return 0, err
	}
	return f.availability[offerID], nil
}

func confirmedTx(hash, sender, receiver string, value int64, status string) ChainTransaction {
	return ChainTransaction{
		Hash:     hash,
		Sender:   sender,
		Receiver: receiver,
		Value:    big.NewInt(value),
		Status:   status,
	}
}
