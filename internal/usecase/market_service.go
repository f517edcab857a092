package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/sourcegraph/conc/pool"

	"github.com/chainfoot/nft-fantasy/internal/domain/market"
	"github.com/chainfoot/nft-fantasy/internal/platform/resilience"
)

const marketAvailabilityWorkers = 8

// MarketService reads live marketplace offers for the configured collection.
// Offers are never cached: availability must reflect the chain at request
// time. Concurrent identical requests share one chain round-trip instead.
type MarketService struct {
	chain      ChainGateway
	collection string
	logger     *slog.Logger
	flight     resilience.SingleFlight
}

func NewMarketService(chain ChainGateway, collection string, logger *slog.Logger) *MarketService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MarketService{
		chain:      chain,
		collection: collection,
		logger:     logger,
	}
}

// ListOffers returns purchasable offers in the collection, sold-out offers
// filtered, ordered by offer id. Availability is refreshed per offer; an
// offer whose availability lookup fails is dropped from the listing rather
// than shown with a stale count.
func (s *MarketService) ListOffers(ctx context.Context) ([]market.Offer, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MarketService.ListOffers")
	defer span.End()

	out, err, _ := s.flight.Do("offers", func() (any, error) {
		return s.listOffers(ctx)
	})
	if err != nil {
		return nil, err
	}

	offers, ok := out.([]market.Offer)
	if !ok {
		return nil, fmt.Errorf("unexpected offers payload type %T", out)
	}
	return offers, nil
}

func (s *MarketService) listOffers(ctx context.Context) ([]market.Offer, error) {
	all, err := s.chain.GetOffers(ctx)
	if err != nil {
		return nil, fmt.Errorf("get offers: %w", err)
	}

	candidates := make([]market.Offer, 0, len(all))
	for _, offer := range all {
		// Empty collection config lists every offer the contract holds.
		if s.collection == "" || offer.Collection == s.collection {
			candidates = append(candidates, offer)
		}
	}
	if len(candidates) == 0 {
		return []market.Offer{}, nil
	}

	resolved := make([]*market.Offer, len(candidates))
	workers := pool.New().WithMaxGoroutines(marketAvailabilityWorkers)
	for i := range candidates {
		i := i
		workers.Go(func() {
			offer := candidates[i]
			available, err := s.chain.GetOfferAvailability(ctx, offer.ID)
			if err != nil {
				s.logger.WarnContext(ctx, "offer availability lookup failed",
					"offer_id", offer.ID,
					"error", err,
				)
				return
			}
			if available == 0 {
				return
			}
			offer.AvailableCount = available
			resolved[i] = &offer
		})
	}
	workers.Wait()

	offers := make([]market.Offer, 0, len(candidates))
	for _, offer := range resolved {
		if offer != nil {
			offers = append(offers, *offer)
		}
	}
	sort.Slice(offers, func(i, j int) bool { return offers[i].ID < offers[j].ID })

	return offers, nil
}
