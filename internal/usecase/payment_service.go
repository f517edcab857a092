package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"strings"
	"time"
)

// PaymentConfig bounds the transaction confirmation loop.
type PaymentConfig struct {
	// ReceiverAddress is the treasury wallet every submission fee must pay.
	ReceiverAddress string
	PollInterval    time.Duration
	MaxAttempts     int
}

func (c PaymentConfig) normalized() PaymentConfig {
	if c.PollInterval <= 0 {
		c.PollInterval = 2 * time.Second
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 30
	}
	return c
}

// PaymentService confirms that a submission fee transaction landed on chain
// and pays the right receiver the right amount.
type PaymentService struct {
	chain  ChainGateway
	cfg    PaymentConfig
	logger *slog.Logger

	// sleep is swapped in tests so confirmation loops run instantly.
	sleep func(ctx context.Context, d time.Duration) error
}

func NewPaymentService(chain ChainGateway, cfg PaymentConfig, logger *slog.Logger) *PaymentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PaymentService{
		chain:  chain,
		cfg:    cfg.normalized(),
		logger: logger,
		sleep:  sleepContext,
	}
}

// Confirm polls the chain until the transaction reaches a terminal status or
// the attempt budget runs out. Fetch errors and pending statuses both consume
// an attempt; unknown hashes are retried because the chain API lags a few
// seconds behind broadcast.
func (s *PaymentService) Confirm(ctx context.Context, txHash string, expectedAmount *big.Int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.PaymentService.Confirm")
	defer span.End()

	txHash = strings.TrimSpace(txHash)
	if txHash == "" {
		return fmt.Errorf("%w: transaction hash is required", ErrInvalidInput)
	}
	if expectedAmount == nil || expectedAmount.Sign() <= 0 {
		return fmt.Errorf("%w: expected amount must be positive", ErrInvalidInput)
	}

	var lastErr error
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		tx, err := s.chain.GetTransaction(ctx, txHash)
		switch {
		case err != nil:
			lastErr = err
			s.logger.WarnContext(ctx, "transaction fetch failed, retrying",
				"tx_hash", txHash,
				"attempt", attempt,
				"error", err,
			)
		case tx.Status == TxStatusSuccess || tx.Status == TxStatusExecuted:
			return s.verifyTransfer(tx, expectedAmount)
		case tx.Status == TxStatusPending:
			lastErr = fmt.Errorf("transaction still pending after %d attempts", attempt)
		default:
			return fmt.Errorf("%w: tx=%s status=%s", ErrPaymentFailed, txHash, tx.Status)
		}

		if attempt == s.cfg.MaxAttempts {
			break
		}
		if err := s.sleep(ctx, s.cfg.PollInterval); err != nil {
			return err
		}
	}

	return fmt.Errorf("%w: tx=%s: %v", ErrPaymentNotConfirmed, txHash, lastErr)
}

func (s *PaymentService) verifyTransfer(tx ChainTransaction, expectedAmount *big.Int) error {
	if !strings.EqualFold(tx.Receiver, s.cfg.ReceiverAddress) {
		return fmt.Errorf("%w: tx=%s paid receiver=%s", ErrPaymentMismatch, tx.Hash, tx.Receiver)
	}
	if tx.Value == nil || tx.Value.Cmp(expectedAmount) < 0 {
		return fmt.Errorf("%w: tx=%s value=%s expected=%s", ErrPaymentMismatch, tx.Hash, bigIntString(tx.Value), expectedAmount.String())
	}
	return nil
}

func bigIntString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
