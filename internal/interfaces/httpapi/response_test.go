package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/chainfoot/nft-fantasy/internal/usecase"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"invalid input", fmt.Errorf("%w: bad", usecase.ErrInvalidInput), http.StatusBadRequest, "invalidInput"},
		{"not found", fmt.Errorf("%w: missing", usecase.ErrNotFound), http.StatusNotFound, "notFound"},
		{"unauthorized", fmt.Errorf("%w: nope", usecase.ErrUnauthorized), http.StatusUnauthorized, "unauthorized"},
		{"payment failed", fmt.Errorf("%w: tx", usecase.ErrPaymentFailed), http.StatusPaymentRequired, "paymentFailed"},
		{"payment mismatch", fmt.Errorf("%w: tx", usecase.ErrPaymentMismatch), http.StatusPaymentRequired, "paymentMismatch"},
		{"insufficient funds", fmt.Errorf("%w: 0", usecase.ErrInsufficientFunds), http.StatusPaymentRequired, "insufficientFunds"},
		{"payment not confirmed", fmt.Errorf("%w: tx", usecase.ErrPaymentNotConfirmed), http.StatusRequestTimeout, "paymentNotConfirmed"},
		{"dependency unavailable", fmt.Errorf("%w: down", usecase.ErrDependencyUnavailable), http.StatusServiceUnavailable, "dependencyUnavailable"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internalError"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := mapError(tc.err)
			if mapped.HTTPStatus != tc.wantStatus {
				t.Fatalf("expected status %d, got %d", tc.wantStatus, mapped.HTTPStatus)
			}
			if mapped.Reason != tc.wantReason {
				t.Fatalf("expected reason %s, got %s", tc.wantReason, mapped.Reason)
			}
		})
	}
}
