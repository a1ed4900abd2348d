package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"

	"course-agent/dto"
	"course-agent/entities"
	"course-agent/pkg/api"
)

// PaymentService drives one checkout attempt per call. Each payment
// method maps to a distinct backend endpoint; the client never mutates
// an intent beyond re-fetching its status.
type PaymentService struct {
	api          *api.Client
	pollInterval time.Duration
}

type PaymentOption func(*PaymentService)

// WithPollInterval overrides the initial WaitForStatus poll interval.
func WithPollInterval(d time.Duration) PaymentOption {
	return func(s *PaymentService) {
		if d > 0 {
			s.pollInterval = d
		}
	}
}

func NewPaymentService(client *api.Client, opts ...PaymentOption) *PaymentService {
	s := &PaymentService{api: client, pollInterval: 2 * time.Second}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PayWithCard confirms instantly backend-side (Stripe).
func (s *PaymentService) PayWithCard(ctx context.Context, req dto.CardPaymentRequest) (*entities.PaymentIntent, error) {
	var intent entities.PaymentIntent
	if err := s.api.Post(ctx, "/payments/stripe/intent", req, &intent); err != nil {
		return nil, fmt.Errorf("card payment: %w", err)
	}
	return &intent, nil
}

// PayWithMobileMoney starts a provider push; the intent stays pending
// until the payer approves on their handset.
func (s *PaymentService) PayWithMobileMoney(ctx context.Context, req dto.MobileMoneyRequest) (*entities.PaymentIntent, error) {
	var intent entities.PaymentIntent
	if err := s.api.Post(ctx, "/payments/mobile-money/initiate", req, &intent); err != nil {
		return nil, fmt.Errorf("mobile money payment: %w", err)
	}
	return &intent, nil
}

// PayWithBankTransfer returns manual transfer instructions in the
// intent; confirmation happens out of band.
func (s *PaymentService) PayWithBankTransfer(ctx context.Context, req dto.BankTransferRequest) (*entities.PaymentIntent, error) {
	var intent entities.PaymentIntent
	if err := s.api.Post(ctx, "/payments/bank-transfer/initiate", req, &intent); err != nil {
		return nil, fmt.Errorf("bank transfer: %w", err)
	}
	return &intent, nil
}

// PayWithCrypto returns the deposit address and amount to send.
func (s *PaymentService) PayWithCrypto(ctx context.Context, req dto.CryptoPaymentRequest) (*entities.CryptoPayment, error) {
	var payment entities.CryptoPayment
	if err := s.api.Post(ctx, "/payments/crypto/create", req, &payment); err != nil {
		return nil, fmt.Errorf("crypto payment: %w", err)
	}
	return &payment, nil
}

// CheckStatus is one on-demand poll, the "check status" button.
func (s *PaymentService) CheckStatus(ctx context.Context, paymentID string) (*entities.PaymentIntent, error) {
	var intent entities.PaymentIntent
	if err := s.api.Get(ctx, "/payments/"+paymentID+"/status", &intent); err != nil {
		return nil, fmt.Errorf("check payment status: %w", err)
	}
	return &intent, nil
}

var errPaymentPending = errors.New("payment not settled yet")

// WaitForStatus polls until the intent reaches a terminal status or ctx
// is cancelled. It only runs when explicitly invoked; nothing in this
// package polls in the background. A request error stops the wait
// immediately rather than being retried.
func (s *PaymentService) WaitForStatus(ctx context.Context, paymentID string) (*entities.PaymentIntent, error) {
	operation := func() (*entities.PaymentIntent, error) {
		intent, err := s.CheckStatus(ctx, paymentID)
		if err != nil {
			return nil, backoff.Permanent(err)
		}
		if !intent.Status.Terminal() {
			zerolog.Ctx(ctx).Debug().
				Str("payment_id", paymentID).
				Str("status", intent.Status.String()).
				Msg("payment still pending")
			return nil, errPaymentPending
		}
		return intent, nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.pollInterval
	bo.MaxInterval = 15 * time.Second

	intent, err := backoff.Retry(ctx, operation, backoff.WithBackOff(bo))
	if err != nil {
		return nil, fmt.Errorf("wait for payment: %w", err)
	}
	return intent, nil
}
