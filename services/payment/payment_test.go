package payment

import (
	"context"
	"errors"
	"testing"

	"servicelink/models"
	"servicelink/utils"

	"github.com/stripe/stripe-go/v76"
)

func request(method models.PaymentMethod) models.PaymentRequest {
	return models.PaymentRequest{BookingID: "booking1", ClientID: "client123", Amount: 1200, Method: method}
}

func TestPaymentHandler(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := NewPaymentHandler(nil, "inr")

	t.Run("cash stays pending", func(t *testing.T) {
		t.Parallel()
		p, err := h.ProcessPayment(ctx, request(models.MethodCash))
		if err != nil {
			t.Fatalf("ProcessPayment failed: %v", err)
		}
		if p.Status != models.PaymentPending || p.TransactionID != "" {
			t.Fatalf("expected untransacted pending payment, got %+v", p)
		}
		if p.Currency != "INR" {
			t.Fatalf("expected default currency INR, got %s", p.Currency)
		}
	})

	t.Run("upi completes with a receipt", func(t *testing.T) {
		t.Parallel()
		p, err := h.ProcessPayment(ctx, request(models.MethodUPI))
		if err != nil {
			t.Fatalf("ProcessPayment failed: %v", err)
		}
		if p.Status != models.PaymentCompleted || p.TransactionID == "" {
			t.Fatalf("expected completed payment, got %+v", p)
		}
		if p.ReceiptURL != "/receipt/"+p.TransactionID {
			t.Fatalf("unexpected receipt url %s", p.ReceiptURL)
		}
	})

	t.Run("rejects bad requests", func(t *testing.T) {
		t.Parallel()
		var ve *utils.ValidationError
		if _, err := h.ProcessPayment(ctx, models.PaymentRequest{}); !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(ve.Fields) != 3 {
			t.Fatalf("expected 3 invalid fields, got %v", ve.Fields)
		}
		if _, err := h.ProcessPayment(ctx, request("bitcoin")); !errors.As(err, &ve) {
			t.Fatalf("expected ValidationError for unknown method, got %v", err)
		}
	})
}

func TestStripeProcessor(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	req := request(models.MethodStripe)
	req.Currency = "INR"

	cases := []struct {
		name       string
		intent     *stripe.PaymentIntent
		err        error
		wantStatus models.PaymentStatus
		wantErr    bool
	}{
		{
			name:       "succeeded",
			intent:     &stripe.PaymentIntent{ID: "pi_1", Status: stripe.PaymentIntentStatusSucceeded},
			wantStatus: models.PaymentCompleted,
		},
		{
			name:       "requires action",
			intent:     &stripe.PaymentIntent{ID: "pi_2", Status: stripe.PaymentIntentStatusRequiresAction},
			wantStatus: models.PaymentPending,
		},
		{
			name: "canceled",
			intent: &stripe.PaymentIntent{
				ID:                 "pi_3",
				Status:             stripe.PaymentIntentStatusCanceled,
				CancellationReason: stripe.PaymentIntentCancellationReasonAbandoned,
			},
			wantStatus: models.PaymentFailed,
		},
		{
			name:       "card declined",
			err:        &stripe.Error{Type: stripe.ErrorTypeCard, Msg: "Your card was declined."},
			wantStatus: models.PaymentFailed,
		},
		{
			name:    "api failure",
			err:     &stripe.Error{Type: stripe.ErrorTypeAPI, Msg: "internal"},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var got *stripe.PaymentIntentParams
			p := &StripeProcessor{create: func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
				got = params
				return tc.intent, tc.err
			}}

			pay, err := p.Process(ctx, req)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Process failed: %v", err)
			}
			if pay.Status != tc.wantStatus {
				t.Fatalf("expected %s, got %s", tc.wantStatus, pay.Status)
			}
			if *got.Amount != 120000 || *got.Currency != "inr" {
				t.Fatalf("expected 120000 inr, got %d %s", *got.Amount, *got.Currency)
			}
			if got.Metadata["bookingId"] != "booking1" {
				t.Fatalf("expected booking id in metadata, got %v", got.Metadata)
			}
		})
	}
}
