package payment

import (
	"context"
	"errors"
	"math"
	"strings"

	"servicelink/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

// StripeProcessor creates a PaymentIntent per request. The booking id travels in the
// intent metadata.
type StripeProcessor struct {
	// create defaults to paymentintent.New; tests replace it.
	create func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
}

// NewStripeProcessor sets the global API key and returns the processor.
func NewStripeProcessor(key string) *StripeProcessor {
	stripe.Key = key
	return &StripeProcessor{create: paymentintent.New}
}

func minorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func (p *StripeProcessor) Process(ctx context.Context, req models.PaymentRequest) (*models.Payment, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(minorUnits(req.Amount)),
		Currency: stripe.String(strings.ToLower(req.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata("bookingId", req.BookingID)
	params.AddMetadata("clientId", req.ClientID)

	pay := newPayment(req)
	intent, err := p.create(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			pay.Status = models.PaymentFailed
			pay.FailureReason = stripeErr.Msg
			return pay, nil
		}
		return nil, err
	}

	pay.TransactionID = intent.ID
	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded:
		pay.Status = models.PaymentCompleted
	case stripe.PaymentIntentStatusCanceled:
		pay.Status = models.PaymentFailed
		pay.FailureReason = string(intent.CancellationReason)
	default:
		pay.Status = models.PaymentPending
	}
	return pay, nil
}
