package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"servicelink/models"
	"servicelink/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Processor settles one payment request. Provider-side declines are reported as a
// Payment with status failed, not as an error.
type Processor interface {
	Process(ctx context.Context, req models.PaymentRequest) (*models.Payment, error)
}

// PaymentHandler routes requests to the processor registered for their method.
type PaymentHandler struct {
	logger     *zap.Logger
	currency   string
	processors map[models.PaymentMethod]Processor
}

func NewPaymentHandler(logger *zap.Logger, currency string) *PaymentHandler {
	if currency == "" {
		currency = "INR"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	h := &PaymentHandler{
		logger:     logger,
		currency:   strings.ToUpper(currency),
		processors: make(map[models.PaymentMethod]Processor),
	}
	h.Register(models.MethodCash, CashProcessor{})
	for _, m := range []models.PaymentMethod{models.MethodUPI, models.MethodCard, models.MethodRazorpay} {
		h.Register(m, InstantProcessor{Method: m})
	}
	return h
}

// Register installs or replaces the processor for a method.
func (h *PaymentHandler) Register(method models.PaymentMethod, p Processor) {
	h.processors[method] = p
}

func validateRequest(req models.PaymentRequest) error {
	var bad []string
	if req.BookingID == "" {
		bad = append(bad, "bookingId")
	}
	if req.Amount <= 0 {
		bad = append(bad, "amount")
	}
	if req.Method == "" {
		bad = append(bad, "method")
	}
	if len(bad) > 0 {
		return utils.NewValidationError("invalid payment request", bad...)
	}
	return nil
}

func (h *PaymentHandler) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Payment, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	if req.Currency == "" {
		req.Currency = h.currency
	}
	p, ok := h.processors[req.Method]
	if !ok {
		return nil, utils.NewValidationError(fmt.Sprintf("unsupported payment method: %s", req.Method), "method")
	}
	payment, err := p.Process(ctx, req)
	if err != nil {
		h.logger.Error("payment processing failed", zap.String("bookingID", req.BookingID), zap.String("method", string(req.Method)), zap.Error(err))
		return nil, err
	}
	h.logger.Info("payment processed",
		zap.String("bookingID", req.BookingID),
		zap.String("method", string(req.Method)),
		zap.String("status", string(payment.Status)),
	)
	return payment, nil
}

func newPayment(req models.PaymentRequest) *models.Payment {
	return &models.Payment{
		ID:        uuid.New().String(),
		BookingID: req.BookingID,
		Amount:    req.Amount,
		Currency:  req.Currency,
		Method:    req.Method,
		Status:    models.PaymentPending,
		CreatedAt: time.Now(),
	}
}

// CashProcessor records a cash payment. It stays pending until collected.
type CashProcessor struct{}

func (CashProcessor) Process(_ context.Context, req models.PaymentRequest) (*models.Payment, error) {
	return newPayment(req), nil
}

// InstantProcessor settles immediately with a generated transaction id.
type InstantProcessor struct {
	Method models.PaymentMethod
}

func (p InstantProcessor) Process(_ context.Context, req models.PaymentRequest) (*models.Payment, error) {
	pay := newPayment(req)
	txn := "txn_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	pay.TransactionID = txn
	pay.ReceiptURL = "/receipt/" + txn
	pay.Status = models.PaymentCompleted
	return pay, nil
}
