package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"

	"travelapp/internal/domain"
	"travelapp/internal/gateway/chapa"
	"travelapp/internal/repository"
)

// Gateway is the interface for the external payment gateway.
type Gateway interface {
	Initialize(ctx context.Context, req chapa.InitializeRequest) (*chapa.InitializeResult, error)
	Verify(ctx context.Context, txRef string) (*chapa.VerifyResult, error)
}

// paymentCurrency is the only currency the gateway is invoked with.
const paymentCurrency = "ETB"

// PaymentService orchestrates the payment lifecycle: creating the local
// record, initializing the transaction with the gateway and reconciling
// verification results back onto the record.
type PaymentService struct {
	paymentRepo repository.PaymentRepository
	bookingRepo repository.BookingRepository
	listingRepo repository.ListingRepository
	userRepo    repository.UserRepository
	gateway     Gateway
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	paymentRepo repository.PaymentRepository,
	bookingRepo repository.BookingRepository,
	listingRepo repository.ListingRepository,
	userRepo repository.UserRepository,
	gateway Gateway,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		listingRepo: listingRepo,
		userRepo:    userRepo,
		gateway:     gateway,
	}
}

// InitiatePaymentRequest contains the parameters for initiating a payment.
type InitiatePaymentRequest struct {
	UserID      string
	BookingID   string
	Amount      string
	PhoneNumber string
	CallbackURL string
	ReturnURL   string
}

// InitiatePaymentResult is returned when the gateway accepted the
// transaction. The local payment stays pending until verification.
type InitiatePaymentResult struct {
	PaymentID   string
	CheckoutURL string
	TxRef       string
	Amount      string
}

// VerifyPaymentResult is returned when the gateway reported a transaction
// status. Status is the reconciled local status, GatewayStatus the gateway's
// own wording.
type VerifyPaymentResult struct {
	PaymentID     string
	Status        domain.PaymentStatus
	Amount        string
	GatewayStatus string
}

// InitiatePayment validates the request, persists a pending payment record
// and initializes the transaction with the gateway. The record is created
// before the gateway is contacted so a local audit trail exists whatever the
// gateway does; on rejection or transport failure it is marked failed.
func (s *PaymentService) InitiatePayment(ctx context.Context, req InitiatePaymentRequest) (*InitiatePaymentResult, error) {
	if req.BookingID == "" {
		return nil, ErrInvalidBookingID
	}
	if !validAmount(req.Amount) {
		return nil, ErrInvalidAmount
	}

	booking, err := s.bookingRepo.GetOwnedByUser(ctx, req.BookingID, req.UserID)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	listing, err := s.listingRepo.GetByID(ctx, booking.ListingID)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		ID:            uuid.New().String(),
		BookingID:     booking.ID,
		Amount:        req.Amount,
		Status:        domain.PaymentStatusPending,
		TransactionID: newTransactionID(),
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	txRef := payment.TxRef()

	result, err := s.gateway.Initialize(ctx, chapa.InitializeRequest{
		Amount:      payment.Amount,
		Currency:    paymentCurrency,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: req.PhoneNumber,
		TxRef:       txRef,
		CallbackURL: req.CallbackURL,
		ReturnURL:   req.ReturnURL,
		Customization: chapa.Customization{
			Title: fmt.Sprintf("Payment for %s", listing.Title),
			Description: fmt.Sprintf("Booking payment from %s to %s",
				booking.StartDate.Format("2006-01-02"), booking.EndDate.Format("2006-01-02")),
		},
	})
	if err != nil {
		// Rejection and transport failure both fail the local payment; the
		// status update error is secondary to the gateway error.
		if updateErr := s.paymentRepo.UpdateStatus(ctx, payment.ID, domain.PaymentStatusFailed); updateErr != nil {
			log.Printf("payment %s: mark failed after gateway error: %v", payment.ID, updateErr)
		}
		return nil, s.gatewayError("initialize", payment.ID, err)
	}

	if result.GatewayTxID != "" {
		if err := s.paymentRepo.SetGatewayTransactionID(ctx, payment.ID, result.GatewayTxID); err != nil {
			return nil, err
		}
	}

	return &InitiatePaymentResult{
		PaymentID:   payment.ID,
		CheckoutURL: result.CheckoutURL,
		TxRef:       txRef,
		Amount:      payment.Amount,
	}, nil
}

// VerifyPayment looks up the payment behind a transaction reference, asks
// the gateway for the transaction's status and reconciles it onto the local
// record. Gateway failures leave the stored status untouched.
func (s *PaymentService) VerifyPayment(ctx context.Context, userID, txRef string) (*VerifyPaymentResult, error) {
	if txRef == "" {
		return nil, ErrInvalidTxRef
	}

	fragment := domain.ReferenceFragment(txRef)
	payment, err := s.paymentRepo.FindByReferenceFragment(ctx, fragment, userID)
	if err != nil {
		return nil, err
	}

	result, err := s.gateway.Verify(ctx, txRef)
	if err != nil {
		return nil, s.gatewayError("verify", payment.ID, err)
	}

	mapped := mapGatewayStatus(result.GatewayStatus)

	// A confirmed gateway outcome advances pending payments; a payment
	// already completed or failed never transitions again.
	if !payment.Status.IsTerminal() && mapped != payment.Status {
		if err := s.paymentRepo.UpdateStatus(ctx, payment.ID, mapped); err != nil {
			return nil, err
		}
		payment.Status = mapped
	}

	return &VerifyPaymentResult{
		PaymentID:     payment.ID,
		Status:        payment.Status,
		Amount:        payment.Amount,
		GatewayStatus: result.GatewayStatus,
	}, nil
}

// GetPayment retrieves one of the user's payments.
func (s *PaymentService) GetPayment(ctx context.Context, userID, paymentID string) (*domain.Payment, error) {
	return s.paymentRepo.GetByIDForUser(ctx, paymentID, userID)
}

// ListPayments retrieves all of the user's payments.
func (s *PaymentService) ListPayments(ctx context.Context, userID string) ([]*domain.Payment, error) {
	return s.paymentRepo.GetByUser(ctx, userID)
}

// gatewayError normalizes a gateway client error. Rejections keep their
// gateway message and pass through; everything else collapses into
// ErrGatewayUnavailable. The two are logged apart.
func (s *PaymentService) gatewayError(op, paymentID string, err error) error {
	var rejected *chapa.RejectedError
	if errors.As(err, &rejected) {
		log.Printf("payment %s: gateway rejected %s: %s", paymentID, op, rejected.Message)
		return err
	}
	log.Printf("payment %s: gateway %s transport failure: %v", paymentID, op, err)
	return fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
}

// mapGatewayStatus maps the gateway's status vocabulary to the local one.
// Anything the gateway reports besides success or failed stays pending.
func mapGatewayStatus(gatewayStatus string) domain.PaymentStatus {
	switch gatewayStatus {
	case "success":
		return domain.PaymentStatusCompleted
	case "failed":
		return domain.PaymentStatusFailed
	default:
		return domain.PaymentStatusPending
	}
}

// newTransactionID allocates a globally unique transaction id as undashed
// hex, the form the reference fragment lookup matches against.
func newTransactionID() string {
	u := uuid.New()
	return hex.EncodeToString(u[:])
}

func validAmount(amount string) bool {
	if amount == "" {
		return false
	}
	value, err := strconv.ParseFloat(amount, 64)
	return err == nil && value > 0
}
