package tests

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"travelapp/internal/domain"
	"travelapp/internal/gateway/chapa"
	"travelapp/internal/repository"
	"travelapp/internal/service"
)

var txRefPattern = regexp.MustCompile(`^CHAPA-[0-9A-F]{12}$`)

// paymentFixture bundles the collaborators of a PaymentService test.
type paymentFixture struct {
	paymentRepo *MockPaymentRepository
	bookingRepo *MockBookingRepository
	listingRepo *MockListingRepository
	userRepo    *MockUserRepository
	gateway     *MockGateway
	svc         *service.PaymentService
}

// newPaymentFixture seeds user-1 with booking-1 on listing-1.
func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		paymentRepo: NewMockPaymentRepository(),
		bookingRepo: NewMockBookingRepository(),
		listingRepo: NewMockListingRepository(),
		userRepo:    NewMockUserRepository(),
		gateway:     NewMockGateway(),
	}

	f.userRepo.AddUser(&domain.User{
		ID:        "user-1",
		Email:     "alma@example.com",
		FirstName: "Alma",
		LastName:  "Tesfaye",
	})
	f.listingRepo.AddListing(&domain.Listing{
		ID:            "listing-1",
		Title:         "Lakeside Cottage",
		PricePerNight: "50.00",
	})
	f.bookingRepo.AddBooking(&domain.Booking{
		ID:        "booking-1",
		ListingID: "listing-1",
		UserID:    "user-1",
		StartDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 6, 5, 0, 0, 0, 0, time.UTC),
	})
	f.paymentRepo.SetBookingOwner("booking-1", "user-1")

	f.svc = service.NewPaymentService(f.paymentRepo, f.bookingRepo, f.listingRepo, f.userRepo, f.gateway)
	return f
}

func initiateReq() service.InitiatePaymentRequest {
	return service.InitiatePaymentRequest{
		UserID:      "user-1",
		BookingID:   "booking-1",
		Amount:      "100.00",
		PhoneNumber: "+251911000000",
		CallbackURL: "https://app.example.com/callback",
		ReturnURL:   "https://app.example.com/return",
	}
}

func TestInitiatePayment_MissingBookingID(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	req := initiateReq()
	req.BookingID = ""

	_, err := f.svc.InitiatePayment(context.Background(), req)
	if !errors.Is(err, service.ErrInvalidBookingID) {
		t.Fatalf("expected ErrInvalidBookingID, got %v", err)
	}
	if f.paymentRepo.CountPayments() != 0 {
		t.Error("no payment record should be created on validation failure")
	}
	if f.gateway.InitializeCallCount != 0 {
		t.Error("gateway should not be called on validation failure")
	}
}

func TestInitiatePayment_MissingAmount(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	req := initiateReq()
	req.Amount = ""

	_, err := f.svc.InitiatePayment(context.Background(), req)
	if !errors.Is(err, service.ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if f.paymentRepo.CountPayments() != 0 {
		t.Error("no payment record should be created on validation failure")
	}
}

func TestInitiatePayment_BookingNotOwnedByCaller(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	req := initiateReq()
	req.UserID = "user-2"

	_, err := f.svc.InitiatePayment(context.Background(), req)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if f.paymentRepo.CountPayments() != 0 {
		t.Error("no payment record should be created for a foreign booking")
	}
}

func TestInitiatePayment_GatewaySuccess(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()

	result, err := f.svc.InitiatePayment(context.Background(), initiateReq())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.PaymentID == "" {
		t.Error("expected a payment id")
	}
	if result.CheckoutURL != "https://checkout.chapa.co/pay/abc" {
		t.Errorf("unexpected checkout url %q", result.CheckoutURL)
	}
	if !txRefPattern.MatchString(result.TxRef) {
		t.Errorf("tx_ref %q does not match %s", result.TxRef, txRefPattern)
	}
	if result.Amount != "100.00" {
		t.Errorf("expected amount 100.00, got %q", result.Amount)
	}

	// Gateway initialization success does not complete the payment.
	stored := f.paymentRepo.GetPayment(result.PaymentID)
	if stored == nil {
		t.Fatal("payment not persisted")
	}
	if stored.Status != domain.PaymentStatusPending {
		t.Errorf("expected pending, got %s", stored.Status)
	}
	if stored.GatewayTransactionID != "chapa-tx-1" {
		t.Errorf("gateway transaction id not recorded, got %q", stored.GatewayTransactionID)
	}
}

func TestInitiatePayment_BuildsGatewayPayload(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()

	result, err := f.svc.InitiatePayment(context.Background(), initiateReq())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	payload := f.gateway.InitializeRequest()
	if payload.Currency != "ETB" {
		t.Errorf("expected currency ETB, got %q", payload.Currency)
	}
	if payload.Amount != "100.00" {
		t.Errorf("expected amount 100.00, got %q", payload.Amount)
	}
	if payload.Email != "alma@example.com" || payload.FirstName != "Alma" || payload.LastName != "Tesfaye" {
		t.Errorf("payer identity not taken from the user record: %+v", payload)
	}
	if payload.TxRef != result.TxRef {
		t.Errorf("payload tx_ref %q != result tx_ref %q", payload.TxRef, result.TxRef)
	}
	if payload.Customization.Title != "Payment for Lakeside Cottage" {
		t.Errorf("unexpected customization title %q", payload.Customization.Title)
	}
	if payload.Customization.Description != "Booking payment from 2025-06-01 to 2025-06-05" {
		t.Errorf("unexpected customization description %q", payload.Customization.Description)
	}
}

func TestInitiatePayment_GatewayRejected(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	f.gateway.InitializeError = &chapa.RejectedError{Message: "insufficient merchant balance"}

	_, err := f.svc.InitiatePayment(context.Background(), initiateReq())

	var rejected *chapa.RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %v", err)
	}
	if rejected.Message != "insufficient merchant balance" {
		t.Errorf("gateway message lost: %q", rejected.Message)
	}

	stored := f.paymentRepo.FirstPayment()
	if stored == nil {
		t.Fatal("a payment record should exist even when the gateway rejects")
	}
	if stored.Status != domain.PaymentStatusFailed {
		t.Errorf("expected failed, got %s", stored.Status)
	}
}

func TestInitiatePayment_GatewayUnreachable(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	f.gateway.InitializeError = errors.New("dial tcp: connection refused")

	_, err := f.svc.InitiatePayment(context.Background(), initiateReq())
	if !errors.Is(err, service.ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}

	stored := f.paymentRepo.FirstPayment()
	if stored == nil {
		t.Fatal("a payment record should exist even when the gateway is unreachable")
	}
	if stored.Status != domain.PaymentStatusFailed {
		t.Errorf("expected failed, got %s", stored.Status)
	}
}

func TestInitiatePayment_NoGatewayTxIDReturned(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	f.gateway.InitializeResult = &chapa.InitializeResult{CheckoutURL: "https://checkout.chapa.co/pay/xyz"}

	result, err := f.svc.InitiatePayment(context.Background(), initiateReq())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.paymentRepo.SetGatewayTxCallCount != 0 {
		t.Error("gateway transaction id should not be written when the gateway returned none")
	}
	if got := f.paymentRepo.GetPayment(result.PaymentID).GatewayTransactionID; got != "" {
		t.Errorf("expected empty gateway transaction id, got %q", got)
	}
}
