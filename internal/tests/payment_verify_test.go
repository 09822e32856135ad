package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"travelapp/internal/domain"
	"travelapp/internal/gateway/chapa"
	"travelapp/internal/repository"
	"travelapp/internal/service"
)

// addPayment stores a payment with a chosen transaction id so the reference
// fragment is predictable.
func (f *paymentFixture) addPayment(id, transactionID string, status domain.PaymentStatus) *domain.Payment {
	payment := &domain.Payment{
		ID:            id,
		BookingID:     "booking-1",
		Amount:        "100.00",
		Status:        status,
		TransactionID: transactionID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := f.paymentRepo.Create(context.Background(), payment); err != nil {
		panic(err)
	}
	return payment
}

const testTransactionID = "9f8e7d6c5b4a39281716051403020100"

func TestVerifyPayment_MissingTxRef(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()

	_, err := f.svc.VerifyPayment(context.Background(), "user-1", "")
	if !errors.Is(err, service.ErrInvalidTxRef) {
		t.Fatalf("expected ErrInvalidTxRef, got %v", err)
	}
}

func TestVerifyPayment_UnknownReference(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()

	_, err := f.svc.VerifyPayment(context.Background(), "user-1", "CHAPA-000000000000")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if f.gateway.VerifyCallCount != 0 {
		t.Error("gateway should not be called when no payment matches")
	}
}

func TestVerifyPayment_NotOwnedByCaller(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	payment := f.addPayment("pay-1", testTransactionID, domain.PaymentStatusPending)

	_, err := f.svc.VerifyPayment(context.Background(), "user-2", payment.TxRef())
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign payment, got %v", err)
	}
}

func TestVerifyPayment_GatewaySaysSuccess(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	payment := f.addPayment("pay-1", testTransactionID, domain.PaymentStatusPending)
	f.gateway.VerifyResult = &chapa.VerifyResult{GatewayStatus: "success"}

	result, err := f.svc.VerifyPayment(context.Background(), "user-1", payment.TxRef())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Status != domain.PaymentStatusCompleted {
		t.Errorf("expected completed, got %s", result.Status)
	}
	if result.GatewayStatus != "success" {
		t.Errorf("expected gateway status success, got %q", result.GatewayStatus)
	}
	if result.Amount != "100.00" {
		t.Errorf("expected amount 100.00, got %q", result.Amount)
	}
	if got := f.paymentRepo.GetPayment("pay-1").Status; got != domain.PaymentStatusCompleted {
		t.Errorf("persisted status: expected completed, got %s", got)
	}

	// The gateway gets the full reference, not the stripped fragment.
	if f.gateway.LastVerifyTxRef != payment.TxRef() {
		t.Errorf("gateway called with %q, want %q", f.gateway.LastVerifyTxRef, payment.TxRef())
	}
}

func TestVerifyPayment_GatewaySaysFailed(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	payment := f.addPayment("pay-1", testTransactionID, domain.PaymentStatusPending)
	f.gateway.VerifyResult = &chapa.VerifyResult{GatewayStatus: "failed"}

	result, err := f.svc.VerifyPayment(context.Background(), "user-1", payment.TxRef())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != domain.PaymentStatusFailed {
		t.Errorf("expected failed, got %s", result.Status)
	}
	if got := f.paymentRepo.GetPayment("pay-1").Status; got != domain.PaymentStatusFailed {
		t.Errorf("persisted status: expected failed, got %s", got)
	}
}

func TestVerifyPayment_GatewaySaysSomethingElse(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	payment := f.addPayment("pay-1", testTransactionID, domain.PaymentStatusPending)
	f.gateway.VerifyResult = &chapa.VerifyResult{GatewayStatus: "queued"}

	result, err := f.svc.VerifyPayment(context.Background(), "user-1", payment.TxRef())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != domain.PaymentStatusPending {
		t.Errorf("expected pending, got %s", result.Status)
	}
	if got := f.paymentRepo.GetPayment("pay-1").Status; got != domain.PaymentStatusPending {
		t.Errorf("persisted status: expected pending, got %s", got)
	}
}

func TestVerifyPayment_TransportFailureLeavesStatus(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	payment := f.addPayment("pay-1", testTransactionID, domain.PaymentStatusPending)
	f.gateway.VerifyError = errors.New("dial tcp: i/o timeout")

	_, err := f.svc.VerifyPayment(context.Background(), "user-1", payment.TxRef())
	if !errors.Is(err, service.ErrGatewayUnavailable) {
		t.Fatalf("expected ErrGatewayUnavailable, got %v", err)
	}
	if got := f.paymentRepo.GetPayment("pay-1").Status; got != domain.PaymentStatusPending {
		t.Errorf("status must be untouched on transport failure, got %s", got)
	}
	if f.paymentRepo.UpdateStatusCallCount != 0 {
		t.Error("no status write should happen on transport failure")
	}
}

func TestVerifyPayment_RejectionLeavesStatus(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	payment := f.addPayment("pay-1", testTransactionID, domain.PaymentStatusPending)
	f.gateway.VerifyError = &chapa.RejectedError{Message: "transaction not found"}

	_, err := f.svc.VerifyPayment(context.Background(), "user-1", payment.TxRef())

	var rejected *chapa.RejectedError
	if !errors.As(err, &rejected) {
		t.Fatalf("expected RejectedError, got %v", err)
	}
	if got := f.paymentRepo.GetPayment("pay-1").Status; got != domain.PaymentStatusPending {
		t.Errorf("status must be untouched on gateway rejection, got %s", got)
	}
}

func TestVerifyPayment_CompletedNeverRegresses(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	payment := f.addPayment("pay-1", testTransactionID, domain.PaymentStatusCompleted)
	f.gateway.VerifyResult = &chapa.VerifyResult{GatewayStatus: "queued"}

	result, err := f.svc.VerifyPayment(context.Background(), "user-1", payment.TxRef())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Status != domain.PaymentStatusCompleted {
		t.Errorf("completed payment regressed to %s", result.Status)
	}
	if got := f.paymentRepo.GetPayment("pay-1").Status; got != domain.PaymentStatusCompleted {
		t.Errorf("persisted status regressed to %s", got)
	}
	if f.paymentRepo.UpdateStatusCallCount != 0 {
		t.Error("terminal payment should not be rewritten")
	}
}

func TestVerifyPayment_AmbiguousFragment(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()
	// Two payments sharing the same leading 12 hex chars.
	f.addPayment("pay-1", "aabbccddeeff00000000000000000001", domain.PaymentStatusPending)
	f.addPayment("pay-2", "aabbccddeeff00000000000000000002", domain.PaymentStatusPending)

	_, err := f.svc.VerifyPayment(context.Background(), "user-1", "CHAPA-AABBCCDDEEFF")
	if !errors.Is(err, repository.ErrAmbiguousReference) {
		t.Fatalf("expected ErrAmbiguousReference, got %v", err)
	}
}

func TestPaymentFlow_InitiateThenVerify(t *testing.T) {
	t.Parallel()

	f := newPaymentFixture()

	initiated, err := f.svc.InitiatePayment(context.Background(), initiateReq())
	if err != nil {
		t.Fatalf("initiate: %v", err)
	}
	if got := f.paymentRepo.GetPayment(initiated.PaymentID).Status; got != domain.PaymentStatusPending {
		t.Fatalf("payment should stay pending after initiation, got %s", got)
	}

	f.gateway.VerifyResult = &chapa.VerifyResult{GatewayStatus: "success"}
	verified, err := f.svc.VerifyPayment(context.Background(), "user-1", initiated.TxRef)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	if verified.PaymentID != initiated.PaymentID {
		t.Errorf("verify resolved %s, want %s", verified.PaymentID, initiated.PaymentID)
	}
	if verified.Status != domain.PaymentStatusCompleted {
		t.Errorf("expected completed, got %s", verified.Status)
	}
	if got := f.paymentRepo.GetPayment(initiated.PaymentID).Status; got != domain.PaymentStatusCompleted {
		t.Errorf("persisted status: expected completed, got %s", got)
	}
}
