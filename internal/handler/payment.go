package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"travelapp/internal/domain"
	"travelapp/internal/middleware"
	"travelapp/internal/service"
)

// PaymentHandler handles HTTP requests for payments.
type PaymentHandler struct {
	paymentService *service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// InitiatePaymentRequest is the HTTP request body for initiating a payment.
type InitiatePaymentRequest struct {
	BookingID   string `json:"booking_id"`
	Amount      string `json:"amount"`
	PhoneNumber string `json:"phone_number"`
	CallbackURL string `json:"callback_url"`
	ReturnURL   string `json:"return_url"`
}

// InitiatePaymentResponse is the HTTP response for a successful initiation.
type InitiatePaymentResponse struct {
	PaymentID   string `json:"payment_id"`
	CheckoutURL string `json:"checkout_url"`
	TxRef       string `json:"tx_ref"`
	Amount      string `json:"amount"`
}

// VerifyPaymentRequest is the HTTP request body for verifying a payment.
type VerifyPaymentRequest struct {
	TxRef string `json:"tx_ref"`
}

// VerifyPaymentResponse is the HTTP response for a verification.
type VerifyPaymentResponse struct {
	PaymentID   string `json:"payment_id"`
	Status      string `json:"status"`
	Amount      string `json:"amount"`
	ChapaStatus string `json:"chapa_status"`
}

// PaymentResponse is the HTTP representation of a stored payment.
type PaymentResponse struct {
	ID                   string    `json:"id"`
	BookingID            string    `json:"booking_id"`
	Amount               string    `json:"amount"`
	Status               string    `json:"status"`
	TxRef                string    `json:"tx_ref"`
	GatewayTransactionID string    `json:"gateway_transaction_id,omitempty"`
	CreatedAt            time.Time `json:"created_at"`
}

// InitiatePayment handles POST /v1/payments/initiate
func (h *PaymentHandler) InitiatePayment(c *gin.Context) {
	var req InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.paymentService.InitiatePayment(c.Request.Context(), service.InitiatePaymentRequest{
		UserID:      middleware.UserID(c),
		BookingID:   req.BookingID,
		Amount:      req.Amount,
		PhoneNumber: req.PhoneNumber,
		CallbackURL: req.CallbackURL,
		ReturnURL:   req.ReturnURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, InitiatePaymentResponse{
		PaymentID:   result.PaymentID,
		CheckoutURL: result.CheckoutURL,
		TxRef:       result.TxRef,
		Amount:      result.Amount,
	})
}

// VerifyPayment handles POST /v1/payments/verify
func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.paymentService.VerifyPayment(c.Request.Context(), middleware.UserID(c), req.TxRef)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, VerifyPaymentResponse{
		PaymentID:   result.PaymentID,
		Status:      string(result.Status),
		Amount:      result.Amount,
		ChapaStatus: result.GatewayStatus,
	})
}

// ListPayments handles GET /v1/payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	payments, err := h.paymentService.ListPayments(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		responses = append(responses, toPaymentResponse(payment))
	}
	respondJSON(c, http.StatusOK, responses)
}

// GetPayment handles GET /v1/payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	payment, err := h.paymentService.GetPayment(c.Request.Context(), middleware.UserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toPaymentResponse(payment))
}

func toPaymentResponse(payment *domain.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                   payment.ID,
		BookingID:            payment.BookingID,
		Amount:               payment.Amount,
		Status:               string(payment.Status),
		TxRef:                payment.TxRef(),
		GatewayTransactionID: payment.GatewayTransactionID,
		CreatedAt:            payment.CreatedAt,
	}
}
