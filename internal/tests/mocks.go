package tests

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"travelapp/internal/domain"
	"travelapp/internal/gateway/chapa"
	"travelapp/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment
	owners   map[string]string // booking id -> user id, for scoped lookups

	// Counters for verification
	CreateCallCount       int32
	UpdateStatusCallCount int32
	SetGatewayTxCallCount int32

	// Error injection
	CreateError       error
	UpdateStatusError error
}

// NewMockPaymentRepository creates a new mock payment repository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments: make(map[string]*domain.Payment),
		owners:   make(map[string]string),
	}
}

// SetBookingOwner registers which user owns a booking, so scoped lookups
// behave like the SQL join.
func (m *MockPaymentRepository) SetBookingOwner(bookingID, userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owners[bookingID] = userID
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *domain.Payment) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *payment
	m.payments[payment.ID] = &copy
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payment, ok := m.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *payment
	return &copy, nil
}

func (m *MockPaymentRepository) GetByIDForUser(ctx context.Context, id, userID string) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	payment, ok := m.payments[id]
	if !ok || m.owners[payment.BookingID] != userID {
		return nil, repository.ErrNotFound
	}
	copy := *payment
	return &copy, nil
}

func (m *MockPaymentRepository) GetByUser(ctx context.Context, userID string) ([]*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Payment
	for _, p := range m.payments {
		if m.owners[p.BookingID] == userID {
			copy := *p
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockPaymentRepository) FindByReferenceFragment(ctx context.Context, fragment, userID string) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var matches []*domain.Payment
	for _, p := range m.payments {
		if m.owners[p.BookingID] != userID {
			continue
		}
		if strings.Contains(strings.ToLower(p.TransactionID), strings.ToLower(fragment)) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, repository.ErrNotFound
	case 1:
		copy := *matches[0]
		return &copy, nil
	default:
		return nil, repository.ErrAmbiguousReference
	}
}

func (m *MockPaymentRepository) SetGatewayTransactionID(ctx context.Context, id, gatewayTxID string) error {
	atomic.AddInt32(&m.SetGatewayTxCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[id]
	if !ok {
		return repository.ErrNotFound
	}
	payment.GatewayTransactionID = gatewayTxID
	return nil
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	atomic.AddInt32(&m.UpdateStatusCallCount, 1)
	if m.UpdateStatusError != nil {
		return m.UpdateStatusError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[id]
	if !ok {
		return repository.ErrNotFound
	}
	payment.Status = status
	return nil
}

// CountPayments returns the number of stored payments.
func (m *MockPaymentRepository) CountPayments() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.payments)
}

// GetPayment returns a stored payment for test assertions.
func (m *MockPaymentRepository) GetPayment(id string) *domain.Payment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.payments[id]
}

// FirstPayment returns any stored payment, for single-payment tests.
func (m *MockPaymentRepository) FirstPayment() *domain.Payment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.payments {
		return p
	}
	return nil
}

// ──────────────────────────────────────────────
// MOCK BOOKING REPOSITORY
// ──────────────────────────────────────────────

// MockBookingRepository is a mock implementation of BookingRepository.
type MockBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking

	CreateCallCount int32
	CreateError     error
}

// NewMockBookingRepository creates a new mock booking repository.
func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{bookings: make(map[string]*domain.Booking)}
}

// AddBooking adds a booking to the mock repository.
func (m *MockBookingRepository) AddBooking(booking *domain.Booking) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[booking.ID] = booking
	return nil
}

func (m *MockBookingRepository) GetOwnedByUser(ctx context.Context, id, userID string) (*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	booking, ok := m.bookings[id]
	if !ok || booking.UserID != userID {
		return nil, repository.ErrNotFound
	}
	copy := *booking
	return &copy, nil
}

func (m *MockBookingRepository) GetByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Booking
	for _, b := range m.bookings {
		if b.UserID == userID {
			copy := *b
			result = append(result, &copy)
		}
	}
	return result, nil
}

// ──────────────────────────────────────────────
// MOCK LISTING REPOSITORY
// ──────────────────────────────────────────────

// MockListingRepository is a mock implementation of ListingRepository.
type MockListingRepository struct {
	mu       sync.RWMutex
	listings map[string]*domain.Listing
}

// NewMockListingRepository creates a new mock listing repository.
func NewMockListingRepository() *MockListingRepository {
	return &MockListingRepository{listings: make(map[string]*domain.Listing)}
}

// AddListing adds a listing to the mock repository.
func (m *MockListingRepository) AddListing(listing *domain.Listing) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listings[listing.ID] = listing
}

func (m *MockListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listings[listing.ID] = listing
	return nil
}

func (m *MockListingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	listing, ok := m.listings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *listing
	return &copy, nil
}

func (m *MockListingRepository) GetAll(ctx context.Context) ([]*domain.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := make([]*domain.Listing, 0, len(m.listings))
	for _, l := range m.listings {
		copy := *l
		result = append(result, &copy)
	}
	return result, nil
}

func (m *MockListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.listings[listing.ID]; !ok {
		return repository.ErrNotFound
	}
	m.listings[listing.ID] = listing
	return nil
}

func (m *MockListingRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.listings[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.listings, id)
	return nil
}

// ──────────────────────────────────────────────
// MOCK REVIEW REPOSITORY
// ──────────────────────────────────────────────

// MockReviewRepository is a mock implementation of ReviewRepository.
type MockReviewRepository struct {
	mu      sync.RWMutex
	reviews map[string]*domain.Review
}

// NewMockReviewRepository creates a new mock review repository.
func NewMockReviewRepository() *MockReviewRepository {
	return &MockReviewRepository{reviews: make(map[string]*domain.Review)}
}

// AddReview adds a review to the mock repository.
func (m *MockReviewRepository) AddReview(review *domain.Review) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews[review.ID] = review
}

func (m *MockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reviews[review.ID] = review
	return nil
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	review, ok := m.reviews[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *review
	return &copy, nil
}

func (m *MockReviewRepository) GetByListing(ctx context.Context, listingID string) ([]*domain.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var result []*domain.Review
	for _, r := range m.reviews {
		if r.ListingID == listingID {
			copy := *r
			result = append(result, &copy)
		}
	}
	return result, nil
}

func (m *MockReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[review.ID]; !ok {
		return repository.ErrNotFound
	}
	m.reviews[review.ID] = review
	return nil
}

func (m *MockReviewRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.reviews[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.reviews, id)
	return nil
}

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

// AddUser adds a user to the mock repository.
func (m *MockUserRepository) AddUser(user *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *user
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// ──────────────────────────────────────────────
// MOCK PAYMENT GATEWAY
// ──────────────────────────────────────────────

// MockGateway is a scriptable implementation of the payment gateway.
type MockGateway struct {
	mu sync.Mutex

	// Scripted results
	InitializeResult *chapa.InitializeResult
	InitializeError  error
	VerifyResult     *chapa.VerifyResult
	VerifyError      error

	// Captured calls
	InitializeCallCount int32
	VerifyCallCount     int32
	LastInitializeReq   chapa.InitializeRequest
	LastVerifyTxRef     string
}

// NewMockGateway creates a gateway mock that succeeds by default.
func NewMockGateway() *MockGateway {
	return &MockGateway{
		InitializeResult: &chapa.InitializeResult{
			CheckoutURL: "https://checkout.chapa.co/pay/abc",
			GatewayTxID: "chapa-tx-1",
		},
		VerifyResult: &chapa.VerifyResult{GatewayStatus: "success"},
	}
}

func (m *MockGateway) Initialize(ctx context.Context, req chapa.InitializeRequest) (*chapa.InitializeResult, error) {
	atomic.AddInt32(&m.InitializeCallCount, 1)
	m.mu.Lock()
	m.LastInitializeReq = req
	m.mu.Unlock()
	if m.InitializeError != nil {
		return nil, m.InitializeError
	}
	return m.InitializeResult, nil
}

func (m *MockGateway) Verify(ctx context.Context, txRef string) (*chapa.VerifyResult, error) {
	atomic.AddInt32(&m.VerifyCallCount, 1)
	m.mu.Lock()
	m.LastVerifyTxRef = txRef
	m.mu.Unlock()
	if m.VerifyError != nil {
		return nil, m.VerifyError
	}
	return m.VerifyResult, nil
}

// InitializeRequest returns the last captured initialize payload.
func (m *MockGateway) InitializeRequest() chapa.InitializeRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.LastInitializeReq
}
