package mem

import "sync"

type PaymentStatus string

const (
	StatusPending   PaymentStatus = "pending"
	StatusPaid      PaymentStatus = "paid"
	StatusFailed    PaymentStatus = "failed"
	StatusCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) Terminal() bool {
	return s == StatusPaid || s == StatusFailed || s == StatusCancelled
}

// StatusRecord is the client-pollable view of a payment attempt. It carries
// no order data; the snapshot stays in the pending store.
type StatusRecord struct {
	Status    PaymentStatus
	Reason    string
	AccountID string
}

type PaymentStatusStore interface {
	Create(checkoutRequestID, accountID string)
	Get(checkoutRequestID string) (StatusRecord, bool)

	// Resolve moves a record from pending to a terminal status. Records never
	// leave a terminal status: resolving an already-terminal record is a
	// no-op and returns false.
	Resolve(checkoutRequestID string, status PaymentStatus, reason string) bool
}

type PaymentStatuses struct {
	mu   sync.RWMutex
	data map[string]StatusRecord
}

func NewPaymentStatuses() *PaymentStatuses {
	return &PaymentStatuses{
		data: make(map[string]StatusRecord),
	}
}

func (s *PaymentStatuses) Create(checkoutRequestID, accountID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.data[checkoutRequestID]; ok && existing.Status.Terminal() {
		return
	}
	s.data[checkoutRequestID] = StatusRecord{
		Status:    StatusPending,
		AccountID: accountID,
	}
}

func (s *PaymentStatuses) Get(checkoutRequestID string) (StatusRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.data[checkoutRequestID]
	return rec, ok
}

func (s *PaymentStatuses) Resolve(checkoutRequestID string, status PaymentStatus, reason string) bool {
	if !status.Terminal() {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.data[checkoutRequestID]
	if !ok || rec.Status.Terminal() {
		return false
	}
	rec.Status = status
	rec.Reason = reason
	s.data[checkoutRequestID] = rec
	return true
}
