package mem

import (
	"sync"
	"time"
)

// PendingOrder is the order snapshot held between payment initiation and the
// provider callback. It is written once, read by the callback handler, and
// deleted exactly once after the callback is fully processed.
type PendingOrder struct {
	OrderNumber     string
	AccountID       string
	CustomerName    string
	CustomerPhone   string
	DeliveryAddress string
	Items           []PendingItem
	SubtotalMinor   int64
	DeliveryFee     int64
	TotalMinor      int64
	// UnpaidOrderID references a pre-existing unpaid order being paid off.
	UnpaidOrderID string
	CreatedAt     time.Time
}

type PendingItem struct {
	ProductID  string
	Name       string
	PriceMinor int64
	Quantity   int
	Unit       string
}

type PendingPaymentStore interface {
	Put(checkoutRequestID string, order PendingOrder)
	Get(checkoutRequestID string) (PendingOrder, bool)

	// Delete removes the record and reports whether it still existed.
	// Deleting an already-removed record is a no-op, so a duplicate callback
	// racing the first one resolves as already-handled rather than an error.
	Delete(checkoutRequestID string) bool
}

type PendingPayments struct {
	mu   sync.RWMutex
	data map[string]PendingOrder
}

func NewPendingPayments() *PendingPayments {
	return &PendingPayments{
		data: make(map[string]PendingOrder),
	}
}

func (s *PendingPayments) Put(checkoutRequestID string, order PendingOrder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	s.data[checkoutRequestID] = order
}

func (s *PendingPayments) Get(checkoutRequestID string) (PendingOrder, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	order, ok := s.data[checkoutRequestID]
	return order, ok
}

func (s *PendingPayments) Delete(checkoutRequestID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[checkoutRequestID]
	if ok {
		delete(s.data, checkoutRequestID)
	}
	return ok
}

// Reap removes records older than maxAge and returns how many it dropped.
// A leaked record (callback processed but delete skipped by a crash) is
// acceptable staleness; this is the out-of-band cleanup for it.
func (s *PendingPayments) Reap(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := time.Now().Add(-maxAge)
	n := 0
	for id, order := range s.data {
		if order.CreatedAt.Before(cutoff) {
			delete(s.data, id)
			n++
		}
	}
	return n
}
