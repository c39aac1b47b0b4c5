package mem

import (
	"testing"
	"time"
)

func samplePending() PendingOrder {
	return PendingOrder{
		OrderNumber:     "MBG-123456001",
		AccountID:       "u1",
		CustomerName:    "Wanjiku Kamau",
		DeliveryAddress: "Westlands, Nairobi",
		Items: []PendingItem{
			{ProductID: "p1", Name: "Sukuma Wiki", PriceMinor: 50, Quantity: 2, Unit: "bunch"},
		},
		SubtotalMinor: 100,
		DeliveryFee:   200,
		TotalMinor:    300,
	}
}

func TestPendingPaymentsPutGetDelete(t *testing.T) {
	store := NewPendingPayments()

	if _, ok := store.Get("ws_CO_1"); ok {
		t.Fatal("expected empty store")
	}

	store.Put("ws_CO_1", samplePending())

	got, ok := store.Get("ws_CO_1")
	if !ok {
		t.Fatal("expected record after Put")
	}
	if got.OrderNumber != "MBG-123456001" || got.TotalMinor != 300 {
		t.Errorf("snapshot mismatch: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("Put should stamp CreatedAt")
	}

	if !store.Delete("ws_CO_1") {
		t.Error("first Delete should report the record existed")
	}
	if store.Delete("ws_CO_1") {
		t.Error("second Delete must be a no-op")
	}
	if _, ok := store.Get("ws_CO_1"); ok {
		t.Error("record should be gone after Delete")
	}
}

func TestPendingPaymentsReap(t *testing.T) {
	store := NewPendingPayments()

	old := samplePending()
	old.CreatedAt = time.Now().Add(-2 * time.Hour)
	store.Put("ws_CO_old", old)
	store.Put("ws_CO_new", samplePending())

	if n := store.Reap(time.Hour); n != 1 {
		t.Fatalf("Reap removed %d records, want 1", n)
	}
	if _, ok := store.Get("ws_CO_old"); ok {
		t.Error("stale record should be reaped")
	}
	if _, ok := store.Get("ws_CO_new"); !ok {
		t.Error("fresh record should survive the reap")
	}
}

func TestPaymentStatusLifecycle(t *testing.T) {
	store := NewPaymentStatuses()

	if _, ok := store.Get("ws_CO_1"); ok {
		t.Fatal("expected empty store")
	}

	store.Create("ws_CO_1", "u1")
	rec, ok := store.Get("ws_CO_1")
	if !ok || rec.Status != StatusPending || rec.AccountID != "u1" {
		t.Fatalf("Create should yield pending record for u1, got %+v ok=%v", rec, ok)
	}

	if !store.Resolve("ws_CO_1", StatusPaid, "") {
		t.Fatal("resolving a pending record should succeed")
	}
	rec, _ = store.Get("ws_CO_1")
	if rec.Status != StatusPaid {
		t.Fatalf("status = %s, want paid", rec.Status)
	}
}

func TestPaymentStatusTerminalMonotonicity(t *testing.T) {
	tests := []struct {
		name     string
		terminal PaymentStatus
	}{
		{"paid", StatusPaid},
		{"failed", StatusFailed},
		{"cancelled", StatusCancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewPaymentStatuses()
			store.Create("ws_CO_1", "u1")
			if !store.Resolve("ws_CO_1", tt.terminal, "first") {
				t.Fatal("first resolve should succeed")
			}

			for _, next := range []PaymentStatus{StatusPaid, StatusFailed, StatusCancelled} {
				if store.Resolve("ws_CO_1", next, "second") {
					t.Errorf("resolve to %s after %s should be a no-op", next, tt.terminal)
				}
			}
			rec, _ := store.Get("ws_CO_1")
			if rec.Status != tt.terminal || (tt.terminal != StatusPaid && rec.Reason != "first") {
				t.Errorf("terminal record mutated: %+v", rec)
			}

			// Re-creating must not resurrect a settled payment either.
			store.Create("ws_CO_1", "u2")
			rec, _ = store.Get("ws_CO_1")
			if rec.Status != tt.terminal {
				t.Errorf("Create overwrote terminal status: %+v", rec)
			}
		})
	}
}

func TestPaymentStatusResolveRejectsNonTerminal(t *testing.T) {
	store := NewPaymentStatuses()
	store.Create("ws_CO_1", "u1")

	if store.Resolve("ws_CO_1", StatusPending, "") {
		t.Error("Resolve must refuse non-terminal targets")
	}
	if store.Resolve("ws_CO_missing", StatusPaid, "") {
		t.Error("Resolve of an unknown id must report false")
	}
}
