package reservation

import (
	"fmt"
	"sync"

	"bobbystable/models"
)

// SlotLedger owns the per-date, per-slot capacity counters and the set of
// reservation ids occupying each slot. It knows nothing about conversation
// flow; it only answers availability questions and performs atomic
// check-and-book / idempotent release operations.
//
// The date index is guarded by an RWMutex; each materialized date carries
// its own mutex, so bookings on different dates do not contend.
type SlotLedger struct {
	slots    []string // configured slot labels, in display order
	capacity int      // max reservations per slot, identical across slots

	mu   sync.RWMutex
	days map[string]*daySlots
}

type daySlots struct {
	mu    sync.Mutex
	slots map[string]*slotCounter
}

type slotCounter struct {
	capacity  int
	booked    int
	occupants map[string]struct{}
}

// NewSlotLedger builds a ledger for the given slot grid.
func NewSlotLedger(slots []string, capacity int) *SlotLedger {
	return &SlotLedger{
		slots:    slots,
		capacity: capacity,
		days:     make(map[string]*daySlots),
	}
}

// Slots returns the configured slot labels in display order.
func (l *SlotLedger) Slots() []string {
	return l.slots
}

// ValidSlot reports whether the label belongs to the configured grid.
func (l *SlotLedger) ValidSlot(slot string) bool {
	for _, s := range l.slots {
		if s == slot {
			return true
		}
	}
	return false
}

// day returns the slot table for a date, materializing it on first use.
// Once created, a date's table lives for the process lifetime.
func (l *SlotLedger) day(date string) *daySlots {
	l.mu.RLock()
	d, ok := l.days[date]
	l.mu.RUnlock()
	if ok {
		return d
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if d, ok = l.days[date]; ok {
		return d
	}
	d = &daySlots{slots: make(map[string]*slotCounter, len(l.slots))}
	for _, s := range l.slots {
		d.slots[s] = &slotCounter{
			capacity:  l.capacity,
			occupants: make(map[string]struct{}),
		}
	}
	l.days[date] = d
	return d
}

// Check reports availability for a date and slot without mutating state.
func (l *SlotLedger) Check(date, slot string) models.SlotAvailability {
	d := l.day(date)
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.slots[slot]
	if !ok {
		return models.SlotAvailability{Available: false, Remaining: 0, Reason: "Invalid time slot"}
	}
	remaining := c.capacity - c.booked
	avail := models.SlotAvailability{Available: remaining > 0, Remaining: remaining}
	if remaining <= 0 {
		avail.Reason = "Time slot is fully booked"
	}
	return avail
}

// Book records the reservation id against the slot if capacity remains.
// The availability check and the increment happen under the same date
// lock: two simultaneous bookings for the last open seat cannot both
// succeed.
func (l *SlotLedger) Book(date, slot, reservationID string) bool {
	d := l.day(date)
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.slots[slot]
	if !ok {
		return false
	}
	if c.booked >= c.capacity {
		return false
	}
	c.occupants[reservationID] = struct{}{}
	c.booked++
	c.verify(date, slot)
	return true
}

// Release removes the reservation id from the slot's occupancy set.
// Idempotent: a repeat call or an unknown id is a no-op.
func (l *SlotLedger) Release(date, slot, reservationID string) {
	d := l.day(date)
	d.mu.Lock()
	defer d.mu.Unlock()

	c, ok := d.slots[slot]
	if !ok {
		return
	}
	if _, held := c.occupants[reservationID]; !held {
		return
	}
	delete(c.occupants, reservationID)
	c.booked--
	c.verify(date, slot)
}

// OpenSlots returns the configured slots with remaining capacity on a
// date, in display order.
func (l *SlotLedger) OpenSlots(date string) []string {
	d := l.day(date)
	d.mu.Lock()
	defer d.mu.Unlock()

	var open []string
	for _, s := range l.slots {
		if c := d.slots[s]; c != nil && c.booked < c.capacity {
			open = append(open, s)
		}
	}
	return open
}

// Availability returns the dashboard view of every slot on a date.
func (l *SlotLedger) Availability(date string) map[string]models.SlotStatus {
	d := l.day(date)
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make(map[string]models.SlotStatus, len(l.slots))
	for _, s := range l.slots {
		c := d.slots[s]
		out[s] = models.SlotStatus{Available: c.capacity - c.booked, Total: c.capacity}
	}
	return out
}

// verify traps ledger corruption. A booked count out of step with the
// occupancy set means a programming error, not a recoverable condition.
func (c *slotCounter) verify(date, slot string) {
	if c.booked != len(c.occupants) || c.booked < 0 || c.booked > c.capacity {
		panic(fmt.Sprintf("slot ledger corrupted for %s %s: booked=%d occupants=%d capacity=%d",
			date, slot, c.booked, len(c.occupants), c.capacity))
	}
}
