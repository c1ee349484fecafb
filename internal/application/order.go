package application

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"powerboard/internal/domain"
	"powerboard/internal/ports"
)

// Reconciler maintains the user's character display order: loaded from the
// store at startup, mutated by grab-and-drop swap gestures, and validated
// against the live snapshot set. An order that no longer matches the roster
// is discarded lazily, the first time it is read against the new set.
type Reconciler struct {
	store ports.OrderStore
	log   *zap.Logger

	mu       sync.Mutex
	custom   domain.DisplayOrder // nil when no custom order exists
	set      domain.SnapshotSet
	fallback domain.DisplayOrder // memoized DefaultOrder for the current set
	dragging string              // character ID of the active gesture, "" when idle
}

// NewReconciler creates a reconciler backed by the given store.
func NewReconciler(store ports.OrderStore, log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{store: store, log: log}
}

// Load restores a previously persisted order. Absence is not an error.
func (r *Reconciler) Load() error {
	order, err := r.store.LoadDisplayOrder()
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.custom = order
	r.mu.Unlock()
	return nil
}

// SetSnapshots adopts a new snapshot set. The default order is recomputed
// here, once per set change, instead of on every read.
func (r *Reconciler) SetSnapshots(set domain.SnapshotSet) {
	r.mu.Lock()
	r.set = set
	r.fallback = domain.DefaultOrder(set)
	r.mu.Unlock()
}

// EffectiveOrder returns the order to display: the custom order when it is
// a valid permutation of the current set, otherwise the default order. An
// invalid custom order is cleared here as a side effect of the failed
// validation, so the healing is observed on the next read.
func (r *Reconciler) EffectiveOrder() domain.DisplayOrder {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.effectiveLocked()
}

func (r *Reconciler) effectiveLocked() domain.DisplayOrder {
	if r.custom == nil {
		return r.fallback
	}
	if !r.custom.Validate(r.set) {
		r.log.Info("stored display order no longer matches roster, discarding",
			zap.Strings("order", r.custom))
		r.custom = nil
		if err := r.store.ClearDisplayOrder(); err != nil {
			r.log.Warn("clear display order", zap.Error(err))
		}
		return r.fallback
	}
	return r.custom
}

// DragStart begins a gesture with the given character. Only one gesture is
// active at a time; starting a new one replaces the old.
func (r *Reconciler) DragStart(id string) {
	r.mu.Lock()
	r.dragging = id
	r.mu.Unlock()
}

// DragEnd cancels the active gesture. Idempotent.
func (r *Reconciler) DragEnd() {
	r.mu.Lock()
	r.dragging = ""
	r.mu.Unlock()
}

// Dragging returns the ID of the character being dragged, or "".
func (r *Reconciler) Dragging() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dragging
}

// DropOn completes the gesture by swapping the dragged character with the
// target. No active gesture or dropping onto the source is a no-op. The
// swapped order is persisted and becomes the custom order. Returns whether
// the order changed.
func (r *Reconciler) DropOn(targetID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.dragging == "" || r.dragging == targetID {
		return false
	}

	order := r.effectiveLocked()
	swapped := order.Swap(r.dragging, targetID)
	r.dragging = ""

	// Swap leaves the order untouched when either ID is absent; adopting
	// and persisting it then would freeze the default order as custom.
	if slices.Equal(swapped, order) {
		return false
	}

	r.custom = swapped
	if err := r.store.SaveDisplayOrder(swapped); err != nil {
		r.log.Warn("save display order", zap.Error(err))
	}
	return true
}

// Reset discards the custom order, reverting to arrival order.
func (r *Reconciler) Reset() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.custom = nil
	r.dragging = ""
	return r.store.ClearDisplayOrder()
}
