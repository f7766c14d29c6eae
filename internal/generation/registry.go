package generation

import (
	"fmt"
	"log/slog"
	"sort"
)

// Slot is the startup-time outcome of building a backend: either a usable
// backend or the reason there is none. Build slots with Configured or
// Unconfigured; the zero value is unconfigured.
type Slot struct {
	backend Backend
	reason  string
}

// Configured wraps a ready backend.
func Configured(b Backend) Slot {
	return Slot{backend: b}
}

// Unconfigured records why a capability has no backend.
func Unconfigured(reason string) Slot {
	return Slot{reason: reason}
}

// IsConfigured reports whether the slot holds a backend.
func (s Slot) IsConfigured() bool {
	return s.backend != nil
}

// Reason returns why the slot is unconfigured, or "" when configured.
func (s Slot) Reason() string {
	return s.reason
}

// Registry maps each capability to the backend that serves it. It is
// populated once at startup and is read-only afterwards, so concurrent
// Resolve calls need no locking.
type Registry struct {
	slots map[Capability]Slot
}

// NewRegistry creates an empty registry in which every capability is unavailable.
func NewRegistry() *Registry {
	return &Registry{slots: make(map[Capability]Slot)}
}

// Register assigns a slot to a capability, replacing any previous one.
// A configured backend must actually support the capability it serves.
func (r *Registry) Register(capability Capability, slot Slot) error {
	if slot.backend != nil && !supports(slot.backend, capability) {
		return fmt.Errorf("backend %q does not support %s capability", slot.backend.Name(), capability)
	}
	r.slots[capability] = slot
	return nil
}

// Resolve returns the backend serving capability. It never touches the
// network; an unconfigured or missing slot yields ErrBackendUnavailable.
func (r *Registry) Resolve(capability Capability) (Backend, error) {
	slot, ok := r.slots[capability]
	if !ok || !slot.IsConfigured() {
		reason := "not registered"
		if ok && slot.reason != "" {
			reason = slot.reason
		}
		return nil, backendUnavailableError("", capability, reason)
	}
	return slot.backend, nil
}

// Available reports whether capability has a configured backend.
func (r *Registry) Available(capability Capability) bool {
	slot, ok := r.slots[capability]
	return ok && slot.IsConfigured()
}

// LogStatus writes one line per registered capability, warning for
// each one that is unconfigured.
func (r *Registry) LogStatus(logger *slog.Logger) {
	caps := make([]string, 0, len(r.slots))
	for c := range r.slots {
		caps = append(caps, string(c))
	}
	sort.Strings(caps)

	for _, c := range caps {
		slot := r.slots[Capability(c)]
		if slot.IsConfigured() {
			logger.Info("generation backend configured",
				"capability", c,
				"backend", slot.backend.Name())
			continue
		}
		logger.Warn("generation backend not configured, capability disabled",
			"capability", c,
			"reason", slot.reason)
	}
}
