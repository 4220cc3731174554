package services

import (
	"slices"

	"github.com/renato0307/tutor/internal/domain"
	"github.com/renato0307/tutor/internal/logging"
)

// ExtensionNegotiator runs the extension offer opened by a warning edge.
// A selection stays pending until it is applied, and each offer can be applied
// at most once. Applying adds time to the session clock; advising the engine of
// the new duration is left to the caller.
type ExtensionNegotiator struct {
	clock    *SessionClock
	offering bool
	pending  *domain.ExtensionRequest
}

// NewExtensionNegotiator creates a negotiator that extends clock
func NewExtensionNegotiator(clock *SessionClock) *ExtensionNegotiator {
	return &ExtensionNegotiator{clock: clock}
}

// Choices returns the minutes that can be offered
func (n *ExtensionNegotiator) Choices() []int {
	return slices.Clone(domain.ExtensionChoices)
}

// Offer opens a new offer, discarding any stale selection
func (n *ExtensionNegotiator) Offer() {
	n.offering = true
	n.pending = nil
	logging.Logger.Debug("Extension offered", "remaining", n.clock.Remaining())
}

// Offering reports whether an offer is open
func (n *ExtensionNegotiator) Offering() bool {
	return n.offering
}

// Select records a pending choice without applying it
func (n *ExtensionNegotiator) Select(minutes int) error {
	if !n.offering {
		return domain.ErrNoExtensionOffer
	}
	req, err := domain.NewExtensionRequest(minutes)
	if err != nil {
		return err
	}
	n.pending = &req
	return nil
}

// Pending returns the selected but not yet applied choice
func (n *ExtensionNegotiator) Pending() (domain.ExtensionRequest, bool) {
	if n.pending == nil {
		return domain.ExtensionRequest{}, false
	}
	return *n.pending, true
}

// Apply validates minutes, adds them to the clock and closes the offer
func (n *ExtensionNegotiator) Apply(minutes int) (domain.ExtensionRequest, error) {
	if !n.offering {
		return domain.ExtensionRequest{}, domain.ErrNoExtensionOffer
	}
	req, err := domain.NewExtensionRequest(minutes)
	if err != nil {
		return domain.ExtensionRequest{}, err
	}

	n.clock.Add(req.Seconds())
	n.offering = false
	n.pending = nil
	logging.Logger.Info("Extension applied", "minutes", req.Minutes, "remaining", n.clock.Remaining())
	return req, nil
}

// ApplySelected applies the pending choice
func (n *ExtensionNegotiator) ApplySelected() (domain.ExtensionRequest, error) {
	if !n.offering {
		return domain.ExtensionRequest{}, domain.ErrNoExtensionOffer
	}
	if n.pending == nil {
		return domain.ExtensionRequest{}, domain.NewValidationError("extension", "no choice selected")
	}
	return n.Apply(n.pending.Minutes)
}

// Dismiss closes the offer without extending. Returns false if no offer was open.
func (n *ExtensionNegotiator) Dismiss() bool {
	if !n.offering {
		return false
	}
	n.Close()
	logging.Logger.Debug("Extension dismissed")
	return true
}

// Close withdraws any open offer
func (n *ExtensionNegotiator) Close() {
	n.offering = false
	n.pending = nil
}
