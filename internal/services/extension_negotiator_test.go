package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renato0307/tutor/internal/domain"
)

func newOfferingNegotiator(remaining int) (*ExtensionNegotiator, *SessionClock) {
	clock := NewSessionClock(WarningThresholdSeconds)
	clock.Start(remaining)
	negotiator := NewExtensionNegotiator(clock)
	negotiator.Offer()
	return negotiator, clock
}

func TestExtensionNegotiator_ApplyAddsMinutes(t *testing.T) {
	negotiator, clock := newOfferingNegotiator(1200)

	req, err := negotiator.Apply(15)

	require.NoError(t, err)
	assert.Equal(t, 15, req.Minutes)
	assert.Equal(t, 2100, clock.Remaining())
	assert.False(t, negotiator.Offering())
}

func TestExtensionNegotiator_AtMostOneApplyPerOffer(t *testing.T) {
	negotiator, clock := newOfferingNegotiator(300)

	_, err := negotiator.Apply(5)
	require.NoError(t, err)
	_, err = negotiator.Apply(30)

	assert.ErrorIs(t, err, domain.ErrNoExtensionOffer)
	assert.Equal(t, 600, clock.Remaining())
}

func TestExtensionNegotiator_RejectsUnknownChoice(t *testing.T) {
	negotiator, clock := newOfferingNegotiator(300)

	_, err := negotiator.Apply(10)

	var ve *domain.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.True(t, negotiator.Offering(), "offer stays open after a bad choice")
	assert.Equal(t, 300, clock.Remaining())
}

func TestExtensionNegotiator_PendingIsDistinctFromApplied(t *testing.T) {
	negotiator, clock := newOfferingNegotiator(300)

	require.NoError(t, negotiator.Select(30))
	pending, ok := negotiator.Pending()
	require.True(t, ok)
	assert.Equal(t, 30, pending.Minutes)
	assert.Equal(t, 300, clock.Remaining())

	req, err := negotiator.ApplySelected()
	require.NoError(t, err)
	assert.Equal(t, 30, req.Minutes)
	assert.Equal(t, 300+1800, clock.Remaining())
	_, ok = negotiator.Pending()
	assert.False(t, ok)
}

func TestExtensionNegotiator_ApplySelectedWithoutChoice(t *testing.T) {
	negotiator, _ := newOfferingNegotiator(300)

	_, err := negotiator.ApplySelected()

	assert.ErrorContains(t, err, "no choice selected")
}

func TestExtensionNegotiator_DismissAndClose(t *testing.T) {
	negotiator, _ := newOfferingNegotiator(300)
	require.NoError(t, negotiator.Select(5))

	assert.True(t, negotiator.Dismiss())
	assert.False(t, negotiator.Dismiss())
	assert.ErrorIs(t, negotiator.Select(5), domain.ErrNoExtensionOffer)

	negotiator.Offer()
	_, ok := negotiator.Pending()
	assert.False(t, ok, "new offer starts without a selection")
	negotiator.Close()
	assert.False(t, negotiator.Offering())
}

func TestExtensionNegotiator_ChoicesAreACopy(t *testing.T) {
	negotiator, _ := newOfferingNegotiator(300)

	choices := negotiator.Choices()
	choices[0] = 99

	assert.Equal(t, []int{5, 15, 30}, negotiator.Choices())
}
