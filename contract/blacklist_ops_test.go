package contract

import (
	"testing"
	"time"

	"eventregistry/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlacklistAddAndRemove(t *testing.T) {
	h := newHarness(t)
	h.initialize(5)

	listed, err := h.contract.IsBlacklisted(h.as(""), organizerID)
	require.NoError(t, err)
	assert.False(t, listed)

	require.NoError(t, h.contract.AddToBlacklist(h.as(adminID), organizerID, "chargebacks"))
	listed, err = h.contract.IsBlacklisted(h.as(""), organizerID)
	require.NoError(t, err)
	assert.True(t, listed)

	h.now = h.now.Add(time.Hour)
	require.NoError(t, h.contract.RemoveFromBlacklist(h.as(adminID), organizerID, "appeal accepted"))
	listed, err = h.contract.IsBlacklisted(h.as(""), organizerID)
	require.NoError(t, err)
	assert.False(t, listed)

	key, err := newRegistryKeys(h.stub).blacklistedOrganizer(organizerID)
	require.NoError(t, err)
	assert.NotContains(t, h.stub.State, key)

	log, err := h.contract.GetBlacklistAuditLog(h.as(""))
	require.NoError(t, err)
	assert.Equal(t, []model.BlacklistAuditEntry{
		{Organizer: organizerID, Action: model.BlacklistAdd, Actor: adminID, Timestamp: 1700000000, Reason: "chargebacks"},
		{Organizer: organizerID, Action: model.BlacklistRemove, Actor: adminID, Timestamp: 1700003600, Reason: "appeal accepted"},
	}, log)

	var names []string
	for _, ev := range h.emitted() {
		names = append(names, ev.name)
	}
	assert.Equal(t, []string{"blacklist_add", "blacklist_remove"}, names)
}

func TestBlacklistRequiresAdmin(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, ErrNotInitialized, h.contract.AddToBlacklist(h.as(adminID), organizerID, "x"))

	h.initialize(5)
	before := h.snapshot()
	assert.ErrorIs(t, h.contract.AddToBlacklist(h.as(organizerID), organizerID, "x"), ErrUnauthorized)
	assert.ErrorIs(t, h.contract.RemoveFromBlacklist(h.as(strangerID), organizerID, "x"), ErrUnauthorized)
	assert.Equal(t, before, h.snapshot())
}

func TestBlacklistAuditLogEmpty(t *testing.T) {
	h := newHarness(t)
	log, err := h.contract.GetBlacklistAuditLog(h.as(""))
	require.NoError(t, err)
	assert.NotNil(t, log)
	assert.Empty(t, log)
}

func TestBlacklistValidatesArguments(t *testing.T) {
	h := newHarness(t)
	h.initialize(5)
	assert.ErrorIs(t, h.contract.AddToBlacklist(h.as(adminID), "", "x"), ErrInvalidArgument)

	reason := make([]byte, maxDescriptionLength+1)
	for i := range reason {
		reason[i] = 'r'
	}
	assert.ErrorIs(t, h.contract.AddToBlacklist(h.as(adminID), organizerID, string(reason)), ErrInvalidArgument)
}
