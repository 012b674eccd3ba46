package contract

import (
	"fmt"
	"strings"

	"eventregistry/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Lifecycle: Organizer Operations ---

// RegisterEvent creates the record for eventID on behalf of organizer. The
// caller must be organizer. The current platform fee is copied into the
// record and never follows later fee changes. eventID is opaque and is stored
// exactly as given.
func (c *EventRegistryContract) RegisterEvent(ctx contractapi.TransactionContextInterface, eventID string, organizer string, payout string) error {
	organizer = strings.TrimSpace(organizer)
	payout = strings.TrimSpace(payout)
	if err := c.validateRequiredString(eventID, "eventID", maxStringInputLength); err != nil {
		return err
	}
	if err := c.validateRequiredString(organizer, "organizer", maxPrincipalLength); err != nil {
		return err
	}
	if err := c.validateRequiredString(payout, "payout", maxPrincipalLength); err != nil {
		return err
	}

	if err := NewIdentityGate(ctx).RequireIdentity(organizer); err != nil {
		return err
	}

	ls := newLedgerStore(ctx.GetStub())
	exists, err := ls.eventExists(eventID)
	if err != nil {
		return fmt.Errorf("RegisterEvent: failed to check for existing event '%s': %w", eventID, err)
	}
	if exists {
		return ErrEventAlreadyExists
	}

	initialized, err := ls.isInitialized()
	if err != nil {
		return fmt.Errorf("RegisterEvent: %w", err)
	}
	if !initialized {
		logger.Warningf("RegisterEvent: registry is not initialized; event '%s' is registered with a 0 bps fee", eventID)
	}
	feeBps, err := ls.getPlatformFee()
	if err != nil {
		return fmt.Errorf("RegisterEvent: %w", err)
	}
	now, err := c.getCurrentTxSeconds(ctx)
	if err != nil {
		return fmt.Errorf("RegisterEvent: %w", err)
	}

	record := &model.EventRecord{
		EventID:   eventID,
		Organizer: organizer,
		Payout:    payout,
		FeeBps:    feeBps,
		Active:    true,
		CreatedAt: now,
	}
	if err := ls.putEvent(record); err != nil {
		return fmt.Errorf("RegisterEvent: failed to save event '%s': %w", eventID, err)
	}

	c.emitRegistryEvent(ctx, eventRegisteredEventName, map[string]interface{}{
		"eventId":   eventID,
		"organizer": organizer,
		"payout":    payout,
		"feeBps":    feeBps,
	})
	logger.Infof("Event '%s' registered by organizer '%s' with fee %d bps", eventID, organizer, feeBps)
	return nil
}

// UpdateEventStatus sets the active flag. Only the event's organizer may call it.
func (c *EventRegistryContract) UpdateEventStatus(ctx contractapi.TransactionContextInterface, eventID string, active bool) error {
	if err := c.validateRequiredString(eventID, "eventID", maxStringInputLength); err != nil {
		return err
	}

	ls := newLedgerStore(ctx.GetStub())
	record, err := ls.getEvent(eventID)
	if err != nil {
		return wrapOpError("UpdateEventStatus", err)
	}
	if err := NewIdentityGate(ctx).RequireIdentity(record.Organizer); err != nil {
		return err
	}

	record.Active = active
	if err := ls.updateEvent(record); err != nil {
		return wrapOpError("UpdateEventStatus", err)
	}

	c.emitRegistryEvent(ctx, eventStatusEventName, map[string]interface{}{
		"eventId": eventID,
		"active":  active,
	})
	logger.Infof("Event '%s' status set to active=%t by organizer '%s'", eventID, active, record.Organizer)
	return nil
}

// StoreEvent writes a caller-supplied record directly. It is kept for older
// clients and is restricted to the admin. The organizer of an existing record
// cannot be changed through it.
func (c *EventRegistryContract) StoreEvent(ctx contractapi.TransactionContextInterface, record model.EventRecord) error {
	record.Organizer = strings.TrimSpace(record.Organizer)
	record.Payout = strings.TrimSpace(record.Payout)
	if err := c.validateRequiredString(record.EventID, "record.eventId", maxStringInputLength); err != nil {
		return err
	}
	if err := c.validateRequiredString(record.Organizer, "record.organizer", maxPrincipalLength); err != nil {
		return err
	}
	if err := c.validateRequiredString(record.Payout, "record.payout", maxPrincipalLength); err != nil {
		return err
	}

	ls := newLedgerStore(ctx.GetStub())
	admin, err := c.requireAdmin(ctx, ls)
	if err != nil {
		return wrapOpError("StoreEvent", err)
	}
	if record.FeeBps > maxBps {
		return ErrFeeOutOfRange
	}

	existing, err := ls.getEvent(record.EventID)
	switch {
	case err == ErrEventNotFound:
	case err != nil:
		return fmt.Errorf("StoreEvent: %w", err)
	case existing.Organizer != record.Organizer:
		return fmt.Errorf("%w: event '%s' belongs to organizer '%s'", ErrInvalidArgument, record.EventID, existing.Organizer)
	}

	if err := ls.putEvent(&record); err != nil {
		return fmt.Errorf("StoreEvent: failed to save event '%s': %w", record.EventID, err)
	}
	logger.Infof("Event '%s' stored directly by admin '%s'", record.EventID, admin)
	return nil
}

// --- Query Functions ---

// GetEvent returns the record for eventID. Use EventExists to probe without failing.
func (c *EventRegistryContract) GetEvent(ctx contractapi.TransactionContextInterface, eventID string) (*model.EventRecord, error) {
	logger.Debugf("GetEvent: Querying event '%s'", eventID)
	record, err := newLedgerStore(ctx.GetStub()).getEvent(eventID)
	if err != nil {
		return nil, wrapOpError("GetEvent", err)
	}
	return record, nil
}

// GetEventPaymentInfo returns where and at what fee payments for eventID go.
func (c *EventRegistryContract) GetEventPaymentInfo(ctx contractapi.TransactionContextInterface, eventID string) (*model.PaymentInfo, error) {
	record, err := newLedgerStore(ctx.GetStub()).getEvent(eventID)
	if err != nil {
		return nil, wrapOpError("GetEventPaymentInfo", err)
	}
	return record.PaymentInfo(), nil
}

func (c *EventRegistryContract) EventExists(ctx contractapi.TransactionContextInterface, eventID string) (bool, error) {
	exists, err := newLedgerStore(ctx.GetStub()).eventExists(eventID)
	if err != nil {
		return false, fmt.Errorf("EventExists: %w", err)
	}
	return exists, nil
}

// GetOrganizerEvents returns every event ID of organizer in registration
// order. Large organizers should page with GetOrganizerEventShard.
func (c *EventRegistryContract) GetOrganizerEvents(ctx contractapi.TransactionContextInterface, organizer string) ([]string, error) {
	ids, err := newOrganizerIndex(newLedgerStore(ctx.GetStub())).events(strings.TrimSpace(organizer))
	if err != nil {
		return nil, fmt.Errorf("GetOrganizerEvents: %w", err)
	}
	logger.Debugf("GetOrganizerEvents: Returning %d events for organizer '%s'", len(ids), organizer)
	return ids, nil
}

// GetOrganizerEventShard returns one shard of at most 50 event IDs.
func (c *EventRegistryContract) GetOrganizerEventShard(ctx contractapi.TransactionContextInterface, organizer string, shardID uint32) ([]string, error) {
	ids, err := newOrganizerIndex(newLedgerStore(ctx.GetStub())).shard(strings.TrimSpace(organizer), shardID)
	if err != nil {
		return nil, fmt.Errorf("GetOrganizerEventShard: %w", err)
	}
	return ids, nil
}

// GetOrganizerEventCount returns how many events organizer has registered.
func (c *EventRegistryContract) GetOrganizerEventCount(ctx contractapi.TransactionContextInterface, organizer string) (uint32, error) {
	count, err := newOrganizerIndex(newLedgerStore(ctx.GetStub())).count(strings.TrimSpace(organizer))
	if err != nil {
		return 0, fmt.Errorf("GetOrganizerEventCount: %w", err)
	}
	return count, nil
}
