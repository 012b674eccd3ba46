package contract

import (
	"fmt"
	"strings"

	"eventregistry/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Admin Operations: Blacklist ---

func (c *EventRegistryContract) AddToBlacklist(ctx contractapi.TransactionContextInterface, organizer string, reason string) error {
	return c.changeBlacklist(ctx, organizer, model.BlacklistAdd, reason)
}

func (c *EventRegistryContract) RemoveFromBlacklist(ctx contractapi.TransactionContextInterface, organizer string, reason string) error {
	return c.changeBlacklist(ctx, organizer, model.BlacklistRemove, reason)
}

// changeBlacklist flips the organizer's flag and appends an audit entry,
// even when the flag already had the requested value.
func (c *EventRegistryContract) changeBlacklist(ctx contractapi.TransactionContextInterface, organizer string, action model.BlacklistAction, reason string) error {
	op := "AddToBlacklist"
	if action == model.BlacklistRemove {
		op = "RemoveFromBlacklist"
	}
	organizer = strings.TrimSpace(organizer)
	if err := c.validateRequiredString(organizer, "organizer", maxPrincipalLength); err != nil {
		return err
	}
	if err := c.validateOptionalString(reason, "reason", maxDescriptionLength); err != nil {
		return err
	}

	ls := newLedgerStore(ctx.GetStub())
	admin, err := c.requireAdmin(ctx, ls)
	if err != nil {
		return wrapOpError(op, err)
	}
	now, err := c.getCurrentTxSeconds(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := ls.setBlacklisted(organizer, action == model.BlacklistAdd); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	entry := model.BlacklistAuditEntry{
		Organizer: organizer,
		Action:    action,
		Actor:     admin,
		Timestamp: now,
		Reason:    reason,
	}
	if err := ls.appendBlacklistAuditEntry(entry); err != nil {
		return fmt.Errorf("%s: failed to append audit entry: %w", op, err)
	}

	eventName := blacklistAddedEventName
	if action == model.BlacklistRemove {
		eventName = blacklistRemovedEventName
	}
	c.emitRegistryEvent(ctx, eventName, map[string]interface{}{
		"organizer": organizer,
		"actor":     admin,
		"reason":    reason,
	})
	logger.Infof("%s: organizer '%s' by admin '%s'. Reason: %s", op, organizer, admin, reason)
	return nil
}

func (c *EventRegistryContract) IsBlacklisted(ctx contractapi.TransactionContextInterface, organizer string) (bool, error) {
	listed, err := newLedgerStore(ctx.GetStub()).isBlacklisted(strings.TrimSpace(organizer))
	if err != nil {
		return false, fmt.Errorf("IsBlacklisted: %w", err)
	}
	return listed, nil
}

// GetBlacklistAuditLog returns every blacklist change, oldest first.
func (c *EventRegistryContract) GetBlacklistAuditLog(ctx contractapi.TransactionContextInterface) ([]model.BlacklistAuditEntry, error) {
	entries, err := newLedgerStore(ctx.GetStub()).getBlacklistAuditLog()
	if err != nil {
		return nil, fmt.Errorf("GetBlacklistAuditLog: %w", err)
	}
	logger.Debugf("GetBlacklistAuditLog: Returning %d entries", len(entries))
	return entries, nil
}
