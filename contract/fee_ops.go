package contract

import (
	"fmt"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// SetPlatformFee changes the fee copied into newly registered events. Records
// registered earlier keep their own fee.
func (c *EventRegistryContract) SetPlatformFee(ctx contractapi.TransactionContextInterface, newFeeBps uint32) error {
	ls := newLedgerStore(ctx.GetStub())
	admin, err := c.requireAdmin(ctx, ls)
	if err != nil {
		return wrapOpError("SetPlatformFee", err)
	}
	if newFeeBps > maxBps {
		return ErrFeeOutOfRange
	}

	if err := ls.setPlatformFee(newFeeBps); err != nil {
		return fmt.Errorf("SetPlatformFee: %w", err)
	}

	c.emitRegistryEvent(ctx, feeUpdatedEventName, map[string]interface{}{"feeBps": newFeeBps})
	logger.Infof("Platform fee set to %d bps by admin '%s'", newFeeBps, admin)
	return nil
}

// GetPlatformFee returns the current platform fee, 0 if never set.
func (c *EventRegistryContract) GetPlatformFee(ctx contractapi.TransactionContextInterface) (uint32, error) {
	fee, err := newLedgerStore(ctx.GetStub()).getPlatformFee()
	if err != nil {
		return 0, fmt.Errorf("GetPlatformFee: %w", err)
	}
	return fee, nil
}
