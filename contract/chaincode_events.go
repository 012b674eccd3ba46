package contract

import (
	"encoding/json"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// Chaincode event names. Fabric delivers at most one event per transaction,
// and every transaction function here emits at most one.
const (
	eventRegisteredEventName  = "event_reg"
	feeUpdatedEventName       = "fee_upd"
	eventStatusEventName      = "event_status"
	blacklistAddedEventName   = "blacklist_add"
	blacklistRemovedEventName = "blacklist_remove"
)

// emitRegistryEvent publishes payload as JSON. Emission failures are logged,
// never returned: the state change is the authoritative record.
func (c *EventRegistryContract) emitRegistryEvent(ctx contractapi.TransactionContextInterface, eventName string, payload map[string]interface{}) {
	eventBytes, err := json.Marshal(payload)
	if err != nil {
		logger.Warningf("emitRegistryEvent: Failed to marshal payload for event '%s': %v", eventName, err)
		return
	}
	if errSet := ctx.GetStub().SetEvent(eventName, eventBytes); errSet != nil {
		logger.Warningf("emitRegistryEvent: Failed to set event '%s': %v", eventName, errSet)
	}
}
