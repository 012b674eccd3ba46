package contract

import (
	"fmt"

	"github.com/hyperledger/fabric-chaincode-go/shim"
)

// Object types for composite keys. The object type is the discriminant of the
// key space; Fabric NUL-delimits attributes, so variants never collide.
const (
	adminObjectType                 = "Admin"
	platformFeeObjectType           = "PlatformFee"
	initializedObjectType           = "Initialized"
	platformWalletObjectType        = "PlatformWallet"
	eventObjectType                 = "Event"               // Attribute: eventID
	organizerEventCountObjectType   = "OrganizerEventCount" // Attribute: organizer
	organizerEventShardObjectType   = "OrganizerEventShard" // Attributes: organizer, shardID
	organizerEventObjectType        = "OrganizerEvent"      // Attributes: organizer, eventID
	ticketPaymentContractObjectType = "TicketPaymentContract"
	blacklistedOrganizerObjectType  = "BlacklistedOrganizer" // Attribute: organizer
	blacklistLogObjectType          = "BlacklistLog"
	globalPromoBpsObjectType        = "GlobalPromoBps"
	promoExpiryObjectType           = "PromoExpiry"
)

// registryKeys builds every key the registry reads or writes.
type registryKeys struct {
	stub shim.ChaincodeStubInterface
}

func newRegistryKeys(stub shim.ChaincodeStubInterface) registryKeys {
	return registryKeys{stub: stub}
}

func (k registryKeys) singleton(objectType string) (string, error) {
	key, err := k.stub.CreateCompositeKey(objectType, []string{})
	if err != nil {
		return "", fmt.Errorf("failed to create %s key: %w", objectType, err)
	}
	return key, nil
}

func (k registryKeys) keyed(objectType string, attrs ...string) (string, error) {
	key, err := k.stub.CreateCompositeKey(objectType, attrs)
	if err != nil {
		return "", fmt.Errorf("failed to create %s key for %v: %w", objectType, attrs, err)
	}
	return key, nil
}

func (k registryKeys) admin() (string, error)       { return k.singleton(adminObjectType) }
func (k registryKeys) platformFee() (string, error) { return k.singleton(platformFeeObjectType) }
func (k registryKeys) initialized() (string, error) { return k.singleton(initializedObjectType) }
func (k registryKeys) platformWallet() (string, error) {
	return k.singleton(platformWalletObjectType)
}
func (k registryKeys) ticketPaymentContract() (string, error) {
	return k.singleton(ticketPaymentContractObjectType)
}
func (k registryKeys) blacklistLog() (string, error)   { return k.singleton(blacklistLogObjectType) }
func (k registryKeys) globalPromoBps() (string, error) { return k.singleton(globalPromoBpsObjectType) }
func (k registryKeys) promoExpiry() (string, error)    { return k.singleton(promoExpiryObjectType) }

func (k registryKeys) event(eventID string) (string, error) {
	return k.keyed(eventObjectType, eventID)
}

func (k registryKeys) organizerEventCount(organizer string) (string, error) {
	return k.keyed(organizerEventCountObjectType, organizer)
}

// organizerEventShard pads the shard number so partial-key range scans return
// shards in numeric order.
func (k registryKeys) organizerEventShard(organizer string, shardID uint32) (string, error) {
	return k.keyed(organizerEventShardObjectType, organizer, fmt.Sprintf("%010d", shardID))
}

func (k registryKeys) organizerEvent(organizer, eventID string) (string, error) {
	return k.keyed(organizerEventObjectType, organizer, eventID)
}

func (k registryKeys) blacklistedOrganizer(organizer string) (string, error) {
	return k.keyed(blacklistedOrganizerObjectType, organizer)
}
