package contract

import (
	"encoding/json"
	"fmt"

	"eventregistry/model"

	"github.com/hyperledger/fabric-chaincode-go/shim"
)

// ledgerStore is a typed JSON layer over the world state. Writes become part
// of the transaction's write set and are only committed if the transaction
// function returns without error.
type ledgerStore struct {
	stub shim.ChaincodeStubInterface
	keys registryKeys
}

func newLedgerStore(stub shim.ChaincodeStubInterface) *ledgerStore {
	return &ledgerStore{stub: stub, keys: newRegistryKeys(stub)}
}

// getJSON loads key into out. found is false when the key is absent.
func (ls *ledgerStore) getJSON(key string, out interface{}) (bool, error) {
	raw, err := ls.stub.GetState(key)
	if err != nil {
		return false, fmt.Errorf("failed to read state for key '%s': %w", key, err)
	}
	if raw == nil {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal state for key '%s': %w", key, err)
	}
	return true, nil
}

func (ls *ledgerStore) putJSON(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key '%s': %w", key, err)
	}
	if err := ls.stub.PutState(key, raw); err != nil {
		return fmt.Errorf("failed to write state for key '%s': %w", key, err)
	}
	return nil
}

func (ls *ledgerStore) has(key string) (bool, error) {
	raw, err := ls.stub.GetState(key)
	if err != nil {
		return false, fmt.Errorf("failed to read state for key '%s': %w", key, err)
	}
	return raw != nil, nil
}

func (ls *ledgerStore) del(key string) error {
	if err := ls.stub.DelState(key); err != nil {
		return fmt.Errorf("failed to delete state for key '%s': %w", key, err)
	}
	return nil
}

// --- Administration ---

func (ls *ledgerStore) getAdmin() (string, bool, error) {
	key, err := ls.keys.admin()
	if err != nil {
		return "", false, err
	}
	var admin string
	found, err := ls.getJSON(key, &admin)
	return admin, found, err
}

func (ls *ledgerStore) setAdmin(admin string) error {
	key, err := ls.keys.admin()
	if err != nil {
		return err
	}
	return ls.putJSON(key, admin)
}

// getPlatformFee returns 0 when no fee has been written.
func (ls *ledgerStore) getPlatformFee() (uint32, error) {
	key, err := ls.keys.platformFee()
	if err != nil {
		return 0, err
	}
	var fee uint32
	_, err = ls.getJSON(key, &fee)
	return fee, err
}

func (ls *ledgerStore) hasPlatformFee() (bool, error) {
	key, err := ls.keys.platformFee()
	if err != nil {
		return false, err
	}
	return ls.has(key)
}

func (ls *ledgerStore) setPlatformFee(fee uint32) error {
	key, err := ls.keys.platformFee()
	if err != nil {
		return err
	}
	return ls.putJSON(key, fee)
}

func (ls *ledgerStore) isInitialized() (bool, error) {
	key, err := ls.keys.initialized()
	if err != nil {
		return false, err
	}
	var initialized bool
	_, err = ls.getJSON(key, &initialized)
	return initialized, err
}

func (ls *ledgerStore) setInitialized() error {
	key, err := ls.keys.initialized()
	if err != nil {
		return err
	}
	return ls.putJSON(key, true)
}

func (ls *ledgerStore) getString(keyFn func() (string, error)) (string, error) {
	key, err := keyFn()
	if err != nil {
		return "", err
	}
	var value string
	_, err = ls.getJSON(key, &value)
	return value, err
}

func (ls *ledgerStore) putValue(keyFn func() (string, error), value interface{}) error {
	key, err := keyFn()
	if err != nil {
		return err
	}
	return ls.putJSON(key, value)
}

// --- Events ---

func (ls *ledgerStore) getEvent(eventID string) (*model.EventRecord, error) {
	key, err := ls.keys.event(eventID)
	if err != nil {
		return nil, err
	}
	var record model.EventRecord
	found, err := ls.getJSON(key, &record)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrEventNotFound
	}
	return &record, nil
}

func (ls *ledgerStore) eventExists(eventID string) (bool, error) {
	key, err := ls.keys.event(eventID)
	if err != nil {
		return false, err
	}
	return ls.has(key)
}

// putEvent writes the record and adds it to its organizer's index if the
// membership witness is not already set.
func (ls *ledgerStore) putEvent(record *model.EventRecord) error {
	key, err := ls.keys.event(record.EventID)
	if err != nil {
		return err
	}
	if err := ls.putJSON(key, record); err != nil {
		return err
	}
	_, err = newOrganizerIndex(ls).add(record.Organizer, record.EventID)
	return err
}

// updateEvent overwrites an existing record without touching the index.
func (ls *ledgerStore) updateEvent(record *model.EventRecord) error {
	key, err := ls.keys.event(record.EventID)
	if err != nil {
		return err
	}
	exists, err := ls.has(key)
	if err != nil {
		return err
	}
	if !exists {
		return ErrEventNotFound
	}
	return ls.putJSON(key, record)
}

// --- Blacklist ---

func (ls *ledgerStore) isBlacklisted(organizer string) (bool, error) {
	key, err := ls.keys.blacklistedOrganizer(organizer)
	if err != nil {
		return false, err
	}
	var listed bool
	_, err = ls.getJSON(key, &listed)
	return listed, err
}

func (ls *ledgerStore) setBlacklisted(organizer string, listed bool) error {
	key, err := ls.keys.blacklistedOrganizer(organizer)
	if err != nil {
		return err
	}
	if !listed {
		return ls.del(key)
	}
	return ls.putJSON(key, true)
}

// getBlacklistAuditLog returns an empty slice, never nil, when no entry exists.
func (ls *ledgerStore) getBlacklistAuditLog() ([]model.BlacklistAuditEntry, error) {
	key, err := ls.keys.blacklistLog()
	if err != nil {
		return nil, err
	}
	entries := []model.BlacklistAuditEntry{}
	if _, err := ls.getJSON(key, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []model.BlacklistAuditEntry{}
	}
	return entries, nil
}

// appendBlacklistAuditEntry rewrites the whole log; it is a single value.
func (ls *ledgerStore) appendBlacklistAuditEntry(entry model.BlacklistAuditEntry) error {
	entries, err := ls.getBlacklistAuditLog()
	if err != nil {
		return err
	}
	key, err := ls.keys.blacklistLog()
	if err != nil {
		return err
	}
	return ls.putJSON(key, append(entries, entry))
}

// --- Promo ---

func (ls *ledgerStore) getUint32(keyFn func() (string, error)) (uint32, error) {
	key, err := keyFn()
	if err != nil {
		return 0, err
	}
	var value uint32
	_, err = ls.getJSON(key, &value)
	return value, err
}

func (ls *ledgerStore) getUint64(keyFn func() (string, error)) (uint64, error) {
	key, err := keyFn()
	if err != nil {
		return 0, err
	}
	var value uint64
	_, err = ls.getJSON(key, &value)
	return value, err
}
