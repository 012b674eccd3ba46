package contract

import (
	"errors"
	"fmt"
	"strings"

	"eventregistry/model"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var logger = flogging.MustGetLogger("eventregistry.registrycontract")

// Constants for input validation and limits
const (
	maxBps               = 10000
	maxStringInputLength = 256
	maxPrincipalLength   = 4096 // client IDs embed full subject and issuer DNs
	maxDescriptionLength = 1024
)

// EventRegistryContract keeps the payment-routing records of events, the
// per-organizer index over them and the registry's administrative settings.
// @contract:EventRegistryContract
type EventRegistryContract struct {
	contractapi.Contract
}

// Instantiate is called during chaincode instantiation.
func (c *EventRegistryContract) Instantiate(ctx contractapi.TransactionContextInterface) {
	logger.Info("EventRegistryContract Instantiated/Upgraded")
}

// Initialize sets the admin and the initial platform fee. The first caller
// wins; no identity is challenged.
func (c *EventRegistryContract) Initialize(ctx contractapi.TransactionContextInterface, admin string, platformFeeBps uint32) error {
	ls := newLedgerStore(ctx.GetStub())

	_, adminSet, err := ls.getAdmin()
	if err != nil {
		return fmt.Errorf("Initialize: %w", err)
	}
	feeSet, err := ls.hasPlatformFee()
	if err != nil {
		return fmt.Errorf("Initialize: %w", err)
	}
	if adminSet || feeSet {
		logger.Info("Initialize: registry already initialized, rejecting call")
		return ErrAlreadyInitialized
	}
	if platformFeeBps > maxBps {
		return ErrFeeOutOfRange
	}
	admin = strings.TrimSpace(admin)
	if err := c.validateRequiredString(admin, "admin", maxPrincipalLength); err != nil {
		return err
	}

	if err := ls.setAdmin(admin); err != nil {
		return fmt.Errorf("Initialize: %w", err)
	}
	if err := ls.setPlatformFee(platformFeeBps); err != nil {
		return fmt.Errorf("Initialize: %w", err)
	}
	if err := ls.setInitialized(); err != nil {
		return fmt.Errorf("Initialize: %w", err)
	}
	logger.Infof("Registry initialized with admin '%s' and platform fee %d bps", admin, platformFeeBps)
	logger.Debugf("Initialize submitted by '%s'", MustGetCallerID(ctx))
	return nil
}

// IsInitialized reports whether Initialize has completed.
func (c *EventRegistryContract) IsInitialized(ctx contractapi.TransactionContextInterface) (bool, error) {
	initialized, err := newLedgerStore(ctx.GetStub()).isInitialized()
	if err != nil {
		return false, fmt.Errorf("IsInitialized: %w", err)
	}
	return initialized, nil
}

// GetAdmin returns the admin identity.
func (c *EventRegistryContract) GetAdmin(ctx contractapi.TransactionContextInterface) (string, error) {
	admin, found, err := newLedgerStore(ctx.GetStub()).getAdmin()
	if err != nil {
		return "", fmt.Errorf("GetAdmin: %w", err)
	}
	if !found {
		return "", ErrNotInitialized
	}
	return admin, nil
}

// GetRegistryInfo returns every administrative setting in one read.
func (c *EventRegistryContract) GetRegistryInfo(ctx contractapi.TransactionContextInterface) (*model.RegistryInfo, error) {
	ls := newLedgerStore(ctx.GetStub())
	info := &model.RegistryInfo{}
	var err error
	if info.Initialized, err = ls.isInitialized(); err != nil {
		return nil, fmt.Errorf("GetRegistryInfo: %w", err)
	}
	if info.Admin, _, err = ls.getAdmin(); err != nil {
		return nil, fmt.Errorf("GetRegistryInfo: %w", err)
	}
	if info.PlatformFeeBps, err = ls.getPlatformFee(); err != nil {
		return nil, fmt.Errorf("GetRegistryInfo: %w", err)
	}
	if info.PlatformWallet, err = ls.getString(ls.keys.platformWallet); err != nil {
		return nil, fmt.Errorf("GetRegistryInfo: %w", err)
	}
	if info.TicketPaymentContract, err = ls.getString(ls.keys.ticketPaymentContract); err != nil {
		return nil, fmt.Errorf("GetRegistryInfo: %w", err)
	}
	if info.GlobalPromoBps, err = ls.getUint32(ls.keys.globalPromoBps); err != nil {
		return nil, fmt.Errorf("GetRegistryInfo: %w", err)
	}
	if info.PromoExpiry, err = ls.getUint64(ls.keys.promoExpiry); err != nil {
		return nil, fmt.Errorf("GetRegistryInfo: %w", err)
	}
	return info, nil
}

// --- Core Helper Methods (used across multiple operations) ---

// getCurrentTxSeconds returns the transaction timestamp in unix seconds.
func (c *EventRegistryContract) getCurrentTxSeconds(ctx contractapi.TransactionContextInterface) (uint64, error) {
	ts, err := ctx.GetStub().GetTxTimestamp()
	if err != nil {
		return 0, fmt.Errorf("failed to get transaction timestamp: %w", err)
	}
	if ts.GetSeconds() < 0 {
		return 0, nil
	}
	return uint64(ts.GetSeconds()), nil
}

// requireAdmin loads the admin and challenges the caller against it.
func (c *EventRegistryContract) requireAdmin(ctx contractapi.TransactionContextInterface, ls *ledgerStore) (string, error) {
	admin, found, err := ls.getAdmin()
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrNotInitialized
	}
	if err := NewIdentityGate(ctx).RequireIdentity(admin); err != nil {
		return "", err
	}
	return admin, nil
}

// --- Validation Helper Functions ---
func (c *EventRegistryContract) validateRequiredString(input, field string, max int) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidArgument, field)
	}
	if len(input) > max {
		return fmt.Errorf("%w: %s exceeds max length %d", ErrInvalidArgument, field, max)
	}
	return nil
}

func (c *EventRegistryContract) validateOptionalString(input, field string, max int) error {
	if input != "" && len(input) > max {
		return fmt.Errorf("%w: %s exceeds max length %d", ErrInvalidArgument, field, max)
	}
	return nil
}

// isTagError reports whether err is one of the stable abort tags that must
// reach the client unwrapped.
func isTagError(err error) bool {
	for _, tag := range []error{ErrAlreadyInitialized, ErrFeeOutOfRange, ErrEventAlreadyExists, ErrEventNotFound, ErrNotInitialized} {
		if err == tag {
			return true
		}
	}
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrInvalidArgument)
}

// wrapOpError prefixes infrastructure failures with the operation name and
// passes abort tags through untouched.
func wrapOpError(op string, err error) error {
	if err == nil || isTagError(err) {
		return err
	}
	return fmt.Errorf("%s: %w", op, err)
}
