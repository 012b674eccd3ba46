package contract

import (
	"fmt"
	"strings"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
)

// --- Admin Operations: Promo, Payment Component, Platform Wallet ---
// The registry stores these settings for clients to read; it never applies
// the promo or dispatches to the payment component itself.

func (c *EventRegistryContract) SetGlobalPromoBps(ctx contractapi.TransactionContextInterface, promoBps uint32) error {
	ls := newLedgerStore(ctx.GetStub())
	admin, err := c.requireAdmin(ctx, ls)
	if err != nil {
		return wrapOpError("SetGlobalPromoBps", err)
	}
	if promoBps > maxBps {
		return ErrFeeOutOfRange
	}
	if err := ls.putValue(ls.keys.globalPromoBps, promoBps); err != nil {
		return fmt.Errorf("SetGlobalPromoBps: %w", err)
	}
	logger.Infof("Global promo set to %d bps by admin '%s'", promoBps, admin)
	return nil
}

func (c *EventRegistryContract) GetGlobalPromoBps(ctx contractapi.TransactionContextInterface) (uint32, error) {
	ls := newLedgerStore(ctx.GetStub())
	promoBps, err := ls.getUint32(ls.keys.globalPromoBps)
	if err != nil {
		return 0, fmt.Errorf("GetGlobalPromoBps: %w", err)
	}
	return promoBps, nil
}

// SetPromoExpiry stores the unix second after which clients should stop
// applying the global promo.
func (c *EventRegistryContract) SetPromoExpiry(ctx contractapi.TransactionContextInterface, expiry uint64) error {
	ls := newLedgerStore(ctx.GetStub())
	admin, err := c.requireAdmin(ctx, ls)
	if err != nil {
		return wrapOpError("SetPromoExpiry", err)
	}
	if err := ls.putValue(ls.keys.promoExpiry, expiry); err != nil {
		return fmt.Errorf("SetPromoExpiry: %w", err)
	}
	logger.Infof("Promo expiry set to %d by admin '%s'", expiry, admin)
	return nil
}

func (c *EventRegistryContract) GetPromoExpiry(ctx contractapi.TransactionContextInterface) (uint64, error) {
	ls := newLedgerStore(ctx.GetStub())
	expiry, err := ls.getUint64(ls.keys.promoExpiry)
	if err != nil {
		return 0, fmt.Errorf("GetPromoExpiry: %w", err)
	}
	return expiry, nil
}

// SetTicketPaymentContract advertises the payment component clients should use.
func (c *EventRegistryContract) SetTicketPaymentContract(ctx contractapi.TransactionContextInterface, paymentContract string) error {
	return c.setPrincipalSetting(ctx, "SetTicketPaymentContract", ticketPaymentContractObjectType, paymentContract)
}

// GetTicketPaymentContract returns "" when no component has been set.
func (c *EventRegistryContract) GetTicketPaymentContract(ctx contractapi.TransactionContextInterface) (string, error) {
	ls := newLedgerStore(ctx.GetStub())
	value, err := ls.getString(ls.keys.ticketPaymentContract)
	if err != nil {
		return "", fmt.Errorf("GetTicketPaymentContract: %w", err)
	}
	return value, nil
}

func (c *EventRegistryContract) SetPlatformWallet(ctx contractapi.TransactionContextInterface, wallet string) error {
	return c.setPrincipalSetting(ctx, "SetPlatformWallet", platformWalletObjectType, wallet)
}

// GetPlatformWallet returns "" when no wallet has been set.
func (c *EventRegistryContract) GetPlatformWallet(ctx contractapi.TransactionContextInterface) (string, error) {
	ls := newLedgerStore(ctx.GetStub())
	value, err := ls.getString(ls.keys.platformWallet)
	if err != nil {
		return "", fmt.Errorf("GetPlatformWallet: %w", err)
	}
	return value, nil
}

func (c *EventRegistryContract) setPrincipalSetting(ctx contractapi.TransactionContextInterface, op, objectType, principal string) error {
	principal = strings.TrimSpace(principal)
	if err := c.validateRequiredString(principal, objectType, maxPrincipalLength); err != nil {
		return err
	}
	ls := newLedgerStore(ctx.GetStub())
	admin, err := c.requireAdmin(ctx, ls)
	if err != nil {
		return wrapOpError(op, err)
	}
	keyFn := func() (string, error) { return ls.keys.singleton(objectType) }
	if err := ls.putValue(keyFn, principal); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	logger.Infof("%s: set to '%s' by admin '%s'", op, principal, admin)
	return nil
}
