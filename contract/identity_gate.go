package contract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var idLogger = flogging.MustGetLogger("eventregistry.identitygate")

// IdentityGate answers whether the transaction was submitted by a given
// principal. A principal is the client identity string reported by the
// peer's client identity library.
type IdentityGate struct {
	Ctx contractapi.TransactionContextInterface
}

// NewIdentityGate creates a new instance of IdentityGate.
func NewIdentityGate(ctx contractapi.TransactionContextInterface) *IdentityGate {
	return &IdentityGate{Ctx: ctx}
}

func isValidX509ID(id string) bool {
	return strings.HasPrefix(id, "x509::") || strings.HasPrefix(id, "eDUwOTo6") // "eDUwOTo6" is "x509::" base64 encoded
}

// CallerID retrieves the full ID of the current transactor.
func (g *IdentityGate) CallerID() (string, error) {
	clientIdentity := g.Ctx.GetClientIdentity()
	if clientIdentity == nil {
		return "", errors.New("client identity is nil from context")
	}
	id, err := clientIdentity.GetID()
	if err != nil {
		return "", fmt.Errorf("failed to get client identity ID from context: %w", err)
	}
	if id == "" {
		return "", errors.New("client identity ID from context is empty")
	}
	if !isValidX509ID(id) {
		idLogger.Warningf("Current client ID '%s' does not appear to be a standard X.509 format.", id)
	}
	return id, nil
}

// RequireIdentity fails with ErrUnauthorized unless the caller is principal.
// It must run before the transaction's first write.
func (g *IdentityGate) RequireIdentity(principal string) error {
	principal = strings.TrimSpace(principal)
	callerID, err := g.CallerID()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	if principal == "" || callerID != principal {
		idLogger.Debugf("Identity check failed: caller '%s' is not '%s'", callerID, principal)
		return fmt.Errorf("%w: caller '%s' is not '%s'", ErrUnauthorized, callerID, principal)
	}
	return nil
}

// MustGetCallerID returns the caller's ID or a placeholder, for logging only.
func MustGetCallerID(ctx contractapi.TransactionContextInterface) string {
	id, err := NewIdentityGate(ctx).CallerID()
	if err != nil {
		idLogger.Debugf("MustGetCallerID: %v. Returning placeholder.", err)
		return "ERROR_GETTING_CALLER_ID"
	}
	return id
}
