package contract

import (
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/hyperledger/fabric-chaincode-go/pkg/cid"
	"github.com/hyperledger/fabric-chaincode-go/shimtest"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"
)

const (
	adminID     = "x509::CN=admin,OU=client::CN=ca.registry.example.com"
	organizerID = "x509::CN=organizer,OU=client::CN=ca.registry.example.com"
	payoutID    = "x509::CN=payout,OU=client::CN=ca.registry.example.com"
	strangerID  = "x509::CN=stranger,OU=client::CN=ca.registry.example.com"
)

// fakeClientIdentity stands in for the peer's client identity library.
type fakeClientIdentity struct {
	id string
}

var _ cid.ClientIdentity = (*fakeClientIdentity)(nil)

func (f *fakeClientIdentity) GetID() (string, error) {
	if f.id == "" {
		return "", errors.New("no client identity")
	}
	return f.id, nil
}

func (f *fakeClientIdentity) GetMSPID() (string, error) { return "RegistryMSP", nil }

func (f *fakeClientIdentity) GetAttributeValue(string) (string, bool, error) { return "", false, nil }

func (f *fakeClientIdentity) AssertAttributeValue(string, string) error {
	return errors.New("attributes not supported")
}

func (f *fakeClientIdentity) GetX509Certificate() (*x509.Certificate, error) { return nil, nil }

type emittedEvent struct {
	name    string
	payload map[string]interface{}
}

// registryHarness drives the contract against an in-memory ledger, one
// transaction per call.
type registryHarness struct {
	t        *testing.T
	stub     *shimtest.MockStub
	contract *EventRegistryContract
	now      time.Time
	txSeq    int
	events   []emittedEvent
}

func newHarness(t *testing.T) *registryHarness {
	t.Helper()
	return &registryHarness{
		t:        t,
		stub:     shimtest.NewMockStub("eventregistry", nil),
		contract: &EventRegistryContract{},
		now:      time.Unix(1700000000, 0),
	}
}

// as opens a new transaction submitted by caller. An empty caller carries no
// client identity.
func (h *registryHarness) as(caller string) contractapi.TransactionContextInterface {
	return h.asClient(&fakeClientIdentity{id: caller})
}

// asClient opens a new transaction carrying the given client identity.
func (h *registryHarness) asClient(client cid.ClientIdentity) contractapi.TransactionContextInterface {
	h.collectEvents()
	h.txSeq++
	h.stub.MockTransactionStart(fmt.Sprintf("tx-%d", h.txSeq))
	h.stub.TxTimestamp = timestamppb.New(h.now)

	ctx := new(contractapi.TransactionContext)
	ctx.SetStub(h.stub)
	ctx.SetClientIdentity(client)
	return ctx
}

func (h *registryHarness) collectEvents() {
	for {
		select {
		case ev := <-h.stub.ChaincodeEventsChannel:
			payload := map[string]interface{}{}
			require.NoError(h.t, json.Unmarshal(ev.Payload, &payload))
			h.events = append(h.events, emittedEvent{name: ev.EventName, payload: payload})
		default:
			return
		}
	}
}

// emitted returns every event published so far, in order.
func (h *registryHarness) emitted() []emittedEvent {
	h.collectEvents()
	return h.events
}

// snapshot copies the world state so tests can prove a call wrote nothing.
func (h *registryHarness) snapshot() map[string][]byte {
	out := make(map[string][]byte, len(h.stub.State))
	for k, v := range h.stub.State {
		out[k] = append([]byte(nil), v...)
	}
	return out
}

func (h *registryHarness) initialize(feeBps uint32) {
	h.t.Helper()
	require.NoError(h.t, h.contract.Initialize(h.as(adminID), adminID, feeBps))
}

func (h *registryHarness) register(eventID string) {
	h.t.Helper()
	require.NoError(h.t, h.contract.RegisterEvent(h.as(organizerID), eventID, organizerID, payoutID))
}
