package contract

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/golang/protobuf/proto"
	"github.com/hyperledger/fabric-chaincode-go/pkg/cid"
	"github.com/hyperledger/fabric-protos-go/msp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// longDNCertificate issues a client certificate whose subject and issuer DNs
// resemble a production Fabric CA enrollment.
func longDNCertificate(t *testing.T) []byte {
	t.Helper()
	caKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	clientKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	notBefore := time.Unix(1700000000, 0)
	ca := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject: pkix.Name{
			CommonName:         "ca.org1.tickets-network.example.com",
			Organization:       []string{"org1.tickets-network.example.com"},
			OrganizationalUnit: []string{"Certificate Authority"},
			Locality:           []string{"San Francisco"},
			Province:           []string{"California"},
			Country:            []string{"US"},
		},
		NotBefore:             notBefore,
		NotAfter:              notBefore.Add(24 * time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign | x509.KeyUsageDigitalSignature,
	}
	client := &x509.Certificate{
		SerialNumber: big.NewInt(2),
		Subject: pkix.Name{
			CommonName:         "organizer-acme-productions@tickets.example.com",
			Organization:       []string{"Hyperledger"},
			OrganizationalUnit: []string{"client", "org1", "department1"},
			Locality:           []string{"Raleigh"},
			Province:           []string{"North Carolina"},
			Country:            []string{"US"},
		},
		NotBefore: notBefore,
		NotAfter:  notBefore.Add(24 * time.Hour),
		KeyUsage:  x509.KeyUsageDigitalSignature,
	}

	der, err := x509.CreateCertificate(rand.Reader, client, ca, &clientKey.PublicKey, caKey)
	require.NoError(t, err)
	return pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der})
}

// certificateClient makes certPEM the creator of the harness's transactions
// and returns the identity the peer's client identity library derives from it.
func certificateClient(t *testing.T, h *registryHarness, certPEM []byte) (cid.ClientIdentity, string) {
	t.Helper()
	creator, err := proto.Marshal(&msp.SerializedIdentity{Mspid: "Org1MSP", IdBytes: certPEM})
	require.NoError(t, err)
	h.stub.Creator = creator

	client, err := cid.New(h.stub)
	require.NoError(t, err)
	id, err := client.GetID()
	require.NoError(t, err)
	return client, id
}

func TestLongCertificateIdentityIsAFullPrincipal(t *testing.T) {
	h := newHarness(t)
	client, id := certificateClient(t, h, longDNCertificate(t))
	require.Greater(t, len(id), maxStringInputLength)
	assert.True(t, isValidX509ID(id))

	require.NoError(t, h.contract.Initialize(h.asClient(client), id, 5))
	require.NoError(t, h.contract.RegisterEvent(h.asClient(client), "event_001", id, id))
	require.NoError(t, h.contract.UpdateEventStatus(h.asClient(client), "event_001", false))
	require.NoError(t, h.contract.SetPlatformWallet(h.asClient(client), id))
	require.NoError(t, h.contract.AddToBlacklist(h.asClient(client), id, "self-test"))

	record, err := h.contract.GetEvent(h.as(""), "event_001")
	require.NoError(t, err)
	assert.Equal(t, id, record.Organizer)
	assert.Equal(t, id, record.Payout)
	assert.False(t, record.Active)

	ids, err := h.contract.GetOrganizerEvents(h.as(""), id)
	require.NoError(t, err)
	assert.Equal(t, []string{"event_001"}, ids)

	listed, err := h.contract.IsBlacklisted(h.as(""), id)
	require.NoError(t, err)
	assert.True(t, listed)

	// The certificate identity is still bound to its own principal.
	err = h.contract.RegisterEvent(h.asClient(client), "event_002", organizerID, payoutID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestPrincipalLengthIsBounded(t *testing.T) {
	h := newHarness(t)
	h.initialize(5)
	huge := "x509::" + strings.Repeat("O", maxPrincipalLength)

	assert.ErrorIs(t, h.contract.RegisterEvent(h.as(huge), "event_001", huge, payoutID), ErrInvalidArgument)
	assert.ErrorIs(t, h.contract.SetPlatformWallet(h.as(adminID), huge), ErrInvalidArgument)
}
