package main

import (
	"fmt"
	"os"

	"eventregistry/config"
	"eventregistry/contract"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric/common/flogging"
)

var logger = flogging.MustGetLogger("eventregistry.main")

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Error loading configuration: " + err.Error())
	}
	flogging.ActivateSpec(cfg.LoggingSpec)

	cc, err := contractapi.NewChaincode(&contract.EventRegistryContract{})
	if err != nil {
		panic("Error creating EventRegistryContract: " + err.Error())
	}

	if !cfg.ServiceMode() {
		if err := cc.Start(); err != nil {
			panic("Error starting chaincode: " + err.Error())
		}
		return
	}

	tlsProps, err := tlsProperties(cfg)
	if err != nil {
		panic("Error reading TLS material: " + err.Error())
	}
	server := &shim.ChaincodeServer{
		CCID:     cfg.CCID,
		Address:  cfg.ServerAddress,
		CC:       cc,
		TLSProps: tlsProps,
	}
	logger.Infof("Starting chaincode service %s on %s", cfg.CCID, cfg.ServerAddress)
	if err := server.Start(); err != nil {
		panic("Error starting chaincode service: " + err.Error())
	}
}

func tlsProperties(cfg config.Config) (shim.TLSProperties, error) {
	if cfg.TLSDisabled {
		return shim.TLSProperties{Disabled: true}, nil
	}
	key, err := os.ReadFile(cfg.TLSKeyFile)
	if err != nil {
		return shim.TLSProperties{}, fmt.Errorf("read TLS key: %w", err)
	}
	cert, err := os.ReadFile(cfg.TLSCertFile)
	if err != nil {
		return shim.TLSProperties{}, fmt.Errorf("read TLS cert: %w", err)
	}
	var clientCA []byte
	if cfg.ClientCAFile != "" {
		if clientCA, err = os.ReadFile(cfg.ClientCAFile); err != nil {
			return shim.TLSProperties{}, fmt.Errorf("read client CA cert: %w", err)
		}
	}
	return shim.TLSProperties{Disabled: false, Key: key, Cert: cert, ClientCACerts: clientCA}, nil
}
