package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from the process command line.
// Positional arguments left after the flags are available via flag.Args.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-grpc-address grpc server address in format [host]:[port]
//	-d database DSN
//	-f blob storage directory
//	-domain-state domain store JSON file
//	-c/-config json file path with configs
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-hash-key security hash key
//	-account-id account the relay issues tokens for
//	-metrics-address client metrics listen address
//	-log-dir client log directory
//	-relay relay base URL used by the client
//	-relay-grpc relay gRPC address used by the client
//	-sync-interval background pull period
//	-sync-retries retries of one background pull
//	-device-id device identifier
//	-client-type MOBILE, WEB or DESKTOP
//	-check-patch-macs verify snapshot and patch MACs
//	-root-key hex app-state sync key
//	-root-key-id hex id of the sync key
//	-key-passphrase passphrase sealing stored sync keys
//	-page-size patches per relay response
//	-snapshot-threshold versions behind before the relay sends a snapshot
//	-external-mutations-threshold mutations per patch before offloading to a blob
func ParseFlags() *StructuredConfig {
	var serverAddress, grpcServerAddress NetAddress
	var databaseDSN, blobDir, domainStatePath, jsonConfigPath string
	var tokenSignKey, tokenIssuer, hashKey, accountID string
	var metricsAddress, logDir, relayAddress, relayGRPCAddress string
	var deviceID, clientType, rootKey, rootKeyID, keyPassphrase string
	var tokenDuration, requestTimeout, syncInterval time.Duration
	var syncRetries, pageSize, snapshotThreshold, externalMutations uint64
	var checkPatchMACs bool

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.Var(&grpcServerAddress, "grpc-address", "Net grpc server address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&blobDir, "f", "", "Blob storage directory")
	flag.StringVar(&domainStatePath, "domain-state", "", "Domain store JSON file")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.StringVar(&hashKey, "hash-key", "", "Security hash key")
	flag.StringVar(&accountID, "account-id", "", "Account the relay issues device tokens for")
	flag.StringVar(&metricsAddress, "metrics-address", "", "Client metrics listen address")
	flag.StringVar(&logDir, "log-dir", "", "Client log directory")
	flag.StringVar(&relayAddress, "relay", "", "Relay base URL")
	flag.StringVar(&relayGRPCAddress, "relay-grpc", "", "Relay gRPC address host:port")
	flag.DurationVar(&syncInterval, "sync-interval", 0, "Background pull period")
	flag.Uint64Var(&syncRetries, "sync-retries", 0, "Retries of one background pull")
	flag.StringVar(&deviceID, "device-id", "", "Device identifier")
	flag.StringVar(&clientType, "client-type", "", "Client type: MOBILE, WEB or DESKTOP")
	flag.BoolVar(&checkPatchMACs, "check-patch-macs", true, "Verify snapshot and patch MACs")
	flag.StringVar(&rootKey, "root-key", "", "Hex app-state sync key")
	flag.StringVar(&rootKeyID, "root-key-id", "", "Hex id of the app-state sync key")
	flag.StringVar(&keyPassphrase, "key-passphrase", "", "Passphrase sealing stored sync keys")
	flag.Uint64Var(&pageSize, "page-size", 0, "Patches per relay response")
	flag.Uint64Var(&snapshotThreshold, "snapshot-threshold", 0, "Versions behind before a snapshot is sent")
	flag.Uint64Var(&externalMutations, "external-mutations-threshold", 0, "Mutations per patch before offloading to a blob")

	flag.Parse()

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:   tokenSignKey,
			TokenIssuer:    tokenIssuer,
			TokenDuration:  tokenDuration,
			HashKey:        hashKey,
			MetricsAddress: metricsAddress,
			AccountID:      accountID,
			LogDir:         logDir,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			Files: Files{
				BlobDir:         blobDir,
				DomainStatePath: domainStatePath,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			GRPCAddress:    grpcServerAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			HTTPAddress:    relayAddress,
			GRPCAddress:    relayGRPCAddress,
			RequestTimeout: requestTimeout,
		},
		Workers: Workers{
			SyncInterval: syncInterval,
			SyncRetries:  syncRetries,
		},
		Sync: Sync{
			DeviceID:      deviceID,
			ClientType:    clientType,
			RootKeyHex:    rootKey,
			RootKeyID:     rootKeyID,
			KeyPassphrase: keyPassphrase,
		},
		Relay: Relay{
			PageSize:                   pageSize,
			SnapshotThreshold:          snapshotThreshold,
			ExternalMutationsThreshold: externalMutations,
		},
		JSONFilePath: jsonConfigPath,
	}

	// only an explicit flag may override values from other sources
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "check-patch-macs" {
			cfg.Sync.CheckPatchMACs = &checkPatchMACs
		}
	})

	return cfg
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
