package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey   string   `json:"token_sign_key"`
		TokenIssuer    string   `json:"token_issuer"`
		TokenDuration  Duration `json:"token_duration"`
		HashKey        string   `json:"hash_key"`
		Version        string   `json:"version"`
		MetricsAddress string   `json:"metrics_address"`
		AccountID      string   `json:"account_id"`
		LogDir         string   `json:"log_dir"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			BlobDir         string `json:"blob_dir"`
			DomainStatePath string `json:"domain_state_path"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		SyncInterval Duration `json:"sync_interval"`
		SyncRetries  uint64   `json:"sync_retries"`
	} `json:"workers,omitempty"`

	Sync struct {
		DeviceID       string `json:"device_id"`
		ClientType     string `json:"client_type"`
		CheckPatchMACs *bool  `json:"check_patch_macs,omitempty"`
		RootKeyHex     string `json:"root_key"`
		RootKeyID      string `json:"root_key_id"`
		KeyPassphrase  string `json:"key_passphrase"`
	} `json:"sync,omitempty"`

	Relay struct {
		PageSize                   uint64 `json:"page_size"`
		SnapshotThreshold          uint64 `json:"snapshot_threshold"`
		ExternalMutationsThreshold uint64 `json:"external_mutations_threshold"`
	} `json:"relay,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:   jsonCfg.App.TokenSignKey,
			TokenIssuer:    jsonCfg.App.TokenIssuer,
			TokenDuration:  time.Duration(jsonCfg.App.TokenDuration),
			HashKey:        jsonCfg.App.HashKey,
			Version:        jsonCfg.App.Version,
			MetricsAddress: jsonCfg.App.MetricsAddress,
			AccountID:      jsonCfg.App.AccountID,
			LogDir:         jsonCfg.App.LogDir,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				BlobDir:         jsonCfg.Storage.Files.BlobDir,
				DomainStatePath: jsonCfg.Storage.Files.DomainStatePath,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			GRPCAddress:    jsonCfg.Adapter.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			SyncInterval: time.Duration(jsonCfg.Workers.SyncInterval),
			SyncRetries:  jsonCfg.Workers.SyncRetries,
		},
		Sync: Sync{
			DeviceID:       jsonCfg.Sync.DeviceID,
			ClientType:     jsonCfg.Sync.ClientType,
			CheckPatchMACs: jsonCfg.Sync.CheckPatchMACs,
			RootKeyHex:     jsonCfg.Sync.RootKeyHex,
			RootKeyID:      jsonCfg.Sync.RootKeyID,
			KeyPassphrase:  jsonCfg.Sync.KeyPassphrase,
		},
		Relay: Relay{
			PageSize:                   jsonCfg.Relay.PageSize,
			SnapshotThreshold:          jsonCfg.Relay.SnapshotThreshold,
			ExternalMutationsThreshold: jsonCfg.Relay.ExternalMutationsThreshold,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
