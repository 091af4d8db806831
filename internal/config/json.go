package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig is the on-disk layout of the JSON config file.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
		LogLevel      string   `json:"log_level"`
	} `json:"app"`

	Crypto struct {
		KeyIterations      int    `json:"key_iterations"`
		VerifierIterations int    `json:"verifier_iterations"`
		HardeningTime      uint32 `json:"hardening_time"`
		HardeningMemory    uint32 `json:"hardening_memory"`
		HardeningThreads   uint8  `json:"hardening_threads"`
	} `json:"crypto"`

	Storage struct {
		Backend string `json:"backend"`
		DB      struct {
			DSN string `json:"dsn"`
		} `json:"db"`
		Object struct {
			Endpoint  string `json:"endpoint"`
			AccessKey string `json:"access_key"`
			SecretKey string `json:"secret_key"`
			Bucket    string `json:"bucket"`
			UseSSL    bool   `json:"use_ssl"`
		} `json:"object"`
	} `json:"storage"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server"`

	Client struct {
		ServerAddress  string   `json:"server_address"`
		RequestTimeout Duration `json:"request_timeout"`
		Identifier     string   `json:"identifier"`
		AutosaveDelay  Duration `json:"autosave_delay"`
		LogFile        string   `json:"log_file"`
	} `json:"client"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	return &StructuredConfig{
		App: App{
			TokenSignKey:  j.App.TokenSignKey,
			TokenIssuer:   j.App.TokenIssuer,
			TokenDuration: time.Duration(j.App.TokenDuration),
			Version:       j.App.Version,
			LogLevel:      j.App.LogLevel,
		},
		Crypto: Crypto{
			KeyIterations:      j.Crypto.KeyIterations,
			VerifierIterations: j.Crypto.VerifierIterations,
			HardeningTime:      j.Crypto.HardeningTime,
			HardeningMemory:    j.Crypto.HardeningMemory,
			HardeningThreads:   j.Crypto.HardeningThreads,
		},
		Storage: Storage{
			Backend: j.Storage.Backend,
			DB:      DB{DSN: j.Storage.DB.DSN},
			Object: Object{
				Endpoint:  j.Storage.Object.Endpoint,
				AccessKey: j.Storage.Object.AccessKey,
				SecretKey: j.Storage.Object.SecretKey,
				Bucket:    j.Storage.Object.Bucket,
				UseSSL:    j.Storage.Object.UseSSL,
			},
		},
		Server: Server{
			HTTPAddress:    j.Server.HTTPAddress,
			GRPCAddress:    j.Server.GRPCAddress,
			RequestTimeout: time.Duration(j.Server.RequestTimeout),
		},
		Client: Client{
			ServerAddress:  j.Client.ServerAddress,
			RequestTimeout: time.Duration(j.Client.RequestTimeout),
			Identifier:     j.Client.Identifier,
			AutosaveDelay:  time.Duration(j.Client.AutosaveDelay),
			LogFile:        j.Client.LogFile,
		},
	}, nil
}

// Duration accepts "1h30m" style strings or nanosecond numbers in JSON.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
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
		return fmt.Errorf("invalid duration %s", b)
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
