package app

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/jeremywohl/flatten"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"

	"github.com/metal-toolbox/rackview/internal/model"
)

const (
	DefaultListenAddress  = "0.0.0.0:8080"
	DefaultMetricsAddress = "0.0.0.0:9090"

	defaultInventoryRetryMax = 4
	defaultInventoryCacheTTL = 30 * time.Second
)

var (
	ErrConfig = errors.New("configuration error")
)

// Configuration holds application configuration read from a YAML or set by env variables.
//
// nolint:govet // prefer readability over field alignment optimization for this case.
type Configuration struct {
	// LogLevel is the app verbose logging level.
	// one of - info, debug, trace
	LogLevel string `mapstructure:"log_level"`

	// StoreKind is the inventory snapshot source - one of yaml OR inventoryapi
	StoreKind model.StoreKind `mapstructure:"store_kind"`

	// StoreFile is the inventory document read when StoreKind is yaml.
	StoreFile string `mapstructure:"store_file"`

	// ListenAddress is the address the HTTP API listens on.
	ListenAddress string `mapstructure:"listen_address"`

	// MetricsAddress is the address the prometheus /metrics endpoint listens on.
	MetricsAddress string `mapstructure:"metrics_address"`

	// InventoryAPIOptions defines the inventory API client configuration parameters
	//
	// This parameter is required when StoreKind is set to inventoryapi.
	InventoryAPIOptions *InventoryAPIOptions `mapstructure:"inventory_api"`
}

// InventoryAPIOptions defines configuration for the inventory API client.
type InventoryAPIOptions struct {
	EndpointURL          *url.URL
	Endpoint             string        `mapstructure:"endpoint"`
	OidcIssuerEndpoint   string        `mapstructure:"oidc_issuer_endpoint"`
	OidcAudienceEndpoint string        `mapstructure:"oidc_audience_endpoint"`
	OidcClientSecret     string        `mapstructure:"oidc_client_secret"`
	OidcClientID         string        `mapstructure:"oidc_client_id"`
	OidcClientScopes     []string      `mapstructure:"oidc_client_scopes"`
	DisableOAuth         bool          `mapstructure:"disable_oauth"`
	RetryMax             int           `mapstructure:"retry_max"`
	CacheTTL             time.Duration `mapstructure:"cache_ttl"`
}

// LoadConfiguration loads application configuration
//
// Reads in the cfgFile when available and overrides from environment variables,
// a non empty store overrides the configured store kind and file.
func (a *App) LoadConfiguration(cfgFile, store string) error {
	a.v.SetConfigType("yaml")
	a.v.SetEnvPrefix(model.AppName)
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	// these are initialized here so viper can read in configuration from env vars
	// once https://github.com/spf13/viper/pull/1429 is merged, this can go.
	a.Config.InventoryAPIOptions = &InventoryAPIOptions{}

	if cfgFile != "" {
		fh, err := os.Open(cfgFile)
		if err != nil {
			return errors.Wrap(ErrConfig, err.Error())
		}

		defer fh.Close()

		if err = a.v.ReadConfig(fh); err != nil {
			return errors.Wrap(ErrConfig, "ReadConfig error:"+err.Error())
		}
	}

	a.v.SetDefault("log_level", model.LogLevelInfo)
	a.v.SetDefault("listen_address", DefaultListenAddress)
	a.v.SetDefault("metrics_address", DefaultMetricsAddress)
	a.v.SetDefault("inventory_api.retry_max", defaultInventoryRetryMax)
	a.v.SetDefault("inventory_api.cache_ttl", defaultInventoryCacheTTL)

	if err := a.envBindVars(); err != nil {
		return errors.Wrap(ErrConfig, "env var bind error:"+err.Error())
	}

	if err := a.v.Unmarshal(a.Config); err != nil {
		return errors.Wrap(ErrConfig, "Unmarshal error: "+err.Error())
	}

	a.storeOverrides(store)

	switch a.Config.StoreKind {
	case model.StoreKindYaml:
		if a.Config.StoreFile == "" {
			return errors.Wrap(ErrConfig, "yaml store requires store_file")
		}

		return nil
	case model.StoreKindInventoryAPI:
		if err := a.validateInventoryAPIOptions(); err != nil {
			return errors.Wrap(ErrConfig, "inventory api config error: "+err.Error())
		}

		return nil
	default:
		return errors.Wrap(ErrConfig, fmt.Sprintf("unknown store kind: %q, expected one of %v", a.Config.StoreKind, model.StoreKinds()))
	}
}

// storeOverrides applies the store parameter, a path with a .yml/.yaml extension
// selects the yaml store.
func (a *App) storeOverrides(store string) {
	switch {
	case store == "":
		return
	case strings.HasSuffix(store, ".yml"), strings.HasSuffix(store, ".yaml"):
		a.Config.StoreKind = model.StoreKindYaml
		a.Config.StoreFile = store
	default:
		a.Config.StoreKind = model.StoreKind(store)
	}
}

// envBindVars binds environment variables to the struct
// without a configuration file being unmarshalled,
// this is a workaround for a viper bug,
//
// This can be replaced by the solution in https://github.com/spf13/viper/pull/1429
// once that PR is merged.
func (a *App) envBindVars() error {
	envKeysMap := map[string]interface{}{}
	if err := mapstructure.Decode(a.Config, &envKeysMap); err != nil {
		return err
	}

	// Flatten nested conf map
	flat, err := flatten.Flatten(envKeysMap, "", flatten.DotStyle)
	if err != nil {
		return errors.Wrap(err, "Unable to flatten config")
	}

	for k := range flat {
		if err := a.v.BindEnv(k); err != nil {
			return errors.Wrap(ErrConfig, "env var bind error: "+err.Error())
		}
	}

	return nil
}

// nolint:gocyclo // parameter validation is cyclomatic
func (a *App) validateInventoryAPIOptions() error {
	opts := a.Config.InventoryAPIOptions
	if opts == nil {
		return errors.New("inventory_api options not defined")
	}

	if opts.Endpoint == "" {
		return errors.New("inventory_api.endpoint not defined")
	}

	endpointURL, err := url.Parse(opts.Endpoint)
	if err != nil {
		return errors.New("inventory_api.endpoint URL error: " + err.Error())
	}

	opts.EndpointURL = endpointURL

	if opts.RetryMax < 0 {
		return errors.New("inventory_api.retry_max must not be negative")
	}

	if opts.DisableOAuth {
		return nil
	}

	if opts.OidcIssuerEndpoint == "" {
		return errors.New("inventory_api.oidc_issuer_endpoint not defined")
	}

	if opts.OidcAudienceEndpoint == "" {
		return errors.New("inventory_api.oidc_audience_endpoint not defined")
	}

	if opts.OidcClientSecret == "" {
		return errors.New("inventory_api.oidc_client_secret not defined")
	}

	if opts.OidcClientID == "" {
		return errors.New("inventory_api.oidc_client_id not defined")
	}

	if len(opts.OidcClientScopes) == 0 {
		return errors.New("inventory_api.oidc_client_scopes not defined")
	}

	return nil
}
