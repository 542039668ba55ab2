package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/coreos/go-oidc"
	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/metal-toolbox/rackview/internal/app"
	"github.com/metal-toolbox/rackview/internal/metrics"
	"github.com/metal-toolbox/rackview/internal/model"
)

const (
	// connectionTimeout is the maximum amount of time spent on each http connection to the inventory API.
	connectionTimeout = 30 * time.Second

	// inventoryPath is the inventory API endpoint returning the inventory document.
	inventoryPath = "/api/v1/inventory"

	pkgName = "internal/store"
)

var (
	// ErrInventoryAPIQuery is returned when an inventory API query fails.
	ErrInventoryAPIQuery = errors.New("inventory API query returned error")
)

// InventoryAPI is a Repository serving the inventory document fetched from the inventory API.
//
// The document is fetched on first use and refetched once older than the configured
// cache TTL, a failed refetch leaves the previous document in place.
type InventoryAPI struct {
	mem    *MemStore
	config *app.InventoryAPIOptions
	client *http.Client
	logger *logrus.Logger

	mu        sync.Mutex
	fetchedAt time.Time
}

// NewInventoryAPIStore returns an InventoryAPI store for the configured endpoint.
func NewInventoryAPIStore(ctx context.Context, config *app.InventoryAPIOptions, logger *logrus.Logger) (*InventoryAPI, error) {
	if config.EndpointURL == nil {
		endpointURL, err := url.Parse(config.Endpoint)
		if err != nil {
			return nil, errors.Wrap(ErrInventoryAPIQuery, "endpoint URL error: "+err.Error())
		}

		config.EndpointURL = endpointURL
	}

	client, err := newClient(ctx, config, logger)
	if err != nil {
		return nil, err
	}

	return &InventoryAPI{
		mem:    NewMemStore(),
		config: config,
		client: client,
		logger: logger,
	}, nil
}

// returns a retryable http client with Otel and, unless disabled, OAuth wrapped in
func newClient(ctx context.Context, cfg *app.InventoryAPIOptions, logger *logrus.Logger) (*http.Client, error) {
	// init retryable http client
	retryableClient := retryablehttp.NewClient()
	retryableClient.RetryMax = cfg.RetryMax

	// set retryable HTTP client to be the otel http client to collect telemetry
	otelClient := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	retryableClient.HTTPClient = otelClient

	// disable default debug logging on the retryable client
	if logger.Level < logrus.DebugLevel {
		retryableClient.Logger = nil
	} else {
		retryableClient.Logger = logger
	}

	if !cfg.DisableOAuth {
		// setup oidc provider
		provider, err := oidc.NewProvider(ctx, cfg.OidcIssuerEndpoint)
		if err != nil {
			return nil, errors.Wrap(ErrInventoryAPIQuery, "oidc provider error: "+err.Error())
		}

		clientID := model.AppName

		if cfg.OidcClientID != "" {
			clientID = cfg.OidcClientID
		}

		// setup oauth configuration
		oauthConfig := clientcredentials.Config{
			ClientID:       clientID,
			ClientSecret:   cfg.OidcClientSecret,
			TokenURL:       provider.Endpoint().TokenURL,
			Scopes:         cfg.OidcClientScopes,
			EndpointParams: url.Values{"audience": []string{cfg.OidcAudienceEndpoint}},
		}

		// the OAuth transport wraps the otel transport
		retryableClient.HTTPClient = oauthConfig.Client(context.WithValue(ctx, oauth2.HTTPClient, otelClient))
	}

	httpClient := retryableClient.StandardClient()
	httpClient.Timeout = connectionTimeout

	return httpClient, nil
}

// Refresh fetches the inventory document and replaces the store contents.
func (s *InventoryAPI) Refresh(ctx context.Context) error {
	ctx, span := otel.Tracer(pkgName).Start(
		ctx,
		"InventoryAPI.Refresh",
		trace.WithAttributes(attribute.String("endpoint", s.config.Endpoint)),
	)
	defer span.End()

	inv, err := s.fetch(ctx)
	if err != nil {
		s.registerErrorMetric("Refresh")
		span.SetStatus(codes.Error, err.Error())

		return err
	}

	span.SetAttributes(
		attribute.Int("models", len(inv.Models)),
		attribute.Int("racks", len(inv.Racks)),
		attribute.Int("assets", len(inv.Assets)),
	)

	if err := s.mem.Load(inv); err != nil {
		if errors.Is(err, ErrInventoryCopy) {
			return errors.Wrap(ErrInventoryAPIQuery, err.Error())
		}

		s.logger.WithField("err", err.Error()).Warn("inventory records skipped")
	}

	metrics.StoreRefreshCounter.With(prometheus.Labels{"storeKind": string(model.StoreKindInventoryAPI)}).Inc()

	return nil
}

func (s *InventoryAPI) fetch(ctx context.Context) (*model.Inventory, error) {
	endpoint := s.config.EndpointURL.JoinPath(inventoryPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), http.NoBody)
	if err != nil {
		return nil, errors.Wrap(ErrInventoryAPIQuery, err.Error())
	}

	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(ErrInventoryAPIQuery, err.Error())
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Wrap(ErrInventoryAPIQuery, "unexpected status: "+resp.Status)
	}

	inv := &model.Inventory{}
	if err := json.NewDecoder(resp.Body).Decode(inv); err != nil {
		return nil, errors.Wrap(ErrInventoryAPIQuery, "decode error: "+err.Error())
	}

	return inv, nil
}

// refreshIfStale refreshes the document once it is older than the cache TTL.
//
// A failed refresh is only returned when no document was fetched before.
func (s *InventoryAPI) refreshIfStale(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fetchedAt.IsZero() && time.Since(s.fetchedAt) < s.config.CacheTTL {
		return nil
	}

	if err := s.Refresh(ctx); err != nil {
		if s.fetchedAt.IsZero() {
			return err
		}

		s.logger.WithField("err", err.Error()).Warn("inventory refresh failed, serving previous document")

		return nil
	}

	s.fetchedAt = time.Now()

	return nil
}

func (s *InventoryAPI) registerErrorMetric(queryKind string) {
	metrics.StoreQueryErrorCount.With(
		prometheus.Labels{
			"storeKind": string(model.StoreKindInventoryAPI),
			"queryKind": queryKind,
		},
	).Inc()
}

// Racks returns the racks within the range ordered by row letter and rack number.
func (s *InventoryAPI) Racks(ctx context.Context, rng model.RackRange) ([]model.Rack, error) {
	if err := s.refreshIfStale(ctx); err != nil {
		return nil, err
	}

	return s.mem.Racks(ctx, rng)
}

// RackSnapshot returns the rack identified by its uuid or name with its mounted assets.
func (s *InventoryAPI) RackSnapshot(ctx context.Context, rackKey string) (*model.RackSnapshot, error) {
	if err := s.refreshIfStale(ctx); err != nil {
		return nil, err
	}

	return s.mem.RackSnapshot(ctx, rackKey)
}

// AssetByID returns a reference to the asset, chassis references include their blades.
func (s *InventoryAPI) AssetByID(ctx context.Context, id uuid.UUID) (*model.AssetRef, error) {
	if err := s.refreshIfStale(ctx); err != nil {
		return nil, err
	}

	return s.mem.AssetByID(ctx, id)
}
