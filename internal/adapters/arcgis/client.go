// Package arcgis talks to the campus ArcGIS REST services: the batch POI
// locator (geocodeAddresses) and the network MapServer (find).
package arcgis

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/okian/venuematch/internal/domain/model"
	"github.com/okian/venuematch/pkg/logger"
)

// Default endpoints and request settings.
const (
	DefaultGeocodeURL = "https://arcgis.ami-lab.org/arcgis/rest/services/FULL_NUS_NETWORK_051017/POI_LOCATOR_051017/GeocodeServer/geocodeAddresses"
	DefaultFindURL    = "https://arcgis.ami-lab.org/arcgis/rest/services/FULL_NUS_NETWORK_051017/FULL_NUS_NETWORK_051017/MapServer/find"
	DefaultFindLayer  = 8 // POI layer
	DefaultTimeout    = 30 * time.Second

	maxErrorBody = 512
)

// Client implements the geocoding and network lookups used by the remote
// matching engine.
type Client struct {
	http       *http.Client
	geocodeURL string
	findURL    string
	findLayer  int
	logger     logger.Logger
}

// New creates a Client with the default endpoints.
func New(opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{Timeout: DefaultTimeout},
		geocodeURL: DefaultGeocodeURL,
		findURL:    DefaultFindURL,
		findLayer:  DefaultFindLayer,
		logger:     logger.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.Named("arcgis")

	return c
}

type batchAttributes struct {
	ObjectID  int    `json:"OBJECTID"`
	SingleKey string `json:"SingleKey"`
}

type batchRecord struct {
	Attributes batchAttributes `json:"attributes"`
}

type batchAddresses struct {
	Records []batchRecord `json:"records"`
}

type errorEnvelope struct {
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type geocodeResponse struct {
	errorEnvelope
	Locations []model.GeocodeCandidate `json:"locations"`
}

type findResponse struct {
	errorEnvelope
	Results []model.NetworkFeature `json:"results"`
}

// GeocodeBatch submits records in a single geocodeAddresses request. Each
// record's Index is sent as OBJECTID and comes back as ResultID.
func (c *Client) GeocodeBatch(ctx context.Context, records []model.GeocodeRecord) ([]model.GeocodeCandidate, error) {
	addrs := batchAddresses{Records: make([]batchRecord, len(records))}
	for i, r := range records {
		addrs.Records[i] = batchRecord{Attributes: batchAttributes{ObjectID: r.Index, SingleKey: r.Venue}}
	}
	payload, err := json.Marshal(addrs)
	if err != nil {
		return nil, fmt.Errorf("%w: encode addresses: %w", ErrRequest, err)
	}

	params := url.Values{}
	params.Set("f", "json")
	params.Set("addresses", string(payload))

	var out geocodeResponse
	if err := c.get(ctx, c.geocodeURL, params, &out); err != nil {
		return nil, err
	}
	if out.Error != nil {
		return nil, &APIError{Endpoint: "geocodeAddresses", Code: out.Error.Code, Message: out.Error.Message}
	}

	c.logger.Debug(ctx, "batch geocoded",
		logger.Int("records", len(records)),
		logger.Int("candidates", len(out.Locations)),
	)
	return out.Locations, nil
}

// Find returns the first network feature found for address on the
// configured layer, or nil when there is none.
func (c *Client) Find(ctx context.Context, address string) (*model.NetworkFeature, error) {
	params := url.Values{}
	params.Set("searchText", address)
	params.Set("layers", strconv.Itoa(c.findLayer))
	params.Set("returnGeometry", "true")
	params.Set("returnZ", "true")
	params.Set("f", "json")

	var out findResponse
	if err := c.get(ctx, c.findURL, params, &out); err != nil {
		return nil, err
	}
	if out.Error != nil {
		return nil, &APIError{Endpoint: "find", Code: out.Error.Code, Message: out.Error.Message}
	}
	if len(out.Results) == 0 {
		return nil, nil
	}
	return &out.Results[0], nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, dst any) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("%w: parse %q: %w", ErrRequest, endpoint, err)
	}
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %w", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{Endpoint: u.Path, StatusCode: resp.StatusCode, Message: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrResponse, u.Path, err)
	}
	return nil
}
