package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/partscout/partscout/pkg/types"
)

// ProviderMouser is the provider name of the Mouser API client.
const ProviderMouser = "mouser"

// EnvMouserAPIKey is the environment variable holding the Mouser key.
const EnvMouserAPIKey = "MOUSER_API_KEY"

const (
	defaultMouserBaseURL = "https://api.mouser.com"
	keywordSearchPath    = "/api/v1/search/keyword"
	partNumberSearchPath = "/api/v1.0/search/partnumber"

	defaultMouserTimeout = 30 * time.Second

	// Circuit breaker: open after this many consecutive failures,
	// probe again after the cooldown.
	breakerFailureThreshold = 5
	breakerCooldown         = 30 * time.Second
)

// MouserClient searches the Mouser Electronics API. Keyword search is
// tried first; a non-200 keyword response falls through to the
// part-number endpoint before the call is considered failed. All calls
// run behind a circuit breaker so a flapping upstream fails fast
// instead of stalling every search.
type MouserClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[[]types.Part]
	log        zerolog.Logger
}

// MouserOption customizes a MouserClient.
type MouserOption func(*MouserClient)

// WithMouserBaseURL overrides the API base URL (tests).
func WithMouserBaseURL(u string) MouserOption {
	return func(c *MouserClient) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithMouserTimeout overrides the HTTP client timeout.
func WithMouserTimeout(d time.Duration) MouserOption {
	return func(c *MouserClient) { c.httpClient.Timeout = d }
}

// WithMouserLogger attaches a logger.
func WithMouserLogger(log zerolog.Logger) MouserOption {
	return func(c *MouserClient) { c.log = log }
}

// NewMouserClient creates a Mouser API client. An empty apiKey falls
// back to the MOUSER_API_KEY environment variable.
func NewMouserClient(apiKey string, opts ...MouserOption) (*MouserClient, error) {
	if apiKey == "" {
		apiKey = os.Getenv(EnvMouserAPIKey)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s not set", ErrNoProviderConfigured, EnvMouserAPIKey)
	}

	c := &MouserClient{
		apiKey:  apiKey,
		baseURL: defaultMouserBaseURL,
		httpClient: &http.Client{
			Timeout: defaultMouserTimeout,
		},
		log: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]types.Part](gobreaker.Settings{
		Name:        "mouser-catalog",
		MaxRequests: 1,
		Timeout:     breakerCooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("catalog circuit breaker state change")
		},
	})

	return c, nil
}

// Search implements Provider.
func (c *MouserClient) Search(ctx context.Context, term string, limit int) ([]types.Part, error) {
	limit, err := validateSearch(term, limit)
	if err != nil {
		return nil, err
	}

	parts, err := c.breaker.Execute(func() ([]types.Part, error) {
		return c.search(ctx, term, limit)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}
	return parts, nil
}

func (c *MouserClient) search(ctx context.Context, term string, limit int) ([]types.Part, error) {
	body := map[string]any{
		"SearchByKeywordRequest": map[string]any{
			"keyword":        term,
			"records":        limit,
			"startingRecord": 0,
		},
	}

	parts, status, err := c.call(ctx, keywordSearchPath, body)
	if err == nil {
		return parts, nil
	}

	// The keyword endpoint rejects some part-number-shaped terms; retry
	// against the part-number endpoint before giving up.
	if status == 0 {
		return nil, err
	}
	c.log.Debug().Int("status", status).Str("term", term).
		Msg("keyword search failed, trying part number search")

	body = map[string]any{
		"SearchByPartRequest": map[string]any{
			"mouserPartNumber":  term,
			"partSearchOptions": "string",
		},
	}
	parts, _, err = c.call(ctx, partNumberSearchPath, body)
	return parts, err
}

// call POSTs a search request and parses the response. The returned
// status is zero when the request never reached the API.
func (c *MouserClient) call(ctx context.Context, path string, body map[string]any) ([]types.Part, int, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + path + "?apiKey=" + c.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("api call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, resp.StatusCode, fmt.Errorf("api error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var apiResp mouserResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("decode response: %w", err)
	}

	if len(apiResp.Errors) > 0 {
		return nil, resp.StatusCode, fmt.Errorf("mouser error: %s", apiResp.Errors[0].Message)
	}
	if apiResp.SearchResults == nil {
		return nil, resp.StatusCode, nil
	}

	parts := make([]types.Part, 0, len(apiResp.SearchResults.Parts))
	for _, mp := range apiResp.SearchResults.Parts {
		if mp.MouserPartNumber == "" {
			continue
		}
		parts = append(parts, mp.toPart())
	}
	return parts, resp.StatusCode, nil
}

// Provider implements Provider.
func (c *MouserClient) Provider() string {
	return ProviderMouser
}

// Close implements Provider.
func (c *MouserClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// mouserResponse mirrors the subset of the Mouser search response the
// engine consumes.
type mouserResponse struct {
	Errors []struct {
		Message string `json:"Message"`
	} `json:"Errors"`
	SearchResults *struct {
		NumberOfResult int          `json:"NumberOfResult"`
		Parts          []mouserPart `json:"Parts"`
	} `json:"SearchResults"`
}

type mouserPart struct {
	MouserPartNumber string `json:"MouserPartNumber"`
	Manufacturer     string `json:"Manufacturer"`
	Description      string `json:"Description"`
	Category         string `json:"Category"`
	DataSheetURL     string `json:"DataSheetUrl"`
	ImagePath        string `json:"ImagePath"`
	PriceBreaks      []struct {
		Quantity int    `json:"Quantity"`
		Price    string `json:"Price"`
	} `json:"PriceBreaks"`
	Availability struct {
		InStock int `json:"InStock"`
	} `json:"Availability"`
	ProductAttributes []struct {
		AttributeName  string `json:"AttributeName"`
		AttributeValue string `json:"AttributeValue"`
	} `json:"ProductAttributes"`
}

func (mp mouserPart) toPart() types.Part {
	p := types.Part{
		PartNumber:   mp.MouserPartNumber,
		Manufacturer: mp.Manufacturer,
		Description:  mp.Description,
		Category:     mp.Category,
		DatasheetURL: mp.DataSheetURL,
		ImageURL:     mp.ImagePath,
	}

	if price, ok := lowestPriceBreak(mp.PriceBreaks); ok {
		p.Price = &price
	}
	if mp.Availability.InStock > 0 {
		stock := mp.Availability.InStock
		p.Stock = &stock
	}
	if len(mp.ProductAttributes) > 0 {
		specs := make(map[string]string, len(mp.ProductAttributes))
		for _, attr := range mp.ProductAttributes {
			if attr.AttributeName != "" {
				specs[attr.AttributeName] = attr.AttributeValue
			}
		}
		p.Specifications = specs
	}

	return p
}

// lowestPriceBreak extracts the lowest price across price breaks.
// Mouser formats prices as strings with a currency prefix.
func lowestPriceBreak(breaks []struct {
	Quantity int    `json:"Quantity"`
	Price    string `json:"Price"`
}) (float64, bool) {
	lowest := 0.0
	found := false
	for _, pb := range breaks {
		raw := strings.TrimSpace(strings.TrimLeft(pb.Price, "$€£ "))
		raw = strings.ReplaceAll(raw, ",", "")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 {
			continue
		}
		if !found || v < lowest {
			lowest = v
			found = true
		}
	}
	return lowest, found
}
