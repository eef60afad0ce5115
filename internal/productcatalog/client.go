package productcatalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/subhub/order-service/internal/orders/ports"
)

// Client resolves products against the product service over HTTP.
// A 404 from the service is the caller's problem (unknown product);
// everything else is an upstream fault.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient constructs a catalog client. The timeout bounds every lookup
// so a hung product service cannot block a request indefinitely.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *Client) Resolve(ctx context.Context, productID string) (*ports.Product, error) {
	endpoint := fmt.Sprintf("%s/api/products/%s", c.baseURL, url.PathEscape(productID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build product request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ports.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ports.ErrProductNotFound
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: unexpected status %d", ports.ErrCatalogUnavailable, resp.StatusCode)
	}

	var product ports.Product
	if err := json.NewDecoder(resp.Body).Decode(&product); err != nil {
		return nil, fmt.Errorf("%w: decode product: %v", ports.ErrCatalogUnavailable, err)
	}

	return &product, nil
}
