package oracle

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/geoffmunn/utility-scripts-sub000/log"
)

// priceClient is the default implementation, backed by a coingecko-shaped
// HTTP API: GET {base}/simple/price?ids=a,b&vs_currencies=usd returning
// {"a": {"usd": 1.23}, "b": {"usd": 0.02}}.
type priceClient struct {
	baseUrl string

	log *log.Logger
}

var _ PriceClient = (*priceClient)(nil)

func NewPriceClient(baseUrl string, log *log.Logger) PriceClient {
	return &priceClient{
		baseUrl: baseUrl,

		log: log,
	}
}

// PriceClient interface

func (c *priceClient) Prices(ctx context.Context, ids []string) (map[string]float64, error) {
	if len(ids) == 0 {
		return map[string]float64{}, nil
	}

	url := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", c.baseUrl, strings.Join(ids, ","))
	data, err := c.makeRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	// The response is keyed by the requested ids, so the fields can't be
	// expressed as a static struct.
	prices := make(map[string]float64)
	for _, id := range ids {
		result := gjson.GetBytes(data, fmt.Sprintf("%s.usd", id))
		if !result.Exists() {
			c.log.Debug("oracle response missing price for id", "id", id)
			continue
		}
		prices[id] = result.Float()
	}

	c.log.Debug("fetched prices", "num_requested", len(ids), "num_priced", len(prices))
	return prices, nil
}

func (c *priceClient) Price(ctx context.Context, id string) (float64, error) {
	prices, err := c.Prices(ctx, []string{id})
	if err != nil {
		return 0, err
	}

	price, found := prices[id]
	if !found {
		return 0, ErrPriceUnavailable
	}
	return price, nil
}

func (c *priceClient) makeRequest(ctx context.Context, url string) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", "application/json")

	client := &http.Client{}
	resp, err := client.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-OK HTTP status from oracle: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
