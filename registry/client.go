package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/geoffmunn/utility-scripts-sub000/log"
)

// AssetListClient fetches asset lists from a hosted registry service. The
// shape is compatible with chain-registry style `assetlist.json` documents.
type AssetListClient struct {
	baseUrl string

	log *log.Logger
}

// JSON shapes for the hosted asset list.

type assetListResponse struct {
	ChainName string          `json:"chain_name"`
	Assets    []assetResponse `json:"assets"`
}

type assetResponse struct {
	Base        string      `json:"base"`
	Symbol      string      `json:"symbol"`
	Name        string      `json:"name"`
	Display     string      `json:"display"`
	CoingeckoID string      `json:"coingecko_id"`
	DenomUnits  []denomUnit `json:"denom_units"`
}

type denomUnit struct {
	Denom    string `json:"denom"`
	Exponent int    `json:"exponent"`
}

func NewAssetListClient(baseUrl string, log *log.Logger) *AssetListClient {
	return &AssetListClient{
		baseUrl: baseUrl,

		log: log,
	}
}

// Assets fetches the asset list for a chain and maps it into registry assets.
// Precision comes from the denom unit matching the display denom.
func (c *AssetListClient) Assets(ctx context.Context, chainName string) ([]Asset, error) {
	url := fmt.Sprintf("%s/%s/assetlist.json", c.baseUrl, chainName)

	bytes, err := c.makeRequest(ctx, url)
	if err != nil {
		return nil, err
	}

	var response assetListResponse
	if err := json.Unmarshal(bytes, &response); err != nil {
		return nil, err
	}

	assets := make([]Asset, 0, len(response.Assets))
	for _, raw := range response.Assets {
		decimals := 0
		for _, unit := range raw.DenomUnits {
			if unit.Denom == raw.Display {
				decimals = unit.Exponent
			}
		}

		assets = append(assets, Asset{
			Denom:       raw.Base,
			Symbol:      raw.Symbol,
			Name:        raw.Name,
			Decimals:    decimals,
			ChainName:   response.ChainName,
			CoingeckoID: raw.CoingeckoID,
		})
	}

	c.log.Debug("fetched asset list", "chain_name", chainName, "num_assets", len(assets))
	return assets, nil
}

func (c *AssetListClient) makeRequest(ctx context.Context, url string) ([]byte, error) {
	c.log.Debug("making GET request to url", "url", url)

	request, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(request)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, readErr := io.ReadAll(resp.Body)
		if readErr == nil {
			c.log.Debug("received bad response from asset registry", "response", string(data), "status_code", resp.StatusCode)
		}

		return nil, fmt.Errorf("received non-OK HTTP status: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
