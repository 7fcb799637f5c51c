package pools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"cosmossdk.io/math"

	"github.com/geoffmunn/utility-scripts-sub000/log"
)

// Fetcher retrieves the full pool list for a refresh.
type Fetcher interface {
	FetchPools(ctx context.Context) ([]Pool, error)
}

// lcdFetcher pulls pool composition from a gamm-style LCD REST endpoint,
// walking pagination until the chain reports no further key.
type lcdFetcher struct {
	lcdUrl string

	log *log.Logger
}

var _ Fetcher = (*lcdFetcher)(nil)

func NewLcdFetcher(lcdUrl string, log *log.Logger) Fetcher {
	return &lcdFetcher{
		lcdUrl: lcdUrl,

		log: log,
	}
}

// JSON shapes for the LCD pool listing.

type poolsResponse struct {
	Pools      []poolResponse     `json:"pools"`
	Pagination paginationResponse `json:"pagination"`
}

type poolResponse struct {
	ID         string              `json:"id"`
	Address    string              `json:"address"`
	PoolParams poolParamsResponse  `json:"pool_params"`
	PoolAssets []poolAssetResponse `json:"pool_assets"`
}

type poolParamsResponse struct {
	SwapFee string `json:"swap_fee"`
}

type poolAssetResponse struct {
	Token  tokenResponse `json:"token"`
	Weight string        `json:"weight"`
}

type tokenResponse struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

type paginationResponse struct {
	NextKey string `json:"next_key"`
}

// Fetcher interface

func (f *lcdFetcher) FetchPools(ctx context.Context) ([]Pool, error) {
	pools := []Pool{}

	var nextKey string
	for {
		page, err := f.fetchPage(ctx, nextKey)
		if err != nil {
			return nil, err
		}

		for _, raw := range page.Pools {
			pool, err := mapPool(raw)
			if err != nil {
				return nil, err
			}
			pools = append(pools, *pool)
		}
		f.log.Debug("fetched page of pools", "num_in_page", len(page.Pools), "total_fetched", len(pools))

		if page.Pagination.NextKey == "" {
			break
		}
		nextKey = page.Pagination.NextKey
	}

	return pools, nil
}

func (f *lcdFetcher) fetchPage(ctx context.Context, nextKey string) (*poolsResponse, error) {
	requestUrl := fmt.Sprintf("%s/pools", f.lcdUrl)
	if nextKey != "" {
		requestUrl = fmt.Sprintf("%s?pagination.key=%s", requestUrl, url.QueryEscape(nextKey))
	}

	data, err := f.makeRequest(ctx, requestUrl)
	if err != nil {
		return nil, err
	}

	var response poolsResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, err
	}
	return &response, nil
}

func (f *lcdFetcher) makeRequest(ctx context.Context, url string) ([]byte, error) {
	f.log.Debug("making GET request to url", "url", url)

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
		return nil, fmt.Errorf("received non-OK HTTP status from LCD: %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func mapPool(raw poolResponse) (*Pool, error) {
	var id uint64
	if _, err := fmt.Sscanf(raw.ID, "%d", &id); err != nil {
		return nil, fmt.Errorf("unparseable pool id: %s", raw.ID)
	}

	swapFee, err := math.LegacyNewDecFromStr(raw.PoolParams.SwapFee)
	if err != nil {
		return nil, fmt.Errorf("unparseable swap fee for pool %d: %w", id, err)
	}

	assets := make([]PoolAsset, 0, len(raw.PoolAssets))
	for _, rawAsset := range raw.PoolAssets {
		amount, ok := math.NewIntFromString(rawAsset.Token.Amount)
		if !ok {
			return nil, fmt.Errorf("unparseable amount for pool %d, denom %s", id, rawAsset.Token.Denom)
		}
		weight, ok := math.NewIntFromString(rawAsset.Weight)
		if !ok {
			return nil, fmt.Errorf("unparseable weight for pool %d, denom %s", id, rawAsset.Token.Denom)
		}

		assets = append(assets, PoolAsset{
			Denom:  rawAsset.Token.Denom,
			Amount: amount,
			Weight: weight,
		})
	}

	return &Pool{
		ID:      id,
		Address: raw.Address,
		SwapFee: swapFee,
		Assets:  assets,
	}, nil
}
