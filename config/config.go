package config

import (
	"fmt"
	"os"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"gopkg.in/yaml.v2"

	"github.com/geoffmunn/utility-scripts-sub000/log"
)

// Config is the engine's YAML configuration.
type Config struct {
	ChainID      string `yaml:"chain_id" comment:"Chain ID of the target network (ex. columbus-5)"`
	Bech32Prefix string `yaml:"bech32_prefix" comment:"Bech32 account prefix of the target network (ex. terra)"`

	GrpcEndpoint      string `yaml:"grpc_endpoint" comment:"gRPC endpoint of a full node"`
	LcdEndpoint       string `yaml:"lcd_endpoint" comment:"LCD / REST endpoint of a full node"`
	AssetListEndpoint string `yaml:"asset_list_endpoint" comment:"Base URL serving per-chain asset lists"`
	PriceApiEndpoint  string `yaml:"price_api_endpoint" comment:"Base URL of the USD price API"`

	RouterContract string `yaml:"router_contract" comment:"Address of the swap router contract"`

	GasPrices string  `yaml:"gas_prices" comment:"Gas prices to derive candidate fees from (ex. 28.325uluna,0.75uusd)"`
	GasFactor float64 `yaml:"gas_factor" comment:"Safety multiplier applied to simulated gas"`
	TaxRate   string  `yaml:"tax_rate" comment:"On-chain transfer tax rate (ex. 0.005)"`

	HubDenoms   []string `yaml:"hub_denoms" comment:"Denoms to try as intermediates for two-hop swap routes"`
	MaxSlippage string   `yaml:"max_slippage" comment:"Slippage tolerance applied to swap estimates (ex. 0.01)"`

	MaxSequenceRetries uint `yaml:"max_sequence_retries" comment:"How many times to re-sign after an account sequence mismatch"`
	TxPollAttempts     uint `yaml:"tx_poll_attempts" comment:"How many times to poll for a broadcast transaction"`
	TxPollDelaySeconds uint `yaml:"tx_poll_delay_seconds" comment:"Delay between transaction polls"`

	RetryAttempts     uint `yaml:"retry_attempts" comment:"How many times to retry failed node queries"`
	RetryDelaySeconds uint `yaml:"retry_delay_seconds" comment:"Delay between node query retries"`

	PoolRefreshSeconds uint   `yaml:"pool_refresh_seconds" comment:"How often to refresh the pool liquidity snapshot"`
	PoolDatabase       string `yaml:"pool_database" comment:"Path to the pool snapshot database. Empty keeps the snapshot in memory"`
}

// defaultConfig carries the values a fresh install starts from.
func defaultConfig() *Config {
	return &Config{
		ChainID:      "columbus-5",
		Bech32Prefix: "terra",

		GasPrices: "28.325uluna,0.75uusd",
		GasFactor: 1.2,
		TaxRate:   "0.005",

		HubDenoms:   []string{"uluna", "uusd"},
		MaxSlippage: "0.01",

		MaxSequenceRetries: 5,
		TxPollAttempts:     30,
		TxPollDelaySeconds: 1,

		RetryAttempts:     3,
		RetryDelaySeconds: 1,

		PoolRefreshSeconds: 60,
	}
}

// LoadConfig reads and validates a config file.
func LoadConfig(configFile string) (*Config, error) {
	normalized, err := NormalizeConfigFile(configFile)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(normalized)
	if err != nil {
		return nil, err
	}

	config := defaultConfig()
	err = yaml.Unmarshal(data, config)
	if err != nil {
		return nil, err
	}

	err = config.Validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

// CreateDefaultConfigIfNeeded writes a commented starter config, leaving an
// existing file untouched.
func CreateDefaultConfigIfNeeded(configFile string, logger *log.Logger) error {
	header := "Wallet engine configuration"
	return WriteYamlWithComments(defaultConfig(), header, configFile, logger)
}

func (c *Config) Validate() error {
	if c.ChainID == "" {
		return fmt.Errorf("config must set chain_id")
	}
	if c.Bech32Prefix == "" {
		return fmt.Errorf("config must set bech32_prefix")
	}
	if c.GasFactor < 1.0 {
		return fmt.Errorf("gas_factor must be at least 1.0, got %f", c.GasFactor)
	}
	if _, err := c.GasPricesCoins(); err != nil {
		return fmt.Errorf("invalid gas_prices: %w", err)
	}
	if _, err := c.TaxRateDec(); err != nil {
		return fmt.Errorf("invalid tax_rate: %w", err)
	}
	if _, err := c.MaxSlippageDec(); err != nil {
		return fmt.Errorf("invalid max_slippage: %w", err)
	}
	return nil
}

// GasPricesCoins parses gas_prices into one dec coin per fee denom.
func (c *Config) GasPricesCoins() (sdk.DecCoins, error) {
	return sdk.ParseDecCoins(c.GasPrices)
}

func (c *Config) TaxRateDec() (math.LegacyDec, error) {
	return math.LegacyNewDecFromStr(c.TaxRate)
}

func (c *Config) MaxSlippageDec() (math.LegacyDec, error) {
	return math.LegacyNewDecFromStr(c.MaxSlippage)
}

func (c *Config) TxPollDelay() time.Duration {
	return time.Duration(c.TxPollDelaySeconds) * time.Second
}

func (c *Config) RetryDelay() time.Duration {
	return time.Duration(c.RetryDelaySeconds) * time.Second
}

func (c *Config) PoolRefreshInterval() time.Duration {
	return time.Duration(c.PoolRefreshSeconds) * time.Second
}
