package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type TransactionConfig struct {
	Env            string `yaml:"env"`
	TransactionDB  `yaml:"transaction_db"`
	LogConfig      `yaml:"log_config"`
	KafkaService   `yaml:"kafka-service"`
	RedisService   `yaml:"redis-service"`
	GatewayService `yaml:"gateway-service"`
	NodeService    `yaml:"node-service"`
	Payment        `yaml:"payment"`
	Queues         `yaml:"queues"`
	Checkout       `yaml:"checkout"`
	Features       `yaml:"features"`
}

type TransactionDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type KafkaService struct {
	Host              string `yaml:"host"`
	Port              string `yaml:"port"`
	TransactionsTopic string `yaml:"transactions_topic"`
	ClosureTopic      string `yaml:"closure_topic"`
}

type RedisService struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db"`
}

// GatewayService holds the base URL and credentials of the external payment
// gateway; NodeService those of the payment-notice service.
type GatewayService struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key" env:"GATEWAY_API_KEY"`
}

type NodeService struct {
	BaseURL    string `yaml:"base_url"`
	FiscalCode string `yaml:"fiscal_code"`
}

type Payment struct {
	// TokenValiditySeconds bounds both the payment token lifetime and the
	// authorization lock lease.
	TokenValiditySeconds       int `yaml:"token_validity_seconds" env-default:"900"`
	RequestsCacheFreshnessSecs int `yaml:"requests_cache_freshness_seconds" env-default:"600"`
}

type Queues struct {
	TTLSeconds                       int `yaml:"ttl_seconds" env-default:"30"`
	ExpirationVisibilityDelaySeconds int `yaml:"expiration_visibility_delay_seconds" env-default:"900"`
}

type Checkout struct {
	BasePath        string `yaml:"base_path"`
	OutcomePath     string `yaml:"outcome_path"`
	AppOutcomePath  string `yaml:"app_outcome_path"`
	GdiCheckPath    string `yaml:"gdi_check_path"`
	AppGdiCheckPath string `yaml:"app_gdi_check_path"`
}

type Features struct {
	SendPaymentResultForTxExpired bool `yaml:"send_payment_result_for_tx_expired"`
	TransactionsViewUpdateEnabled bool `yaml:"transactions_view_update_enabled" env-default:"true"`
}

func MustLoad() *TransactionConfig {

	// Processing env config variable and file
	configPath := os.Getenv("TRANSACTION_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("TRANSACTION_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg TransactionConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
