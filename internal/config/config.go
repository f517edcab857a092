package config

import (
	"fmt"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chainfoot/nft-fantasy/internal/platform/logging"
)

// Config stores runtime configuration for the service.
type Config struct {
	AppEnv                     string
	ServiceName                string
	ServiceVersion             string
	HTTPAddr                   string
	DBURL                      string
	DBDisablePreparedBinary    bool
	CacheEnabled               bool
	CacheTTL                   time.Duration
	CORSAllowedOrigins         []string
	ReadTimeout                time.Duration
	WriteTimeout               time.Duration
	PprofEnabled               bool
	PprofAddr                  string
	AdminToken                 string
	ChainAPIBaseURL            string
	ChainTimeout               time.Duration
	ChainMaxRetries            int
	ChainCircuitEnabled        bool
	ChainCircuitFailureCount   int
	ChainCircuitOpenTimeout    time.Duration
	ChainCircuitHalfOpenMaxReq int
	MarketplaceContract        string
	NFTCollection              string
	PaymentReceiverAddress     string
	PerSlotFee                 *big.Int
	TeamNameCreateFee          *big.Int
	TeamNameEditFee            *big.Int
	GasReserve                 *big.Int
	ConfirmPollInterval        time.Duration
	ConfirmMaxAttempts         int
	UptraceEnabled             bool
	UptraceDSN                 string
	UptraceLogsEnabled         bool
	PyroscopeEnabled           bool
	PyroscopeServerAddress     string
	PyroscopeAppName           string
	PyroscopeAuthToken         string
	PyroscopeBasicAuthUser     string
	PyroscopeBasicAuthPassword string
	PyroscopeUploadRate        time.Duration
	LogLevel                   logging.Level
}

func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	uptraceEnabled, err := strconv.ParseBool(getEnv("UPTRACE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_ENABLED: %w", err)
	}

	uptraceDSN := strings.TrimSpace(getEnv("UPTRACE_DSN", ""))
	if uptraceDSN == "" {
		uptraceDSN = parseUptraceDSNFromOTLPHeaders(getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""))
	}
	if uptraceEnabled && uptraceDSN == "" {
		return Config{}, fmt.Errorf("UPTRACE_DSN is required when UPTRACE_ENABLED=true")
	}
	uptraceLogsEnabled, err := strconv.ParseBool(getEnv("UPTRACE_LOGS_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse UPTRACE_LOGS_ENABLED: %w", err)
	}

	pprofEnabled, err := strconv.ParseBool(getEnv("PPROF_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PPROF_ENABLED: %w", err)
	}
	pprofAddr := strings.TrimSpace(getEnv("PPROF_ADDR", ":6060"))
	if pprofEnabled && pprofAddr == "" {
		return Config{}, fmt.Errorf("PPROF_ADDR is required when PPROF_ENABLED=true")
	}

	pyroscopeEnabled, err := strconv.ParseBool(getEnv("PYROSCOPE_ENABLED", "false"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_ENABLED: %w", err)
	}
	pyroscopeServerAddress := strings.TrimSpace(getEnv("PYROSCOPE_SERVER_ADDRESS", ""))
	if pyroscopeEnabled && pyroscopeServerAddress == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_SERVER_ADDRESS is required when PYROSCOPE_ENABLED=true")
	}
	pyroscopeUploadRate, err := time.ParseDuration(getEnv("PYROSCOPE_UPLOAD_RATE", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse PYROSCOPE_UPLOAD_RATE: %w", err)
	}
	if pyroscopeUploadRate <= 0 {
		return Config{}, fmt.Errorf("PYROSCOPE_UPLOAD_RATE must be > 0")
	}

	chainTimeout, err := time.ParseDuration(getEnv("CHAIN_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CHAIN_TIMEOUT: %w", err)
	}
	if chainTimeout <= 0 {
		return Config{}, fmt.Errorf("CHAIN_TIMEOUT must be > 0")
	}
	chainMaxRetries, err := getEnvAsInt("CHAIN_MAX_RETRIES", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse CHAIN_MAX_RETRIES: %w", err)
	}
	if chainMaxRetries < 0 {
		return Config{}, fmt.Errorf("CHAIN_MAX_RETRIES must be >= 0")
	}
	chainCircuitEnabled, err := strconv.ParseBool(getEnv("CHAIN_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CHAIN_CIRCUIT_ENABLED: %w", err)
	}
	chainCircuitFailureCount, err := getEnvAsInt("CHAIN_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse CHAIN_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	if chainCircuitFailureCount < 1 {
		return Config{}, fmt.Errorf("CHAIN_CIRCUIT_FAILURE_COUNT must be >= 1")
	}
	chainCircuitOpenTimeout, err := time.ParseDuration(getEnv("CHAIN_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CHAIN_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	if chainCircuitOpenTimeout <= 0 {
		return Config{}, fmt.Errorf("CHAIN_CIRCUIT_OPEN_TIMEOUT must be > 0")
	}
	chainCircuitHalfOpenMaxReq, err := getEnvAsInt("CHAIN_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse CHAIN_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}
	if chainCircuitHalfOpenMaxReq < 1 {
		return Config{}, fmt.Errorf("CHAIN_CIRCUIT_HALF_OPEN_MAX_REQ must be >= 1")
	}

	perSlotFee, err := parseFeeAmount("PER_SLOT_FEE", "200000000000000000")
	if err != nil {
		return Config{}, err
	}
	teamNameCreateFee, err := parseFeeAmount("TEAM_NAME_CREATE_FEE", "100000000000000000")
	if err != nil {
		return Config{}, err
	}
	teamNameEditFee, err := parseFeeAmount("TEAM_NAME_EDIT_FEE", "1000000000000000000")
	if err != nil {
		return Config{}, err
	}
	gasReserve, err := parseFeeAmount("GAS_RESERVE", "5000000000000000")
	if err != nil {
		return Config{}, err
	}

	confirmPollInterval, err := time.ParseDuration(getEnv("CONFIRM_POLL_INTERVAL", "2s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CONFIRM_POLL_INTERVAL: %w", err)
	}
	if confirmPollInterval <= 0 {
		return Config{}, fmt.Errorf("CONFIRM_POLL_INTERVAL must be > 0")
	}
	confirmMaxAttempts, err := getEnvAsInt("CONFIRM_MAX_ATTEMPTS", 30)
	if err != nil {
		return Config{}, fmt.Errorf("parse CONFIRM_MAX_ATTEMPTS: %w", err)
	}
	if confirmMaxAttempts < 1 {
		return Config{}, fmt.Errorf("CONFIRM_MAX_ATTEMPTS must be >= 1")
	}

	paymentReceiver := strings.TrimSpace(getEnv("CHAIN_RECEIVER_ADDRESS", ""))
	if appEnv == EnvProd && paymentReceiver == "" {
		return Config{}, fmt.Errorf("CHAIN_RECEIVER_ADDRESS is required when APP_ENV=prod")
	}

	cfg := Config{
		AppEnv:                     appEnv,
		ServiceName:                getEnv("APP_SERVICE_NAME", "nft-fantasy-api"),
		ServiceVersion:             getEnv("APP_SERVICE_VERSION", "dev"),
		HTTPAddr:                   getEnv("APP_HTTP_ADDR", ":8080"),
		DBURL:                      getEnv("DB_URL", ""),
		DBDisablePreparedBinary:    true,
		CORSAllowedOrigins:         splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		PprofEnabled:               pprofEnabled,
		PprofAddr:                  pprofAddr,
		AdminToken:                 strings.TrimSpace(getEnv("ADMIN_TOKEN", "")),
		ChainAPIBaseURL:            getEnv("CHAIN_API_URL", "https://devnet-api.multiversx.com"),
		ChainTimeout:               chainTimeout,
		ChainMaxRetries:            chainMaxRetries,
		ChainCircuitEnabled:        chainCircuitEnabled,
		ChainCircuitFailureCount:   chainCircuitFailureCount,
		ChainCircuitOpenTimeout:    chainCircuitOpenTimeout,
		ChainCircuitHalfOpenMaxReq: chainCircuitHalfOpenMaxReq,
		MarketplaceContract:        strings.TrimSpace(getEnv("MARKETPLACE_CONTRACT", "")),
		NFTCollection:              strings.TrimSpace(getEnv("NFT_COLLECTION", "")),
		PaymentReceiverAddress:     paymentReceiver,
		PerSlotFee:                 perSlotFee,
		TeamNameCreateFee:          teamNameCreateFee,
		TeamNameEditFee:            teamNameEditFee,
		GasReserve:                 gasReserve,
		ConfirmPollInterval:        confirmPollInterval,
		ConfirmMaxAttempts:         confirmMaxAttempts,
		UptraceEnabled:             uptraceEnabled,
		UptraceDSN:                 uptraceDSN,
		UptraceLogsEnabled:         uptraceLogsEnabled,
		PyroscopeEnabled:           pyroscopeEnabled,
		PyroscopeServerAddress:     pyroscopeServerAddress,
		PyroscopeAuthToken:         strings.TrimSpace(getEnv("PYROSCOPE_AUTH_TOKEN", "")),
		PyroscopeBasicAuthUser:     strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_USER", "")),
		PyroscopeBasicAuthPassword: strings.TrimSpace(getEnv("PYROSCOPE_BASIC_AUTH_PASSWORD", "")),
		PyroscopeUploadRate:        pyroscopeUploadRate,
	}
	cfg.PyroscopeAppName = strings.TrimSpace(getEnv("PYROSCOPE_APP_NAME", cfg.ServiceName))
	if cfg.PyroscopeEnabled && cfg.PyroscopeAppName == "" {
		return Config{}, fmt.Errorf("PYROSCOPE_APP_NAME cannot be empty when PYROSCOPE_ENABLED=true")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return Config{}, fmt.Errorf("CORS_ALLOWED_ORIGINS cannot be empty")
	}
	if appEnv == EnvProd && cfg.AdminToken == "" {
		return Config{}, fmt.Errorf("ADMIN_TOKEN is required when APP_ENV=prod")
	}

	dbDisablePreparedBinary, err := strconv.ParseBool(getEnv("DB_DISABLE_PREPARED_BINARY_RESULT", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse DB_DISABLE_PREPARED_BINARY_RESULT: %w", err)
	}
	cfg.DBDisablePreparedBinary = dbDisablePreparedBinary

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("CACHE_TTL", "60s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_TTL: %w", err)
	}
	if cacheTTL <= 0 {
		return Config{}, fmt.Errorf("CACHE_TTL must be > 0")
	}
	cfg.CacheEnabled = cacheEnabled
	cfg.CacheTTL = cacheTTL

	readTimeout, err := time.ParseDuration(getEnv("APP_READ_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_READ_TIMEOUT: %w", err)
	}

	writeTimeout, err := time.ParseDuration(getEnv("APP_WRITE_TIMEOUT", "90s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse APP_WRITE_TIMEOUT: %w", err)
	}

	cfg.ReadTimeout = readTimeout
	cfg.WriteTimeout = writeTimeout
	cfg.LogLevel = parseLogLevel(getEnv("APP_LOG_LEVEL", "info"))

	return cfg, nil
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		out = append(out, item)
	}

	return out
}

// parseFeeAmount reads a base-10 EGLD amount in its smallest denomination.
func parseFeeAmount(key, fallback string) (*big.Int, error) {
	raw := strings.TrimSpace(getEnv(key, fallback))
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		return nil, fmt.Errorf("parse %s: invalid amount %q", key, raw)
	}
	if amount.Sign() < 0 {
		return nil, fmt.Errorf("%s must be >= 0", key)
	}

	return amount, nil
}

func parseUptraceDSNFromOTLPHeaders(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	items := strings.Split(raw, ",")
	for _, item := range items {
		parts := strings.SplitN(strings.TrimSpace(item), "=", 2)
		if len(parts) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(parts[0]), "uptrace-dsn") {
			value := strings.TrimSpace(parts[1])
			return strings.Trim(value, "\"'")
		}
	}

	return ""
}

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvStage, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q, expected one of dev, stage, prod", v)
	}
}
