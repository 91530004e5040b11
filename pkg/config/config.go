package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Store     StoreConfig
	Checkout  CheckoutConfig
	Loyalty   LoyaltyConfig
	Inventory InventoryConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	Telemetry TelemetryConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	ShopName string // encabezado de los recibos
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
	AutoMigrate bool
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig elige el almacenamiento: "postgres" o "memory" (demo y pruebas locales).
type StoreConfig struct {
	Driver string
}

// CheckoutConfig parámetros del cierre de venta.
type CheckoutConfig struct {
	AllowNegativeStock bool
	LockTimeout        time.Duration
	IsolationLevel     string // read_committed, repeatable_read, serializable
}

// LoyaltyConfig política de puntos: "divisor" (un punto cada Divisor unidades) o "rate".
type LoyaltyConfig struct {
	Policy  string
	Divisor float64
	Rate    float64
}

// InventoryConfig valores por defecto de inventario.
type InventoryConfig struct {
	LowStockThreshold int // umbral de reorden para productos nuevos
}

// RedisConfig caché del tablero. Addr vacío = sin caché.
type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	DashboardTTL time.Duration
}

// KafkaConfig publicación de eventos de venta. Sin brokers = no se publica.
type KafkaConfig struct {
	Brokers    []string
	SalesTopic string
}

// TelemetryConfig trazas OpenTelemetry.
type TelemetryConfig struct {
	Exporter     string // none, stdout, otlp
	OTLPEndpoint string
	ServiceName  string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, CHECKOUT_LOCK_TIMEOUT_MS, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "tienda-pos"),
			ShopName: getString(v, "SHOP_NAME", "Tienda"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "tienda_pos"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
			AutoMigrate: getBool(v, "DB_AUTO_MIGRATE", true),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "tienda-pos"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Store: StoreConfig{
			Driver: getString(v, "STORE_DRIVER", "postgres"),
		},
		Checkout: CheckoutConfig{
			AllowNegativeStock: getBool(v, "CHECKOUT_ALLOW_NEGATIVE_STOCK", false),
			LockTimeout:        time.Duration(getInt(v, "CHECKOUT_LOCK_TIMEOUT_MS", 5000)) * time.Millisecond,
			IsolationLevel:     getString(v, "CHECKOUT_ISOLATION", "read_committed"),
		},
		Loyalty: LoyaltyConfig{
			Policy:  getString(v, "LOYALTY_POLICY", "divisor"),
			Divisor: getFloat(v, "LOYALTY_DIVISOR", 10),
			Rate:    getFloat(v, "LOYALTY_RATE", 0.1),
		},
		Inventory: InventoryConfig{
			LowStockThreshold: getInt(v, "INVENTORY_LOW_STOCK_THRESHOLD", 5),
		},
		Redis: RedisConfig{
			Addr:         getString(v, "REDIS_ADDR", ""),
			Password:     getString(v, "REDIS_PASSWORD", ""),
			DB:           getInt(v, "REDIS_DB", 0),
			DashboardTTL: time.Duration(getInt(v, "DASHBOARD_CACHE_TTL_SECONDS", 30)) * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:    splitList(getString(v, "KAFKA_BROKERS", "")),
			SalesTopic: getString(v, "KAFKA_SALES_TOPIC", "sales.committed"),
		},
		Telemetry: TelemetryConfig{
			Exporter:     getString(v, "OTEL_EXPORTER", "none"),
			OTLPEndpoint: getString(v, "OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName:  getString(v, "OTEL_SERVICE_NAME", "tienda-pos"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("config: STORE_DRIVER inválido %q", c.Store.Driver)
	}
	if c.Checkout.LockTimeout < 0 {
		return fmt.Errorf("config: CHECKOUT_LOCK_TIMEOUT_MS no puede ser negativo")
	}
	if c.Inventory.LowStockThreshold < 0 {
		return fmt.Errorf("config: INVENTORY_LOW_STOCK_THRESHOLD no puede ser negativo")
	}
	return nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	if s, ok := v.Get(key).(string); ok {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return n
	}
	return v.GetInt(key)
}

func getFloat(v *viper.Viper, key string, def float64) float64 {
	if !v.IsSet(key) {
		return def
	}
	if s, ok := v.Get(key).(string); ok {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return def
		}
		return f
	}
	return v.GetFloat64(key)
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if !v.IsSet(key) {
		return def
	}
	if s, ok := v.Get(key).(string); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			return def
		}
		return b
	}
	return v.GetBool(key)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
