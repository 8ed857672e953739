package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Broker kinds accepted by broker.kind.
const (
	BrokerAMQP    = "amqp"
	BrokerKnative = "knative"
	BrokerNATS    = "nats"
	BrokerKafka   = "kafka"
)

// EnvPrefix prefixes every environment override, e.g. BRIDGE_BROKER_KIND.
const EnvPrefix = "BRIDGE"

// ConfigFileEnv names the environment variable holding the config file path.
const ConfigFileEnv = "BRIDGE_CONFIG_FILE"

// Config contains runtime configuration required by the service.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	CORS        CORSConfig        `mapstructure:"cors"`
	API         APIConfig         `mapstructure:"api"`
	Broker      BrokerConfig      `mapstructure:"broker"`
	Diagnostics DiagnosticsConfig `mapstructure:"diagnostics"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
}

// APIConfig locates the OpenAPI document. An empty path serves the embedded copy.
type APIConfig struct {
	OpenAPIPath string `mapstructure:"openapi_path"`
}

// BrokerConfig selects and configures the downstream publisher.
type BrokerConfig struct {
	Kind        string        `mapstructure:"kind"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	AMQP        AMQPConfig    `mapstructure:"amqp"`
	Knative     KnativeConfig `mapstructure:"knative"`
	NATS        NATSConfig    `mapstructure:"nats"`
	Kafka       KafkaConfig   `mapstructure:"kafka"`
}

// AMQPConfig targets an AMQP 1.0 broker address (queue).
type AMQPConfig struct {
	URL      string `mapstructure:"url"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Address  string `mapstructure:"address"`
}

// KnativeConfig targets a Knative eventing broker ingress.
type KnativeConfig struct {
	URL       string `mapstructure:"url"`
	EventType string `mapstructure:"event_type"`
	Source    string `mapstructure:"source"`
}

type NATSConfig struct {
	URL     string `mapstructure:"url"`
	Subject string `mapstructure:"subject"`
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// DiagnosticsConfig toggles best-effort payload inspection for logging.
type DiagnosticsConfig struct {
	ExtractEventHeaders bool `mapstructure:"extract_event_headers"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the optional YAML file at path (falling back
// to $BRIDGE_CONFIG_FILE) and from BRIDGE_* environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = strings.TrimSpace(os.Getenv(ConfigFileEnv))
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Broker.Kind = strings.ToLower(strings.TrimSpace(cfg.Broker.Kind))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("server.max_body_bytes", 1<<20)

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_headers", []string{"Origin", "Accept", "Content-Type", "breadcrumbId"})

	v.SetDefault("api.openapi_path", "")

	v.SetDefault("broker.kind", BrokerAMQP)
	v.SetDefault("broker.dial_timeout", "10s")
	v.SetDefault("broker.amqp.url", "amqp://localhost:5672")
	v.SetDefault("broker.amqp.username", "")
	v.SetDefault("broker.amqp.password", "")
	v.SetDefault("broker.amqp.address", "RHOAM.WEBHOOK.EVENTS.QUEUE")
	v.SetDefault("broker.knative.url", "http://broker-ingress.knative-eventing.svc.cluster.local/default/default")
	v.SetDefault("broker.knative.event_type", "rhoam.webhook.event")
	v.SetDefault("broker.knative.source", "/webhook/amqpbridge")
	v.SetDefault("broker.nats.url", "nats://localhost:4222")
	v.SetDefault("broker.nats.subject", "RHOAM.WEBHOOK.EVENTS")
	v.SetDefault("broker.kafka.brokers", []string{"localhost:9092"})
	v.SetDefault("broker.kafka.topic", "rhoam-webhook-events")

	v.SetDefault("diagnostics.extract_event_headers", false)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
}

// Validate rejects configurations the bridge cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New("server.max_body_bytes must be positive")
	}

	switch c.Broker.Kind {
	case BrokerAMQP:
		if c.Broker.AMQP.URL == "" || c.Broker.AMQP.Address == "" {
			return errors.New("broker.amqp.url and broker.amqp.address required")
		}
	case BrokerKnative:
		if c.Broker.Knative.URL == "" {
			return errors.New("broker.knative.url required")
		}
		if c.Broker.Knative.EventType == "" || c.Broker.Knative.Source == "" {
			return errors.New("broker.knative.event_type and broker.knative.source required")
		}
	case BrokerNATS:
		if c.Broker.NATS.URL == "" || c.Broker.NATS.Subject == "" {
			return errors.New("broker.nats.url and broker.nats.subject required")
		}
	case BrokerKafka:
		if len(c.Broker.Kafka.Brokers) == 0 || c.Broker.Kafka.Topic == "" {
			return errors.New("broker.kafka.brokers and broker.kafka.topic required")
		}
	default:
		return fmt.Errorf("broker.kind must be one of amqp, knative, nats, kafka; got %q", c.Broker.Kind)
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return errors.New(`metrics.path must start with "/"`)
	}
	return nil
}
