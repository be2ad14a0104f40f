package config

import (
	"flag"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Address     string `env:"RUN_ADDRESS"  envDefault:"localhost:8080"`
	Database    string `env:"DATABASE_URI" envDefault:""`
	LogLvl      string `env:"LOG_LVL"      envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT"   envDefault:"console"`
	JWTSecret   string `env:"JWT_SECRET"   envDefault:"change-me"`
	RedisAddr   string `env:"REDIS_ADDR"   envDefault:""`
	KafkaBroker string `env:"KAFKA_BROKERS" envDefault:""`
	KafkaTopic  string `env:"KAFKA_TOPIC"  envDefault:"payledger.events"`
	WebhookURL  string `env:"WEBHOOK_URL"  envDefault:""`
	Workers     int    `env:"WORKERS"      envDefault:"10"`

	Simulation Simulation
}

// Simulation tunes the stand-in payment processor.
type Simulation struct {
	PaymentDelay       time.Duration `env:"SIM_PAYMENT_DELAY"       envDefault:"2s"`
	RefundDelay        time.Duration `env:"SIM_REFUND_DELAY"        envDefault:"1500ms"`
	VerificationDelay  time.Duration `env:"SIM_VERIFICATION_DELAY"  envDefault:"3s"`
	PayoutStartDelay   time.Duration `env:"SIM_PAYOUT_START_DELAY"  envDefault:"5s"`
	PayoutSettleDelay  time.Duration `env:"SIM_PAYOUT_SETTLE_DELAY" envDefault:"3s"`
	PaymentSuccessRate float64       `env:"SIM_PAYMENT_SUCCESS"     envDefault:"0.95"`
	VerificationRate   float64       `env:"SIM_VERIFICATION_SUCCESS" envDefault:"0.9"`
	PayoutSuccessRate  float64       `env:"SIM_PAYOUT_SUCCESS"      envDefault:"0.98"`
}

func New() *Config {
	cfg := &Config{}

	_ = godotenv.Load()
	env.Parse(cfg)

	flag.StringVar(&cfg.Address, "a", cfg.Address, "address and port to run server")
	flag.StringVar(&cfg.Database, "d", cfg.Database, "database DSN, in-memory storage when empty")
	flag.StringVar(&cfg.LogLvl, "l", cfg.LogLvl, "log level")
	flag.StringVar(&cfg.LogFormat, "f", cfg.LogFormat, "log format, console or json")
	flag.StringVar(&cfg.RedisAddr, "r", cfg.RedisAddr, "redis address for the in-flight guard")
	flag.StringVar(&cfg.KafkaBroker, "k", cfg.KafkaBroker, "comma separated kafka brokers")
	flag.StringVar(&cfg.WebhookURL, "w", cfg.WebhookURL, "webhook URL for ledger events")
	flag.IntVar(&cfg.Workers, "n", cfg.Workers, "number of processing workers")
	flag.Parse()

	if cfg.WebhookURL != "" && !strings.HasPrefix(cfg.WebhookURL, "http://") && !strings.HasPrefix(cfg.WebhookURL, "https://") {
		cfg.WebhookURL = "http://" + cfg.WebhookURL
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	return cfg
}

func (c *Config) KafkaBrokers() []string {
	if c.KafkaBroker == "" {
		return nil
	}
	var brokers []string
	for _, b := range strings.Split(c.KafkaBroker, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
