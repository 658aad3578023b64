package config

type AllowEntry struct {
	Contract string  `yaml:"contract"`
	GasLimit *uint64 `yaml:"gas_limit"`
	CodeHash *string `yaml:"code_hash"`
}

type ChannelEntry struct {
	ID                    string `yaml:"id"`
	ConnectionID          string `yaml:"connection_id"`
	CounterpartyPortID    string `yaml:"counterparty_port_id"`
	CounterpartyChannelID string `yaml:"counterparty_channel_id"`
}

type Configuration struct {
	// Server config
	Server struct {
		Listen        string `yaml:"listen" envconfig:"LISTEN"`
		UseSSL        bool   `yaml:"ssl" envconfig:"SSL"`
		CertFile      string `yaml:"cert_file" envconfig:"CERT_FILE"`
		KeyFile       string `yaml:"key_file" envconfig:"KEY_FILE"`
		Storage       string `yaml:"storage" envconfig:"STORAGE"` // "redis" or "memory"
		RedisHost     string `yaml:"redis_host" envconfig:"REDIS_HOST"`
		RedisPort     int    `yaml:"redis_port" envconfig:"REDIS_PORT"`
		RedisDB       int    `yaml:"redis_db" envconfig:"REDIS_DB"`
		RedisPassword string `yaml:"redis_password" envconfig:"REDIS_PASSWORD"`
		RedisPrefix   string `yaml:"redis_prefix" envconfig:"REDIS_PREFIX"`
		ShutdownSecs  int    `yaml:"shutdown_seconds" envconfig:"SHUTDOWN_SECONDS"`
	} `yaml:"server"`
	// relayer the packets are handed to
	Relayer struct {
		URL         string `yaml:"url" envconfig:"URL"`
		AuthToken   string `yaml:"auth_token" envconfig:"AUTH_TOKEN"`
		PollSeconds int    `yaml:"poll_seconds" envconfig:"POLL_SECONDS"`
		BatchSize   int    `yaml:"batch_size" envconfig:"BATCH_SIZE"`
		TimeoutSecs int    `yaml:"timeout_seconds" envconfig:"TIMEOUT_SECONDS"`
	} `yaml:"relayer"`
	// bridge policy, applied on first start only
	Bridge struct {
		DefaultTimeout  uint64         `yaml:"default_timeout" envconfig:"DEFAULT_TIMEOUT"`
		DefaultGasLimit *uint64        `yaml:"default_gas_limit" envconfig:"DEFAULT_GAS_LIMIT"`
		GovContract     string         `yaml:"gov_contract" envconfig:"GOV_CONTRACT"`
		AddressFormat   string         `yaml:"address_format" envconfig:"ADDRESS_FORMAT"`
		Allowlist       []AllowEntry   `yaml:"allowlist" ignored:"true"`
		Channels        []ChannelEntry `yaml:"channels" ignored:"true"`
	} `yaml:"bridge"`
	Log struct {
		Level       string `yaml:"level" envconfig:"LEVEL"`
		Development bool   `yaml:"development" envconfig:"DEVELOPMENT"`
	} `yaml:"log"`
}

var Config Configuration

// Defaults fills the values a minimal config.yml may leave out.
func (c *Configuration) Defaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
		if c.Server.UseSSL {
			c.Server.Listen = ":443"
		}
	}
	if c.Server.Storage == "" {
		c.Server.Storage = "redis"
	}
	if c.Server.RedisHost == "" {
		c.Server.RedisHost = "127.0.0.1"
	}
	if c.Server.RedisPort == 0 {
		c.Server.RedisPort = 6379
	}
	if c.Server.RedisPrefix == "" {
		c.Server.RedisPrefix = "cw20ics20"
	}
	if c.Relayer.PollSeconds <= 0 {
		c.Relayer.PollSeconds = 3
	}
	if c.Relayer.BatchSize <= 0 {
		c.Relayer.BatchSize = 50
	}
	if c.Relayer.TimeoutSecs <= 0 {
		c.Relayer.TimeoutSecs = 10
	}
	if c.Server.ShutdownSecs <= 0 {
		c.Server.ShutdownSecs = 5
	}
	if c.Bridge.DefaultTimeout == 0 {
		c.Bridge.DefaultTimeout = 600
	}
	if c.Bridge.AddressFormat == "" {
		c.Bridge.AddressFormat = "plain"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}
