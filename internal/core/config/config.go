package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type Log struct {
	Level      string
	JSON       bool
	File       string // 为空则只写 stdout
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Session 会话 cookie 的签名参数
type Session struct {
	Secret       string
	Issuer       string
	TTLMin       int
	CookieName   string
	CookieSecure bool
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type DB struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

// CEP 地址补全服务（ViaCEP）
type CEP struct {
	BaseURL      string
	TimeoutSec   int
	CacheTTLHour int
}

type Config struct {
	App     App
	Log     Log
	Session Session
	DB      DB
	Redis   Redis `mapstructure:"redis"`
	CEP     CEP   `mapstructure:"cep"`
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	applyDefaults(&c)
	return &c
}

func applyDefaults(c *Config) {
	if c.Session.CookieName == "" {
		c.Session.CookieName = "holistay_session"
	}
	if c.Session.TTLMin <= 0 {
		c.Session.TTLMin = 60 * 24 * 7 // 一周
	}
	if c.CEP.BaseURL == "" {
		c.CEP.BaseURL = "https://viacep.com.br/ws"
	}
	if c.CEP.TimeoutSec <= 0 {
		c.CEP.TimeoutSec = 5
	}
	if c.CEP.CacheTTLHour <= 0 {
		c.CEP.CacheTTLHour = 24
	}
}
