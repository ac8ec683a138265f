package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config uygulama genel yapılandırması
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"db"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Mail     MailConfig     `mapstructure:"mail"`
	Log      LogConfig      `mapstructure:"log"`
	Payroll  PayrollConfig  `mapstructure:"payroll"`
	Leave    LeaveConfig    `mapstructure:"leave"`
	Feature  FeatureConfig  `mapstructure:"feature"`
}

// ServerConfig HTTP sunucu yapılandırması
type ServerConfig struct {
	Port        int        `mapstructure:"port"`
	BaseURL     string     `mapstructure:"base_url"`
	CORS        CORSConfig `mapstructure:"cors"`
	UploadDir   string     `mapstructure:"upload_dir"`
	MaxUploadMB int64      `mapstructure:"max_upload_mb"`
}

// CORSConfig izin verilen origin listesi
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// DatabaseConfig PostgreSQL bağlantı ayarları
type DatabaseConfig struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	Timezone        string `mapstructure:"timezone"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime"`  // dakika
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time"` // dakika
}

// DSN PostgreSQL bağlantı dizesini üretir
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode, c.Timezone,
	)
}

// RedisConfig Redis bağlantı ayarları
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig JWT ayarları
type AuthConfig struct {
	JWTSecret               string        `mapstructure:"jwt_secret"`
	AccessTokenTTL          time.Duration `mapstructure:"access_token_ttl"`
	RefreshTokenTTLDefault  time.Duration `mapstructure:"refresh_token_ttl_default"`
	RefreshTokenTTLRemember time.Duration `mapstructure:"refresh_token_ttl_remember_me"`
}

// MailConfig Resend e-posta ayarları. APIKey boşsa e-posta gönderimi kapalıdır.
type MailConfig struct {
	ResendAPIKey string `mapstructure:"resend_api_key"`
	From         string `mapstructure:"from"`
}

// Enabled e-posta gönderiminin açık olup olmadığını döner
func (m MailConfig) Enabled() bool {
	return m.ResendAPIKey != ""
}

// LogConfig log ayarları
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PayrollConfig bordro kesinti oranları
type PayrollConfig struct {
	SGKEmployeeRate  float64 `mapstructure:"sgk_employee_rate"`
	UnemploymentRate float64 `mapstructure:"unemployment_rate"`
	IncomeTaxRate    float64 `mapstructure:"income_tax_rate"`
	StampTaxRate     float64 `mapstructure:"stamp_tax_rate"`
	Currency         string  `mapstructure:"currency"`
}

// LeaveConfig izin ayarları
type LeaveConfig struct {
	DefaultAnnualDays int `mapstructure:"default_annual_days"`
}

// FeatureConfig özellik anahtarları
type FeatureConfig struct {
	SeedSampleData bool `mapstructure:"seed_sample_data"`
	ImportMaxRows  int  `mapstructure:"import_max_rows"`
}

// Load yapılandırmayı dosya ve ortam değişkenlerinden yükler.
// Öncelik: ortam değişkeni > yapılandırma dosyası > varsayılan
func Load(path string) (*Config, error) {
	// .env yoksa sessizce devam et
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf(".env dosyası okunamadı: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("IK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("yapılandırma dosyası okunamadı: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("yapılandırma çözümlenemedi: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.upload_dir", "./uploads")
	v.SetDefault("server.max_upload_mb", 10)

	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.name", "ik_portal")
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.timezone", "Europe/Istanbul")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)
	v.SetDefault("db.conn_max_lifetime", 60)
	v.SetDefault("db.conn_max_idle_time", 30)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.access_token_ttl", "15m")
	v.SetDefault("auth.refresh_token_ttl_default", "24h")
	v.SetDefault("auth.refresh_token_ttl_remember_me", "168h")

	v.SetDefault("mail.resend_api_key", "")
	v.SetDefault("mail.from", "İK Portalı <noreply@ikportal.com.tr>")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("payroll.sgk_employee_rate", 0.14)
	v.SetDefault("payroll.unemployment_rate", 0.01)
	v.SetDefault("payroll.income_tax_rate", 0.15)
	v.SetDefault("payroll.stamp_tax_rate", 0.00759)
	v.SetDefault("payroll.currency", "TRY")

	v.SetDefault("leave.default_annual_days", 14)

	v.SetDefault("feature.seed_sample_data", false)
	v.SetDefault("feature.import_max_rows", 1000)
}

// Validate kritik alanları doğrular
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("yapılandırma hatası: auth.jwt_secret boş olamaz")
	}
	if len(c.Auth.JWTSecret) < 16 {
		return fmt.Errorf("yapılandırma hatası: auth.jwt_secret en az 16 karakter olmalı")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("yapılandırma hatası: server.port 1-65535 aralığında olmalı")
	}
	p := c.Payroll
	for name, rate := range map[string]float64{
		"sgk_employee_rate": p.SGKEmployeeRate,
		"unemployment_rate": p.UnemploymentRate,
		"income_tax_rate":   p.IncomeTaxRate,
		"stamp_tax_rate":    p.StampTaxRate,
	} {
		if rate < 0 || rate >= 1 {
			return fmt.Errorf("yapılandırma hatası: payroll.%s 0 ile 1 arasında olmalı", name)
		}
	}
	if c.Leave.DefaultAnnualDays < 0 {
		return fmt.Errorf("yapılandırma hatası: leave.default_annual_days negatif olamaz")
	}
	return nil
}
