package config

import (
	"fmt"
	"os"
	"path"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

const (
	// APIBaseURLEnv overrides Dashboard.APIBaseURL.
	APIBaseURLEnv = "API_BASE_URL"

	DefaultAPIBaseURL     = "http://localhost:8000"
	DefaultRequestTimeout = 30 * time.Second
	DefaultCacheTTL       = 5 * time.Minute
	DefaultMaxImageSize   = 5 << 20
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	LogLevel  string    `yaml:"log_level"`
	LogJSON   bool      `yaml:"log_json"`
	Env       string    `yaml:"env"`
	Dashboard Dashboard `yaml:"dashboard"`
	DevAPI    DevAPI    `yaml:"devapi"`
}

// Dashboard configures the admin web application and its API client.
type Dashboard struct {
	Port           string        `yaml:"port"`
	APIBaseURL     string        `yaml:"api_base_url" validate:"required,url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	CacheTTL       time.Duration `yaml:"cache_ttl"`
	ReadRetries    int           `yaml:"read_retries"` // automatic retries of a failed read
	LogoutPath     string        `yaml:"logout_path"`
	ContactsPath   string        `yaml:"contacts_path"`
	SecureCookies  bool          `yaml:"secure_cookies"`
	SessionMaxAge  time.Duration `yaml:"session_max_age"` // zero keeps the cookie for the browser session
	MaxImageSize   int64         `yaml:"max_image_size"`
	TemplatesDir   string        `yaml:"templates_dir"`
	LoginRateLimit int           `yaml:"login_rate_limit"` // attempts per minute per IP
}

// DevAPI configures the development implementation of the remote API.
type DevAPI struct {
	Port           string        `yaml:"port"`
	TokenTTL       time.Duration `yaml:"token_ttl"`
	StoragePath    string        `yaml:"storage_path"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	UsePostgres    bool          `yaml:"use_postgres"`
	MaxUploadSize  int64         `yaml:"max_upload_size"`  // largest preview image
	LoginRateLimit int           `yaml:"login_rate_limit"` // attempts per minute per IP
}

type Private struct {
	JwtKey            string `yaml:"jwt_key"`
	AdminEmail        string `yaml:"admin_email"`
	AdminPasswordHash string `yaml:"admin_password_hash"` // bcrypt
	AdminName         string `yaml:"admin_name"`
	Pg                Pg     `yaml:"pg"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

func (p Pg) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Dbname)
}

func (c *Config) JwtKey() string {
	return c.Private.JwtKey
}

func (c *Config) JwtTTL() time.Duration {
	return c.Public.DevAPI.TokenTTL
}

func (c *Config) IsDevelopment() bool {
	return c.Public.Env == "development"
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file: " + configPath)
	}
	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic(fmt.Sprintf("can't unmarshal config file %s: %v", configPath, err))
	}
}

// MustLoad reads public.yaml and private.yaml from configFolder, applies the
// environment overrides (a .env file is loaded first when present) and the
// defaults, and panics if the result is invalid.
func MustLoad(configFolder string) *Config {
	// .env is optional; real environment variables win over it.
	_ = godotenv.Load()

	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	if p := path.Join(configFolder, "private.yaml"); fileExists(p) {
		mustLoadPath(p, &private)
	}

	cfg := &Config{Public: public, Private: private}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		panic(err.Error())
	}
	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv(APIBaseURLEnv); v != "" {
		c.Public.Dashboard.APIBaseURL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Private.JwtKey = v
	}
}

func (c *Config) applyDefaults() {
	d := &c.Public.Dashboard
	if d.APIBaseURL == "" {
		d.APIBaseURL = DefaultAPIBaseURL
	}
	if d.Port == "" {
		d.Port = "8081"
	}
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = DefaultRequestTimeout
	}
	if d.CacheTTL <= 0 {
		d.CacheTTL = DefaultCacheTTL
	}
	if d.ReadRetries < 0 {
		d.ReadRetries = 0
	}
	if d.LogoutPath == "" {
		d.LogoutPath = "logout"
	}
	if d.ContactsPath == "" {
		d.ContactsPath = "contacts"
	}
	if d.MaxImageSize <= 0 {
		d.MaxImageSize = DefaultMaxImageSize
	}
	if d.LoginRateLimit <= 0 {
		d.LoginRateLimit = 10
	}

	a := &c.Public.DevAPI
	if a.Port == "" {
		a.Port = "8000"
	}
	if a.TokenTTL <= 0 {
		a.TokenTTL = 24 * time.Hour
	}
	if a.StoragePath == "" {
		a.StoragePath = "storage"
	}
	if a.MaxUploadSize <= 0 {
		a.MaxUploadSize = DefaultMaxImageSize
	}
	if a.LoginRateLimit <= 0 {
		a.LoginRateLimit = 20
	}
}

// Validate checks the fields both binaries depend on.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c.Public.Dashboard); err != nil {
		return fmt.Errorf("invalid dashboard config: %w", err)
	}
	return nil
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
