package config

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type JWTConfig struct {
	SecretKey       string `yaml:"secret_key"`
	Issuer          string `yaml:"issuer"`
	Audience        string `yaml:"audience"`
	AccessTokenTTL  string `yaml:"access_token_ttl"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl"`
}

type RateLimitConfig struct {
	// Rate — максимальное число запросов внутри скользящего окна
	Rate int64 `yaml:"rate"`
	// Window — длина окна, например "10s"
	Window string `yaml:"window"`
}
