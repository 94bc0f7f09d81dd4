package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	// RedisAddr is optional: when set, notifications go through redis pub/sub
	// so every instance sees every event; when empty, a single in-process bus
	// is used.
	RedisAddr string
}
