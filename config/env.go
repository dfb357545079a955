package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

func (c *Config) applyEnvOverrides() error {
	overrideString(&c.ListenAddr, "LISTEN_ADDR")
	overrideString(&c.LogMode, "LOG_MODE")

	overrideString(&c.Store.Backend, "STORE_BACKEND")
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	overrideString(&c.Store.Secret, "STORE_SECRET")
	overrideString(&c.Store.Redis.Addr, "REDIS_ADDR")
	overrideString(&c.Store.Redis.Prefix, "REDIS_PREFIX")
	overrideString(&c.Store.SQLite.Path, "SQLITE_PATH")
	overrideString(&c.Store.Postgres.Host, "POSTGRES_HOST")
	overrideString(&c.Store.Postgres.User, "POSTGRES_USER")
	overrideString(&c.Store.Postgres.Name, "POSTGRES_NAME")
	overrideString(&c.Store.Postgres.SSLMode, "POSTGRES_SSLMODE")

	// valores inválidos no ambiente são erro; é melhor não subir do que subir
	// com um default que ninguém pediu
	var errs []string
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	collect(overrideInt(&c.Store.Redis.DB, "REDIS_DB"))
	collect(overrideInt(&c.Store.Postgres.Port, "POSTGRES_PORT"))
	collect(overrideBool(&c.RateLimit.Enabled, "RATE_ENABLED"))
	collect(overrideFloat(&c.RateLimit.RPS, "RATE_RPS"))
	collect(overrideInt(&c.RateLimit.Burst, "RATE_BURST"))
	collect(overrideBool(&c.RateLimit.TrustXFF, "TRUST_XFF"))
	collect(overrideDuration(&c.RateLimit.RetryAfter, "RETRY_AFTER"))
	collect(overrideInt(&c.Concurrency.Max, "CONCURRENCY_MAX"))
	collect(overrideDuration(&c.Concurrency.AcquireTimeout, "CONCURRENCY_TIMEOUT"))

	if len(errs) > 0 {
		return fmt.Errorf("invalid environment: %s", strings.Join(errs, "; "))
	}
	return nil
}

func lookup(k string) (string, bool) {
	v, ok := os.LookupEnv(k)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func overrideString(dst *string, k string) {
	if v, ok := lookup(k); ok {
		*dst = v
	}
}

func overrideInt(dst *int, k string) error {
	v, ok := lookup(k)
	if !ok {
		return nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s=%q is not an integer", k, v)
	}
	*dst = i
	return nil
}

func overrideFloat(dst *float64, k string) error {
	v, ok := lookup(k)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s=%q is not a number", k, v)
	}
	*dst = f
	return nil
}

func overrideBool(dst *bool, k string) error {
	v, ok := lookup(k)
	if !ok {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s=%q is not a boolean", k, v)
	}
	*dst = b
	return nil
}

func overrideDuration(dst *time.Duration, k string) error {
	v, ok := lookup(k)
	if !ok {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s=%q is not a duration", k, v)
	}
	*dst = d
	return nil
}
