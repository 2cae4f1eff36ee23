package config

import (
	"fmt"
	"log"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN       string
	Environment string
	HTTPAddr    string

	Location            *time.Location
	ClosedWeekdays      []time.Weekday
	CalendarHorizonDays int
	PhoneRegion         string

	CORSOrigins        []string
	RateLimitPerMinute int
	TrustedProxies     []string // IPs or CIDRs allowed to set X-Forwarded-For

	TelegramToken       string
	TelegramAdminChatID int64
	DigestHour          int
}

func Load() (*Config, error) {
	// .env is optional, real environment wins
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	} else {
		log.Println("Loaded configuration from .env file")
	}

	return FromEnv(os.Getenv)
}

// FromEnv builds the config from a lookup function, os.Getenv in production.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		DBDSN:          get("DB_DSN", ""),
		Environment:    get("ENV", "development"),
		HTTPAddr:       get("HTTP_ADDR", ":8080"),
		PhoneRegion:    strings.ToUpper(get("PHONE_REGION", "US")),
		CORSOrigins:    splitList(get("CORS_ORIGINS", "*")),
		TrustedProxies: splitList(get("TRUSTED_PROXIES", "")),
		TelegramToken:  get("TELEGRAM_TOKEN", ""),
	}

	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	loc, err := time.LoadLocation(get("TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}
	cfg.Location = loc

	cfg.ClosedWeekdays, err = parseWeekdays(get("CLOSED_WEEKDAYS", "friday,saturday"))
	if err != nil {
		return nil, fmt.Errorf("CLOSED_WEEKDAYS: %w", err)
	}

	if cfg.CalendarHorizonDays, err = intInRange(get("CALENDAR_HORIZON_DAYS", "60"), 1, 92); err != nil {
		return nil, fmt.Errorf("CALENDAR_HORIZON_DAYS: %w", err)
	}
	if cfg.RateLimitPerMinute, err = intInRange(get("RATE_LIMIT_PER_MINUTE", "20"), 1, 10000); err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_PER_MINUTE: %w", err)
	}
	if cfg.DigestHour, err = intInRange(get("DIGEST_HOUR", "18"), 0, 23); err != nil {
		return nil, fmt.Errorf("DIGEST_HOUR: %w", err)
	}

	for _, proxy := range cfg.TrustedProxies {
		if !validProxy(proxy) {
			return nil, fmt.Errorf("TRUSTED_PROXIES: %q is not an IP or CIDR", proxy)
		}
	}

	if raw := get("TELEGRAM_ADMIN_CHAT_ID", ""); raw != "" {
		cfg.TelegramAdminChatID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TELEGRAM_ADMIN_CHAT_ID: %w", err)
		}
	}
	if cfg.TelegramToken != "" && cfg.TelegramAdminChatID == 0 {
		return nil, fmt.Errorf("TELEGRAM_ADMIN_CHAT_ID is required when TELEGRAM_TOKEN is set")
	}

	return cfg, nil
}

// BotEnabled reports whether the admin bot should be started
func (c *Config) BotEnabled() bool {
	return c.TelegramToken != ""
}

func (c *Config) GetDBDSN() string {
	return c.DBDSN
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// parseWeekdays accepts full or three-letter English names; "none" closes nothing.
func parseWeekdays(raw string) ([]time.Weekday, error) {
	if strings.EqualFold(raw, "none") {
		return nil, nil
	}

	var out []time.Weekday
	for _, name := range splitList(raw) {
		name = strings.ToLower(name)
		day, ok := weekdays[name]
		if !ok && len(name) == 3 {
			for full, d := range weekdays {
				if strings.HasPrefix(full, name) {
					day, ok = d, true
					break
				}
			}
		}
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		out = append(out, day)
	}
	return out, nil
}

func validProxy(s string) bool {
	if _, err := netip.ParsePrefix(s); err == nil {
		return true
	}
	_, err := netip.ParseAddr(s)
	return err == nil
}

func intInRange(raw string, lo, hi int) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("not a number: %q", raw)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%d is outside [%d, %d]", n, lo, hi)
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
