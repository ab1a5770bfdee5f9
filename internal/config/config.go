package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/marcus/tailor/internal/models"
	"golang.org/x/sys/unix"
)

const (
	configFile = "config.json"
	lockFile   = "config.json.lock"
)

// Defaults
const (
	DefaultAPIURL         = "http://localhost:8080"
	DefaultDashboardURL   = "http://localhost:3000"
	DefaultPerPage        = 10
	DefaultSearchDebounce = time.Second
	DefaultLongPress      = 500 * time.Millisecond
	MaxPerPage            = 100
)

// Environment overrides
const (
	EnvHome     = "TAILOR_HOME"
	EnvAPIURL   = "TAILOR_API_URL"
	EnvAPIToken = "TAILOR_API_TOKEN"
)

// HomeDir returns the tailor home directory: $TAILOR_HOME, else ~/.tailor
func HomeDir() (string, error) {
	if v := os.Getenv(EnvHome); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".tailor"), nil
}

// Load reads the config from disk
func Load(home string) (*models.Config, error) {
	data, err := os.ReadFile(filepath.Join(home, configFile))
	if err != nil {
		if os.IsNotExist(err) {
			return &models.Config{}, nil
		}
		return nil, err
	}

	var cfg models.Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configFile, err)
	}
	return &cfg, nil
}

// Save writes the config to disk using atomic write (temp file + rename)
func Save(home string, cfg *models.Config) error {
	if err := os.MkdirAll(home, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(home, "config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, filepath.Join(home, configFile))
}

// Update serializes a read-modify-write of config.json using flock
func Update(home string, fn func(cfg *models.Config) error) error {
	if err := os.MkdirAll(home, 0700); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(home, lockFile), os.O_CREATE|os.O_RDWR, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		return fmt.Errorf("lock config: %w", err)
	}
	defer unix.Flock(int(f.Fd()), unix.LOCK_UN)

	cfg, err := Load(home)
	if err != nil {
		return err
	}
	if err := fn(cfg); err != nil {
		return err
	}
	return Save(home, cfg)
}

// Settings is the effective configuration after defaults and env overrides
type Settings struct {
	APIURL         string
	APIToken       string
	DashboardURL   string
	PerPage        int
	SearchDebounce time.Duration
	LongPress      time.Duration
	LastSearch     string
}

// Resolve merges cfg with defaults and environment overrides
func Resolve(cfg *models.Config) Settings {
	s := Settings{
		APIURL:         DefaultAPIURL,
		DashboardURL:   DefaultDashboardURL,
		PerPage:        DefaultPerPage,
		SearchDebounce: DefaultSearchDebounce,
		LongPress:      DefaultLongPress,
	}
	if cfg != nil {
		if cfg.APIURL != "" {
			s.APIURL = cfg.APIURL
		}
		s.APIToken = cfg.APIToken
		if cfg.DashboardURL != "" {
			s.DashboardURL = cfg.DashboardURL
		}
		if cfg.PerPage > 0 {
			s.PerPage = min(cfg.PerPage, MaxPerPage)
		}
		if cfg.SearchDebounceMS > 0 {
			s.SearchDebounce = time.Duration(cfg.SearchDebounceMS) * time.Millisecond
		}
		if cfg.LongPressMS > 0 {
			s.LongPress = time.Duration(cfg.LongPressMS) * time.Millisecond
		}
		s.LastSearch = cfg.LastSearch
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		s.APIURL = v
	}
	if v := os.Getenv(EnvAPIToken); v != "" {
		s.APIToken = v
	}
	s.APIURL = strings.TrimRight(s.APIURL, "/")
	s.DashboardURL = strings.TrimRight(s.DashboardURL, "/")
	return s
}

// LoadSettings loads config.json from home and resolves it
func LoadSettings(home string) (Settings, error) {
	cfg, err := Load(home)
	if err != nil {
		return Resolve(nil), err
	}
	return Resolve(cfg), nil
}

// SetLastSearch persists the committed search term so the dashboard can restore it
func SetLastSearch(home, term string) error {
	return Update(home, func(cfg *models.Config) error {
		cfg.LastSearch = term
		return nil
	})
}

// keys maps config key names to accessors on models.Config
var keys = map[string]struct {
	get func(*models.Config) string
	set func(*models.Config, string) error
}{
	"api_url": {
		get: func(c *models.Config) string { return c.APIURL },
		set: func(c *models.Config, v string) error { c.APIURL = v; return nil },
	},
	"api_token": {
		get: func(c *models.Config) string { return c.APIToken },
		set: func(c *models.Config, v string) error { c.APIToken = v; return nil },
	},
	"dashboard_url": {
		get: func(c *models.Config) string { return c.DashboardURL },
		set: func(c *models.Config, v string) error { c.DashboardURL = v; return nil },
	},
	"per_page": {
		get: func(c *models.Config) string { return intString(c.PerPage) },
		set: func(c *models.Config, v string) error {
			n, err := positiveInt(v)
			if err != nil {
				return err
			}
			if n > MaxPerPage {
				return fmt.Errorf("per_page must be at most %d", MaxPerPage)
			}
			c.PerPage = n
			return nil
		},
	},
	"search_debounce_ms": {
		get: func(c *models.Config) string { return intString(c.SearchDebounceMS) },
		set: func(c *models.Config, v string) error {
			n, err := positiveInt(v)
			c.SearchDebounceMS = n
			return err
		},
	},
	"long_press_ms": {
		get: func(c *models.Config) string { return intString(c.LongPressMS) },
		set: func(c *models.Config, v string) error {
			n, err := positiveInt(v)
			c.LongPressMS = n
			return err
		},
	},
	"last_search": {
		get: func(c *models.Config) string { return c.LastSearch },
		set: func(c *models.Config, v string) error { c.LastSearch = v; return nil },
	},
}

// Keys returns the settable config keys in sorted order
func Keys() []string {
	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Get returns the raw stored value of key
func Get(cfg *models.Config, key string) (string, error) {
	k, ok := keys[key]
	if !ok {
		return "", fmt.Errorf("unknown config key %q", key)
	}
	return k.get(cfg), nil
}

// Set stores value under key
func Set(home, key, value string) error {
	k, ok := keys[key]
	if !ok {
		return fmt.Errorf("unknown config key %q", key)
	}
	return Update(home, func(cfg *models.Config) error {
		return k.set(cfg, value)
	})
}

func intString(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func positiveInt(v string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("expected a positive integer, got %q", v)
	}
	return n, nil
}
