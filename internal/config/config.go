package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".holameeto"
	envPrefix  = "HOLAMEETO"

	storageBackendKey = "storage.backend"
	storagePathKey    = "storage.path"
	storageSQLiteKey  = "storage.sqlite_path"
	meetingBaseURLKey = "meeting.base_url"
	meetingPrefixKey  = "meeting.room_prefix"
	logLevelKey       = "log.level"
	logFormatKey      = "log.format"

	defaultBaseURL    = "https://meet.jit.si/"
	defaultRoomPrefix = "HolaMeeto"
)

type Backend string

const (
	BackendFile   Backend = "file"
	BackendTOML   Backend = "toml"
	BackendSQLite Backend = "sqlite"
	BackendChain  Backend = "chain"
)

var ErrUnknownBackend = errors.New("unknown storage backend")

type Config struct {
	Storage Storage
	Meeting Meeting
	Log     Log
}

// Storage locates the slot store. Path is the slots directory for file,
// the document for toml and the database for sqlite. The chain backend
// uses SQLitePath as primary and Path as file fallback.
type Storage struct {
	Backend    Backend
	Path       string
	SQLitePath string
}

type Meeting struct {
	BaseURL    string
	RoomPrefix string
}

type Log struct {
	Level  string
	Format string
}

// Load reads ~/.holameeto/config.toml when present. Every key may also be
// set through HOLAMEETO_<SECTION>_<KEY>, e.g. HOLAMEETO_STORAGE_BACKEND.
func Load(cfg *viper.Viper) (Config, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}
	baseDir := filepath.Join(homeDir, configDir)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(baseDir)
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()

	cfg.SetDefault(storageBackendKey, string(BackendFile))
	cfg.SetDefault(storagePathKey, "")
	cfg.SetDefault(storageSQLiteKey, filepath.Join(baseDir, "holameeto.db"))
	cfg.SetDefault(meetingBaseURLKey, defaultBaseURL)
	cfg.SetDefault(meetingPrefixKey, defaultRoomPrefix)
	cfg.SetDefault(logLevelKey, "warn")
	cfg.SetDefault(logFormatKey, "fmt")

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	backend := Backend(strings.ToLower(strings.TrimSpace(cfg.GetString(storageBackendKey))))
	if !backend.valid() {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.GetString(storageBackendKey))
	}

	storagePath := cfg.GetString(storagePathKey)
	if strings.TrimSpace(storagePath) == "" {
		storagePath = defaultStoragePath(baseDir, backend)
	}
	storagePath, err = expandPath(storagePath, homeDir)
	if err != nil {
		return Config{}, err
	}

	sqlitePath, err := expandPath(cfg.GetString(storageSQLiteKey), homeDir)
	if err != nil {
		return Config{}, err
	}

	return Config{
		Storage: Storage{
			Backend:    backend,
			Path:       storagePath,
			SQLitePath: sqlitePath,
		},
		Meeting: Meeting{
			BaseURL:    cfg.GetString(meetingBaseURLKey),
			RoomPrefix: cfg.GetString(meetingPrefixKey),
		},
		Log: Log{
			Level:  cfg.GetString(logLevelKey),
			Format: cfg.GetString(logFormatKey),
		},
	}, nil
}

func (b Backend) valid() bool {
	switch b {
	case BackendFile, BackendTOML, BackendSQLite, BackendChain:
		return true
	default:
		return false
	}
}

func defaultStoragePath(baseDir string, backend Backend) string {
	switch backend {
	case BackendTOML:
		return filepath.Join(baseDir, "history.toml")
	case BackendSQLite:
		return filepath.Join(baseDir, "holameeto.db")
	default:
		return filepath.Join(baseDir, "slots")
	}
}

func expandPath(path, homeDir string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("storage path is empty")
	}

	if path == "~" {
		return homeDir, nil
	}
	if strings.HasPrefix(path, "~/") {
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("resolve storage path: %w", err)
		}
		path = abs
	}

	return filepath.Clean(path), nil
}
