package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ocr-dataentry/ocrsetup/internal/defs"
)

// managerState represents the lifecycle state of the Manager.
type managerState int

const (
	stateUninitialized managerState = iota
	stateInitialized
)

// Manager provides thread-safe configuration management.
// It must be initialized via Load() before use.
type Manager struct {
	mu             sync.RWMutex
	config         *Config
	root           string
	state          managerState
	loader         *Loader
	loadedSections map[string]bool
}

// NewManager creates a new Manager instance in uninitialized state.
func NewManager() *Manager {
	return &Manager{
		loader: NewLoader(),
		state:  stateUninitialized,
	}
}

// SetLogger routes loader diagnostics through the given logger.
func (m *Manager) SetLogger(logger *slog.Logger) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loader.SetLogger(logger)
}

// Load reads configuration from the working directory's .ocrsetup/
// directory, merges file values with compiled defaults, and validates.
// The OCRSETUP_CONFIG_DIR environment variable overrides the directory.
func (m *Manager) Load(workDir string) (*Config, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	configDir := filepath.Join(filepath.Clean(workDir), defs.ConfigDir)
	if envDir := os.Getenv("OCRSETUP_CONFIG_DIR"); envDir != "" {
		configDir = filepath.Clean(envDir)
	}

	cfg, err := m.loader.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	m.loadedSections = m.loader.LoadedSections()

	if err := Validate(cfg, m.loadedSections); err != nil {
		return nil, err
	}

	m.config = cfg
	m.root = workDir
	m.state = stateInitialized

	return cfg, nil
}

// Get returns the current in-memory configuration.
// Returns nil if the manager has not been initialized via Load().
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// LoadedSections reports which sections came from the config file.
func (m *Manager) LoadedSections() map[string]bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[string]bool, len(m.loadedSections))
	for k, v := range m.loadedSections {
		result[k] = v
	}
	return result
}

// Save persists the current configuration to disk atomically by writing
// to a temporary file and renaming it over the target.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == stateUninitialized {
		return ErrNotInitialized
	}

	configDir := filepath.Join(filepath.Clean(m.root), defs.ConfigDir)
	if envDir := os.Getenv("OCRSETUP_CONFIG_DIR"); envDir != "" {
		configDir = filepath.Clean(envDir)
	}
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	target := filepath.Join(configDir, defs.ConfigYAML)
	tmp, err := os.CreateTemp(configDir, defs.ConfigYAML+".*")
	if err != nil {
		return fmt.Errorf("create temp config: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp config: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename config: %w", err)
	}

	return nil
}
