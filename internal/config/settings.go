package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// DefaultSupplierMessage is used when no message was ever configured.
const DefaultSupplierMessage = "Olá! Preciso dos seguintes itens:\n\n{itens}\n\nAguardo seu retorno. Obrigado!"

// Settings is the persisted mutable configuration: a default restock-request
// message plus per-supplier overrides keyed by supplier id.
type Settings struct {
	MensagemFornecedor    string            `json:"mensagem_fornecedor"`
	MensagensFornecedores map[string]string `json:"mensagens_fornecedores"`
}

// SupplierMessage returns the override for the given supplier id, or the
// default message when none exists.
func (s Settings) SupplierMessage(supplierID string) string {
	if msg, ok := s.MensagensFornecedores[supplierID]; ok && msg != "" {
		return msg
	}
	if s.MensagemFornecedor != "" {
		return s.MensagemFornecedor
	}
	return DefaultSupplierMessage
}

// SettingsStore reads and writes Settings from a JSON file. It is loaded once
// per request rather than cached as ambient global state; a missing or corrupt
// file degrades to defaults.
type SettingsStore struct {
	path string
}

func NewSettingsStore(path string) *SettingsStore {
	return &SettingsStore{path: path}
}

func defaultSettings() Settings {
	return Settings{
		MensagemFornecedor:    DefaultSupplierMessage,
		MensagensFornecedores: map[string]string{},
	}
}

// Load returns the persisted settings, falling back to defaults when the file
// is absent or unreadable.
func (s *SettingsStore) Load() Settings {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return defaultSettings()
	}
	var cfg Settings
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Warn().Err(err).Str("path", s.path).Msg("settings file corrupt, using defaults")
		return defaultSettings()
	}
	if cfg.MensagemFornecedor == "" {
		cfg.MensagemFornecedor = DefaultSupplierMessage
	}
	if cfg.MensagensFornecedores == nil {
		cfg.MensagensFornecedores = map[string]string{}
	}
	return cfg
}

// Save writes the settings atomically (temp file + rename).
func (s *SettingsStore) Save(cfg Settings) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Dir returns the directory the settings file lives in.
func (s *SettingsStore) Dir() string { return filepath.Dir(s.path) }
