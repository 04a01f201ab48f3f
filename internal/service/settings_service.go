package service

import (
	"context"
	"fmt"

	"tecstock/internal/config"
	"tecstock/internal/dto"
)

// SettingsService manages the restock-request message templates. They live in
// a JSON file, not the database, so they survive datastore outages.
type SettingsService interface {
	DefaultMessage(ctx context.Context) (*dto.SupplierMessageResponse, error)
	SupplierMessage(ctx context.Context, supplierID string) (*dto.SupplierMessageResponse, error)
	Update(ctx context.Context, req dto.UpdateSettingsRequest) error
}

type settingsService struct {
	store *config.SettingsStore
}

func NewSettingsService(store *config.SettingsStore) SettingsService {
	return &settingsService{store: store}
}

func (s *settingsService) DefaultMessage(ctx context.Context) (*dto.SupplierMessageResponse, error) {
	settings := s.store.Load()
	return &dto.SupplierMessageResponse{Mensagem: settings.SupplierMessage("")}, nil
}

func (s *settingsService) SupplierMessage(ctx context.Context, supplierID string) (*dto.SupplierMessageResponse, error) {
	settings := s.store.Load()
	return &dto.SupplierMessageResponse{Mensagem: settings.SupplierMessage(supplierID)}, nil
}

func (s *settingsService) Update(ctx context.Context, req dto.UpdateSettingsRequest) error {
	settings := s.store.Load()
	settings.MensagemFornecedor = req.MensagemFornecedor
	if req.MensagensFornecedores != nil {
		settings.MensagensFornecedores = req.MensagensFornecedores
	}
	if err := s.store.Save(settings); err != nil {
		return fmt.Errorf("salvar configurações: %w", err)
	}
	return nil
}
