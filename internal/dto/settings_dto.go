package dto

type UpdateSettingsRequest struct {
	MensagemFornecedor    string            `json:"mensagem_fornecedor" validate:"required"`
	MensagensFornecedores map[string]string `json:"mensagens_fornecedores"`
}

type SupplierMessageResponse struct {
	Mensagem string `json:"mensagem"`
}
