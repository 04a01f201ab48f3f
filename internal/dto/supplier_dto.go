package dto

type SupplierRequest struct {
	Name          string   `json:"name" validate:"required"`
	Email         *string  `json:"email"`
	Phone         *string  `json:"phone"`
	ContactPerson *string  `json:"contact_person"`
	Observations  *string  `json:"observations"`
	ProductIDs    []string `json:"product_ids"`
}

type SupplierResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone"`
	ContactPerson string   `json:"contact_person"`
	Observations  string   `json:"observations"`
	ProductIDs    []string `json:"product_ids"`
}
