package dto

// SettingsResponse configuración vigente de la tienda.
type SettingsResponse struct {
	Version       int      `json:"version"`
	ShopName      string   `json:"shop_name"`
	LegalName     string   `json:"legal_name"`
	TaxID         string   `json:"tax_id"`
	Address       string   `json:"address"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	DeliverySlots []string `json:"delivery_slots"`
	UpdatedAt     string   `json:"updated_at"`
}

// UpdateSettingsRequest body para PUT /api/settings. Version debe ser la
// versión vigente leída por el cliente; si otro admin escribió entre medias
// la actualización se rechaza con conflicto.
type UpdateSettingsRequest struct {
	Version       int      `json:"version"`
	ShopName      string   `json:"shop_name"`
	LegalName     string   `json:"legal_name"`
	TaxID         string   `json:"tax_id"`
	Address       string   `json:"address"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	DeliverySlots []string `json:"delivery_slots"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token emitido tras autenticación.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}
