package dto

// CreateStoreRequest body para POST /api/stores.
type CreateStoreRequest struct {
	Name    string `json:"name"`
	Prefix  string `json:"prefix,omitempty"`
	Address string `json:"address,omitempty"`
}

// StoreResponse representación de una tienda.
type StoreResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Prefix  string `json:"prefix,omitempty"`
	Address string `json:"address,omitempty"`
	Active  bool   `json:"active"`
}
