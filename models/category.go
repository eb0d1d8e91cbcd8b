package models

type Category struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Color     string `json:"color"`
	IsDefault bool   `json:"isDefault"`
	OwnerID   string `json:"ownerId"`
	Kind      string `json:"kind"`
}
