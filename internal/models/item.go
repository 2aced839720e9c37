package models

type Item struct {
	ID          int    `json:"id"`
	ItemName    string `json:"item_name"`
	Description string `json:"description"`
	Quantity    int    `json:"quantity"`
	UserID      int    `json:"user_id"`
}

type ItemRequest struct {
	ItemName    string `json:"item_name" binding:"required"`
	Description string `json:"description" binding:"max=255"`
	Quantity    int    `json:"quantity" binding:"omitempty,min=1"`
}
