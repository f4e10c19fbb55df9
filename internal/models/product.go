// internal/models/product.go
package models

// Product is a catalog entry. Rows are insert-only: the admin tool
// never updates or deletes a product.
type Product struct {
	ID          uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"size:255;not null;index"`
	Description string  `json:"description" gorm:"type:text"`
	Price       float64 `json:"price" gorm:"type:decimal(10,2);not null"`
	ImageURL    string  `json:"image_url" gorm:"size:255"`
}

func (Product) TableName() string {
	return "products"
}
