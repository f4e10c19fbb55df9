// internal/services/product_service.go
package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/avpetrescu/catalog-admin/internal/models"
	"github.com/avpetrescu/catalog-admin/internal/utils"
)

type ProductService struct {
	db             *gorm.DB
	storageService *StorageService
}

type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"gte=0"`
	// Image upload: raw bytes plus the client's original filename.
	ImageFilename string `json:"image_filename" validate:"required"`
	ImageData     []byte `json:"-" validate:"required,min=1"`
}

func NewProductService(db *gorm.DB, storageService *StorageService) *ProductService {
	return &ProductService{
		db:             db,
		storageService: storageService,
	}
}

// CreateProduct validates the submission, stores the image, then
// inserts the row. Validation failures happen before any side effect;
// a failed insert after a successful image write is left as-is (the
// image write and the row are not coupled transactionally).
func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %s", utils.ValidationErrorMessage(err))
	}

	saved, err := s.storageService.SaveImage(req.ImageFilename, req.ImageData)
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		ImageURL:    saved.URL,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}
	return &product, nil
}

// ListProducts returns every row in insertion order.
func (s *ProductService) ListProducts() ([]models.Product, error) {
	products := make([]models.Product, 0)
	if err := s.db.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}
