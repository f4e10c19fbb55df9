// internal/handlers/product.go
package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/avpetrescu/catalog-admin/internal/services"
	"github.com/avpetrescu/catalog-admin/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// POST /products/
//
// Multipart form: name, description, price, image (file part). Every
// failure mode (malformed multipart, unparseable price, storage I/O,
// DB) collapses into a single 400 with a human-readable detail.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	name := c.PostForm("name")
	description := c.PostForm("description")

	priceStr := c.PostForm("price")
	if priceStr == "" {
		utils.BadRequestResponse(c, "price is required")
		return
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		utils.BadRequestResponse(c, "price must be a number")
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, "image file is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, "failed to open uploaded image: "+err.Error())
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		utils.BadRequestResponse(c, "failed to read uploaded image: "+err.Error())
		return
	}

	product, err := h.productService.CreateProduct(&services.CreateProductRequest{
		Name:          name,
		Description:   description,
		Price:         price,
		ImageFilename: fileHeader.Filename,
		ImageData:     imageData,
	})
	if err != nil {
		utils.BadRequestResponse(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product added successfully!",
		"product": product.ID,
	})
}

// GET /products/
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.productService.ListProducts()
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, products)
}
