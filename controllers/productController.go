package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"belegwerk-backend/database"
	"belegwerk-backend/middlewares"
	"belegwerk-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductInput struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
	Unit        string `json:"unit"`
	UnitPrice   string `json:"unit_price" validate:"required"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	Active      string `json:"active" validate:"required"`
}

// POST /api/product (batch create)
func CreateProducts(c *fiber.Ctx) error {
	var inputs []ProductInput

	if err := c.BodyParser(&inputs); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	// Body is a bare slice, so validate per-element.
	for i := range inputs {
		if err := middlewares.ValidateStruct(&inputs[i]); err != nil {
			return c.Status(422).JSON(fiber.Map{
				"message": fmt.Sprintf("Invalid product at index %d", i),
			})
		}
	}

	tx := database.DB.Begin()
	var created []models.Product

	for i, input := range inputs {
		unitPrice, err := strconv.ParseFloat(strings.TrimSpace(input.UnitPrice), 64)
		if err != nil {
			tx.Rollback()
			return c.Status(400).JSON(fiber.Map{
				"message": fmt.Sprintf("Invalid unit price at index %d", i),
			})
		}

		active, err := strconv.ParseBool(strings.TrimSpace(input.Active))
		if err != nil {
			tx.Rollback()
			return c.Status(400).JSON(fiber.Map{
				"message": fmt.Sprintf("Invalid active value at index %d", i),
			})
		}

		product := models.Product{
			Name:        strings.TrimSpace(input.Name),
			Description: strings.TrimSpace(input.Description),
			Unit:        strings.TrimSpace(input.Unit),
			UnitPrice:   unitPrice,
			ImageURL:    strings.TrimSpace(input.ImageURL),
			Active:      active,
		}

		if err := tx.Create(&product).Error; err != nil {
			tx.Rollback()
			return c.Status(500).JSON(fiber.Map{
				"message": fmt.Sprintf("Could not create product at index %d", i),
				"error":   err.Error(),
			})
		}

		created = append(created, product)
	}

	tx.Commit()

	return c.Status(201).JSON(created)
}

// GET /api/products
func GetProducts(c *fiber.Ctx) error {
	var products []models.Product
	database.DB.Where("active = ?", true).Find(&products)
	return c.JSON(fiber.Map{
		"products": products,
		"message":  "success",
	})
}

// PUT /api/products/:id
func UpdateProduct(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing product id in path")
	}

	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return err
	}

	var existing models.Product
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "product not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := map[string]any{}
	if v, ok := data["name"]; ok {
		updates["name"] = strings.TrimSpace(v)
	}
	if v, ok := data["description"]; ok {
		updates["description"] = strings.TrimSpace(v)
	}
	if v, ok := data["unit"]; ok {
		updates["unit"] = strings.TrimSpace(v)
	}
	if v, ok := data["image_url"]; ok {
		updates["image_url"] = strings.TrimSpace(v)
	}
	if v, ok := data["unit_price"]; ok {
		unitPrice, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{
				"message": "Invalid unit price format",
			})
		}
		updates["unit_price"] = unitPrice
	}
	if v, ok := data["active"]; ok {
		active, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return c.Status(400).JSON(fiber.Map{
				"message": "Invalid active value",
			})
		}
		updates["active"] = active
	}

	tx := database.DB.Begin()
	if err := tx.Model(&models.Product{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		tx.Rollback()
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Could not update product",
			"error":   err.Error(),
		})
	}
	tx.Commit()

	database.DB.First(&existing, "id = ?", id)
	return c.JSON(existing)
}
