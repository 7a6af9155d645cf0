package controllers

import (
	"errors"
	"strings"

	"belegwerk-backend/database"
	"belegwerk-backend/middlewares"
	"belegwerk-backend/models"
	"belegwerk-backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SupplierCreateDTO struct {
	CompanyName string `json:"company_name" validate:"required,min=1"`
	Address     string `json:"address" validate:"required,min=1"`
	City        string `json:"city" validate:"required,min=1"`
	Country     string `json:"country" validate:"required,min=1"`
	Zip         string `json:"zip" validate:"required,min=1"`
	Homepage    string `json:"homepage" validate:"omitempty,url"`
	UID         string `json:"uid" validate:"omitempty"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required"`
}

type SupplierUpdateDTO struct {
	Address     *string `json:"address" validate:"omitempty"`
	City        *string `json:"city" validate:"omitempty"`
	Country     *string `json:"country" validate:"omitempty"`
	Zip         *string `json:"zip" validate:"omitempty"`
	Homepage    *string `json:"homepage" validate:"omitempty,url"`
	UID         *string `json:"uid" validate:"omitempty"`
	Email       *string `json:"email" validate:"omitempty,email"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty"`
}

// POST /api/supplier
func CreateSupplier(c *fiber.Ctx) error {
	var in SupplierCreateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizeDTO(&in)

	supplier := models.Supplier{
		CompanyName: in.CompanyName,
		Address:     in.Address,
		City:        in.City,
		Country:     in.Country,
		Zip:         in.Zip,
		Homepage:    in.Homepage,
		UID:         in.UID,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
		Active:      true,
	}

	if err := database.DB.Create(&supplier).Error; err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "could not create supplier")
	}
	return c.JSON(supplier)
}

// PUT /api/supplier/:id
func UpdateSupplier(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing supplier id in path")
	}

	var in SupplierUpdateDTO
	if err := middlewares.BindAndValidate(c, &in); err != nil {
		return err
	}
	utils.NormalizePtrDTO(&in)

	// Ensure exists
	var existing models.Supplier
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "supplier not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	updates := utils.UpdatesFromPtrDTO(&in, nil)
	if len(updates) > 0 {
		if err := database.DB.Model(&models.Supplier{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "could not update supplier")
		}
	}

	var out models.Supplier
	if err := database.DB.First(&out, "id = ?", id).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to reload supplier")
	}
	return c.JSON(out)
}

// GET /api/suppliers
func GetSuppliers(c *fiber.Ctx) error {
	var suppliers []models.Supplier
	database.DB.Model(&models.Supplier{}).Find(&suppliers)
	return c.JSON(fiber.Map{
		"suppliers": suppliers,
		"message":   "success",
	})
}
