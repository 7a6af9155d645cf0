package controllers

import (
	"errors"
	"strings"

	"belegwerk-backend/database"
	"belegwerk-backend/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func CreateCustomer(c *fiber.Ctx) error {
	var data map[string]string

	if err := c.BodyParser(&data); err != nil {
		return err
	}

	tx := database.DB.Begin()

	customer := models.Customer{
		FirstName:   data["first_name"],
		LastName:    data["last_name"],
		Salutation:  data["salutation"],
		Title:       data["title"],
		PhoneNumber: data["phone_number"],
		CompanyName: data["company_name"],
		Address:     data["address"],
		City:        data["city"],
		Country:     data["country"],
		Zip:         data["zip"],
		Homepage:    data["homepage"],
		UID:         data["uid"],
		Email:       data["email"],
		Active:      true,
	}

	if err := tx.Create(&customer).Error; err != nil {
		tx.Rollback()
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Could not create customer",
			"error":   err.Error(),
		})
	}

	tx.Commit()
	return c.JSON(customer)
}

func UpdateCustomer(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing customer id in path")
	}

	var data map[string]string
	if err := c.BodyParser(&data); err != nil {
		return err
	}

	var existing models.Customer
	if err := database.DB.First(&existing, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "customer not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}

	tx := database.DB.Begin()

	customer := models.Customer{
		PhoneNumber: data["phone_number"],
		Address:     data["address"],
		City:        data["city"],
		Country:     data["country"],
		Zip:         data["zip"],
		Homepage:    data["homepage"],
		UID:         data["uid"],
		Email:       data["email"],
	}

	if err := tx.Model(&models.Customer{}).Where("id = ?", id).Updates(&customer).Error; err != nil {
		tx.Rollback()
		c.Status(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"message": "Could not update customer",
			"error":   err.Error(),
		})
	}
	tx.Commit()

	database.DB.First(&existing, "id = ?", id)
	return c.JSON(existing)
}

func GetCustomer(c *fiber.Ctx) error {
	id := strings.TrimSpace(c.Params("id"))
	if id == "" {
		return fiber.NewError(fiber.StatusBadRequest, "missing customer id in path")
	}

	var customer models.Customer
	if err := database.DB.First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "customer not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "db error")
	}
	return c.JSON(customer)
}

func GetCustomers(c *fiber.Ctx) error {
	var customers []models.Customer

	database.DB.Model(&models.Customer{}).Find(&customers)
	return c.JSON(fiber.Map{
		"customers": customers,
		"message":   "success",
	})
}
