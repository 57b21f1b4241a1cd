package contactController

import (
	"log"

	"nexora/database"
	"nexora/middleware"
	"nexora/models"
	contactValidator "nexora/validators/contact"

	"github.com/gofiber/fiber/v2"
)

// CreateMessage stores a public contact form submission
func CreateMessage(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedMessage").(*contactValidator.MessageRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	message := models.ContactMessage{
		Name:    reqData.Name,
		Email:   reqData.Email,
		Subject: reqData.Subject,
		Message: reqData.Message,
	}
	if err := database.Database.Db.Create(&message).Error; err != nil {
		log.Printf("Error saving contact message: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to send your message!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Message sent successfully! We will get back to you soon.", nil)
}

// ListMessages pages through contact messages for the admin inbox
func ListMessages(c *fiber.Ctx) error {
	page, _ := c.Locals("page").(int)
	limit, _ := c.Locals("limit").(int)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	db := database.Database.Db

	var total int64
	db.Model(&models.ContactMessage{}).Where("is_deleted = ?", false).Count(&total)

	var messages []models.ContactMessage
	if err := db.Where("is_deleted = ?", false).Order("created_at desc").
		Offset((page - 1) * limit).Limit(limit).Find(&messages).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch messages!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Messages fetched successfully!", fiber.Map{
		"messages": messages,
		"total":    total,
		"page":     page,
		"limit":    limit,
	})
}

// DeleteMessage soft-deletes a contact message
func DeleteMessage(c *fiber.Ctx) error {
	messageID, ok := c.Locals("messageID").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid message id!", nil)
	}

	db := database.Database.Db

	var message models.ContactMessage
	if err := db.Where("id = ? AND is_deleted = ?", messageID, false).First(&message).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Message not found!", nil)
	}

	if err := db.Model(&message).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete message!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Message deleted successfully!", nil)
}
