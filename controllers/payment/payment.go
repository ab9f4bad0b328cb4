package paymentController

import (
	"encoding/json"
	"lms/database"
	"lms/middleware"
	"lms/models"
	courseModels "lms/models/course"
	"lms/utils"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm/clause"
)

// CreateCheckoutSession starts a Stripe checkout for course enrollment
func CreateCheckoutSession(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	// Already-entitled users have nothing to pay for
	var entitlement courseModels.Entitlement
	if err := database.Database.Db.Where("user_id = ? AND has_active_access = ?", userID, true).First(&entitlement).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "You already have active access!", nil)
	}

	session, err := utils.CreateCheckoutSession(user.ID, user.Email)
	if err != nil {
		log.Printf("Error creating checkout session: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to create checkout session!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session created!", fiber.Map{
		"url": session.URL,
	})
}

// webhookEvent is the subset of a Stripe event the handler uses
type webhookEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID                string `json:"id"`
			ClientReferenceID string `json:"client_reference_id"`
			CustomerEmail     string `json:"customer_email"`
			PaymentIntent     string `json:"payment_intent"`
			Customer          string `json:"customer"`
		} `json:"object"`
	} `json:"data"`
}

// StripeWebhook grants the entitlement on checkout.session.completed.
// Malformed payloads return 400; store failures return 500 so the payment
// processor retries the delivery.
func StripeWebhook(c *fiber.Ctx) error {
	signature := c.Get("Stripe-Signature")
	if signature == "" {
		log.Println("[WEBHOOK] No Stripe signature found")
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No signature provided", nil)
	}

	var event webhookEvent
	if err := json.Unmarshal(c.Body(), &event); err != nil {
		log.Printf("[WEBHOOK] Failed to parse webhook body: %v", err)
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid JSON", nil)
	}

	log.Printf("[WEBHOOK] Received event: %s", event.Type)

	if event.Type != "checkout.session.completed" {
		log.Printf("[WEBHOOK] Unhandled event type: %s", event.Type)
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Event received", nil)
	}

	session := event.Data.Object

	userID, err := strconv.ParseUint(session.ClientReferenceID, 10, 64)
	if err != nil || userID == 0 {
		log.Println("[WEBHOOK] No user id in client_reference_id")
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No user_id provided", nil)
	}

	entitlement := courseModels.Entitlement{
		UserID:                uint(userID),
		HasActiveAccess:       true,
		PaymentVerified:       true,
		StripePaymentIntentID: session.PaymentIntent,
		StripeCustomerID:      session.Customer,
	}

	if err := database.Database.Db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"has_active_access", "payment_verified", "stripe_payment_intent_id", "stripe_customer_id", "updated_at"}),
	}).Create(&entitlement).Error; err != nil {
		log.Printf("[WEBHOOK] Failed to upsert entitlement: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to grant entitlement", nil)
	}

	log.Println("[WEBHOOK] Entitlement granted successfully")

	var user models.User
	if err := database.Database.Db.Where("id = ?", uint(userID)).First(&user).Error; err == nil {
		utils.SendEnrollmentEmail(user.Email, user.FullName)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Entitlement granted", nil)
}

// GetEntitlement returns the caller's payment-gate state
func GetEntitlement(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var entitlement courseModels.Entitlement
	if err := database.Database.Db.Where("user_id = ?", userID).First(&entitlement).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No entitlement yet.", fiber.Map{
			"has_active_access": false,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Entitlement fetched successfully!", entitlement)
}
