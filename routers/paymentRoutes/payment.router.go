package paymentRoutes

import (
	paymentControllers "lms/controllers/payment"
	"lms/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupPaymentRoutes sets up enrollment checkout and the payment webhook.
// The webhook endpoint stays outside the JWT group; the processor signs
// requests with its own header.
func SetupPaymentRoutes(app *fiber.App) {
	paymentGroup := app.Group("/payment")

	paymentGroup.Post("/checkout-session", middleware.JWTMiddleware, paymentControllers.CreateCheckoutSession)
	paymentGroup.Get("/entitlement", middleware.JWTMiddleware, paymentControllers.GetEntitlement)
	paymentGroup.Post("/webhook", paymentControllers.StripeWebhook)
}
