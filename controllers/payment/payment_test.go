package paymentController

import (
	"lms/database"
	courseModels "lms/models/course"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"

	"gorm.io/gorm"
)

func setupWebhookApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.AllModels()...))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/payment/webhook", StripeWebhook)
	return app
}

func postWebhook(t *testing.T, app *fiber.App, body string, signed bool) int {
	t.Helper()

	req := httptest.NewRequest("POST", "/payment/webhook", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signed {
		req.Header.Set("Stripe-Signature", "t=123,v1=abc")
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp.StatusCode
}

func checkoutCompletedBody(clientReferenceID string) string {
	return `{
		"type": "checkout.session.completed",
		"data": {"object": {
			"id": "cs_test_1",
			"client_reference_id": "` + clientReferenceID + `",
			"customer_email": "student@example.com",
			"payment_intent": "pi_test_1",
			"customer": "cus_test_1"
		}}
	}`
}

func TestWebhookRequiresSignature(t *testing.T) {
	app := setupWebhookApp(t)

	status := postWebhook(t, app, checkoutCompletedBody("1"), false)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestWebhookRejectsMalformedBody(t *testing.T) {
	app := setupWebhookApp(t)

	status := postWebhook(t, app, "{not json", true)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	app := setupWebhookApp(t)

	status := postWebhook(t, app, `{"type":"invoice.paid","data":{"object":{}}}`, true)
	assert.Equal(t, fiber.StatusOK, status)

	var count int64
	database.Database.Db.Model(&courseModels.Entitlement{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestWebhookRejectsMissingUserReference(t *testing.T) {
	app := setupWebhookApp(t)

	status := postWebhook(t, app, checkoutCompletedBody(""), true)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestWebhookGrantsEntitlement(t *testing.T) {
	app := setupWebhookApp(t)

	status := postWebhook(t, app, checkoutCompletedBody("7"), true)
	assert.Equal(t, fiber.StatusOK, status)

	var entitlement courseModels.Entitlement
	require.NoError(t, database.Database.Db.Where("user_id = ?", 7).First(&entitlement).Error)
	assert.True(t, entitlement.HasActiveAccess)
	assert.True(t, entitlement.PaymentVerified)
	assert.Equal(t, "pi_test_1", entitlement.StripePaymentIntentID)
	assert.Equal(t, "cus_test_1", entitlement.StripeCustomerID)
}

func TestWebhookDeliveryIsIdempotent(t *testing.T) {
	app := setupWebhookApp(t)

	require.Equal(t, fiber.StatusOK, postWebhook(t, app, checkoutCompletedBody("7"), true))
	require.Equal(t, fiber.StatusOK, postWebhook(t, app, checkoutCompletedBody("7"), true))

	var count int64
	database.Database.Db.Model(&courseModels.Entitlement{}).Where("user_id = ?", 7).Count(&count)
	assert.Equal(t, int64(1), count)
}
