package utils

import (
	"encoding/json"
	"fmt"
	"lms/config"

	"github.com/go-resty/resty/v2"
)

// CheckoutSession is the subset of the Stripe checkout session we use
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type stripeError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCheckoutSession creates a Stripe Checkout session for course enrollment.
// The user id travels as client_reference_id so the webhook can grant the entitlement.
func CreateCheckoutSession(userID uint, userEmail string) (*CheckoutSession, error) {
	if config.AppConfig.StripeSecretKey == "" {
		return nil, fmt.Errorf("stripe secret key is not configured")
	}

	client := resty.New()
	resp, err := client.R().
		SetBasicAuth(config.AppConfig.StripeSecretKey, "").
		SetFormData(map[string]string{
			"mode":                 "payment",
			"client_reference_id":  fmt.Sprintf("%d", userID),
			"customer_email":       userEmail,
			"line_items[0][price]": config.AppConfig.CheckoutPriceID,
			"line_items[0][quantity]": "1",
			"success_url": config.AppConfig.CheckoutSuccessURL,
			"cancel_url":  config.AppConfig.CheckoutCancelURL,
		}).
		Post("https://api.stripe.com/v1/checkout/sessions")

	if err != nil {
		return nil, fmt.Errorf("failed to reach Stripe: %v", err)
	}

	if resp.StatusCode() >= 400 {
		var stripeErr stripeError
		if jsonErr := json.Unmarshal(resp.Body(), &stripeErr); jsonErr == nil && stripeErr.Error.Message != "" {
			return nil, fmt.Errorf("stripe error: %s", stripeErr.Error.Message)
		}
		return nil, fmt.Errorf("stripe returned status %d", resp.StatusCode())
	}

	var session CheckoutSession
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		return nil, fmt.Errorf("failed to parse Stripe response: %v", err)
	}

	if session.URL == "" {
		return nil, fmt.Errorf("no checkout URL returned")
	}

	return &session, nil
}
