package course

import "gorm.io/gorm"

// Entitlement gates content access; granted exclusively by the payment webhook
type Entitlement struct {
	gorm.Model
	UserID                uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	HasActiveAccess       bool   `json:"has_active_access" gorm:"default:false"`
	PaymentVerified       bool   `json:"payment_verified" gorm:"default:false"`
	StripePaymentIntentID string `json:"stripe_payment_intent_id"`
	StripeCustomerID      string `json:"stripe_customer_id"`
}
