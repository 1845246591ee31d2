package handlers

import (
	"fmt"
	"net/http"

	"clearheadspace/config"
	"clearheadspace/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// CreatePaymentIntent creates a Stripe PaymentIntent for a session amount.
// Without a configured Stripe key it hands back a demo secret so the booking
// flow stays usable in development.
func CreatePaymentIntent(c *gin.Context) {
	var req struct {
		Amount   float64 `json:"amount" validate:"required,gt=0"`
		Currency string  `json:"currency"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if err := validate.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payment request", "details": err.Error()})
		return
	}

	if config.AppConfig.StripeKey == "" {
		c.JSON(http.StatusOK, gin.H{
			"clientSecret": fmt.Sprintf("demo_secret_%s", uuid.NewString()),
			"demo":         true,
		})
		return
	}

	currency := req.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(req.Amount * 100)),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		zap.L().Error("stripe payment intent failed", zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "Payment provider unavailable", "")
		return
	}
	c.JSON(http.StatusOK, gin.H{"clientSecret": pi.ClientSecret})
}
