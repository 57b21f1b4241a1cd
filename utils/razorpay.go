package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"time"

	"nexora/config"

	"github.com/go-resty/resty/v2"
)

// RazorpayOrder is the subset of the Razorpay order object we use
type RazorpayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

type razorpayError struct {
	Error struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error"`
}

// CreateRazorpayOrder creates a payment order for the given amount (in
// rupees; Razorpay wants paise).
func CreateRazorpayOrder(amount float64, currency, receipt string) (*RazorpayOrder, error) {
	cfg := config.AppConfig

	client := resty.New().
		SetBaseURL(cfg.RazorpayBaseURL).
		SetBasicAuth(cfg.RazorpayKeyID, cfg.RazorpayKeySecret).
		SetTimeout(15 * time.Second)

	var order RazorpayOrder
	var apiErr razorpayError

	resp, err := client.R().
		SetBody(map[string]interface{}{
			"amount":   int64(math.Round(amount * 100)),
			"currency": currency,
			"receipt":  receipt,
		}).
		SetResult(&order).
		SetError(&apiErr).
		Post("/orders")
	if err != nil {
		return nil, fmt.Errorf("razorpay order request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("razorpay order failed: %s", apiErr.Error.Description)
	}

	return &order, nil
}

// VerifyRazorpaySignature checks the payment callback signature: an
// HMAC-SHA256 over "orderID|paymentID" keyed with the API secret.
func VerifyRazorpaySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(config.AppConfig.RazorpayKeySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
