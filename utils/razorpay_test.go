package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"nexora/config"

	"github.com/stretchr/testify/assert"
)

func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyRazorpaySignature(t *testing.T) {
	config.AppConfig = &config.Config{RazorpayKeySecret: "test_secret"}

	sig := signPayload("test_secret", "order_abc", "pay_xyz")

	assert.True(t, VerifyRazorpaySignature("order_abc", "pay_xyz", sig))
}

func TestVerifyRazorpaySignatureRejectsTampered(t *testing.T) {
	config.AppConfig = &config.Config{RazorpayKeySecret: "test_secret"}

	sig := signPayload("test_secret", "order_abc", "pay_xyz")

	assert.False(t, VerifyRazorpaySignature("order_abc", "pay_other", sig))
	assert.False(t, VerifyRazorpaySignature("order_abc", "pay_xyz", sig+"00"))
	assert.False(t, VerifyRazorpaySignature("order_abc", "pay_xyz", ""))
}

func TestVerifyRazorpaySignatureWrongSecret(t *testing.T) {
	config.AppConfig = &config.Config{RazorpayKeySecret: "real_secret"}

	sig := signPayload("other_secret", "order_abc", "pay_xyz")

	assert.False(t, VerifyRazorpaySignature("order_abc", "pay_xyz", sig))
}
