package service

import (
	"crypto/sha512"
	"encoding/hex"
	"testing"

	"kursusku_backend/internals/features/payment/checkout/model"
)

func TestMapTransactionStatus(t *testing.T) {
	cases := []struct {
		transactionStatus string
		fraudStatus       string
		expected          string
	}{
		{"capture", "accept", model.PaymentStatusPaid},
		{"capture", "challenge", model.PaymentStatusPending},
		{"capture", "deny", model.PaymentStatusFailed},
		{"settlement", "", model.PaymentStatusPaid},
		{"pending", "", model.PaymentStatusPending},
		{"deny", "", model.PaymentStatusFailed},
		{"cancel", "", model.PaymentStatusCanceled},
		{"expire", "", model.PaymentStatusExpired},
		{"refund", "", model.PaymentStatusCanceled},
		{"partial_refund", "", model.PaymentStatusCanceled},
		// status tak dikenal dibiarkan pending, menunggu notifikasi berikutnya
		{"authorize", "", model.PaymentStatusPending},
		// Midtrans kadang mengirim huruf besar
		{"SETTLEMENT", "", model.PaymentStatusPaid},
		{"Capture", "ACCEPT", model.PaymentStatusPaid},
	}

	for _, c := range cases {
		got := MapTransactionStatus(c.transactionStatus, c.fraudStatus)
		if got != c.expected {
			t.Errorf("Expected MapTransactionStatus(%q, %q) to be %q, got %q",
				c.transactionStatus, c.fraudStatus, c.expected, got)
		}
	}
}

func TestVerifySignatureKey(t *testing.T) {
	orderID := "KURSUS-1724371200-AB12CD34"
	statusCode := "200"
	grossAmount := "75000.00"
	serverKey := "SB-Mid-server-testkey"

	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	validSignature := hex.EncodeToString(sum[:])

	if !VerifySignatureKey(orderID, statusCode, grossAmount, validSignature, serverKey) {
		t.Errorf("Expected valid signature to pass")
	}

	// signature salah
	if VerifySignatureKey(orderID, statusCode, grossAmount, "deadbeef", serverKey) {
		t.Errorf("Expected wrong signature to fail")
	}

	// gross_amount diubah di tengah jalan
	if VerifySignatureKey(orderID, statusCode, "1.00", validSignature, serverKey) {
		t.Errorf("Expected tampered gross_amount to fail")
	}

	// signature / server key kosong
	if VerifySignatureKey(orderID, statusCode, grossAmount, "", serverKey) {
		t.Errorf("Expected empty signature to fail")
	}
	if VerifySignatureKey(orderID, statusCode, grossAmount, validSignature, "") {
		t.Errorf("Expected empty server key to fail")
	}
}

func TestIsTerminalStatus(t *testing.T) {
	terminal := []string{model.PaymentStatusPaid, model.PaymentStatusCanceled, model.PaymentStatusExpired}
	for _, s := range terminal {
		if !isTerminalStatus(s) {
			t.Errorf("Expected %q to be terminal", s)
		}
	}

	open := []string{model.PaymentStatusPending, model.PaymentStatusFailed}
	for _, s := range open {
		if isTerminalStatus(s) {
			t.Errorf("Expected %q to not be terminal", s)
		}
	}
}
