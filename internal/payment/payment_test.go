package payment

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestCODChargeProducesPseudoToken(t *testing.T) {
	proc := &CODProcessor{Delay: time.Millisecond}

	result, err := proc.Charge(context.Background(), 42.50, "ada@example.com", nil)
	if err != nil {
		t.Fatalf("Charge: %v", err)
	}
	if result.Method != MethodCOD {
		t.Errorf("Method = %q, attendu %q", result.Method, MethodCOD)
	}
	if !strings.HasPrefix(result.PaymentID, "cod_") {
		t.Errorf("PaymentID = %q, attendu préfixe cod_", result.PaymentID)
	}
}

func TestCODChargeRespectsContext(t *testing.T) {
	proc := &CODProcessor{Delay: time.Minute}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	if _, err := proc.Charge(ctx, 10, "ada@example.com", nil); err == nil {
		t.Errorf("attendu une erreur d'annulation de contexte")
	}
}

func TestDeclinedErrorMessage(t *testing.T) {
	err := &DeclinedError{Reason: "fonds insuffisants"}
	if err.Error() != "fonds insuffisants" {
		t.Errorf("Error() = %q", err.Error())
	}
}
