package enums

import "testing"

func TestPaymentMethodIDs(t *testing.T) {
	cases := []struct {
		raw    string
		want   PaymentMethod
		wantID int
	}{
		{raw: "Cash", want: PaymentMethodCash, wantID: 1},
		{raw: "credit", want: PaymentMethodCredit, wantID: 2},
		{raw: " GCASH ", want: PaymentMethodGCash, wantID: 3},
	}
	for _, tc := range cases {
		got := ParsePaymentMethod(tc.raw)
		if got != tc.want {
			t.Fatalf("ParsePaymentMethod(%q) = %q, want %q", tc.raw, got, tc.want)
		}
		id := got.ID()
		if id == nil || *id != tc.wantID {
			t.Fatalf("%s: expected id %d, got %v", got, tc.wantID, id)
		}
	}
}

func TestUnknownPaymentMethodIsOther(t *testing.T) {
	method := ParsePaymentMethod("PayMaya")
	if method != "PayMaya" {
		t.Fatalf("expected label to be kept, got %q", method)
	}
	if !method.IsOther() || method.IsValid() {
		t.Fatalf("expected PayMaya to be an other method")
	}
	if method.ID() != nil {
		t.Fatalf("expected nil id for other method")
	}
	if method.RequiresTender() {
		t.Fatalf("other methods do not take a tender")
	}
}

func TestRequiresTenderOnlyForCash(t *testing.T) {
	if !PaymentMethodCash.RequiresTender() {
		t.Fatal("cash should require a tender")
	}
	if PaymentMethodGCash.RequiresTender() || PaymentMethodCredit.RequiresTender() {
		t.Fatal("only cash should require a tender")
	}
}

func TestPaymentMethodFromID(t *testing.T) {
	if got, ok := PaymentMethodFromID(2); !ok || got != PaymentMethodCredit {
		t.Fatalf("expected credit for id 2, got %q %v", got, ok)
	}
	if _, ok := PaymentMethodFromID(42); ok {
		t.Fatal("expected unknown id to miss")
	}
}
