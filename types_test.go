package investool

import (
	"encoding/json"
	"testing"
)

func TestMoney_Arithmetic(t *testing.T) {
	a := M(100, "TWD")
	b := M(50, "TWD")
	if got := a.Add(b); !got.Equal(M(150, "TWD")) {
		t.Errorf("Add() = %v, want 150 TWD", got)
	}
	if got := a.Sub(b); !got.Equal(M(50, "TWD")) {
		t.Errorf("Sub() = %v, want 50 TWD", got)
	}
	if got := b.Mul(Q(3)); !got.Equal(M(150, "TWD")) {
		t.Errorf("Mul(3) = %v, want 150 TWD", got)
	}
}

func TestMoney_ZeroAdoptsCurrency(t *testing.T) {
	// a zero Money has no currency yet; it takes the other operand's
	var zero Money
	got := zero.Add(M(100, "TWD"))
	if got.Currency() != "TWD" {
		t.Errorf("currency = %q, want TWD", got.Currency())
	}
	if !got.Equal(M(100, "TWD")) {
		t.Errorf("zero + 100 TWD = %v, want 100 TWD", got)
	}
}

func TestMoney_MixedCurrencyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("adding TWD to USD expected a panic, got none")
		}
	}()
	_ = M(1, "USD").Add(M(1, "TWD"))
}

func TestMoney_Share(t *testing.T) {
	got := M(6000, "TWD").Share(M(10000, "TWD"))
	if !got.Equal(P(60)) {
		t.Errorf("Share() = %v, want 60%%", got)
	}
	// a zero total yields a zero share, not a division error
	got = M(6000, "TWD").Share(M(0, "TWD"))
	if !got.IsZero() {
		t.Errorf("Share() of zero total = %v, want 0", got)
	}
}

func TestPercent_EqualWithinEpsilon(t *testing.T) {
	testCases := []struct {
		name string
		a, b Percent
		want bool
	}{
		{name: "exact", a: P(100), b: P(100), want: true},
		{name: "within epsilon", a: P(99.995), b: P(100), want: true},
		{name: "outside epsilon", a: P(99.98), b: P(100), want: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Equal(tc.b); got != tc.want {
				t.Errorf("%v.Equal(%v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestPercent_Of(t *testing.T) {
	got := P(10).Of(M(10000, "TWD"))
	if !got.Equal(M(1000, "TWD")) {
		t.Errorf("10%% of 10000 TWD = %v, want 1000 TWD", got)
	}
}

func TestPercent_SignedString(t *testing.T) {
	testCases := []struct {
		p    Percent
		want string
	}{
		{p: P(10), want: "+10.00%"},
		{p: P(-10), want: "-10.00%"},
		{p: P(0), want: "-"},
	}
	for _, tc := range testCases {
		if got := tc.p.SignedString(); got != tc.want {
			t.Errorf("SignedString(%v) = %q, want %q", tc.p, got, tc.want)
		}
	}
}

func TestQuantity_JSON(t *testing.T) {
	data, err := json.Marshal(Q(2.5))
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	if string(data) != "2.5" {
		t.Errorf("Marshal(2.5) = %s, want a bare number", data)
	}
	var q Quantity
	if err := json.Unmarshal(data, &q); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	if !q.Equal(Q(2.5)) {
		t.Errorf("round trip = %v, want 2.5", q)
	}
}
