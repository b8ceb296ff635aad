package investool

import (
	"encoding/json"
	"testing"
)

const sampleChartPayload = `{
  "chart": {
    "result": [
      {
        "meta": {
          "currency": "USD",
          "symbol": "AAPL",
          "regularMarketPrice": 232.5,
          "chartPreviousClose": 230.0
        }
      }
    ],
    "error": null
  }
}`

func TestJsonAtHelpers(t *testing.T) {
	var jobj any
	if err := json.Unmarshal([]byte(sampleChartPayload), &jobj); err != nil {
		t.Fatalf("unmarshal sample payload: %v", err)
	}

	price, err := jsonFloatAt(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		t.Fatalf("jsonFloatAt() unexpected error: %v", err)
	}
	if price != 232.5 {
		t.Errorf("price = %g, want 232.5", price)
	}

	currency, err := jsonStringAt(jobj, "$.chart.result[0].meta.currency")
	if err != nil {
		t.Fatalf("jsonStringAt() unexpected error: %v", err)
	}
	if currency != "USD" {
		t.Errorf("currency = %q, want USD", currency)
	}

	if _, err := jsonFloatAt(jobj, "$.chart.result[0].meta.currency"); err == nil {
		t.Error("jsonFloatAt() on a string expected error, got nil")
	}
	if _, err := jsonFloatAt(jobj, "$.chart.result[0].meta.missing"); err == nil {
		t.Error("jsonFloatAt() on a missing path expected error, got nil")
	}
}
