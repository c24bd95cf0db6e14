package novaposhta

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{APIURL: server.URL, APIKey: "test-key"})
}

func decodeRequest(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode request body: %v", err)
	}
	return body
}

func TestSearchSettlements_UnwrapsAddresses(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeRequest(t, r)
		if body["modelName"] != "Address" || body["calledMethod"] != "searchSettlements" {
			t.Fatalf("unexpected carrier method: %v.%v", body["modelName"], body["calledMethod"])
		}
		props := body["methodProperties"].(map[string]any)
		if props["CityName"] != "Київ" {
			t.Fatalf("expected CityName Київ, got %v", props["CityName"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{{
				"TotalCount": "1",
				"Addresses": []map[string]any{{
					"Ref":             "ref-1",
					"MainDescription": "Київ",
				}},
			}},
		})
	})

	settlements, err := client.SearchSettlements(context.Background(), "Київ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(settlements) != 1 {
		t.Fatalf("expected 1 settlement, got %d", len(settlements))
	}
	if settlements[0].Ref != "ref-1" || settlements[0].MainDescription != "Київ" {
		t.Fatalf("unexpected settlement: %+v", settlements[0])
	}
}

func TestSearchSettlements_ShortQuerySkipsNetwork(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for a short query")
	})

	settlements, err := client.SearchSettlements(context.Background(), "K")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(settlements) != 0 {
		t.Fatalf("expected no settlements, got %d", len(settlements))
	}
}

func TestGetWarehouses_EnvelopeFailureJoinsErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"success": false,
			"data":    []any{},
			"errors":  []string{"API key invalid", "access denied"},
		})
	})

	_, err := client.GetWarehouses(context.Background(), "city-ref")
	if err == nil {
		t.Fatal("expected an error for unsuccessful envelope")
	}
	if err.Error() != "API key invalid, access denied" {
		t.Fatalf("expected joined carrier errors, got %q", err.Error())
	}
}

func TestGetWarehouses_HTTPFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	_, err := client.GetWarehouses(context.Background(), "city-ref")
	if err == nil {
		t.Fatal("expected an error for non-2xx status")
	}
}

func TestCreateInternetDocument_ReturnsFirstDocument(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body := decodeRequest(t, r)
		props := body["methodProperties"].(map[string]any)
		if props["CargoType"] != "Parcel" {
			t.Fatalf("expected CargoType Parcel, got %v", props["CargoType"])
		}
		json.NewEncoder(w).Encode(map[string]any{
			"success": true,
			"data": []map[string]any{{
				"Ref":                   "doc-ref",
				"IntDocNumber":          "20450000000000",
				"EstimatedDeliveryDate": "01.09.2026",
				"CostOnSite":            70,
			}},
		})
	})

	doc, err := client.CreateInternetDocument(context.Background(), CreateInternetDocumentRequest{
		CargoType: "Parcel",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.IntDocNumber != "20450000000000" {
		t.Fatalf("unexpected tracking number: %q", doc.IntDocNumber)
	}
}

func TestCreateInternetDocument_EmptyData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": true, "data": []any{}})
	})

	_, err := client.CreateInternetDocument(context.Background(), CreateInternetDocumentRequest{})
	if err == nil {
		t.Fatal("expected an error for empty declaration payload")
	}
}
