package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

func baseURL() string {
	if u := os.Getenv("BASE_URL"); u != "" {
		return u
	}
	return "http://localhost:8080"
}

func main() {
	// Wait for server to start
	time.Sleep(2 * time.Second)

	checkEndpoint("GET", "/health", nil, 200)

	buyID := call("POST", "/buy", map[string]interface{}{"symbol": "ABC", "price": "50", "quantity": 10}, 201)
	fmt.Printf("Bought, trade ID: %s\n", buyID)
	call("POST", "/buy", map[string]interface{}{"symbol": "XYZ", "price": "25", "quantity": 20}, 201)
	expectTotal("1000.0000")

	call("POST", "/sell", map[string]interface{}{"symbol": "ABC", "quantity": 5}, 200)
	expectTotal("750.0000")

	checkEndpoint("POST", "/sell", map[string]interface{}{"symbol": "ABC", "quantity": 500}, 409)
	checkEndpoint("POST", "/sell", map[string]interface{}{"symbol": "NOPE", "quantity": 1}, 404)

	call("POST", "/sell", map[string]interface{}{"symbol": "XYZ", "quantity": 20}, 200)
	expectTotal("250.0000")

	checkEndpoint("GET", "/trades", nil, 200)

	fmt.Println("ALL TESTS PASSED")
}

func checkEndpoint(method, path string, body interface{}, expectedStatus int) []byte {
	fmt.Printf("Testing %s %s...\n", method, path)
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, _ := http.NewRequest(method, baseURL()+path, bodyReader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expectedStatus {
		log.Fatalf("Expected status %d, got %d. Body: %s", expectedStatus, resp.StatusCode, string(respBody))
	}
	fmt.Printf("Response: %s\n", string(respBody))
	return respBody
}

func call(method, path string, body interface{}, expectedStatus int) string {
	var res struct {
		TradeID string `json:"trade_id"`
	}
	if err := json.Unmarshal(checkEndpoint(method, path, body, expectedStatus), &res); err != nil {
		log.Fatalf("decode %s: %v", path, err)
	}
	return res.TradeID
}

func expectTotal(want string) {
	var res struct {
		TotalValue string `json:"total_value"`
	}
	if err := json.Unmarshal(checkEndpoint("GET", "/portfolio", nil, 200), &res); err != nil {
		log.Fatalf("decode portfolio: %v", err)
	}
	if res.TotalValue != want {
		log.Fatalf("Expected total %s, got %s", want, res.TotalValue)
	}
}
