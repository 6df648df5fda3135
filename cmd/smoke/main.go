// Command smoke drives a running server through one create, show, update
// and delete round trip and exits non-zero on the first failure.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

func main() {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	suffix := fmt.Sprintf("%d", time.Now().Unix())

	fmt.Println("1. Health")
	status, body := send(baseURL, "GET", "/healthz", nil)
	mustStatus(status, body, http.StatusOK, "health")

	fmt.Println("2. Rejecting an empty name")
	status, body = send(baseURL, "POST", "/materials", map[string]interface{}{"name": ""})
	mustStatus(status, body, http.StatusBadRequest, "empty name")

	fmt.Println("3. Creating a material with a sub-material and a writer")
	status, body = send(baseURL, "POST", "/materials", map[string]interface{}{
		"name":   "The Norman Conquests " + suffix,
		"format": "trilogy of plays",
		"subMaterials": []map[string]interface{}{
			{"name": "Table Manners " + suffix},
		},
		"writingCredits": []map[string]interface{}{
			{"entities": []map[string]interface{}{{"kind": "Person", "name": "Alan Ayckbourn"}}},
		},
	})
	mustStatus(status, body, http.StatusOK, "create material")
	id, _ := body["uuid"].(string)

	fmt.Println("4. Rejecting a duplicate")
	status, body = send(baseURL, "POST", "/materials", map[string]interface{}{"name": "The Norman Conquests " + suffix})
	mustStatus(status, body, http.StatusBadRequest, "duplicate material")

	fmt.Println("5. Showing")
	status, body = send(baseURL, "GET", "/materials/"+id, nil)
	mustStatus(status, body, http.StatusOK, "show material")

	fmt.Println("6. Deleting the sub-material is refused")
	subs, _ := body["subMaterials"].([]interface{})
	if len(subs) != 1 {
		fail("show material", fmt.Sprintf("expected one sub-material, got %v", body["subMaterials"]))
	}
	subID, _ := subs[0].(map[string]interface{})["uuid"].(string)
	status, body = send(baseURL, "DELETE", "/materials/"+subID, nil)
	mustStatus(status, body, http.StatusBadRequest, "delete sub-material")

	fmt.Println("7. Deleting the material")
	status, body = send(baseURL, "DELETE", "/materials/"+id, nil)
	mustStatus(status, body, http.StatusOK, "delete material")

	fmt.Println("PASSED")
}

func send(baseURL, method, endpoint string, payload interface{}) (int, map[string]interface{}) {
	var body io.Reader
	if payload != nil {
		data, _ := json.Marshal(payload)
		body = bytes.NewBuffer(data)
	}
	req, err := http.NewRequest(method, baseURL+endpoint, body)
	if err != nil {
		fail(endpoint, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := (&http.Client{Timeout: 10 * time.Second}).Do(req)
	if err != nil {
		fail(endpoint, err.Error())
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	out := map[string]interface{}{}
	_ = json.Unmarshal(raw, &out)
	return resp.StatusCode, out
}

func mustStatus(got int, body map[string]interface{}, want int, step string) {
	if got != want {
		fail(step, fmt.Sprintf("status %d, want %d: %v", got, want, body))
	}
}

func fail(step, detail string) {
	fmt.Printf("FAILED: %s: %s\n", step, detail)
	os.Exit(1)
}
