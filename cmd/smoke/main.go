// Command smoke exercises a running portal end to end: login, token
// check, and one listing per category.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"
)

func main() {
	base := os.Getenv("LAYANAN_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	username := os.Getenv("LAYANAN_ADMIN_USERNAME")
	password := os.Getenv("LAYANAN_ADMIN_PASSWORD")
	if username == "" || password == "" {
		log.Fatal("LAYANAN_ADMIN_USERNAME and LAYANAN_ADMIN_PASSWORD are required")
	}

	client := &http.Client{Timeout: 10 * time.Second}

	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	resp, err := client.Post(base+"/login-admin", "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatalf("login: %v", err)
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		log.Fatalf("decode login response: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || login.Token == "" {
		log.Fatalf("login failed: status=%d", resp.StatusCode)
	}

	get := func(path string) *http.Response {
		req, err := http.NewRequest(http.MethodGet, base+path, nil)
		if err != nil {
			log.Fatalf("new request %s: %v", path, err)
		}
		req.Header.Set("Authorization", "Bearer "+login.Token)
		resp, err := client.Do(req)
		if err != nil {
			log.Fatalf("GET %s: %v", path, err)
		}
		return resp
	}

	resp = get("/profile")
	var profile struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		log.Fatalf("decode profile: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || profile.Username != username {
		log.Fatalf("profile check failed: status=%d username=%q", resp.StatusCode, profile.Username)
	}

	for _, name := range []string{"penelitian", "magang"} {
		resp = get("/api/" + name)
		var recs []map[string]any
		if err := json.NewDecoder(resp.Body).Decode(&recs); err != nil {
			log.Fatalf("decode %s listing: %v", name, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			log.Fatalf("list %s failed: status=%d", name, resp.StatusCode)
		}
		fmt.Printf("%s: %d submissions\n", name, len(recs))
	}

	fmt.Println("✅ smoke test passed")
}
