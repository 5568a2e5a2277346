//go:build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func baseURL() string {
	if v := os.Getenv("RAILSPREP_TEST_BASE_URL"); strings.TrimSpace(v) != "" {
		return strings.TrimRight(v, "/")
	}
	return "http://127.0.0.1:8080"
}

// TestStudyFlowIntegration drives the full journey against a running
// server: health check, browse the catalog, open a session, filter and
// page through questions, favorite one, and verify the preference was
// persisted.
func TestStudyFlowIntegration(t *testing.T) {
	client := &http.Client{Timeout: 5 * time.Second}
	base := baseURL()

	var health struct {
		OK      bool   `json:"ok"`
		Backend string `json:"backend"`
	}
	doGet(t, client, base+"/health", &health)
	if !health.OK {
		t.Fatalf("health check reports not ok")
	}

	var questions []struct {
		ID         int    `json:"id"`
		Question   string `json:"question"`
		Difficulty string `json:"difficulty"`
	}
	doGet(t, client, base+"/api/questions", &questions)
	if len(questions) == 0 {
		t.Fatalf("catalog is empty; is the server seeded?")
	}

	var easy []struct {
		Difficulty string `json:"difficulty"`
	}
	doGet(t, client, base+"/api/questions?difficulty=easy", &easy)
	for _, q := range easy {
		if q.Difficulty != "easy" {
			t.Fatalf("difficulty filter leaked %q", q.Difficulty)
		}
	}

	var sessionResp struct {
		SessionID string `json:"sessionId"`
	}
	doPost(t, client, base+"/api/sessions", map[string]any{"userId": 1}, &sessionResp)
	if sessionResp.SessionID == "" {
		t.Fatalf("no session id in response")
	}
	sessionBase := fmt.Sprintf("%s/api/sessions/%s", base, sessionResp.SessionID)

	var page struct {
		Items []struct {
			ID         int  `json:"id"`
			IsFavorite bool `json:"isFavorite"`
		} `json:"items"`
		TotalFiltered int `json:"totalFiltered"`
		TotalPages    int `json:"totalPages"`
		Page          int `json:"page"`
		PageSize      int `json:"pageSize"`
	}
	doGet(t, client, sessionBase+"/questions", &page)
	if page.PageSize != 5 || page.Page != 1 {
		t.Fatalf("default view = page %d size %d, want page 1 of 5", page.Page, page.PageSize)
	}
	if page.TotalFiltered != len(questions) {
		t.Fatalf("session sees %d questions, catalog has %d", page.TotalFiltered, len(questions))
	}
	if len(page.Items) == 0 {
		t.Fatalf("first page is empty")
	}
	target := page.Items[0].ID

	doPost(t, client, sessionBase+"/toggle", map[string]any{"questionId": target, "field": "favorite"}, &page)
	var favorited bool
	for _, it := range page.Items {
		if it.ID == target && it.IsFavorite {
			favorited = true
		}
	}
	if !favorited {
		t.Fatalf("question %d not favorited in the view", target)
	}

	doGet(t, client, sessionBase+"/questions?favorites=true", &page)
	if page.TotalFiltered < 1 {
		t.Fatalf("favorites view is empty after toggle")
	}

	// The toggle mirror is asynchronous; poll briefly for persistence.
	var prefs []struct {
		QuestionID int  `json:"questionId"`
		IsFavorite bool `json:"isFavorite"`
	}
	deadline := time.Now().Add(3 * time.Second)
	for {
		doGet(t, client, base+"/api/user-preferences/1", &prefs)
		var persisted bool
		for _, p := range prefs {
			if p.QuestionID == target && p.IsFavorite {
				persisted = true
			}
		}
		if persisted {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("favorite for question %d never reached the preference store: %+v", target, prefs)
		}
		time.Sleep(100 * time.Millisecond)
	}

	doPost(t, client, sessionBase+"/refresh", nil, nil)
	doGet(t, client, sessionBase+"/questions?favorites=true", &page)
	if page.TotalFiltered < 1 {
		t.Fatalf("favorite lost across refresh")
	}
}

func doGet(t *testing.T, client *http.Client, url string, out any) {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("http get %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status %d for %s: %s", resp.StatusCode, url, string(body))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decode response from %s: %v", url, err)
		}
	}
}

func doPost(t *testing.T, client *http.Client, url string, body any, out any) {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("http post %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status %d for %s: %s", resp.StatusCode, url, string(bodyBytes))
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
			t.Fatalf("decode response from %s: %v", url, err)
		}
	}
}
