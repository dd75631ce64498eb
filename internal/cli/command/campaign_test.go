package command

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/yndnr/ota-go/internal/core/domain"
)

const campaignID = "9e0f3a2b-7c4d-4e5f-8a9b-0c1d2e3f4a5b"

func TestCampaignCommands(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		method string
		path   string
	}{
		{"list all", []string{"campaign", "list"}, http.MethodGet, "/api/v1/campaigns"},
		{"list one", []string{"campaign", "list", "--campaign", campaignID}, http.MethodGet, "/api/v1/campaigns/" + campaignID},
		{"launch", []string{"campaign", "launch", "--campaign", campaignID}, http.MethodPost, "/api/v1/campaigns/" + campaignID + "/launch"},
		{"cancel", []string{"campaign", "cancel", "--campaign", campaignID}, http.MethodPost, "/api/v1/campaigns/" + campaignID + "/cancel"},
		{"list updates", []string{"campaign", "listupdates"}, http.MethodGet, "/api/v1/updates"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newMockServer(t)
			res := runWith(t, server, tt.args...)
			if res.Err != nil {
				t.Fatalf("run failed: %v", res.Err)
			}
			req := server.only(t)
			if req.Method != tt.method || req.Path != tt.path {
				t.Errorf("request = %s %s, want %s %s", req.Method, req.Path, tt.method, tt.path)
			}
		})
	}
}

func TestCampaignCreate(t *testing.T) {
	server := newMockServer(t)
	const updateID = "3d5b8f52-6a61-4f0b-9a6f-5d4f2f0e8c10"

	res := runWith(t, server, "campaign", "create", "--name", "spring",
		"--update", updateID, "--groups", groupID+","+deviceID)
	if res.Err != nil {
		t.Fatalf("run failed: %v", res.Err)
	}

	var body struct {
		Name   string   `json:"name"`
		Update string   `json:"update"`
		Groups []string `json:"groups"`
	}
	if err := json.Unmarshal(server.only(t).Body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Name != "spring" || body.Update != updateID {
		t.Errorf("body = %+v", body)
	}
	if strings.Join(body.Groups, ",") != groupID+","+deviceID {
		t.Errorf("groups = %v", body.Groups)
	}
}

func TestCampaignCreate_BadGroup(t *testing.T) {
	server := newMockServer(t)

	res := runWith(t, server, "campaign", "create", "--name", "spring",
		"--update", campaignID, "--groups", "fleet-a")
	if !errors.Is(res.Err, domain.ErrParse) {
		t.Errorf("error = %v, want ErrParse", res.Err)
	}
	if n := len(server.recorded()); n != 0 {
		t.Errorf("requests = %d, want none", n)
	}
}

func TestCampaignCreateUpdate(t *testing.T) {
	server := newMockServer(t)
	const updateID = "3d5b8f52-6a61-4f0b-9a6f-5d4f2f0e8c10"

	res := runWith(t, server, "campaign", "createupdate", "--update", updateID,
		"--name", "v2", "--description", "second release")
	if res.Err != nil {
		t.Fatalf("run failed: %v", res.Err)
	}

	req := server.only(t)
	if req.Method != http.MethodPost || req.Path != "/api/v1/updates" {
		t.Errorf("request = %s %s", req.Method, req.Path)
	}
	var body map[string]any
	if err := json.Unmarshal(req.Body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	src, _ := body["updateSource"].(map[string]any)
	if src["id"] != updateID || src["sourceType"] != "multi_target" {
		t.Errorf("updateSource = %v", src)
	}
}
