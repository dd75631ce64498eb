package command

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/yndnr/ota-go/internal/core/domain"
)

// targetsTOML has a zero-length target.
const targetsTOML = `
[qemux86-64]
format = "ostree"
generate_diff = false

[qemux86-64.to]
name = "my-branch"
version = "1234"
length = 0
hash = "ab12"
`

func TestUpdateCreate(t *testing.T) {
	server := newMockServer(t)
	server.handle("POST /api/v1/multi_target_updates", rawResponse(http.StatusCreated, `"`+groupID+`"`))

	targets := writeFile(t, "targets.toml", `
[qemux86-64]
format = "ostree"

[qemux86-64.to]
name = "my-branch"
version = "1234"
length = 4096
hash = "AB12"
`)
	res := runWith(t, server, "update", "create", "--targets", targets)
	if res.Err != nil {
		t.Fatalf("run failed: %v", res.Err)
	}

	var body struct {
		Targets map[string]struct {
			To struct {
				Target       string `json:"target"`
				TargetLength int    `json:"targetLength"`
				Checksum     struct {
					Method string `json:"method"`
					Hash   string `json:"hash"`
				} `json:"checksum"`
			} `json:"to"`
			TargetFormat string `json:"targetFormat"`
		} `json:"targets"`
	}
	if err := json.Unmarshal(server.only(t).Body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	u := body.Targets["qemux86-64"]
	if u.To.Target != "my-branch-1234" || u.To.TargetLength != 4096 || u.TargetFormat != "OSTREE" {
		t.Errorf("update = %+v", u)
	}
	if u.To.Checksum.Method != "sha256" || u.To.Checksum.Hash != "ab12" {
		t.Errorf("checksum = %+v", u.To.Checksum)
	}
}

func TestUpdateCreate_Invalid(t *testing.T) {
	server := newMockServer(t)

	res := runWith(t, server, "update", "create", "--targets", writeFile(t, "targets.toml", targetsTOML))
	if !errors.Is(res.Err, domain.ErrParse) {
		t.Errorf("error = %v, want ErrParse", res.Err)
	}
	if n := len(server.recorded()); n != 0 {
		t.Errorf("requests = %d, want none", n)
	}
}

func TestUpdateLaunch(t *testing.T) {
	server := newMockServer(t)
	const updateID = "3d5b8f52-6a61-4f0b-9a6f-5d4f2f0e8c10"

	res := runWith(t, server, "update", "launch", "--update", updateID, "--device", deviceID)
	if res.Err != nil {
		t.Fatalf("run failed: %v", res.Err)
	}
	req := server.only(t)
	if req.Method != http.MethodPut || req.Path != "/api/v1/admin/devices/"+deviceID+"/multi_target_update/"+updateID {
		t.Errorf("request = %s %s", req.Method, req.Path)
	}
}
