package domain

import "strings"

// DefaultChecksumMethod is assumed when a target omits its hash method.
const DefaultChecksumMethod = "sha256"

// TufTarget identifies an uploaded target by content.
type TufTarget struct {
	Name    string `json:"name" toml:"name" yaml:"name" validate:"required"`
	Version string `json:"version" toml:"version" yaml:"version" validate:"required"`
	Length  uint64 `json:"length" toml:"length" yaml:"length" validate:"gt=0"`
	Hash    string `json:"hash" toml:"hash" yaml:"hash" validate:"required,hexadecimal"`
	Method  string `json:"method,omitempty" toml:"method,omitempty" yaml:"method,omitempty" validate:"omitempty,oneof=sha256 sha512"`
}

// TargetRequest is one hardware entry of a declarative update file.
type TargetRequest struct {
	To           TufTarget  `json:"to" toml:"to" yaml:"to"`
	From         *TufTarget `json:"from,omitempty" toml:"from,omitempty" yaml:"from,omitempty"`
	Format       string     `json:"format" toml:"format" yaml:"format" validate:"target_format"`
	GenerateDiff bool       `json:"generate_diff" toml:"generate_diff" yaml:"generate_diff"`
}

// TargetRequests maps hardware id to the requested update.
type TargetRequests map[string]TargetRequest

// TufUpdates is the director's multi-target update request body.
type TufUpdates struct {
	Targets map[string]TufUpdate `json:"targets"`
}

// TufUpdate is the update for one hardware id.
type TufUpdate struct {
	From         *UpdateTarget `json:"from,omitempty"`
	To           UpdateTarget  `json:"to"`
	TargetFormat string        `json:"targetFormat"`
	GenerateDiff bool          `json:"generateDiff"`
}

// UpdateTarget references a repository target by entry name and checksum.
type UpdateTarget struct {
	Target       string   `json:"target"`
	Checksum     Checksum `json:"checksum"`
	TargetLength uint64   `json:"targetLength"`
}

// Checksum is a typed content hash.
type Checksum struct {
	Method string `json:"method"`
	Hash   string `json:"hash"`
}

// UpdateTargetFrom validates t and converts it into its wire form.
func UpdateTargetFrom(t TufTarget) (UpdateTarget, error) {
	if err := Validate(t); err != nil {
		return UpdateTarget{}, err
	}
	method := strings.ToLower(t.Method)
	if method == "" {
		method = DefaultChecksumMethod
	}
	return UpdateTarget{
		Target:       t.Name + "-" + t.Version,
		Checksum:     Checksum{Method: method, Hash: strings.ToLower(t.Hash)},
		TargetLength: t.Length,
	}, nil
}
