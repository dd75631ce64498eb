package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/yndnr/ota-go/internal/core/domain"
)

// ExpandPackages converts a declarative package mapping into concrete upload
// requests, one per (name, version) pair.
//
// Records are ordered by name, then version, so repeated runs over the same
// file upload in the same order. The first invalid entry aborts the whole
// batch and no records are returned.
func ExpandPackages(targets domain.TargetPackages) ([]domain.TufPackage, error) {
	names := make([]string, 0, len(targets))
	for name := range targets {
		names = append(names, name)
	}
	sort.Strings(names)

	var packages []domain.TufPackage
	for _, name := range names {
		versions := targets[name]
		keys := make([]string, 0, len(versions))
		for v := range versions {
			keys = append(keys, v)
		}
		sort.Strings(keys)

		for _, version := range keys {
			p, err := domain.PackageFromMetadata(name, version, versions[version])
			if err != nil {
				return nil, err
			}
			packages = append(packages, *p)
		}
	}
	return packages, nil
}

// ExpandUpdates converts a declarative per-hardware update mapping into the
// director's multi-target update body. Any invalid entry fails the whole set;
// entries are checked in hardware id order, so the reported one is stable.
func ExpandUpdates(requests domain.TargetRequests) (*domain.TufUpdates, error) {
	if len(requests) == 0 {
		return nil, domain.ErrParse.WithDetails("no update targets given")
	}

	hwIDs := make([]string, 0, len(requests))
	for hwID := range requests {
		hwIDs = append(hwIDs, hwID)
	}
	sort.Strings(hwIDs)

	updates := &domain.TufUpdates{Targets: make(map[string]domain.TufUpdate, len(requests))}
	for _, hwID := range hwIDs {
		req := requests[hwID]
		if strings.TrimSpace(hwID) == "" {
			return nil, domain.ErrParse.WithDetails("empty hardware id")
		}
		if err := domain.Validate(&req); err != nil {
			return nil, withEntry(err, hwID)
		}
		format, err := domain.ParseTargetFormat(req.Format)
		if err != nil {
			return nil, withEntry(err, hwID)
		}

		to, err := domain.UpdateTargetFrom(req.To)
		if err != nil {
			return nil, withEntry(err, hwID)
		}
		update := domain.TufUpdate{
			To:           to,
			TargetFormat: format.Wire(),
			GenerateDiff: req.GenerateDiff,
		}
		if req.From != nil {
			from, err := domain.UpdateTargetFrom(*req.From)
			if err != nil {
				return nil, withEntry(err, hwID)
			}
			update.From = &from
		}
		updates.Targets[hwID] = update
	}
	return updates, nil
}

// LoadTargetPackages reads a package file. The format follows the file
// extension: .yaml/.yml for YAML, .json/.jsonc for JSON with comments,
// anything else is TOML.
func LoadTargetPackages(path string) (domain.TargetPackages, error) {
	var targets domain.TargetPackages
	if err := decodeFile(path, &targets); err != nil {
		return nil, err
	}
	return targets, nil
}

// LoadTargetRequests reads an update targets file, keyed by hardware id.
func LoadTargetRequests(path string) (domain.TargetRequests, error) {
	var requests domain.TargetRequests
	if err := decodeFile(path, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func decodeFile(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.NotFound(path, "")
		}
		return domain.ErrFilesystem.WithCause(err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
		dec.DisallowUnknownFields()
		if err := dec.Decode(target); err != nil {
			return domain.ErrParse.WithDetails("JSON " + path).WithCause(err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(target); err != nil {
			return domain.ErrParse.WithDetails("YAML " + path).WithCause(err)
		}
	default:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(target); err != nil {
			return domain.ErrParse.WithDetails("TOML " + path).WithCause(err)
		}
	}
	return nil
}

func withEntry(err error, entry string) error {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return de.WithDetailsf("%s: %s", entry, de.Details)
	}
	return err
}
