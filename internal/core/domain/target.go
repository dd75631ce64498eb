package domain

import (
	"errors"
	"strings"
)

// TargetFormat is the packaging type of an uploaded artifact.
type TargetFormat string

const (
	FormatBinary TargetFormat = "binary"
	FormatOstree TargetFormat = "ostree"
)

// ParseTargetFormat parses a case-insensitive target format.
func ParseTargetFormat(s string) (TargetFormat, error) {
	switch TargetFormat(strings.ToLower(s)) {
	case FormatBinary:
		return FormatBinary, nil
	case FormatOstree:
		return FormatOstree, nil
	default:
		return "", ErrParse.WithDetails("unknown target format: " + s)
	}
}

// Wire returns the encoding used by the repository and director APIs.
func (f TargetFormat) Wire() string {
	return strings.ToUpper(string(f))
}

// RepoTarget points at target data by filesystem path or by remote URL.
// Exactly one must be set.
type RepoTarget struct {
	Path string `json:"path,omitempty" validate:"required_without=URL,excluded_with=URL"`
	URL  string `json:"url,omitempty" validate:"omitempty,url"`
}

// PackageMetadata is one version entry of a declarative package file.
type PackageMetadata struct {
	Format   string   `json:"format" toml:"format" yaml:"format"`
	Hardware []string `json:"hardware" toml:"hardware" yaml:"hardware"`
	Path     *string  `json:"path,omitempty" toml:"path,omitempty" yaml:"path,omitempty"`
	URL      *string  `json:"url,omitempty" toml:"url,omitempty" yaml:"url,omitempty"`
}

// TargetPackages maps package name to version to metadata.
type TargetPackages map[string]map[string]PackageMetadata

// TufPackage is a concrete upload request for the repository server.
type TufPackage struct {
	Name     string       `json:"name" validate:"required"`
	Version  string       `json:"version" validate:"required"`
	Format   TargetFormat `json:"format" validate:"target_format"`
	Hardware []string     `json:"hardware" validate:"min=1,dive,required"`
	Target   RepoTarget   `json:"target"`
}

// EntryName is the repository entry a package is stored under.
func (p *TufPackage) EntryName() string {
	return p.Name + "-" + p.Version
}

// NewTufPackage builds and validates a package from its parts.
func NewTufPackage(name, version, format string, hardware []string, target RepoTarget) (*TufPackage, error) {
	f, err := ParseTargetFormat(format)
	if err != nil {
		return nil, err
	}
	p := &TufPackage{
		Name:     name,
		Version:  version,
		Format:   f,
		Hardware: hardware,
		Target:   target,
	}
	if err := Validate(p); err != nil {
		return nil, err
	}
	return p, nil
}

// PackageFromMetadata converts one declarative entry into a TufPackage.
func PackageFromMetadata(name, version string, meta PackageMetadata) (*TufPackage, error) {
	var target RepoTarget
	if meta.Path != nil {
		target.Path = *meta.Path
	}
	if meta.URL != nil {
		target.URL = *meta.URL
	}
	p, err := NewTufPackage(name, version, meta.Format, meta.Hardware, target)
	if err != nil {
		var de *DomainError
		if errors.As(err, &de) {
			return nil, de.WithDetailsf("%s %s: %s", name, version, de.Details)
		}
		return nil, err
	}
	return p, nil
}
