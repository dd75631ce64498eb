package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/yndnr/ota-go/internal/cli/connection"
	"github.com/yndnr/ota-go/internal/cli/output"
	"github.com/yndnr/ota-go/internal/core/domain"
	"github.com/yndnr/ota-go/internal/telemetry/logger"
	"github.com/yndnr/ota-go/internal/telemetry/metric"
)

var packageColumns = []output.Column{
	{Header: "ENTRY", Key: true},
	{Header: "NAME", Path: "custom.name"},
	{Header: "VERSION", Path: "custom.version"},
	{Header: "HARDWARE IDS", Path: "custom.hardwareIds"},
	{Header: "URI", Path: "custom.uri"},
	{Header: "FORMAT", Path: "custom.targetFormat"},
	{Header: "UPDATED AT", Path: "custom.updatedAt"},
}

// Stepper is told about each package of a batch before it is sent.
type Stepper interface {
	Step(name string)
}

// Reposerver manages packages in the TUF repository.
type Reposerver struct {
	doer    Doer
	metrics *metric.Registry
}

// NewReposerver creates the repository binding. metrics may be nil.
func NewReposerver(doer Doer, metrics *metric.Registry) *Reposerver {
	return &Reposerver{doer: doer, metrics: metrics}
}

func targetPath(entry string) string {
	return V1 + "user_repo/targets/" + url.PathEscape(entry)
}

// AddPackage uploads one package, from disk or by reference to a URL.
func (r *Reposerver) AddPackage(ctx context.Context, pkg domain.TufPackage) (output.Result, error) {
	entry := pkg.EntryName()
	logger.L(ctx).Debug("adding package", "entry", entry)

	target := pkg.Target
	resp, err := r.doer.Do(ctx, domain.ServiceReposerver, connection.Request{
		Method: http.MethodPut,
		Path:   targetPath(entry),
		Query: url.Values{
			"name":         {pkg.Name},
			"version":      {pkg.Version},
			"hardwareIds":  {strings.Join(pkg.Hardware, ",")},
			"targetFormat": {pkg.Format.Wire()},
		},
		Upload: &target,
	})
	if err != nil {
		return nil, err
	}
	return rawResult(resp), nil
}

// AddPackages uploads packages one after another and returns the last
// result. The batch stops at the first package that fails, either in
// transport or with an error status, and returns that failure.
func (r *Reposerver) AddPackages(ctx context.Context, pkgs []domain.TufPackage, progress Stepper) (output.Result, error) {
	if len(pkgs) == 0 {
		return nil, domain.ErrArgs.WithDetails("no packages to upload")
	}

	var last output.Result
	for _, pkg := range pkgs {
		if progress != nil {
			progress.Step(pkg.EntryName())
		}
		res, err := r.AddPackage(ctx, pkg)
		if err != nil {
			r.count("error")
			return nil, err
		}
		if output.StatusError(res) != nil {
			r.count("failed")
			logger.L(ctx).Warn("package upload rejected, stopping batch", "entry", pkg.EntryName())
			return res, nil
		}
		r.count("ok")
		last = res
	}
	return last, nil
}

func (r *Reposerver) count(result string) {
	if r.metrics != nil {
		r.metrics.PackagesUpload.WithLabelValues(result).Inc()
	}
}

// FetchPackage downloads the target stored under name-version.
func (r *Reposerver) FetchPackage(ctx context.Context, name, version string) (output.Result, error) {
	entry := name + "-" + version
	logger.L(ctx).Debug("fetching package", "entry", entry)

	resp, err := r.doer.Do(ctx, domain.ServiceReposerver, connection.Request{
		Method: http.MethodGet,
		Path:   targetPath(entry),
	})
	if err != nil {
		return nil, err
	}
	return rawResult(resp), nil
}

// ListPackages returns the signed targets metadata with a package table.
func (r *Reposerver) ListPackages(ctx context.Context) (output.Result, error) {
	resp, err := r.doer.Do(ctx, domain.ServiceReposerver, connection.Request{
		Method: http.MethodGet,
		Path:   V1 + "user_repo/targets.json",
	})
	if err != nil {
		return nil, err
	}
	return tableResult(resp, "signed.targets", packageColumns...), nil
}
