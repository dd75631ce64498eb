package command

import (
	"context"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/ota-go/internal/cli/api"
	"github.com/yndnr/ota-go/internal/cli/output"
	"github.com/yndnr/ota-go/internal/core/domain"
	"github.com/yndnr/ota-go/internal/core/service"
)

func packageLeaf(op domain.PackageOp) leaf {
	switch op {
	case domain.PackageList:
		return leaf{"List packages in the repository", nil}
	case domain.PackageAdd:
		return leaf{"Add a package from a file or a URL", []cli.Flag{
			stringFlag("name", "Package name", true),
			stringFlag("version", "Package version", true),
			&cli.StringFlag{Name: "format", Usage: "Package format: binary, ostree", Value: string(domain.FormatBinary)},
			&cli.StringSliceFlag{Name: "hardware", Usage: "Hardware IDs the package applies to", Required: true},
			stringFlag("path", "Upload the package from this file", false),
			stringFlag("url", "Reference the package at this URL", false),
		}}
	case domain.PackageFetch:
		return leaf{"Download a package", []cli.Flag{
			stringFlag("name", "Package name", true),
			stringFlag("version", "Package version", true),
		}}
	case domain.PackageUpload:
		return leaf{"Add every package of a TOML, YAML or JSON file", []cli.Flag{
			stringFlag("packages", "Package metadata file", true),
		}}
	}
	return leaf{}
}

func runPackage(ctx context.Context, c *cli.Context, e *env, op domain.PackageOp) (output.Result, error) {
	reposerver := e.reposerver()

	switch op {
	case domain.PackageList:
		return reposerver.ListPackages(ctx)

	case domain.PackageAdd:
		path, uri := c.String("path"), c.String("url")
		if err := exactlyOne("path", path != "", "url", uri != ""); err != nil {
			return nil, err
		}
		pkg, err := domain.NewTufPackage(c.String("name"), c.String("version"), c.String("format"),
			c.StringSlice("hardware"), domain.RepoTarget{Path: path, URL: uri})
		if err != nil {
			return nil, err
		}
		return reposerver.AddPackage(ctx, *pkg)

	case domain.PackageFetch:
		return reposerver.FetchPackage(ctx, c.String("name"), c.String("version"))

	case domain.PackageUpload:
		targets, err := service.LoadTargetPackages(c.String("packages"))
		if err != nil {
			return nil, err
		}
		pkgs, err := service.ExpandPackages(targets)
		if err != nil {
			return nil, err
		}

		var step api.Stepper
		if p := e.progress("uploading", len(pkgs)); p != nil {
			step = p
			defer p.Finish()
		}
		return reposerver.AddPackages(ctx, pkgs, step)
	}
	return nil, unsupported(op)
}
