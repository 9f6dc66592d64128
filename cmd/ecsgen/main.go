// Command ecsgen turns a YAML catalog of component, tag and signature names
// into the Go source that registers them with ecs.Settings.
//
//	//go:generate go run github.com/plus3/sigecs/cmd/ecsgen -catalog catalog.yaml -out catalog_gen.go
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
)

func main() {
	catalogPath := flag.String("catalog", "catalog.yaml", "Path to the YAML catalog.")
	out := flag.String("out", "", "Output file. Defaults to the catalog name with a _gen.go suffix.")
	pkg := flag.String("package", "", "Override the package name declared in the catalog.")
	strict := flag.Bool("strict", false, "Fail when a signature lists a member that is not in the catalog.")
	watch := flag.Bool("watch", false, "Regenerate whenever the catalog changes.")
	verbose := flag.Bool("v", false, "Enable debug logging.")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).With("logger", "ecsgen")

	if *out == "" {
		*out = strings.TrimSuffix(*catalogPath, ".yaml") + "_gen.go"
	}

	regenerate := func() error {
		return run(logger, *catalogPath, *out, *pkg, *strict)
	}

	if err := regenerate(); err != nil {
		logger.Error("generation failed", "error", err)
		if !*watch {
			os.Exit(1)
		}
	}

	if *watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := Watch(ctx, *catalogPath, logger, regenerate); err != nil {
			logger.Error("watch failed", "error", err)
			os.Exit(1)
		}
	}
}

func run(logger *slog.Logger, catalogPath, out, pkg string, strict bool) error {
	c, err := LoadCatalog(catalogPath)
	if err != nil {
		return err
	}
	if pkg != "" {
		c.Package = pkg
	}
	if err := c.Validate(strict); err != nil {
		return err
	}
	for _, member := range c.Unregistered() {
		logger.Warn("signature member is not in the catalog and will be ignored when matching", "member", member)
	}

	src, err := Generate(c, catalogPath)
	if err != nil {
		return err
	}
	written, err := WriteIfChanged(out, src)
	if err != nil {
		return err
	}
	logger.Debug("generated", "out", out, "written", written,
		"components", len(c.Components), "tags", len(c.Tags), "signatures", len(c.Signatures))
	return nil
}
