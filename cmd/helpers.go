package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mj1618/mobile-locator/internal/analyzer"
	"github.com/mj1618/mobile-locator/internal/cache"
	"github.com/mj1618/mobile-locator/internal/model"
	"github.com/mj1618/mobile-locator/internal/output"
	"github.com/mj1618/mobile-locator/internal/platform"
	"github.com/mj1618/mobile-locator/internal/scan"
)

// newProvider connects to the configured device backend.
func newProvider() (*platform.Provider, error) {
	return platform.NewProvider(cfg.Backend, platform.Options{
		Platform:     cfg.PlatformValue(),
		Dir:          cfg.FixtureDir,
		URL:          cfg.Appium.URL,
		Session:      cfg.Appium.Session,
		Capabilities: cfg.Appium.Capabilities,
		Settle:       cfg.Appium.Settle,
		Logger:       log,
	})
}

// newService wraps the configured backend with a scan cache.
func newService() (*scan.Service, error) {
	provider, err := newProvider()
	if err != nil {
		return nil, err
	}
	c := cache.New(cache.Options{TTL: cfg.Cache.TTL, MaxBytes: cfg.Cache.MaxBytes, Logger: log})
	return scan.New(provider, c, scan.Options{
		Optimize: cfg.Image.Optimize,
		Quality:  cfg.Image.Quality,
	}, log), nil
}

// readSource reads a tree source from path, or stdin for "" and "-".
func readSource(cmd *cobra.Command, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}

// addAnalysisFlags registers the flags shared by commands that analyze a tree.
func addAnalysisFlags(cmd *cobra.Command) {
	cmd.Flags().String("prefix", "", "Page name for variable names (default: estimated from the header)")
	cmd.Flags().Bool("verify", false, "Report whether each locator matches exactly one node")
}

func getAnalysisFlags(cmd *cobra.Command) (prefix string, verify bool) {
	prefix, _ = cmd.Flags().GetString("prefix")
	verify, _ = cmd.Flags().GetBool("verify")
	return prefix, verify
}

// offlineOptions builds analyzer options for a tree read from a file.
func offlineOptions(cmd *cobra.Command) (analyzer.Options, error) {
	prefix, verify := getAnalysisFlags(cmd)
	opts := analyzer.Options{
		Platform: cfg.PlatformValue(),
		Verify:   verify,
		Prefix:   prefix,
		Logger:   log,
	}
	if w, _ := cmd.Flags().GetString("window"); w != "" {
		size, err := platform.ParseSize(w)
		if err != nil {
			return opts, err
		}
		opts.Window = size
	}
	return opts, nil
}

// parseXY parses two integer arguments.
func parseXY(args []string) (int, int, error) {
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid x %q", args[0])
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid y %q", args[1])
	}
	return x, y, nil
}

// imageSizeFlag reads --image WIDTHxHEIGHT; empty means device coordinates.
func imageSizeFlag(cmd *cobra.Command) (model.Size, error) {
	v, _ := cmd.Flags().GetString("image")
	if v == "" {
		return model.Size{}, nil
	}
	return platform.ParseSize(v)
}

func printAction(action, detail string) error {
	return output.Print(actionResult{OK: true, Action: action, Detail: detail})
}
