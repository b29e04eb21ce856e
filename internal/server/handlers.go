package server

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/mobile-locator/internal/analyzer"
	"github.com/mj1618/mobile-locator/internal/imaging"
	"github.com/mj1618/mobile-locator/internal/model"
	"github.com/mj1618/mobile-locator/internal/platform"
	"github.com/mj1618/mobile-locator/internal/scan"
)

// resultToText serializes a tool result to YAML for the MCP response.
func resultToText(v interface{}) string {
	b, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Sprintf("error: %v", err)
	}
	return string(b)
}

func (s *Server) toolError(tool string, err error) (*mcp.CallToolResult, error) {
	s.log.Warn("tool failed", zap.String("tool", tool), zap.Error(err))
	return mcp.NewToolResultError(err.Error()), nil
}

// actionResult is returned by tools that only drive the device.
type actionResult struct {
	OK     bool   `yaml:"ok"`
	Action string `yaml:"action"`
	Detail string `yaml:"detail,omitempty"`
}

func (s *Server) handleScan(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	res, err := s.svc.Scan(ctx, scan.Request{
		Verify: boolParam(params, "verify", false),
		Prefix: stringParam(params, "prefix", ""),
	})
	if err != nil {
		return s.toolError("scan", err)
	}

	result := mcp.NewToolResultText(resultToText(res))
	if !boolParam(params, "screenshot", false) && !boolParam(params, "annotate", false) {
		return result, nil
	}

	img := res.Image
	if boolParam(params, "annotate", false) {
		if img, err = res.Annotated(); err != nil {
			return s.toolError("scan", err)
		}
	}
	result.Content = append(result.Content, mcp.ImageContent{
		Type:     "image",
		Data:     base64.StdEncoding.EncodeToString(img),
		MIMEType: imaging.MIMEType(img),
	})
	return result, nil
}

func (s *Server) handleAnalyze(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	source := stringParam(params, "source", "")
	if source == "" {
		return mcp.NewToolResultError("source parameter is required"), nil
	}

	p := s.svc.Platform()
	if v := stringParam(params, "platform", ""); v != "" {
		parsed, err := model.ParsePlatform(v)
		if err != nil {
			return s.toolError("analyze", err)
		}
		p = parsed
	}
	var window model.Size
	if v := stringParam(params, "window", ""); v != "" {
		size, err := platform.ParseSize(v)
		if err != nil {
			return s.toolError("analyze", err)
		}
		window = size
	}

	res, err := analyzer.Analyze(source, analyzer.Options{
		Platform: p,
		Verify:   boolParam(params, "verify", false),
		Prefix:   stringParam(params, "prefix", ""),
		Window:   window,
		Logger:   s.log,
	})
	if err != nil {
		return s.toolError("analyze", err)
	}
	return mcp.NewToolResultText(resultToText(res)), nil
}

func pointArgs(params map[string]interface{}) (x, y int, image model.Size, err error) {
	if err := requireInts(params, "x", "y"); err != nil {
		return 0, 0, model.Size{}, err
	}
	image = model.Size{
		Width:  intParam(params, "image_width", 0),
		Height: intParam(params, "image_height", 0),
	}
	return intParam(params, "x", 0), intParam(params, "y", 0), image, nil
}

func (s *Server) handleFindElementAt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	x, y, image, err := pointArgs(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.svc.ElementAt(ctx, x, y, image)
	if err != nil {
		return s.toolError("find_element_at", err)
	}
	return mcp.NewToolResultText(resultToText(res)), nil
}

func (s *Server) handleSmartTap(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	x, y, image, err := pointArgs(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.svc.SmartTap(ctx, x, y, image)
	if err != nil {
		return s.toolError("smart_tap", err)
	}
	return mcp.NewToolResultText(resultToText(res)), nil
}

func (s *Server) handleVerify(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	loc := stringParam(request.GetArguments(), "locator", "")
	if loc == "" {
		return mcp.NewToolResultError("locator parameter is required"), nil
	}
	v, err := s.svc.Verify(ctx, loc)
	if err != nil {
		return s.toolError("verify_locator", err)
	}
	return mcp.NewToolResultText(resultToText(v)), nil
}

// runAction executes a device-only action and reports it.
func (s *Server) runAction(action, detail string, fn func() error) (*mcp.CallToolResult, error) {
	if err := fn(); err != nil {
		return s.toolError(action, err)
	}
	return mcp.NewToolResultText(resultToText(actionResult{OK: true, Action: action, Detail: detail})), nil
}

func (s *Server) handleScroll(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dir := stringParam(request.GetArguments(), "direction", "")
	return s.runAction("scroll", dir, func() error { return s.svc.Scroll(ctx, dir) })
}

func (s *Server) handleBack(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runAction("back", "", func() error { return s.svc.Back(ctx) })
}

func (s *Server) handleHideKeyboard(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.runAction("hide_keyboard", "", func() error { return s.svc.HideKeyboard(ctx) })
}

func (s *Server) handleCacheClear(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	c := s.svc.Cache()
	dropped := c.Stats().Entries
	c.Clear()
	s.log.Info("scan cache cleared", zap.Int("entries", dropped))
	return mcp.NewToolResultText(resultToText(actionResult{
		OK:     true,
		Action: "cache_clear",
		Detail: fmt.Sprintf("%d entries dropped", dropped),
	})), nil
}
