package server

import "github.com/mark3labs/mcp-go/mcp"

func (s *Server) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("scan",
			mcp.WithDescription("Capture the device screen and UI tree and return a unique locator for every meaningful element. An unchanged tree reuses the cached screenshot."),
			mcp.WithString("prefix", mcp.Description("Page name used in variable names; empty estimates it from the header")),
			mcp.WithBoolean("verify", mcp.Description("Count each locator's matches in the tree and report it as verified")),
			mcp.WithBoolean("screenshot", mcp.Description("Attach the screenshot")),
			mcp.WithBoolean("annotate", mcp.Description("Draw element rectangles and variable names on the attached screenshot")),
		),
		s.handleScan,
	)

	s.mcp.AddTool(
		mcp.NewTool("analyze",
			mcp.WithDescription("Generate locators for a UI tree source (Appium page source XML) without touching the device"),
			mcp.WithString("source", mcp.Description("UI tree XML"), mcp.Required()),
			mcp.WithString("platform", mcp.Description("ANDROID or IOS (default: the device platform)")),
			mcp.WithString("prefix", mcp.Description("Page name used in variable names")),
			mcp.WithString("window", mcp.Description("Window size as WIDTHxHEIGHT, used for the full-screen filter and page title estimation")),
			mcp.WithBoolean("verify", mcp.Description("Report whether each locator matches exactly one node")),
		),
		s.handleAnalyze,
	)

	s.mcp.AddTool(
		mcp.NewTool("find_element_at",
			mcp.WithDescription("Resolve the element under a point in the last scan and return its locator, without tapping"),
			mcp.WithNumber("x", mcp.Description("X coordinate"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Y coordinate"), mcp.Required()),
			mcp.WithNumber("image_width", mcp.Description("Width of the screenshot the point was taken on (0 = device coordinates)")),
			mcp.WithNumber("image_height", mcp.Description("Height of the screenshot the point was taken on (0 = device coordinates)")),
		),
		s.handleFindElementAt,
	)

	s.mcp.AddTool(
		mcp.NewTool("smart_tap",
			mcp.WithDescription("Tap the element under a screenshot point at its center, or the raw point when no element is hit"),
			mcp.WithNumber("x", mcp.Description("X coordinate"), mcp.Required()),
			mcp.WithNumber("y", mcp.Description("Y coordinate"), mcp.Required()),
			mcp.WithNumber("image_width", mcp.Description("Width of the screenshot the point was taken on (0 = device coordinates)")),
			mcp.WithNumber("image_height", mcp.Description("Height of the screenshot the point was taken on (0 = device coordinates)")),
		),
		s.handleSmartTap,
	)

	s.mcp.AddTool(
		mcp.NewTool("verify_locator",
			mcp.WithDescription("Count how many nodes a locator (id=..., accessibility_id=..., xpath=...) selects in the last scan"),
			mcp.WithString("locator", mcp.Description("Locator in strategy=value form"), mcp.Required()),
		),
		s.handleVerify,
	)

	s.mcp.AddTool(
		mcp.NewTool("scroll",
			mcp.WithDescription("Scroll the screen"),
			mcp.WithString("direction", mcp.Description("up or down"), mcp.Required()),
		),
		s.handleScroll,
	)

	s.mcp.AddTool(
		mcp.NewTool("back",
			mcp.WithDescription("Press the system back action"),
		),
		s.handleBack,
	)

	s.mcp.AddTool(
		mcp.NewTool("hide_keyboard",
			mcp.WithDescription("Dismiss the on-screen keyboard"),
		),
		s.handleHideKeyboard,
	)

	s.mcp.AddTool(
		mcp.NewTool("cache_clear",
			mcp.WithDescription("Drop every cached scan"),
		),
		s.handleCacheClear,
	)
}
