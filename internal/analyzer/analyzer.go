// Package analyzer turns a UI-tree snapshot into named, strategy-tagged
// locators for every element worth interacting with.
package analyzer

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/mj1618/mobile-locator/internal/locator"
	"github.com/mj1618/mobile-locator/internal/model"
)

// Options controls one analysis.
type Options struct {
	Platform model.Platform
	// Verify re-checks every emitted locator against the snapshot and
	// records the outcome. It does not change which strategy is chosen.
	Verify bool
	// Prefix names the page. Empty, "page" and "login" ask for an estimate.
	Prefix     string
	Window     model.Size
	Thresholds *model.Thresholds
	Logger     *zap.Logger
}

func (o Options) thresholds() model.Thresholds {
	if o.Thresholds != nil {
		return *o.Thresholds
	}
	return model.DefaultThresholds()
}

func (o Options) logger() *zap.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return zap.NewNop()
}

// Element is one located element of a page.
type Element struct {
	Bounds       model.Bounds     `yaml:"bounds"              json:"bounds"`
	VariableName string           `yaml:"variable_name"       json:"variable_name"`
	Locator      string           `yaml:"locator"             json:"locator"`
	Strategy     locator.Strategy `yaml:"strategy"            json:"strategy"`
	DisplayText  string           `yaml:"display_text,omitempty" json:"display_text,omitempty"`
	Type         string           `yaml:"type"                json:"type"`
	DebugPath    string           `yaml:"debug_path"          json:"debug_path"`
	Verified     *bool            `yaml:"verified,omitempty"  json:"verified,omitempty"`
}

// Result is the outcome of analyzing one snapshot. Zero elements is a valid
// result.
type Result struct {
	PageName string    `yaml:"page_name" json:"page_name"`
	Platform string    `yaml:"platform"  json:"platform"`
	Elements []Element `yaml:"elements"  json:"elements"`
}

// session holds the per-snapshot state of one call.
type session struct {
	tree  *model.Tree
	opts  Options
	log   *zap.Logger
	synth *locator.Synthesizer
	page  string
	names map[string]int
}

func newSession(source string, opts Options) (*session, error) {
	tree, err := model.ParseTree(source)
	if err != nil {
		return nil, err
	}
	log := opts.logger()
	s := &session{
		tree:  tree,
		opts:  opts,
		log:   log,
		synth: locator.NewSynthesizer(tree, opts.Platform, locator.NewOracle(tree, log)),
		names: make(map[string]int),
	}
	s.page = ResolvePageName(tree, opts.Platform, opts.Prefix, opts.Window)
	return s, nil
}

// Analyze runs the element pipeline over source. Only unparsable input is an
// error.
func Analyze(source string, opts Options) (*Result, error) {
	s, err := newSession(source, opts)
	if err != nil {
		return nil, err
	}
	th := opts.thresholds()
	windowArea := opts.Window.Area()

	res := &Result{PageName: s.page, Platform: string(opts.Platform), Elements: []Element{}}
	var dropped, unresolved int
	for _, n := range s.tree.Nodes() {
		b, ok := model.NodeBounds(n, opts.Platform)
		if ok && model.CoversScreen(b, windowArea, th.MaxScreenRatio) {
			dropped++
			continue
		}
		info := model.Normalize(n, opts.Platform)
		if !th.Keep(b, ok, info, opts.Platform) {
			dropped++
			continue
		}
		el := s.element(n, b, info)
		if el == nil {
			unresolved++
			continue
		}
		res.Elements = append(res.Elements, *el)
	}

	s.log.Info("analysis complete",
		zap.String("page", s.page),
		zap.Int("nodes", s.tree.Len()),
		zap.Int("elements", len(res.Elements)),
		zap.Int("filtered", dropped),
		zap.Int("unresolved", unresolved),
	)
	return res, nil
}

// element synthesizes the locator and variable name for n, or returns nil
// when no strategy applies.
func (s *session) element(n *model.Node, b model.Bounds, info model.ElementInfo) *Element {
	r := s.synth.Synthesize(n, info)
	if r == nil && info.IsInput() {
		r = locator.PositionalFallback(s.tree, n)
	}
	if r == nil {
		return nil
	}
	suffix := model.TypeSuffix(info.TypeName, info.ResourceID, info.IsPassword)
	el := &Element{
		Bounds:       b,
		VariableName: s.uniqueName(model.VariableName(s.page, r.NameHint, suffix)),
		Locator:      r.String(),
		Strategy:     r.Strategy,
		DisplayText:  info.DisplayText(),
		Type:         info.TypeName,
		DebugPath:    locator.DebugPath(n),
	}
	if s.opts.Verify {
		v, err := locator.Verify(s.synth.Oracle(), el.Locator, s.opts.Platform)
		valid := err == nil && v.Valid
		el.Verified = &valid
		if !valid {
			s.log.Debug("locator not unique in snapshot", zap.String("locator", el.Locator), zap.Int("count", v.Count))
		}
	}
	return el
}

// uniqueName numbers repeated variable names: the second "${x}" becomes "${x_2}".
func (s *session) uniqueName(name string) string {
	s.names[name]++
	if c := s.names[name]; c > 1 {
		return fmt.Sprintf("%s_%d}", strings.TrimSuffix(name, "}"), c)
	}
	return name
}

// FindElementAt resolves the topmost element at (x, y) and synthesizes its
// locator. It returns nil, nil when the point hits nothing. The element is
// returned even when no locator strategy applies; its Locator is then empty.
func FindElementAt(source string, x, y int, opts Options) (*Element, error) {
	s, err := newSession(source, opts)
	if err != nil {
		return nil, err
	}
	n := locator.FindElementAt(s.tree, x, y, opts.Platform)
	if n == nil {
		return nil, nil
	}
	b, _ := model.NodeBounds(n, opts.Platform)
	info := model.Normalize(n, opts.Platform)
	if el := s.element(n, b, info); el != nil {
		return el, nil
	}
	return &Element{
		Bounds:      b,
		DisplayText: info.DisplayText(),
		Type:        info.TypeName,
		DebugPath:   locator.DebugPath(n),
	}, nil
}
