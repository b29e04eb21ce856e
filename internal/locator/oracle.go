package locator

import (
	"fmt"
	"sync"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
	"go.uber.org/zap"

	"github.com/mj1618/mobile-locator/internal/model"
)

// DefaultMemoLimit bounds the number of memoized query results per snapshot.
const DefaultMemoLimit = 1000

// Oracle answers "does this query select exactly one node" for a single
// snapshot. Results are memoized per query string; an Oracle must never be
// reused for another tree.
type Oracle struct {
	doc   *model.Node
	log   *zap.Logger
	limit int

	mu   sync.Mutex
	memo map[string]bool
}

// NewOracle creates an oracle bound to tree.
func NewOracle(tree *model.Tree, log *zap.Logger) *Oracle {
	if log == nil {
		log = zap.NewNop()
	}
	return &Oracle{
		doc:   tree.Document(),
		log:   log,
		limit: DefaultMemoLimit,
		memo:  make(map[string]bool),
	}
}

// IsUnique reports whether query selects exactly one node. Queries that fail
// to compile or evaluate are reported as not unique.
func (o *Oracle) IsUnique(query string) bool {
	o.mu.Lock()
	if v, ok := o.memo[query]; ok {
		o.mu.Unlock()
		return v
	}
	o.mu.Unlock()

	n, err := o.count(query, 2)
	unique := err == nil && n == 1
	if err != nil {
		o.log.Debug("xpath evaluation failed", zap.String("query", query), zap.Error(err))
	}

	o.mu.Lock()
	if len(o.memo) < o.limit {
		o.memo[query] = unique
	}
	o.mu.Unlock()
	return unique
}

// Count returns the number of distinct nodes query selects.
func (o *Oracle) Count(query string) (int, error) {
	return o.count(query, 0)
}

// MemoSize returns the number of memoized queries.
func (o *Oracle) MemoSize() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.memo)
}

// count evaluates query and stops once max distinct nodes are seen (0 = no limit).
func (o *Oracle) count(query string, max int) (n int, err error) {
	expr, err := xpath.Compile(query)
	if err != nil {
		return 0, err
	}
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, fmt.Errorf("evaluate %q: %v", query, r)
		}
	}()

	seen := make(map[*model.Node]struct{})
	iter := expr.Select(xmlquery.CreateXPathNavigator(o.doc))
	for iter.MoveNext() {
		nav, ok := iter.Current().(*xmlquery.NodeNavigator)
		if !ok {
			continue
		}
		seen[nav.Current()] = struct{}{}
		if max > 0 && len(seen) >= max {
			break
		}
	}
	return len(seen), nil
}

// Select returns the distinct nodes query selects, in evaluation order.
func (o *Oracle) Select(query string) ([]*model.Node, error) {
	return xmlquery.QueryAll(o.doc, query)
}
