package aspen

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// logger is the package-level structured logger. Debug-mode warnings and
// frame stats go through it; nothing is logged when debug mode is off.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: "aspen",
})

// SetLogger replaces the package logger. Pass nil to restore the default.
func SetLogger(l *log.Logger) {
	if l == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "aspen"})
		return
	}
	logger = l
}

// setDebugLogging raises or restores the logger's level so frame stats are
// visible exactly when debug mode is on.
func setDebugLogging(enabled bool) {
	if enabled {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.InfoLevel)
	}
}

// debugLogFrame logs per-generation command stats. Only called in debug mode.
func debugLogFrame(commandCount int) {
	logger.Debug("draw commands generated", "count", commandCount)
}

// debugCheckDisposed panics with a descriptive message when a disposed node
// is used in a tree operation. Only called when debug mode is on; in release
// mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("aspen debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.Warn("tree depth exceeds threshold", "depth", depth, "max", debugMaxTreeDepth, "node", n.Name)
	}
}

// debugCheckChildCount warns if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		logger.Warn("node child count exceeds threshold", "children", len(n.children), "max", debugMaxChildCount, "node", n.Name)
	}
}
