package log

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// errVmoduleSyntax is returned when a user vmodule pattern is invalid.
var errVmoduleSyntax = errors.New("expect comma-separated list of filename=N")

// GlogHandler filters records the way glog does: a global verbosity ceiling
// that can be raised for individual files or packages through Vmodule.
//
// GlogHandler 模仿 glog 的过滤方式：全局级别上限，可按文件或包通过 Vmodule 单独提升。
type GlogHandler struct {
	origin slog.Handler

	level    atomic.Int32
	override atomic.Bool

	lock      sync.RWMutex
	patterns  []vmodulePattern
	siteCache map[uintptr]slog.Level // callsite -> resolved level
}

type vmodulePattern struct {
	re    *regexp.Regexp
	level slog.Level
}

// NewGlogHandler wraps h with glog style filtering. Until Verbosity is called
// only records at LevelInfo and above pass through.
func NewGlogHandler(h slog.Handler) *GlogHandler {
	g := &GlogHandler{origin: h}
	g.level.Store(int32(slog.LevelInfo))
	return g
}

// Verbosity sets the global verbosity ceiling.
func (h *GlogHandler) Verbosity(level slog.Level) {
	h.level.Store(int32(level))
}

// Vmodule sets per-file verbosity overrides. The argument is a comma
// separated list of pattern=N, where N is a legacy verbosity level.
//
//	"generator.go=5"   all files named generator.go
//	"rng=5"            all files in packages whose path ends in rng
//	"crypto/*=4"       all files below any crypto directory
func (h *GlogHandler) Vmodule(ruleset string) error {
	var filter []vmodulePattern
	for _, rule := range strings.Split(ruleset, ",") {
		if len(rule) == 0 {
			continue
		}
		name, lvl, found := strings.Cut(rule, "=")
		name, lvl = strings.TrimSpace(name), strings.TrimSpace(lvl)
		if !found || name == "" || lvl == "" || strings.Contains(lvl, "=") {
			return errVmoduleSyntax
		}
		l, err := strconv.Atoi(lvl)
		if err != nil {
			return errVmoduleSyntax
		}
		level := FromLegacyLevel(l)
		if level == LevelCrit {
			continue
		}
		matcher := ".*"
		for _, comp := range strings.Split(name, "/") {
			if comp == "*" {
				matcher += "(/.*)?"
			} else if comp != "" {
				matcher += "/" + regexp.QuoteMeta(comp)
			}
		}
		if !strings.HasSuffix(name, ".go") {
			matcher += "/[^/]+\\.go"
		}
		re, err := regexp.Compile(matcher + "$")
		if err != nil {
			return errVmoduleSyntax
		}
		filter = append(filter, vmodulePattern{re, level})
	}
	h.lock.Lock()
	defer h.lock.Unlock()

	h.patterns = filter
	h.siteCache = make(map[uintptr]slog.Level)
	h.override.Store(len(filter) != 0)
	return nil
}

// Enabled implements slog.Handler.
func (h *GlogHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.override.Load() || slog.Level(h.level.Load()) <= lvl
}

// WithAttrs implements slog.Handler.
func (h *GlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.lock.RLock()
	res := &GlogHandler{
		origin:    h.origin.WithAttrs(attrs),
		patterns:  append([]vmodulePattern(nil), h.patterns...),
		siteCache: maps.Clone(h.siteCache),
	}
	h.lock.RUnlock()

	res.level.Store(h.level.Load())
	res.override.Store(h.override.Load())
	return res
}

// WithGroup is not implemented.
func (h *GlogHandler) WithGroup(name string) slog.Handler {
	panic("not implemented")
}

// Handle implements slog.Handler.
func (h *GlogHandler) Handle(ctx context.Context, r slog.Record) error {
	if slog.Level(h.level.Load()) <= r.Level {
		return h.origin.Handle(ctx, r)
	}
	h.lock.RLock()
	lvl, ok := h.siteCache[r.PC]
	h.lock.RUnlock()

	if !ok {
		frame, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()

		h.lock.Lock()
		lvl = LevelCrit + 1 // drop unless a rule matches
		for _, rule := range h.patterns {
			if rule.re.MatchString("+" + frame.File) {
				lvl = rule.level
			}
		}
		if h.siteCache != nil {
			h.siteCache[r.PC] = lvl
		}
		h.lock.Unlock()
	}
	if lvl <= r.Level {
		return h.origin.Handle(ctx, r)
	}
	return nil
}
