// Package alias rewrites module path aliases in emitted JavaScript into relative
// import paths, so the distribution works without an alias-aware resolver.
//
// Every alias configured in compilerOptions.paths becomes a Rule. All rules are
// combined into one pattern and applied in a single pass over the original
// content, so overlapping prefixes cannot rewrite each other's output. Prefixes only
// match at the start of a quoted specifier, so a second run over rewritten files
// changes nothing.
package alias

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"git.home.luguber.info/inful/cosmofactory/internal/config"
	"git.home.luguber.info/inful/cosmofactory/internal/logfields"
	"git.home.luguber.info/inful/cosmofactory/internal/paths"
	"git.home.luguber.info/inful/cosmofactory/internal/tsconfig"
)

// Rule is one alias with the target it resolves to, relative to the output root.
type Rule struct {
	// Pattern is the alias key as configured, e.g. "@/*".
	Pattern string
	// Prefix is the text matched at the start of a specifier, e.g. "@/".
	Prefix string
	// Target is the output-root-relative replacement, e.g. "utils/".
	Target string
	// Exact is set for aliases without a wildcard; they only match a whole specifier.
	// A longer specifier falls through to the longest matching wildcard alias.
	Exact bool
}

// Rewriter rewrites aliases for files below one output root.
type Rewriter struct {
	root      string
	rules     []Rule
	byAlias   map[string]Rule
	wildcards []Rule
	pattern   *regexp.Regexp
}

// New builds a rewriter for the output root from the compiler options. The fallback
// policy picks a target for aliases configured with several candidates.
func New(root string, opts *tsconfig.CompilerOptions, fallback config.AliasFallback) *Rewriter {
	r := &Rewriter{root: root, byAlias: map[string]Rule{}}
	if opts == nil {
		return r
	}
	base := paths.Standardize(opts.BaseURL)
	for _, m := range opts.Paths {
		if len(m.Targets) == 0 {
			slog.Warn("Alias has no targets, skipping", logfields.Alias(m.Pattern))
			continue
		}
		prefix := strings.TrimSuffix(m.Pattern, "*")
		if prefix == "" {
			slog.Warn("Alias matches every specifier, skipping", logfields.Alias(m.Pattern))
			continue
		}
		if _, dup := r.byAlias[prefix]; dup {
			continue
		}
		exact := !strings.HasSuffix(m.Pattern, "*")
		rule := Rule{
			Pattern: m.Pattern,
			Prefix:  prefix,
			Target:  selectTarget(root, base, m.Targets, exact, fallback),
			Exact:   exact,
		}
		r.rules = append(r.rules, rule)
		r.byAlias[prefix] = rule
		if !exact {
			r.wildcards = append(r.wildcards, rule)
		}
		slog.Debug("Alias rule", logfields.Alias(m.Pattern), logfields.Destination(rule.Target))
	}
	sort.SliceStable(r.wildcards, func(i, j int) bool { return len(r.wildcards[i].Prefix) > len(r.wildcards[j].Prefix) })
	r.pattern = combine(r.rules)
	return r
}

// Rules returns the rules in configuration order.
func (r *Rewriter) Rules() []Rule {
	return append([]Rule(nil), r.rules...)
}

// resolveTarget strips everything up to and including the first "src/" and the
// first "*" from base+target.
func resolveTarget(base, target string) string {
	t := base + target
	if i := strings.Index(t, "src/"); i >= 0 {
		t = t[i+len("src/"):]
	}
	t = strings.Replace(t, "*", "", 1)
	return strings.TrimPrefix(t, "./")
}

// selectTarget picks the target template for an alias. Under first-existing, a
// wildcard candidate qualifies when its directory exists below root; an exact
// candidate qualifies when the module itself exists, as emitted (.js), as a file or
// as a directory with an index.js.
func selectTarget(root, base string, targets []string, exact bool, fallback config.AliasFallback) string {
	first := resolveTarget(base, targets[0])
	if fallback != config.AliasFallbackFirstExisting || len(targets) == 1 {
		return first
	}
	for _, candidate := range targets {
		resolved := resolveTarget(base, candidate)
		if targetExists(root, resolved, exact) {
			return resolved
		}
	}
	return first
}

func targetExists(root, resolved string, exact bool) bool {
	full := filepath.Join(root, filepath.FromSlash(resolved))
	if !exact {
		dir := resolved
		if !strings.HasSuffix(dir, "/") {
			dir = path.Dir(dir)
		}
		fi, err := os.Stat(filepath.Join(root, filepath.FromSlash(dir)))
		return err == nil && fi.IsDir()
	}
	for _, candidate := range []string{full + ".js", full, filepath.Join(full, "index.js")} {
		if fi, err := os.Stat(candidate); err == nil && !fi.IsDir() {
			return true
		}
	}
	return false
}

// specifierPattern matches a quoted module specifier starting with one of the
// alias prefixes: the opening delimiter, the prefix, then the rest of the specifier.
const specifierPattern = "([\"'`])(%s)([^\"'`\\s]*)"

func combine(rules []Rule) *regexp.Regexp {
	if len(rules) == 0 {
		return nil
	}
	prefixes := make([]string, 0, len(rules))
	for _, rule := range rules {
		prefixes = append(prefixes, rule.Prefix)
	}
	// Longest first so the most specific alias wins at a given position.
	sort.SliceStable(prefixes, func(i, j int) bool { return len(prefixes[i]) > len(prefixes[j]) })
	quoted := make([]string, len(prefixes))
	for i, p := range prefixes {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(fmt.Sprintf(specifierPattern, strings.Join(quoted, "|")))
}

// Replacement returns the relative path that replaces rule's prefix in a file
// depth levels below the output root.
func Replacement(rule Rule, depth int) string {
	replacement := paths.DepthPrefix(depth) + rule.Target
	if strings.HasPrefix(replacement, "../") {
		return replacement
	}
	return paths.EnsureRelativePrefix(replacement)
}

// RewriteContent rewrites every alias occurrence in content for a file at depth.
func (r *Rewriter) RewriteContent(content string, depth int) string {
	if r.pattern == nil {
		return content
	}
	matches := r.pattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content
	}

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, m := range matches {
		delim := content[m[2]:m[3]]
		specifier := content[m[4]:m[7]]
		rule, ok := r.ruleFor(content[m[4]:m[5]], specifier)
		if !ok {
			continue
		}
		b.WriteString(content[last:m[0]])
		b.WriteString(delim)
		b.WriteString(Replacement(rule, depth))
		b.WriteString(specifier[len(rule.Prefix):])
		last = m[1]
	}
	b.WriteString(content[last:])
	return b.String()
}

// ruleFor returns the rule for a specifier whose longest matching prefix is
// prefix. An exact alias only applies to the whole specifier; otherwise the longest
// wildcard alias the specifier starts with is used.
func (r *Rewriter) ruleFor(prefix, specifier string) (Rule, bool) {
	rule := r.byAlias[prefix]
	if !rule.Exact || specifier == rule.Prefix {
		return rule, true
	}
	for _, w := range r.wildcards {
		if strings.HasPrefix(specifier, w.Prefix) {
			return w, true
		}
	}
	return Rule{}, false
}
