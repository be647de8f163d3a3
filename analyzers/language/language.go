// Package language is the language-detector analyzer (spec §4.7, new in
// the expanded spec): it tags every file in the shared model's file
// tree with a language name by extension, grounded directly on the
// teacher's inspector.Factory.GetInspector extension switch
// (inspector/inspector.go), generalized from "supported vs. error" to
// "known vs. unknown" since the core must tolerate languages with no
// registered parser.
package language

import (
	"context"
	"path"
	"strings"

	"github.com/viant/codeindex/sharedcontext"
)

// byExtension maps a lowercased file extension (without the dot) to a
// language tag. Extended well past the teacher's go/java/js/jsx set so
// the language-stats aggregate (spec §3) is meaningful on real repos
// even though only "go" has a registered parser.Parser in this module.
var byExtension = map[string]string{
	"go":    "go",
	"java":  "java",
	"js":    "javascript",
	"jsx":   "javascript",
	"ts":    "typescript",
	"tsx":   "typescript",
	"py":    "python",
	"rb":    "ruby",
	"rs":    "rust",
	"c":     "c",
	"h":     "c",
	"cc":    "cpp",
	"cpp":   "cpp",
	"hpp":   "cpp",
	"cs":    "csharp",
	"kt":    "kotlin",
	"swift": "swift",
	"php":   "php",
	"sql":   "sql",
	"sh":    "shell",
	"yaml":  "yaml",
	"yml":   "yaml",
	"json":  "json",
	"md":    "markdown",
}

// Detect returns the language tag for a file name, or "" if unrecognized.
// Extension-less files (no "." in the base name, e.g. a checked-in
// "Makefile" or "rakefile" or a shebang script) are never looked up here
// — Sniff handles those from content instead (spec §4.7).
func Detect(name string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	return byExtension[ext]
}

// shebangInterpreters maps a shebang line's trailing interpreter token
// to a language tag.
var shebangInterpreters = map[string]string{
	"python": "python", "python3": "python", "python2": "python",
	"ruby": "ruby", "bash": "shell", "sh": "shell", "node": "javascript",
}

// keywordSignatures are content-prefix probes tried, in order, against
// the first non-blank line of an extension-less file once shebang
// sniffing comes up empty (spec §4.7: "a sniff fallback for
// extension-less files using shebang or keyword signatures").
var keywordSignatures = []struct {
	prefix string
	lang   string
}{
	{"package ", "go"},
	{"#include", "c"},
	{"import ", "python"},
	{"require ", "ruby"},
	{"require_relative ", "ruby"},
	{"public class ", "java"},
	{"public final class ", "java"},
}

// Sniff detects a language for a file with no recognized extension by
// inspecting its content: first the shebang line's interpreter, then a
// handful of keyword signatures on the first non-blank line. Returns ""
// if neither yields a match (spec §4.7).
func Sniff(content []byte) string {
	text := string(content)
	if strings.HasPrefix(text, "#!") {
		line := text
		if idx := strings.IndexByte(text, '\n'); idx >= 0 {
			line = text[:idx]
		}
		for token, lang := range shebangInterpreters {
			if strings.Contains(line, token) {
				return lang
			}
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		for _, sig := range keywordSignatures {
			if strings.HasPrefix(line, sig.prefix) {
				return sig.lang
			}
		}
		break
	}
	return ""
}

// Analyzer tags every file in the model's file tree with a language and
// folds file counts/sizes into Model.Languages.
type Analyzer struct{}

// New returns a language-detector analyzer.
func New() *Analyzer { return &Analyzer{} }

func (a *Analyzer) ID() string                 { return "language" }
func (a *Analyzer) Phase() sharedcontext.Phase { return sharedcontext.PhaseInitialization }
func (a *Analyzer) DependsOn() []string        { return nil }
func (a *Analyzer) Priority() int              { return 0 }

// Run tags every file with its detected language and aggregates
// per-language file/byte counts on the shared model (spec §4.7). A file
// whose extension doesn't resolve falls back to content sniffing before
// being left untagged.
func (a *Analyzer) Run(ctx context.Context, sc *sharedcontext.Context) error {
	tree := sc.Model.FileTree
	for _, p := range tree.OrderedFilePaths() {
		file := tree.Files[p]
		lang := Detect(file.Name)
		if lang == "" {
			if content, err := sc.GetFileContent(ctx, p); err == nil {
				lang = Sniff(content)
			}
		}
		if lang == "" {
			continue
		}
		file.Language = lang
		stats := sc.Model.Languages[lang]
		stats.FileCount++
		stats.TotalSize += file.Size
		sc.Model.Languages[lang] = stats
	}
	return nil
}
