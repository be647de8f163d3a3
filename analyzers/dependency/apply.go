package dependency

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/viant/codeindex/model"
	"github.com/viant/codeindex/sharedcontext"
)

// specifierFromMatch picks "the first non-whitespace capture or the
// first quoted token" (spec §4.5) out of one FindAllSubmatchIndex
// match: loc holds whole-match bounds in loc[0:2] followed by one pair
// per capture group, any of which may be absent (loc[i] == -1) when an
// alternation didn't take that branch.
func specifierFromMatch(content []byte, loc []int) (string, bool) {
	for i := 2; i+1 < len(loc); i += 2 {
		if loc[i] < 0 {
			continue
		}
		s := strings.TrimSpace(string(content[loc[i]:loc[i+1]]))
		if s != "" {
			return s, true
		}
	}
	whole := content[loc[0]:loc[1]]
	if q, ok := firstQuotedToken(whole); ok {
		return q, true
	}
	return "", false
}

// firstQuotedToken is the fallback spec §4.5 names when a pattern's
// captures are all empty (e.g. a bare "export default" with no name):
// the first double-quoted token in the matched text, or failing that the
// first single-quoted one.
func firstQuotedToken(text []byte) (string, bool) {
	for _, q := range []byte{'"', '\''} {
		if start := bytes.IndexByte(text, q); start >= 0 {
			if end := bytes.IndexByte(text[start+1:], q); end >= 0 {
				return string(text[start+1 : start+1+end]), true
			}
		}
	}
	return "", false
}

// lineAt returns the 1-based line number the byte offset falls on,
// derived from the character offset per spec §4.5.
func lineAt(content []byte, offset int) int {
	return bytes.Count(content[:offset], []byte("\n")) + 1
}

// importKey de-duplicates statements that two overlapping patterns
// (e.g. a seed and a generalized pattern matching the same text)
// would otherwise both emit for the identical file/line/specifier.
func importKey(filePath string, line int, specifier string) string {
	return fmt.Sprintf("%s:%d:%s", filePath, line, specifier)
}

// applyImportPatterns runs every registered import pattern (seeds plus
// whatever mineGeneralizedImportPatterns added) over every file in the
// tree, emitting one ImportStatement per distinct match (spec §4.5's
// Application step). An unreadable file is recorded via recordEvent and
// skipped, never aborting the run (spec §4.5's failure semantics).
func applyImportPatterns(ctx context.Context, sc *sharedcontext.Context) []*model.ImportStatement {
	patterns := sc.Model.Patterns.ByType(model.PatternTagImport)
	if len(patterns) == 0 {
		return nil
	}
	tree := sc.Model.FileTree
	seen := make(map[string]bool)
	var out []*model.ImportStatement

	for _, filePath := range tree.OrderedFilePaths() {
		content, err := sc.GetFileContent(ctx, filePath)
		if err != nil {
			sc.RecordEvent("file-failed", map[string]interface{}{"path": filePath, "cause": err.Error()})
			continue
		}
		for _, p := range patterns {
			for _, loc := range p.Regex.FindAllSubmatchIndex(content, -1) {
				specifier, ok := specifierFromMatch(content, loc)
				if !ok {
					continue
				}
				start := loc[1] - len(bytes.TrimLeft(content[loc[0]:loc[1]], " \t\r\n"))
				line := lineAt(content, start)
				key := importKey(filePath, line, specifier)
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, &model.ImportStatement{
					SourceFileID:    filePath,
					Line:            line,
					ModuleSpecifier: specifier,
					ImportedSymbols: []string{lastSegment(specifier)},
					Confidence:      p.Confidence,
				})
			}
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].SourceFileID != out[j].SourceFileID {
			return out[i].SourceFileID < out[j].SourceFileID
		}
		if out[i].Line != out[j].Line {
			return out[i].Line < out[j].Line
		}
		return out[i].ModuleSpecifier < out[j].ModuleSpecifier
	})
	return out
}

// applyExportPatterns mirrors applyImportPatterns for the export side
// (spec §4.5: "the same is done for export patterns"), splitting
// matches into named vs. default exports per the matched pattern's
// exportsDefault metadata flag.
func applyExportPatterns(ctx context.Context, sc *sharedcontext.Context) []*model.ExportStatement {
	patterns := sc.Model.Patterns.ByType(model.PatternTagExport)
	if len(patterns) == 0 {
		return nil
	}
	tree := sc.Model.FileTree
	byFileLine := make(map[string]*model.ExportStatement)
	var order []string

	for _, filePath := range tree.OrderedFilePaths() {
		content, err := sc.GetFileContent(ctx, filePath)
		if err != nil {
			sc.RecordEvent("file-failed", map[string]interface{}{"path": filePath, "cause": err.Error()})
			continue
		}
		for _, p := range patterns {
			isDefault, _ := p.Metadata[exportsDefault].(bool)
			for _, loc := range p.Regex.FindAllSubmatchIndex(content, -1) {
				line := lineAt(content, loc[0])
				key := importKey(filePath, line, p.Name)
				stmt, ok := byFileLine[key]
				if !ok {
					stmt = &model.ExportStatement{SourceFileID: filePath, Line: line, Confidence: p.Confidence}
					byFileLine[key] = stmt
					order = append(order, key)
				}
				name, hasName := specifierFromMatch(content, loc)
				switch {
				case isDefault && hasName:
					stmt.DefaultExport = name
				case isDefault:
					stmt.DefaultExport = "default"
				case hasName:
					stmt.NamedExports = append(stmt.NamedExports, name)
				}
			}
		}
	}

	out := make([]*model.ExportStatement, 0, len(order))
	for _, key := range order {
		out = append(out, byFileLine[key])
	}
	return out
}

// lastSegment returns the trailing path/namespace segment of a module
// specifier, used as the lone entry in ImportedSymbols when a pattern's
// capture names the module itself rather than an imported symbol list.
func lastSegment(specifier string) string {
	s := specifier
	for _, sep := range []string{"/", "::", "."} {
		if idx := strings.LastIndex(s, sep); idx >= 0 {
			s = s[idx+len(sep):]
		}
	}
	return s
}
