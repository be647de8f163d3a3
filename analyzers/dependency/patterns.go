package dependency

import (
	"regexp"

	"github.com/viant/codeindex/model"
)

// exportsDefault is the Pattern.Metadata key distinguishing a
// default-export pattern from a named-export one (spec §3's
// ExportStatement carries both named exports and a single default
// export, so the apply step needs to know which bucket a match feeds).
const exportsDefault = "exportsDefault"

// seedImportPatterns are the curated bootstrap regexes spec §4.5
// requires: "a curated list of regexes for common import forms across
// several source ecosystems", none of them privileged. Each regex
// carries exactly one capture group for the module specifier. Grounded
// on the teacher's per-language inspector split (inspector/golang,
// inspector/java, inspector/jsx): one seed per ecosystem that split
// covers, plus Python/Ruby/Rust/C siblings from the rest of the
// retrieval pack's corpus.
func seedImportPatterns() []*model.Pattern {
	return []*model.Pattern{
		{Type: model.PatternTagImport, Name: "go-quoted-import-line", Confidence: 0.85,
			Regex: regexp.MustCompile(`(?m)^\s*(?:[_a-zA-Z][\w.]*\s+)?"([\w./\-]+(?:/[\w.\-]+)*)"\s*$`)},
		{Type: model.PatternTagImport, Name: "js-import-from", Confidence: 0.8,
			Regex: regexp.MustCompile(`\bimport\b[^'"\n]{0,80}\bfrom\s+["']([^"']+)["']`)},
		{Type: model.PatternTagImport, Name: "js-bare-import", Confidence: 0.7,
			Regex: regexp.MustCompile(`\bimport\s+["']([^"']+)["']\s*;?`)},
		{Type: model.PatternTagImport, Name: "js-require-call", Confidence: 0.8,
			Regex: regexp.MustCompile(`\brequire\(\s*["']([^"']+)["']\s*\)`)},
		{Type: model.PatternTagImport, Name: "python-from-import", Confidence: 0.8,
			Regex: regexp.MustCompile(`(?m)^\s*from\s+([\w.]+)\s+import\b`)},
		{Type: model.PatternTagImport, Name: "python-import", Confidence: 0.75,
			Regex: regexp.MustCompile(`(?m)^\s*import\s+([\w.]+)`)},
		{Type: model.PatternTagImport, Name: "java-import", Confidence: 0.85,
			Regex: regexp.MustCompile(`\bimport\s+(?:static\s+)?([\w.]+)\s*;`)},
		{Type: model.PatternTagImport, Name: "ruby-require", Confidence: 0.8,
			Regex: regexp.MustCompile(`\brequire(?:_relative)?\s+["']([^"']+)["']`)},
		{Type: model.PatternTagImport, Name: "rust-use", Confidence: 0.75,
			Regex: regexp.MustCompile(`(?m)^\s*use\s+([\w:]+)`)},
		{Type: model.PatternTagImport, Name: "c-include", Confidence: 0.85,
			Regex: regexp.MustCompile(`(?m)^\s*#include\s*[<"]([^>"]+)[>"]`)},
	}
}

// seedExportPatterns are the export-side counterpart of
// seedImportPatterns (spec §4.5: "the same is done for export
// patterns").
func seedExportPatterns() []*model.Pattern {
	return []*model.Pattern{
		{Type: model.PatternTagExport, Name: "js-export-default", Confidence: 0.8,
			Regex:    regexp.MustCompile(`\bexport\s+default\s+(?:function|class)?\s*([A-Za-z_$][\w$]*)?`),
			Metadata: map[string]interface{}{exportsDefault: true}},
		{Type: model.PatternTagExport, Name: "js-export-named", Confidence: 0.8,
			Regex: regexp.MustCompile(`\bexport\s+(?:const|function|class|let|var)\s+([A-Za-z_$][\w$]*)`)},
		{Type: model.PatternTagExport, Name: "js-module-exports", Confidence: 0.7,
			Regex:    regexp.MustCompile(`\bmodule\.exports(?:\.([A-Za-z_$][\w$]*))?\s*=`),
			Metadata: map[string]interface{}{exportsDefault: true}},
		{Type: model.PatternTagExport, Name: "go-exported-func", Confidence: 0.75,
			Regex: regexp.MustCompile(`(?m)^func\s+(?:\([^)]*\)\s*)?([A-Z]\w*)\s*\(`)},
		{Type: model.PatternTagExport, Name: "go-exported-type", Confidence: 0.75,
			Regex: regexp.MustCompile(`(?m)^type\s+([A-Z]\w*)\b`)},
	}
}
