package dependency

import (
	"context"
	"regexp"
	"sort"
	"strings"

	"github.com/viant/codeindex/model"
	"github.com/viant/codeindex/sharedcontext"
)

// minGeneralizeFrequency is how many distinct sampled files a candidate
// keyword must appear in before it is promoted into a registered
// pattern (spec §4.5: "generalizes high-frequency matches").
const minGeneralizeFrequency = 2

// knownImportKeywords are the leading tokens the curated seeds already
// cover; a keyword outside this set appearing repeatedly in the sample
// is evidence of a project- or ecosystem-specific import form the seeds
// missed.
var knownImportKeywords = map[string]bool{
	"import": true, "require": true, "require_relative": true,
	"from": true, "use": true, "include": true,
}

// candidateKeywordRe looks for "keyword(-ish token) followed eventually
// by a quoted specifier" — the shape every import statement shares
// regardless of ecosystem — without assuming any one language's exact
// grammar.
var candidateKeywordRe = regexp.MustCompile(`\b([a-zA-Z_][a-zA-Z0-9_]*)\b\s*\(?\s*["']([\w./:@\-]{2,})["']`)

// mineGeneralizedImportPatterns scans the sampled files for leading
// keywords not already covered by seedImportPatterns and, for any
// keyword recurring across at least minGeneralizeFrequency distinct
// files, synthesizes a new wildcarded Pattern and registers it (spec
// §4.5: "generalizes high-frequency matches into new patterns by
// replacing concrete paths and identifiers with capture wildcards").
// Registration is idempotent (model.PatternRegistry.Register de-dupes
// by Type+Name+regex source), so re-running discovery on an unchanged
// sample never grows the registry.
func mineGeneralizedImportPatterns(ctx context.Context, sc *sharedcontext.Context, samplePaths []string) {
	seenFiles := make(map[string]map[string]bool)
	for _, p := range samplePaths {
		content, err := sc.GetFileContent(ctx, p)
		if err != nil {
			sc.RecordEvent("file-failed", map[string]interface{}{"path": p, "cause": err.Error()})
			continue
		}
		for _, m := range candidateKeywordRe.FindAllStringSubmatch(string(content), -1) {
			keyword := strings.ToLower(m[1])
			if knownImportKeywords[keyword] {
				continue
			}
			files, ok := seenFiles[keyword]
			if !ok {
				files = make(map[string]bool)
				seenFiles[keyword] = files
			}
			files[p] = true
		}
	}

	var keywords []string
	for k := range seenFiles {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)

	for _, keyword := range keywords {
		if len(seenFiles[keyword]) < minGeneralizeFrequency {
			continue
		}
		sc.RegisterPattern(&model.Pattern{
			Type:       model.PatternTagImport,
			Name:       "generalized:" + keyword,
			Confidence: 0.5,
			Regex:      regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b\s*\(?\s*["']([\w./:@\-]+)["']`),
			Metadata:   map[string]interface{}{"generalized": true},
		})
	}
}
