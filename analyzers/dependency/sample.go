package dependency

import (
	"math"
	"sort"

	"github.com/viant/codeindex/model"
)

// maxSampleBytes is the per-file size cap spec §4.5 sets for pattern
// discovery ("skip files >1 MiB"); large generated or vendored files
// would otherwise dominate sample time for no extra signal.
const maxSampleBytes = 1 << 20

// maxSampleFiles is the overall sample cap spec §4.5 sets ("capped at
// ~50 files overall").
const maxSampleFiles = 50

// stratifiedSample picks a representative subset of the tree's files
// for pattern discovery, grouped by extension so a repo dominated by
// one language doesn't starve the sample of the others (spec §4.5:
// "stratified by extension"). Within each extension group it takes the
// larger of 3 files or 10% of the group, skipping oversized files, then
// interleaves groups round-robin (in sorted-extension order) so the
// overall cap falls evenly across ecosystems rather than favoring
// whichever extension sorts first.
func stratifiedSample(tree *model.FileTree) []string {
	byExt := make(map[string][]string)
	for _, p := range tree.OrderedFilePaths() {
		f := tree.Files[p]
		if f.Size > maxSampleBytes {
			continue
		}
		byExt[f.Extension] = append(byExt[f.Extension], p)
	}

	var exts []string
	for ext := range byExt {
		exts = append(exts, ext)
	}
	sort.Strings(exts)

	quotas := make(map[string][]string, len(exts))
	maxQuota := 0
	for _, ext := range exts {
		group := byExt[ext]
		quota := int(math.Ceil(float64(len(group)) * 0.1))
		if quota < 3 {
			quota = 3
		}
		if quota > len(group) {
			quota = len(group)
		}
		quotas[ext] = group[:quota]
		if quota > maxQuota {
			maxQuota = quota
		}
	}

	var sample []string
	for i := 0; i < maxQuota && len(sample) < maxSampleFiles; i++ {
		for _, ext := range exts {
			if i >= len(quotas[ext]) {
				continue
			}
			sample = append(sample, quotas[ext][i])
			if len(sample) >= maxSampleFiles {
				break
			}
		}
	}
	return sample
}
