package dependency

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/codeindex/fsadapter"
	"github.com/viant/codeindex/model"
	"github.com/viant/codeindex/sharedcontext"
)

const sampleGoMod = `module github.com/example/widgets

go 1.23

require (
	github.com/pkg/errors v0.9.1
	github.com/stretchr/testify v1.10.0
)
`

const sampleGoFile = `package widgets

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/example/widgets/internal/util"
)

func Run() error {
	return errors.Wrap(fmt.Errorf("x"), util.Name())
}
`

func newTestContext(files map[string]string) (*sharedcontext.Context, *model.Model) {
	fs := fsadapter.NewMemoryFS()
	m := model.New("/r", model.DefaultOptions())
	root := &model.Directory{Path: "/r", Name: "r"}
	for p, content := range files {
		fs.Put(p, []byte(content))
		if p == "/r/go.mod" {
			continue
		}
		m.FileTree.AddFile(&model.File{Path: p, Name: p, Extension: "", Size: int64(len(content))})
		root.Children = append(root.Children, p)
	}
	m.FileTree.AddDirectory(root)
	return sharedcontext.New(fs, m), m
}

func TestRunDiscoversManifestAndImports(t *testing.T) {
	sc, m := newTestContext(map[string]string{
		"/r/go.mod":  sampleGoMod,
		"/r/main.go": sampleGoFile,
	})

	err := New("/r/go.mod").Run(context.Background(), sc)
	assert.NoError(t, err)

	pkgErrors, ok := m.Dependencies.Dependencies["github.com/pkg/errors"]
	assert.True(t, ok)
	assert.Equal(t, "v0.9.1", pkgErrors.Version)

	fmtDep, ok := m.Dependencies.Dependencies["fmt"]
	assert.True(t, ok)
	assert.Equal(t, model.CategoryStandardLibrary, fmtDep.Category)

	internal, ok := m.Dependencies.Dependencies["github.com/example/widgets/internal/util"]
	assert.True(t, ok)
	assert.Equal(t, model.CategoryInternalModule, internal.Category)

	var imp *model.ImportStatement
	for _, s := range m.Dependencies.Imports {
		if s.ModuleSpecifier == "github.com/pkg/errors" {
			imp = s
		}
	}
	assert.NotNil(t, imp)
	assert.Equal(t, 6, imp.Line)
}

func TestRunResolvesLocalFileImport(t *testing.T) {
	const entry = `import foo from "./helper"
`
	const helper = `export default function helper() {}
`
	sc, m := newTestContext(map[string]string{
		"/r/entry.js":  entry,
		"/r/helper.js": helper,
	})

	err := New("/r/go.mod").Run(context.Background(), sc)
	assert.NoError(t, err)

	var imp *model.ImportStatement
	for _, s := range m.Dependencies.Imports {
		if s.ModuleSpecifier == "./helper" {
			imp = s
		}
	}
	assert.NotNil(t, imp)
	assert.Equal(t, model.CategoryLocalFile, imp.Category)
	assert.Equal(t, "/r/helper.js", imp.ResolvedPath)

	var exp *model.ExportStatement
	for _, e := range m.Dependencies.Exports {
		if e.SourceFileID == "/r/helper.js" {
			exp = e
		}
	}
	assert.NotNil(t, exp)
	assert.Equal(t, "helper", exp.DefaultExport)
}

func TestRunUnresolvedLocalFileLeavesResolvedPathEmpty(t *testing.T) {
	const entry = `import foo from "./missing"
`
	sc, m := newTestContext(map[string]string{
		"/r/entry.js": entry,
	})

	err := New("/r/go.mod").Run(context.Background(), sc)
	assert.NoError(t, err)

	var imp *model.ImportStatement
	for _, s := range m.Dependencies.Imports {
		if s.ModuleSpecifier == "./missing" {
			imp = s
		}
	}
	assert.NotNil(t, imp)
	assert.Equal(t, model.CategoryLocalFile, imp.Category)
	assert.Equal(t, "", imp.ResolvedPath)
}

func TestCategorizeCascadeOrdersLocalFileBeforeManifest(t *testing.T) {
	manifest := map[string]ManifestDependency{
		"./widgets": {Path: "./widgets", Version: "v1.0.0"},
	}
	category, version := categorize("./widgets", map[string]bool{}, manifest)
	assert.Equal(t, model.CategoryLocalFile, category)
	assert.Equal(t, "", version)
}

func TestCategorizeManifestExternalPackage(t *testing.T) {
	manifest := map[string]ManifestDependency{
		"github.com/pkg/errors": {Path: "github.com/pkg/errors", Version: "v0.9.1"},
	}
	category, version := categorize("github.com/pkg/errors", map[string]bool{}, manifest)
	assert.Equal(t, model.CategoryExternalPackage, category)
	assert.Equal(t, "v0.9.1", version)
}
