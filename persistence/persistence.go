// Package persistence is the model's serialization boundary (spec §1:
// "treated as a pure serialization boundary"; spec §6 names the
// document's top-level keys). It marshals a *model.Model to YAML,
// honoring the teacher's pervasive use of yaml struct tags
// (analyzer/linage/*.go) and the spec's requirement that every map
// collection serialize as an ordered sequence of [key, value] pairs so
// the document's bytes are deterministic across runs (spec §8's
// determinism law) rather than subject to Go's randomized map
// iteration.
package persistence

import (
	"context"
	"os"
	"regexp"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/viant/codeindex/model"
)

// kv is one ordered (key, value) pair, the shape every persisted map
// collection serializes as (spec §6).
type kv[V any] struct {
	Key   string `yaml:"key"`
	Value V      `yaml:"value"`
}

func toKV[V any](m map[string]V) []kv[V] {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]kv[V], 0, len(m))
	for _, k := range keys {
		out = append(out, kv[V]{Key: k, Value: m[k]})
	}
	return out
}

func fromKV[V any](pairs []kv[V]) map[string]V {
	out := make(map[string]V, len(pairs))
	for _, p := range pairs {
		out[p.Key] = p.Value
	}
	return out
}

// document is the on-disk shape. Field order and yaml tags fix the
// top-level key set spec §6 names exactly: fileSystem, languages,
// codeNodes, relationships, patterns, dataFlow, dependencies, concepts,
// semanticUnits, clusters, createdAt, updatedAt, options, plus a leading
// rootPath. Model.Issues is
// deliberately not persisted: it is a derived observability artifact
// (sharedcontext.SummarizeIssues folds Events into it at FINALIZATION),
// not part of the document spec §6 enumerates.
type document struct {
	RootPath      string               `yaml:"rootPath"`
	FileSystem    fileTreeDoc          `yaml:"fileSystem"`
	Languages     []kv[model.LanguageStats] `yaml:"languages"`
	CodeNodes     []kv[*model.CodeNode] `yaml:"codeNodes"`
	Relationships []*model.Relationship `yaml:"relationships"`
	Patterns      []kv[[]patternDoc]    `yaml:"patterns"`
	DataFlow      dataFlowDoc          `yaml:"dataFlow"`
	Dependencies  dependencyGraphDoc   `yaml:"dependencies"`
	Concepts      []*model.Concept     `yaml:"concepts"`
	SemanticUnits []*model.SemanticUnit `yaml:"semanticUnits"`
	Clusters      []*model.Cluster     `yaml:"clusters"`
	CreatedAt     time.Time            `yaml:"createdAt"`
	UpdatedAt     time.Time            `yaml:"updatedAt"`
	Options       model.Options        `yaml:"options"`
}

type fileTreeDoc struct {
	RootPath     string                       `yaml:"rootPath"`
	Directories  []kv[directoryDoc]           `yaml:"directories"`
	Files        []kv[fileDoc]                `yaml:"files"`
	ExtensionAgg []kv[model.ExtensionStats]    `yaml:"extensionAgg"`
	TotalSize    int64                        `yaml:"totalSize"`
}

// directoryDoc and fileDoc shadow model.Directory/model.File to expose
// their unexported parentKey (spec §3: "a parent reference as a key, not
// a back-pointer") as a plain field the yaml codec can see.
type directoryDoc struct {
	Path      string    `yaml:"path"`
	Name      string    `yaml:"name"`
	Hash      uint64    `yaml:"hash"`
	Created   time.Time `yaml:"created"`
	Modified  time.Time `yaml:"modified"`
	Children  []string  `yaml:"children"`
	ParentKey string    `yaml:"parentKey"`
}

type fileDoc struct {
	Path      string                 `yaml:"path"`
	Name      string                 `yaml:"name"`
	Extension string                 `yaml:"extension"`
	Size      int64                  `yaml:"size"`
	Hash      uint64                 `yaml:"hash"`
	Language  string                 `yaml:"language"`
	Created   time.Time              `yaml:"created"`
	Modified  time.Time              `yaml:"modified"`
	Metadata  map[string]interface{} `yaml:"metadata"`
	ParentKey string                 `yaml:"parentKey"`
}

// patternDoc shadows model.Pattern, replacing its compiled *regexp.Regexp
// (not itself marshalable) with its source string; Load recompiles it.
type patternDoc struct {
	Name        string                 `yaml:"name"`
	Description string                 `yaml:"description"`
	RegexSource string                 `yaml:"regexSource,omitempty"`
	Confidence  float64                `yaml:"confidence"`
	Metadata    map[string]interface{} `yaml:"metadata"`
}

type dataFlowDoc struct {
	Nodes []kv[*model.DataNode]  `yaml:"nodes"`
	Flows []*model.DataFlow      `yaml:"flows"`
	Paths []*model.DataFlowPath  `yaml:"paths"`
}

type dependencyGraphDoc struct {
	Dependencies []kv[dependencyDoc]        `yaml:"dependencies"`
	Imports      []*model.ImportStatement   `yaml:"imports"`
	Exports      []*model.ExportStatement   `yaml:"exports"`
}

// dependencyDoc shadows model.Dependency, replacing its two string-keyed
// maps with ordered pairs.
type dependencyDoc struct {
	Name            string              `yaml:"name"`
	Category        model.Category      `yaml:"category"`
	ImportCount     int                 `yaml:"importCount"`
	ImportedSymbols []kv[int]           `yaml:"importedSymbols"`
	ImportingFiles  []string            `yaml:"importingFiles"`
	Version         string              `yaml:"version"`
	Confidence      float64             `yaml:"confidence"`
}

// toDocument flattens m's maps into the ordered-pair document shape.
func toDocument(m *model.Model) document {
	doc := document{
		RootPath:      m.RootPath,
		Languages:     toKV(m.Languages),
		CodeNodes:     toKV(m.CodeNodes),
		Relationships: m.Relationships,
		Concepts:      m.Concepts,
		SemanticUnits: m.SemanticUnits,
		Clusters:      m.Clusters,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
		Options:       m.Options,
	}

	if tree := m.FileTree; tree != nil {
		dirs := make(map[string]directoryDoc, len(tree.Directories))
		for path, d := range tree.Directories {
			dirs[path] = directoryDoc{
				Path: d.Path, Name: d.Name, Hash: d.Hash,
				Created: d.Created, Modified: d.Modified,
				Children: d.Children, ParentKey: d.ParentKey(),
			}
		}
		files := make(map[string]fileDoc, len(tree.Files))
		for path, f := range tree.Files {
			files[path] = fileDoc{
				Path: f.Path, Name: f.Name, Extension: f.Extension,
				Size: f.Size, Hash: f.Hash, Language: f.Language,
				Created: f.Created, Modified: f.Modified,
				Metadata: f.Metadata, ParentKey: f.ParentKey(),
			}
		}
		doc.FileSystem = fileTreeDoc{
			RootPath:     tree.RootPath,
			Directories:  toKV(dirs),
			Files:        toKV(files),
			ExtensionAgg: toKV(tree.ExtensionAgg),
			TotalSize:    tree.TotalSize,
		}
	}

	if patterns := m.Patterns; patterns != nil {
		byType := make(map[string][]patternDoc)
		for typ, list := range patterns.All() {
			docs := make([]patternDoc, 0, len(list))
			for _, p := range list {
				pd := patternDoc{Name: p.Name, Description: p.Description, Confidence: p.Confidence, Metadata: p.Metadata}
				if p.Regex != nil {
					pd.RegexSource = p.Regex.String()
				}
				docs = append(docs, pd)
			}
			byType[typ] = docs
		}
		doc.Patterns = toKV(byType)
	}

	if df := m.DataFlow; df != nil {
		doc.DataFlow = dataFlowDoc{
			Nodes: toKV(df.Nodes),
			Flows: df.Flows,
			Paths: df.Paths,
		}
	}

	if dg := m.Dependencies; dg != nil {
		deps := make(map[string]dependencyDoc, len(dg.Dependencies))
		for name, d := range dg.Dependencies {
			files := make([]string, 0, len(d.ImportingFiles))
			for f := range d.ImportingFiles {
				files = append(files, f)
			}
			sort.Strings(files)
			deps[name] = dependencyDoc{
				Name: d.Name, Category: d.Category, ImportCount: d.ImportCount,
				ImportedSymbols: toKV(d.ImportedSymbols),
				ImportingFiles:  files,
				Version:         d.Version, Confidence: d.Confidence,
			}
		}
		doc.Dependencies = dependencyGraphDoc{
			Dependencies: toKV(deps),
			Imports:      dg.Imports,
			Exports:      dg.Exports,
		}
	}

	return doc
}

// fromDocument rebuilds a *model.Model from a loaded document.
func fromDocument(doc document) *model.Model {
	m := model.New(doc.RootPath, doc.Options)
	m.Languages = fromKV(doc.Languages)
	m.CodeNodes = fromKV(doc.CodeNodes)
	for _, node := range m.CodeNodes {
		node.RebuildChildIndex(m.CodeNodes)
	}
	m.Relationships = doc.Relationships
	m.Concepts = doc.Concepts
	m.SemanticUnits = doc.SemanticUnits
	m.Clusters = doc.Clusters
	m.CreatedAt = doc.CreatedAt
	m.UpdatedAt = doc.UpdatedAt

	tree := model.NewFileTree(doc.FileSystem.RootPath)
	for _, pair := range doc.FileSystem.Directories {
		dd := pair.Value
		d := &model.Directory{Path: dd.Path, Name: dd.Name, Hash: dd.Hash, Created: dd.Created, Modified: dd.Modified, Children: dd.Children}
		d.SetParentKey(dd.ParentKey)
		tree.AddDirectory(d)
	}
	for _, pair := range doc.FileSystem.Files {
		fd := pair.Value
		f := &model.File{Path: fd.Path, Name: fd.Name, Extension: fd.Extension, Size: fd.Size, Hash: fd.Hash, Language: fd.Language, Created: fd.Created, Modified: fd.Modified, Metadata: fd.Metadata}
		f.SetParentKey(fd.ParentKey)
		tree.Files[f.Path] = f
	}
	tree.ExtensionAgg = fromKV(doc.FileSystem.ExtensionAgg)
	tree.TotalSize = doc.FileSystem.TotalSize
	m.FileTree = tree

	for _, pair := range doc.Patterns {
		typ := pair.Key
		for _, pd := range pair.Value {
			p := &model.Pattern{Type: typ, Name: pd.Name, Description: pd.Description, Confidence: pd.Confidence, Metadata: pd.Metadata}
			if pd.RegexSource != "" {
				if re, err := regexp.Compile(pd.RegexSource); err == nil {
					p.Regex = re
				}
			}
			m.Patterns.Register(p)
		}
	}

	df := model.NewDataFlowGraph()
	df.Nodes = fromKV(doc.DataFlow.Nodes)
	df.Flows = doc.DataFlow.Flows
	df.Paths = doc.DataFlow.Paths
	m.DataFlow = df

	dg := model.NewDependencyGraph()
	for _, pair := range doc.Dependencies.Dependencies {
		dd := pair.Value
		d := model.NewDependency(dd.Name, dd.Category)
		d.ImportCount = dd.ImportCount
		d.ImportedSymbols = fromKV(dd.ImportedSymbols)
		for _, f := range dd.ImportingFiles {
			d.ImportingFiles[f] = true
		}
		d.Version = dd.Version
		d.Confidence = dd.Confidence
		dg.Dependencies[pair.Key] = d
	}
	dg.Imports = doc.Dependencies.Imports
	dg.Exports = doc.Dependencies.Exports
	m.Dependencies = dg

	return m
}

// Marshal renders m as YAML bytes (spec §6's document shape).
func Marshal(m *model.Model) ([]byte, error) {
	return yaml.Marshal(toDocument(m))
}

// Unmarshal parses YAML bytes produced by Marshal back into a Model.
func Unmarshal(data []byte) (*model.Model, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, model.WrapConfigError(err, "unmarshal persisted model")
	}
	return fromDocument(doc), nil
}

// Save writes m to path as YAML. Persistence is a pure serialization
// boundary (spec §1) distinct from the fsadapter.FileSystem collaborator
// the analysis pipeline reads through, so it uses the standard library
// directly rather than going through an injected FileSystem.
func Save(_ context.Context, m *model.Model, path string) error {
	data, err := Marshal(m)
	if err != nil {
		return model.WrapConfigError(err, "marshal model")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return model.NewIOError(path, err)
	}
	return nil
}

// Load reads and parses a model previously written by Save.
func Load(_ context.Context, path string) (*model.Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.NewIOError(path, err)
	}
	return Unmarshal(data)
}
