// Package golang is a reference Parser collaborator for Go source,
// built directly on the teacher's tree-sitter extraction idiom
// (inspector/golang/inspector_tree_sitter.go): a handful of tree-sitter
// queries pull out top-level declarations, then each declaration's
// fields are read by name (ChildByFieldName), the same two-step
// query-then-walk shape the teacher uses. Per spec §1, parsers are
// explicitly outside the core; this one exists to give the parser
// collaborator boundary something real to exercise in tests.
package golang

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	sittergo "github.com/smacker/go-tree-sitter/golang"

	"github.com/viant/codeindex/model"
)

// Parser extracts a CodeNode tree from Go source using tree-sitter.
type Parser struct{}

// New returns a ready-to-use Go source Parser.
func New() *Parser { return &Parser{} }

// Language identifies this parser's tag in a parser.Registry.
func (p *Parser) Language() string { return "go" }

// ParseFile parses content and returns every discovered CodeNode, keyed
// by id, rooted at a single module-kind node for the file.
func (p *Parser) ParseFile(ctx context.Context, path string, content []byte) (map[string]*model.CodeNode, string, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(sittergo.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, "", model.NewParseError(path, err)
	}
	root := tree.RootNode()

	nodes := make(map[string]*model.CodeNode)
	fileNode := model.NewCodeNode(path, model.KindModule, path)
	fileNode.FilePath = path
	fileNode.Language = "go"
	fileNode.Confidence = 1.0
	nodes[fileNode.ID] = fileNode

	walker := &walker{path: path, src: content, nodes: nodes, file: fileNode}
	walker.walk(root)

	return nodes, fileNode.ID, nil
}

// walker performs a single pass over the parse tree's top-level
// declarations, dispatching by node type the same way
// TreeSitterInspector.processFile does with per-declaration queries,
// collapsed here into one recursive descent since CodeNode doesn't
// distinguish types/functions/constants into separate collections.
type walker struct {
	path  string
	src   []byte
	nodes map[string]*model.CodeNode
	file  *model.CodeNode
}

func (w *walker) walk(root *sitter.Node) {
	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		switch child.Type() {
		case "function_declaration":
			w.addFunction(child)
		case "method_declaration":
			w.addMethod(child)
		case "type_declaration":
			w.addTypeDeclaration(child)
		case "const_declaration":
			w.addConstOrVar(child, model.KindConstant, "const_spec")
		case "var_declaration":
			w.addConstOrVar(child, model.KindVariable, "var_spec")
		}
	}
}

func (w *walker) addFunction(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nameNode.Content(w.src)
	id := fmt.Sprintf("%s#func:%s", w.path, name)
	node := w.newChild(id, model.KindFunction, name, n)

	if n.ChildByFieldName("result") != nil {
		node.Metadata[model.MetaHasReturn] = true
	}
	w.addParameters(node, n.ChildByFieldName("parameters"))
}

func (w *walker) addMethod(n *sitter.Node) {
	nameNode := n.ChildByFieldName("name")
	if nameNode == nil {
		return
	}
	name := nameNode.Content(w.src)

	receiver := ""
	if recvNode := n.ChildByFieldName("receiver"); recvNode != nil {
		if typeNode := recvNode.ChildByFieldName("type"); typeNode != nil {
			receiver = typeNode.Content(w.src)
			if len(receiver) > 0 && receiver[0] == '*' {
				receiver = receiver[1:]
			}
		}
	}

	qualified := name
	if receiver != "" {
		qualified = receiver + "." + name
	}
	id := fmt.Sprintf("%s#method:%s", w.path, qualified)
	node := w.newChild(id, model.KindMethod, name, n)
	node.QualifiedName = qualified

	if receiver != "" {
		if typeID, ok := w.file.ChildIDByName(receiver); ok {
			if typeNode, ok := w.nodes[typeID]; ok {
				typeNode.AddChild(name, id)
				node.ParentID = typeID
			}
		}
	}
	if n.ChildByFieldName("result") != nil {
		node.Metadata[model.MetaHasReturn] = true
	}
	w.addParameters(node, n.ChildByFieldName("parameters"))
}

func (w *walker) addParameters(fn *model.CodeNode, paramList *sitter.Node) {
	if paramList == nil {
		return
	}
	for i := 0; i < int(paramList.NamedChildCount()); i++ {
		p := paramList.NamedChild(i)
		if p.Type() != "parameter_declaration" {
			continue
		}
		nameNode := p.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := nameNode.Content(w.src)
		id := fmt.Sprintf("%s#param:%s", fn.ID, name)
		param := w.newChild(id, model.KindParameter, name, p)
		param.Metadata[model.MetaIsParameter] = true
		if typeNode := p.ChildByFieldName("type"); typeNode != nil {
			param.Metadata[model.MetaDataType] = typeNode.Content(w.src)
		}
		fn.AddChild(name, id)
		param.ParentID = fn.ID
	}
}

func (w *walker) addTypeDeclaration(n *sitter.Node) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		spec := n.NamedChild(i)
		if spec.Type() != "type_spec" {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := nameNode.Content(w.src)
		kind := model.KindClass
		if typeValue := spec.ChildByFieldName("type"); typeValue != nil && typeValue.Type() == "interface_type" {
			kind = model.KindInterface
		}
		id := fmt.Sprintf("%s#type:%s", w.path, name)
		node := w.newChild(id, kind, name, spec)
		w.addStructFields(node, spec.ChildByFieldName("type"))
	}
}

func (w *walker) addStructFields(typeNode *model.CodeNode, typeValue *sitter.Node) {
	if typeValue == nil || typeValue.Type() != "struct_type" {
		return
	}
	fieldList := typeValue.ChildByFieldName("body")
	if fieldList == nil {
		return
	}
	for i := 0; i < int(fieldList.NamedChildCount()); i++ {
		field := fieldList.NamedChild(i)
		if field.Type() != "field_declaration" {
			continue
		}
		nameNode := field.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := nameNode.Content(w.src)
		id := fmt.Sprintf("%s#field:%s", typeNode.ID, name)
		prop := w.newChild(id, model.KindProperty, name, field)
		if fieldTypeNode := field.ChildByFieldName("type"); fieldTypeNode != nil {
			prop.Metadata[model.MetaDataType] = fieldTypeNode.Content(w.src)
		}
		typeNode.AddChild(name, id)
		prop.ParentID = typeNode.ID
	}
}

func (w *walker) addConstOrVar(n *sitter.Node, kind model.Kind, specType string) {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		spec := n.NamedChild(i)
		if spec.Type() != specType {
			continue
		}
		nameNode := spec.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := nameNode.Content(w.src)
		id := fmt.Sprintf("%s#%s:%s", w.path, specType, name)
		w.newChild(id, kind, name, spec)
	}
}

// newChild builds a CodeNode for sitterNode, registers it under the
// file root, and returns it.
func (w *walker) newChild(id string, kind model.Kind, name string, sitterNode *sitter.Node) *model.CodeNode {
	node := model.NewCodeNode(id, kind, name)
	node.FilePath = w.path
	node.Language = "go"
	node.Content = sitterNode.Content(w.src)
	node.ParentID = w.file.ID
	node.Confidence = 0.9
	start := sitterNode.StartPoint()
	end := sitterNode.EndPoint()
	node.Location = &model.Location{
		Raw:   node.Content,
		Start: model.Position{Line: int(start.Row) + 1, Column: int(start.Column) + 1},
		End:   model.Position{Line: int(end.Row) + 1, Column: int(end.Column) + 1},
	}
	w.nodes[id] = node
	w.file.AddChild(name, id)
	return node
}
