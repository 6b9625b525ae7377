package treesitter

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/murogrande/docdrift"
)

// definition is a top-level class or function parsed from a module, or a
// method inside a class body.
type definition struct {
	name   string
	kind   docdrift.SymbolKind
	params []docdrift.Param
	doc    string
	line   int

	// methods and fields are populated for classes only.
	methods []*definition
	fields  map[string]struct{}
}

// importRef is a `from x import y [as z]` binding at module top level.
type importRef struct {
	module string // dotted source module, already absolutized
	name   string // original name in the source module; "*" for wildcard
}

// moduleInfo is the parsed shape of one Python module.
type moduleInfo struct {
	path    string // dotted module path
	file    string // source file, relative to the project root
	pkg     bool   // true for packages (__init__.py)
	defs    map[string]*definition
	imports map[string]importRef
	consts  map[string]struct{} // top-level assignments other than __all__
	all     []string
	hasAll  bool
}

// attrNames returns every top-level name the module binds.
func (m *moduleInfo) attrNames() map[string]struct{} {
	names := make(map[string]struct{}, len(m.defs)+len(m.imports)+len(m.consts))
	for n := range m.defs {
		names[n] = struct{}{}
	}
	for n := range m.imports {
		names[n] = struct{}{}
	}
	for n := range m.consts {
		names[n] = struct{}{}
	}
	return names
}

// parseModule parses Python source into a moduleInfo. The dotted path
// identifies the module; for packages it is the package path and the
// source is its __init__.py.
func parseModule(ctx context.Context, source []byte, path, file string, pkg bool) (*moduleInfo, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	mod := &moduleInfo{
		path:    path,
		file:    file,
		pkg:     pkg,
		defs:    make(map[string]*definition),
		imports: make(map[string]importRef),
		consts:  make(map[string]struct{}),
	}

	root := tree.RootNode()
	for i := 0; i < int(root.NamedChildCount()); i++ {
		parseTopLevel(root.NamedChild(i), source, mod)
	}
	return mod, nil
}

func parseTopLevel(node *sitter.Node, source []byte, mod *moduleInfo) {
	switch node.Type() {
	case "function_definition":
		if def := parseFunction(node, source); def != nil {
			mod.defs[def.name] = def
		}
	case "class_definition":
		if def := parseClass(node, source); def != nil {
			mod.defs[def.name] = def
		}
	case "decorated_definition":
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			if child.Type() == "function_definition" || child.Type() == "class_definition" {
				parseTopLevel(child, source, mod)
			}
		}
	case "expression_statement":
		parseAssignment(node, source, mod)
	case "import_from_statement":
		parseFromImport(node, source, mod)
	}
}

// parseAssignment records `__all__ = [...]` and other top-level name
// bindings.
func parseAssignment(node *sitter.Node, source []byte, mod *moduleInfo) {
	if node.NamedChildCount() == 0 {
		return
	}
	assign := node.NamedChild(0)
	if assign.Type() != "assignment" && assign.Type() != "augmented_assignment" {
		return
	}
	left := assign.NamedChild(0)
	if left == nil || left.Type() != "identifier" {
		return
	}
	name := nodeText(left, source)
	if name == "__all__" {
		mod.hasAll = true
		right := assign.NamedChild(int(assign.NamedChildCount()) - 1)
		mod.all = append(mod.all, stringListItems(right, source)...)
		return
	}
	mod.consts[name] = struct{}{}
}

// stringListItems collects string literals from a list or tuple node.
func stringListItems(node *sitter.Node, source []byte) []string {
	if node == nil {
		return nil
	}
	var items []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		if child.Type() == "string" {
			items = append(items, stringLiteral(child, source))
		}
	}
	return items
}

// parseFromImport records `from mod import a, b as c` bindings. Relative
// imports are absolutized against the current package path.
func parseFromImport(node *sitter.Node, source []byte, mod *moduleInfo) {
	var srcModule string
	var bindings [][2]string // local name, original name

	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			if srcModule == "" {
				srcModule = nodeText(child, source)
			} else {
				n := nodeText(child, source)
				bindings = append(bindings, [2]string{n, n})
			}
		case "relative_import":
			srcModule = absolutizeRelative(nodeText(child, source), mod)
		case "aliased_import":
			var orig, alias string
			for j := 0; j < int(child.NamedChildCount()); j++ {
				gc := child.NamedChild(j)
				switch gc.Type() {
				case "dotted_name":
					orig = nodeText(gc, source)
				case "identifier":
					alias = nodeText(gc, source)
				}
			}
			if orig != "" && alias != "" {
				bindings = append(bindings, [2]string{alias, orig})
			}
		case "wildcard_import":
			bindings = append(bindings, [2]string{"*", "*"})
		}
	}

	if srcModule == "" {
		return
	}
	for _, b := range bindings {
		mod.imports[b[0]] = importRef{module: srcModule, name: b[1]}
	}
}

// absolutizeRelative converts a relative import spec like "..subpkg" into
// a dotted path anchored at the importing module's package.
func absolutizeRelative(spec string, mod *moduleInfo) string {
	dots := 0
	for dots < len(spec) && spec[dots] == '.' {
		dots++
	}
	rest := spec[dots:]

	// One dot means the current package; each extra dot climbs a level.
	base := mod.path
	if !mod.pkg {
		base = parentPath(base)
	}
	for i := 1; i < dots; i++ {
		base = parentPath(base)
	}
	if rest == "" {
		return base
	}
	if base == "" {
		return rest
	}
	return base + "." + rest
}

func parentPath(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[:i]
	}
	return ""
}

func parseFunction(node *sitter.Node, source []byte) *definition {
	def := &definition{kind: docdrift.KindFunction}
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier":
			if def.name == "" {
				def.name = nodeText(child, source)
				def.line = int(child.StartPoint().Row) + 1
			}
		case "parameters":
			def.params = parseParams(child, source)
		case "block":
			def.doc = blockDocstring(child, source)
		}
	}
	if def.name == "" {
		return nil
	}
	return def
}

func parseClass(node *sitter.Node, source []byte) *definition {
	def := &definition{kind: docdrift.KindClass, fields: make(map[string]struct{})}
	var body *sitter.Node
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		switch child.Type() {
		case "identifier":
			if def.name == "" {
				def.name = nodeText(child, source)
				def.line = int(child.StartPoint().Row) + 1
			}
		case "block":
			body = child
		}
	}
	if def.name == "" {
		return nil
	}
	if body == nil {
		return def
	}

	def.doc = blockDocstring(body, source)
	for i := 0; i < int(body.NamedChildCount()); i++ {
		stmt := body.NamedChild(i)
		switch stmt.Type() {
		case "function_definition":
			parseClassMember(stmt, source, def)
		case "decorated_definition":
			for j := 0; j < int(stmt.NamedChildCount()); j++ {
				gc := stmt.NamedChild(j)
				if gc.Type() == "function_definition" {
					parseClassMember(gc, source, def)
				}
			}
		case "expression_statement":
			recordClassField(stmt, source, def)
		}
	}
	return def
}

func parseClassMember(node *sitter.Node, source []byte, class *definition) {
	method := parseFunction(node, source)
	if method == nil {
		return
	}
	method.kind = docdrift.KindMethod
	method.params = dropReceiver(method.params)
	if method.name == "__init__" {
		// The constructor's parameters are the class's parameters.
		class.params = method.params
	}
	class.methods = append(class.methods, method)
	class.fields[method.name] = struct{}{}
}

func recordClassField(node *sitter.Node, source []byte, class *definition) {
	if node.NamedChildCount() == 0 {
		return
	}
	assign := node.NamedChild(0)
	if assign.Type() != "assignment" {
		return
	}
	left := assign.NamedChild(0)
	if left != nil && left.Type() == "identifier" {
		class.fields[nodeText(left, source)] = struct{}{}
	}
}

// dropReceiver strips the leading self/cls parameter.
func dropReceiver(params []docdrift.Param) []docdrift.Param {
	if len(params) > 0 && (params[0].Name == "self" || params[0].Name == "cls") {
		return params[1:]
	}
	return params
}

func parseParams(node *sitter.Node, source []byte) []docdrift.Param {
	var params []docdrift.Param
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "identifier":
			params = append(params, docdrift.Param{Name: nodeText(child, source)})
		case "typed_parameter":
			if id := firstChildOfType(child, "identifier"); id != nil {
				params = append(params, docdrift.Param{Name: nodeText(id, source)})
			}
		case "default_parameter", "typed_default_parameter":
			if id := firstChildOfType(child, "identifier"); id != nil {
				params = append(params, docdrift.Param{Name: nodeText(id, source), HasDefault: true})
			}
		case "list_splat_pattern", "dictionary_splat_pattern":
			if id := firstChildOfType(child, "identifier"); id != nil {
				params = append(params, docdrift.Param{Name: nodeText(id, source)})
			}
		}
	}
	return params
}

func firstChildOfType(node *sitter.Node, typ string) *sitter.Node {
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if child := node.NamedChild(i); child.Type() == typ {
			return child
		}
	}
	return nil
}

// blockDocstring returns the docstring of a function/class/module body:
// the string literal of its first statement, or "".
func blockDocstring(block *sitter.Node, source []byte) string {
	if block.NamedChildCount() == 0 {
		return ""
	}
	first := block.NamedChild(0)
	if first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return ""
	}
	str := first.NamedChild(0)
	if str.Type() != "string" {
		return ""
	}
	return stringLiteral(str, source)
}

// stringLiteral strips quotes and prefixes from a Python string node.
func stringLiteral(node *sitter.Node, source []byte) string {
	text := nodeText(node, source)
	text = strings.TrimLeft(text, "rRbBuUfF")
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(text, q) && strings.HasSuffix(text, q) && len(text) >= 2*len(q) {
			return strings.TrimSpace(text[len(q) : len(text)-len(q)])
		}
	}
	return text
}

func nodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
