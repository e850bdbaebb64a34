package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"go/types"
	"log"
	"maps"
	"slices"
	"strings"
	"text/template"
	"unicode"
	"unicode/utf8"

	"golang.org/x/tools/go/ast/astutil"
	"golang.org/x/tools/go/packages"
)

// receiver names the machine inside Step. Hoisted variables become fields
// of it.
const receiver = "__m"

const header = `//go:build !gengen

// Code generated by gengen. DO NOT EDIT.

`

type Wizard struct {
	template *template.Template
}

//go:embed gengen.tmpl
var coreTemplate string

func NewWizard() *Wizard {
	funcMap := template.FuncMap{
		"trimPrefix": strings.TrimPrefix,
	}
	t, err := template.New("core").Funcs(funcMap).Parse(coreTemplate)
	if err != nil {
		log.Fatal(err)
	}

	return &Wizard{template: t}
}

// Return a mapping between package paths and imports, and a set of all the import names.
// packageNames holds the declared names of the imported packages, which may
// differ from the last element of their path.
func createImportNameMapping(imports Imports, packageNames map[string]string) (map[string]string, map[string]bool) {
	mapping := make(map[string]string)
	importNames := make(map[string]bool)
	for _, importLine := range imports {
		packagePath := strings.Trim(importLine.Path, "\"")
		if importLine.Name != nil {
			name := *importLine.Name
			mapping[packagePath] = name
			importNames[name] = true
		} else if name, known := packageNames[packagePath]; known {
			mapping[packagePath] = name
			importNames[name] = true
		} else {
			parts := strings.Split(packagePath, "/")
			name := parts[len(parts)-1]
			mapping[packagePath] = name
			importNames[name] = true
		}
	}
	return mapping, importNames
}

func (wiz *Wizard) WithPackage(pkg *packages.Package, file *ast.File) *PkgWizard {
	packageNames := make(map[string]string)
	if pkg.Types != nil {
		for _, imported := range pkg.Types.Imports() {
			packageNames[imported.Path()] = imported.Name()
		}
	}
	importMapping, importNames := createImportNameMapping(getFileImports(file), packageNames)
	return &PkgWizard{
		Wizard:      *wiz,
		pkg:         pkg,
		file:        file,
		imports:     importMapping,
		importNames: importNames,
		missing:     make(map[string]bool),
		machines:    make(map[string]bool),
	}
}

func (wiz *Wizard) Render(name string, data any) ([]byte, error) {
	var out bytes.Buffer
	err := wiz.template.ExecuteTemplate(&out, name, data)
	if err != nil {
		return nil, err
	}

	return out.Bytes(), nil
}

type PkgWizard struct {
	Wizard
	pkg  *packages.Package
	file *ast.File
	// A mapping between package paths to import names
	imports map[string]string

	// A set of all the imported names
	importNames map[string]bool

	// Packages referenced by hoisted variables that the file does not import
	missing map[string]bool

	// Machine type names already taken in this file
	machines map[string]bool
}

// qualifier names packages the way the generated file refers to them.
func (wiz *PkgWizard) qualifier(pkg *types.Package) string {
	if pkg == wiz.pkg.Types {
		return ""
	}
	if name, exists := wiz.imports[pkg.Path()]; exists {
		return name
	}
	wiz.missing[pkg.Path()] = true
	return pkg.Name()
}

func (wiz *PkgWizard) nameTaken(name string) bool {
	if wiz.machines[name] || wiz.importNames[name] {
		return true
	}
	return wiz.pkg.Types != nil && wiz.pkg.Types.Scope().Lookup(name) != nil
}

func (wiz *PkgWizard) WithFunction(fdecl *ast.FuncDecl) *FuncWizard {
	return &FuncWizard{
		PkgWizard: *wiz,
		fdecl:     fdecl,
		fields:    make(map[types.Object]string),
		names:     map[string]bool{"Step": true},
	}
}

// convertFile renders the generated twin of the file: generator functions
// are replaced by their machines, everything else is copied.
func (wiz *PkgWizard) convertFile() ([]byte, error) {
	generated := make(map[*ast.FuncDecl][]byte)
	for _, decl := range wiz.file.Decls {
		fdecl, isFunc := decl.(*ast.FuncDecl)
		if !isFunc || !IsGenerator(wiz.pkg, fdecl) {
			continue
		}
		src, err := wiz.WithFunction(fdecl).convertFunction()
		if err != nil {
			return nil, err
		}
		generated[fdecl] = src
	}

	astutil.AddImport(wiz.pkg.Fset, wiz.file, ProducerPath)
	for _, path := range slices.Sorted(maps.Keys(wiz.missing)) {
		astutil.AddImport(wiz.pkg.Fset, wiz.file, path)
	}

	var out bytes.Buffer
	out.WriteString(header)
	fmt.Fprintf(&out, "package %s\n\n", wiz.file.Name.Name)
	for _, decl := range wiz.file.Decls {
		if fdecl, isFunc := decl.(*ast.FuncDecl); isFunc {
			if src, exists := generated[fdecl]; exists {
				out.Write(src)
				out.WriteString("\n")
				continue
			}
		}
		if err := format.Node(&out, wiz.pkg.Fset, decl); err != nil {
			return nil, err
		}
		out.WriteString("\n\n")
	}

	return formatSource(out.Bytes()), nil
}

type Namer struct {
	name string
	id   int
}

func (n *Namer) Next() {
	n.id++
}

func (n *Namer) Name() string {
	if n.id > 0 {
		return fmt.Sprintf("%s%d", n.name, n.id)
	}
	return n.name
}

// Field is a saved local of a machine.
type Field struct {
	Name string
	Type string
}

// Init sets a machine field from a constructor argument.
type Init struct {
	Name  string
	Value string
}

type FuncWizard struct {
	PkgWizard
	fdecl *ast.FuncDecl
	// item is the element type of the generator, as written in the output
	item string

	fields    map[types.Object]string
	fieldList []Field
	names     map[string]bool

	segments []*strings.Builder
	returned bool
}

// AddField hoists obj into the machine struct.
func (wiz *FuncWizard) AddField(obj types.Object) {
	if obj == nil || obj.Name() == "_" {
		return
	}
	if _, exists := wiz.fields[obj]; exists {
		return
	}
	namer := Namer{name: obj.Name()}
	for wiz.names[namer.Name()] {
		namer.Next()
	}
	wiz.names[namer.Name()] = true
	wiz.fields[obj] = namer.Name()
	wiz.fieldList = append(wiz.fieldList, Field{
		Name: namer.Name(),
		Type: types.TypeString(obj.Type(), wiz.qualifier),
	})
}

// field returns the field a hoisted identifier was moved to.
func (wiz *FuncWizard) field(ident *ast.Ident) (string, bool) {
	obj := wiz.pkg.TypesInfo.Uses[ident]
	if obj == nil {
		obj = wiz.pkg.TypesInfo.Defs[ident]
	}
	if obj == nil {
		return "", false
	}
	name, exists := wiz.fields[obj]
	return name, exists
}

func (wiz *FuncWizard) errorf(node ast.Node, format string, args ...any) error {
	return fmt.Errorf("%s: %s", wiz.pkg.Fset.Position(node.Pos()), fmt.Sprintf(format, args...))
}

func (wiz *FuncWizard) isYield(call *ast.CallExpr) bool {
	var ident *ast.Ident
	switch fun := call.Fun.(type) {
	case *ast.SelectorExpr:
		ident = fun.Sel
	case *ast.Ident:
		ident = fun
	default:
		return false
	}
	funcObject, isFunc := wiz.pkg.TypesInfo.Uses[ident].(*types.Func)
	return isFunc && funcObject.FullName() == YieldType.String()
}

func (wiz *FuncWizard) machineName() string {
	name := wiz.fdecl.Name.Name
	first, size := utf8.DecodeRuneInString(name)
	namer := Namer{name: string(unicode.ToLower(first)) + name[size:] + "Machine"}
	for wiz.nameTaken(namer.Name()) {
		namer.Next()
	}
	wiz.machines[namer.Name()] = true
	return namer.Name()
}

func (wiz *FuncWizard) hoistParams(inits *[]Init) {
	for _, list := range []*ast.FieldList{wiz.fdecl.Recv, wiz.fdecl.Type.Params} {
		if list == nil {
			continue
		}
		for _, param := range list.List {
			for _, name := range param.Names {
				obj := wiz.pkg.TypesInfo.Defs[name]
				if obj == nil || name.Name == "_" {
					continue
				}
				wiz.AddField(obj)
				*inits = append(*inits, Init{Name: wiz.fields[obj], Value: name.Name})
			}
		}
	}
}

// hoistLocals moves the variables bound at the top level of the body into
// the machine. Nested scopes never span a pause and stay local.
func (wiz *FuncWizard) hoistLocals() {
	for _, stmt := range wiz.fdecl.Body.List {
		switch stmt := stmt.(type) {
		case *ast.AssignStmt:
			if stmt.Tok != token.DEFINE {
				continue
			}
			for _, lhs := range stmt.Lhs {
				if ident, isIdent := lhs.(*ast.Ident); isIdent {
					wiz.AddField(wiz.pkg.TypesInfo.Defs[ident])
				}
			}
		case *ast.DeclStmt:
			decl, isGen := stmt.Decl.(*ast.GenDecl)
			if !isGen || decl.Tok != token.VAR {
				continue
			}
			for _, spec := range decl.Specs {
				for _, name := range spec.(*ast.ValueSpec).Names {
					wiz.AddField(wiz.pkg.TypesInfo.Defs[name])
				}
			}
		}
	}
}

func (wiz *FuncWizard) receiverSource() (string, error) {
	if wiz.fdecl.Recv == nil || len(wiz.fdecl.Recv.List) == 0 {
		return "", nil
	}
	recv := wiz.fdecl.Recv.List[0]
	var typ bytes.Buffer
	if err := format.Node(&typ, wiz.pkg.Fset, recv.Type); err != nil {
		return "", err
	}
	if len(recv.Names) == 0 {
		return fmt.Sprintf("(%s) ", typ.String()), nil
	}
	return fmt.Sprintf("(%s %s) ", recv.Names[0].Name, typ.String()), nil
}

func (wiz *FuncWizard) convertFunction() ([]byte, error) {
	ftype := wiz.fdecl.Type
	if ftype.TypeParams != nil && len(ftype.TypeParams.List) > 0 {
		return nil, wiz.errorf(wiz.fdecl, "generic generator functions are not supported")
	}
	if wiz.fdecl.Recv != nil && len(wiz.fdecl.Recv.List) > 0 {
		switch wiz.fdecl.Recv.List[0].Type.(type) {
		case *ast.IndexExpr, *ast.IndexListExpr:
			return nil, wiz.errorf(wiz.fdecl, "generators on generic types are not supported")
		}
	}

	// IsGenerator made sure this is an instance of gengen.Generator.
	namedType := wiz.pkg.TypesInfo.TypeOf(ftype.Results.List[0].Type).(*types.Named)
	wiz.item = types.TypeString(namedType.TypeArgs().At(0), wiz.qualifier)
	if err := wiz.checkShadowing(); err != nil {
		return nil, err
	}

	var inits []Init
	wiz.hoistParams(&inits)
	wiz.hoistLocals()

	wiz.segments = []*strings.Builder{{}}
	for _, stmt := range wiz.fdecl.Body.List {
		if wiz.returned {
			// Nothing after a top-level return can run.
			break
		}
		var err error
		if visit := GenericVisit[error](wiz, stmt); visit != nil {
			err = visit()
		} else {
			err = wiz.emit(stmt)
		}
		if err != nil {
			return nil, err
		}
	}
	if !wiz.returned {
		if err := wiz.write(wiz.endReturn(nil)); err != nil {
			return nil, err
		}
	}

	var signature bytes.Buffer
	if err := format.Node(&signature, wiz.pkg.Fset, ftype); err != nil {
		return nil, err
	}
	recv, err := wiz.receiverSource()
	if err != nil {
		return nil, err
	}

	var doc strings.Builder
	if wiz.fdecl.Doc != nil {
		for _, comment := range wiz.fdecl.Doc.List {
			doc.WriteString(comment.Text)
			doc.WriteString("\n")
		}
	}

	segments := make([]string, len(wiz.segments))
	for i, segment := range wiz.segments {
		segments[i] = segment.String()
	}

	return wiz.Render("machine", struct {
		Machine   string
		Receiver  string
		Fields    []Field
		Item      string
		Segments  []string
		Doc       string
		Recv      string
		Name      string
		Signature string
		Inits     []Init
	}{
		Machine:   wiz.machineName(),
		Receiver:  receiver,
		Fields:    wiz.fieldList,
		Item:      wiz.item,
		Segments:  segments,
		Doc:       doc.String(),
		Recv:      recv,
		Name:      wiz.fdecl.Name.Name,
		Signature: signature.String(),
		Inits:     inits,
	})
}

func (wiz *FuncWizard) segment() *strings.Builder {
	return wiz.segments[len(wiz.segments)-1]
}

func (wiz *FuncWizard) write(node ast.Node) error {
	if err := format.Node(wiz.segment(), wiz.pkg.Fset, node); err != nil {
		return err
	}
	wiz.segment().WriteString("\n")
	return nil
}

func (wiz *FuncWizard) emit(stmt ast.Stmt) error {
	node, err := wiz.rewrite(stmt)
	if err != nil {
		return err
	}
	return wiz.write(node)
}

// checkShadowing rejects names that would hide the producer package from
// the generated code.
func (wiz *FuncWizard) checkShadowing() error {
	nodes := []ast.Node{wiz.fdecl.Type, wiz.fdecl.Body}
	if wiz.fdecl.Recv != nil {
		nodes = append(nodes, wiz.fdecl.Recv)
	}
	var err error
	for _, node := range nodes {
		ast.Inspect(node, func(n ast.Node) bool {
			if err != nil {
				return false
			}
			ident, isIdent := n.(*ast.Ident)
			if isIdent && ident.Name == ProducerName && wiz.pkg.TypesInfo.Defs[ident] != nil {
				err = wiz.errorf(ident, "%q shadows the %s package used by the generated code", ident.Name, ProducerName)
			}
			return true
		})
	}
	return err
}

// endTransition builds producer.End[T]() without positions, so it prints on
// the line of the return it replaces.
func (wiz *FuncWizard) endTransition() ast.Expr {
	return &ast.CallExpr{
		Fun: &ast.IndexExpr{
			X:     &ast.SelectorExpr{X: ast.NewIdent(ProducerName), Sel: ast.NewIdent("End")},
			Index: ast.NewIdent(wiz.item),
		},
	}
}

func (wiz *FuncWizard) endReturn(results []ast.Expr) *ast.ReturnStmt {
	var err ast.Expr = ast.NewIdent("nil")
	if len(results) == 1 {
		err = results[0]
	}
	return &ast.ReturnStmt{Results: []ast.Expr{wiz.endTransition(), err}}
}

// rewrite points hoisted identifiers at the machine fields and turns the
// returns of the generator into final transitions. Returns inside function
// literals belong to the literal and are left alone.
func (wiz *FuncWizard) rewrite(root ast.Node) (ast.Node, error) {
	var err error
	closures := 0
	result := astutil.Apply(root, func(c *astutil.Cursor) bool {
		if err != nil {
			return false
		}
		switch node := c.Node().(type) {
		case *ast.FuncLit:
			closures++
		case *ast.CallExpr:
			if wiz.isYield(node) {
				err = wiz.errorf(node, "gengen.Yield is only supported as a top-level statement")
				return false
			}
		case *ast.DeferStmt:
			if closures == 0 {
				err = wiz.errorf(node, "defer is not supported in generator functions")
				return false
			}
		case *ast.ReturnStmt:
			if closures == 0 {
				c.Replace(wiz.endReturn(node.Results))
			}
		case *ast.Ident:
			if name, hoisted := wiz.field(node); hoisted {
				c.Replace(&ast.SelectorExpr{X: ast.NewIdent(receiver), Sel: ast.NewIdent(name)})
			}
			return false
		}
		return true
	}, func(c *astutil.Cursor) bool {
		if _, isFuncLit := c.Node().(*ast.FuncLit); isFuncLit {
			closures--
		}
		return true
	})
	return result, err
}

func (wiz *FuncWizard) GenericAstVisitor() error { return nil }

// VisitExprStmt closes the current segment on a yield.
func (wiz *FuncWizard) VisitExprStmt(node *ast.ExprStmt) error {
	call, isCall := node.X.(*ast.CallExpr)
	if !isCall || !wiz.isYield(call) {
		return wiz.emit(node)
	}
	// Yield only accepts one argument
	if len(call.Args) != 1 {
		return wiz.errorf(call, "gengen.Yield accepts a single argument")
	}
	value, err := wiz.rewrite(call.Args[0])
	if err != nil {
		return err
	}
	var yieldValue bytes.Buffer
	if err := format.Node(&yieldValue, wiz.pkg.Fset, value); err != nil {
		return err
	}

	next := len(wiz.segments)
	fmt.Fprintf(wiz.segment(), "return producer.Suspend[%s](%d, %s), nil\n", wiz.item, next, yieldValue.String())
	wiz.segments = append(wiz.segments, &strings.Builder{})
	return nil
}

func (wiz *FuncWizard) VisitReturnStmt(node *ast.ReturnStmt) error {
	if err := wiz.emit(node); err != nil {
		return err
	}
	wiz.returned = true
	return nil
}

// VisitAssignStmt turns top-level definitions into assignments to the
// hoisted fields.
func (wiz *FuncWizard) VisitAssignStmt(node *ast.AssignStmt) error {
	if node.Tok == token.DEFINE {
		node.Tok = token.ASSIGN
	}
	return wiz.emit(node)
}

func (wiz *FuncWizard) VisitDeclStmt(node *ast.DeclStmt) error {
	decl, isGen := node.Decl.(*ast.GenDecl)
	if !isGen || decl.Tok != token.VAR {
		return wiz.errorf(node, "only var declarations are supported in generator bodies")
	}
	for _, spec := range decl.Specs {
		valueSpec := spec.(*ast.ValueSpec)
		if len(valueSpec.Values) == 0 {
			// The field already holds the zero value.
			continue
		}
		lhs := make([]ast.Expr, len(valueSpec.Names))
		for i, name := range valueSpec.Names {
			lhs[i] = name
		}
		if err := wiz.emit(&ast.AssignStmt{Lhs: lhs, Tok: token.ASSIGN, Rhs: valueSpec.Values}); err != nil {
			return err
		}
	}
	return nil
}

func (wiz *FuncWizard) VisitLabeledStmt(node *ast.LabeledStmt) error {
	return wiz.errorf(node, "labels are not supported at the top level of generator bodies")
}
