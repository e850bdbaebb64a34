package main

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/types"
	"log"
	"os"
	"path"
	"reflect"
	"strings"

	"github.com/tmr232/pandagen/gengen"
	"github.com/tmr232/pandagen/producer"
	"github.com/urfave/cli"
	"golang.org/x/tools/go/packages"
)

type TypeInfo struct {
	PkgPath string
	Name    string
}

func (t TypeInfo) String() string {
	return fmt.Sprintf("%s.%s", t.PkgPath, t.Name)
}

var GeneratorType TypeInfo
var YieldType TypeInfo

// ProducerPath is the import path of the runtime the generated machines use,
// and ProducerName the name they refer to it by.
var ProducerPath, ProducerName string

func init() {
	generatorType := reflect.TypeOf(new(gengen.Generator[struct{}])).Elem()
	name, _, _ := strings.Cut(generatorType.Name(), "[")
	GeneratorType = TypeInfo{
		PkgPath: generatorType.PkgPath(),
		Name:    name,
	}

	YieldType = TypeInfo{
		PkgPath: GeneratorType.PkgPath,
		Name:    "Yield",
	}

	ProducerPath = reflect.TypeOf(producer.Transition[struct{}]{}).PkgPath()
	ProducerName = path.Base(ProducerPath)
}

type IsGenVisitor struct {
	hasYield *bool
	pkg      *packages.Package
}

// Visit checks if gengen.Yield is used inside the given AST.
// Where and how it is used is checked later, during conversion.
func (v *IsGenVisitor) Visit(n ast.Node) ast.Visitor {
	if *v.hasYield {
		// Already found a yield - no need to keep looking!
		return nil
	}
	if ident, isIdent := n.(*ast.Ident); isIdent {
		objectDefinition, exists := v.pkg.TypesInfo.Uses[ident]
		if exists && objectDefinition.Pkg() != nil {
			*v.hasYield = objectDefinition.Pkg().Path() == YieldType.PkgPath && objectDefinition.Name() == YieldType.Name
		}
		return nil
	}
	return v
}

// IsGenerator checks if a given ast.FuncDecl is a generator definition.
func IsGenerator(pkg *packages.Package, fdecl *ast.FuncDecl) (result bool) {
	results := fdecl.Type.Results
	if fdecl.Body == nil || results == nil || len(results.List) != 1 || len(results.List[0].Names) > 1 {
		return false
	}

	// Ensure the return type is a gengen.Generator
	namedType, isNamed := pkg.TypesInfo.Types[results.List[0].Type].Type.(*types.Named)
	if !isNamed || namedType.Obj().Pkg() == nil {
		return false
	}
	if namedType.Obj().Pkg().Path() != GeneratorType.PkgPath || namedType.Obj().Name() != GeneratorType.Name {
		return false
	}

	// Check for usage of gengen.Yield. If it does not exist - the function
	// may just be returning a generator.
	visitor := &IsGenVisitor{&result, pkg}
	ast.Walk(visitor, fdecl)
	return result
}

func formatSource(src []byte) []byte {
	formattedSrc, err := format.Source(src)
	if err != nil {
		// Should never happen, but can arise when developing this code.
		// The user can compile the output to see the error.
		log.Printf("warning: internal error: invalid Go generated: %s", err)
		log.Printf("warning: compile the package to analyze the error")
		return src
	}
	return formattedSrc
}

type ImportLine struct {
	Name *string
	Path string
}

func (imp ImportLine) String() string {
	if imp.Name != nil {
		return fmt.Sprintf("%s %s", *imp.Name, imp.Path)
	} else {
		return imp.Path
	}
}

type Imports []ImportLine

func (imports Imports) String() string {
	var out bytes.Buffer
	out.WriteString("import (\n")
	for _, imp := range imports {
		fmt.Fprintf(&out, "\t%s\n", imp)
	}
	out.WriteString(")\n")
	return out.String()
}

func isGeneratorSourceFile(file *ast.File) bool {
	for _, group := range file.Comments {
		if group.Pos() > file.Package {
			break
		}
		for _, comment := range group.List {
			if comment.Text == "//go:build gengen" {
				return true
			}
		}
	}
	return false
}

func getFileImports(file *ast.File) Imports {
	imports := Imports{}
	for _, importSpec := range file.Imports {
		importLine := ImportLine{}
		if importSpec.Name != nil {
			importLine.Name = &importSpec.Name.Name
		}
		importLine.Path = importSpec.Path.Value
		imports = append(imports, importLine)
	}
	return imports
}

func loadPackages(dir string, tags []string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode:       packages.NeedTypes | packages.NeedTypesInfo | packages.NeedFiles | packages.NeedSyntax | packages.NeedName | packages.NeedImports,
		Dir:        dir,
		BuildFlags: []string{fmt.Sprintf("-tags=%s", strings.Join(tags, ","))},
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, err
	}
	if packages.PrintErrors(pkgs) > 0 {
		return nil, fmt.Errorf("failed loading packages in %s", dir)
	}
	return pkgs, nil
}

// outputPath maps foo.go to foo_gengen.go.
func outputPath(filename string) string {
	return strings.TrimSuffix(filename, ".go") + "_gengen.go"
}

func generate(dir string, tags []string) error {
	pkgs, err := loadPackages(dir, tags)
	if err != nil {
		return err
	}

	wiz := NewWizard()
	for _, pkg := range pkgs {
		for _, file := range pkg.Syntax {
			// Only files that are generator source files get a generated twin.
			if !isGeneratorSourceFile(file) {
				continue
			}

			src, err := wiz.WithPackage(pkg, file).convertFile()
			if err != nil {
				return err
			}

			filepath := outputPath(pkg.Fset.Position(file.Pos()).Filename)
			if err := os.WriteFile(filepath, src, 0644); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			log.Printf("gengen: wrote %s", filepath)
		}
	}
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "gengen"
	app.Usage = "convert generator functions into resumable state machines"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "dir",
			Value: ".",
			Usage: "directory of the package to convert",
		},
		cli.StringFlag{
			Name:  "tags",
			Value: "gengen",
			Usage: "comma separated build tags selecting the generator sources",
		},
	}
	app.Action = func(c *cli.Context) error {
		return generate(c.String("dir"), strings.Split(c.String("tags"), ","))
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
