package main

import (
	"go/ast"
	"testing"
)

type stmtNamer struct{}

func (stmtNamer) GenericAstVisitor() string                   { return "" }
func (stmtNamer) VisitReturnStmt(node *ast.ReturnStmt) string { return "return" }
func (stmtNamer) VisitExprStmt(node *ast.ExprStmt) string     { return "expr" }

func TestGenericVisit(t *testing.T) {
	visit := GenericVisit[string](stmtNamer{}, &ast.ReturnStmt{})
	if visit == nil {
		t.Fatal("Expected a visitor for *ast.ReturnStmt")
	}
	if got := visit(); got != "return" {
		t.Errorf("visit() = %q, want %q", got, "return")
	}

	visit = GenericVisit[string](stmtNamer{}, &ast.ExprStmt{X: ast.NewIdent("a")})
	if visit == nil || visit() != "expr" {
		t.Error("Expected the *ast.ExprStmt visitor")
	}

	if GenericVisit[string](stmtNamer{}, ast.NewIdent("a")) != nil {
		t.Error("There should be no visitor for *ast.Ident")
	}
}

type nilErrors struct{}

func (nilErrors) GenericAstVisitor() error                    { return nil }
func (nilErrors) VisitReturnStmt(node *ast.ReturnStmt) error { return nil }

func TestGenericVisitNilInterface(t *testing.T) {
	visit := GenericVisit[error](nilErrors{}, &ast.ReturnStmt{})
	if err := visit(); err != nil {
		t.Errorf("visit() = %v, want nil", err)
	}
}
