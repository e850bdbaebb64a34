package main

import (
	"go/ast"
	"log"
	"reflect"
)

// GenericAstVisitor is implemented by types that handle AST nodes through
// methods named after the node type: a *ast.ReturnStmt is handled by
// VisitReturnStmt(*ast.ReturnStmt) T.
type GenericAstVisitor[T any] interface {
	GenericAstVisitor() T
}

// GenericVisit finds the handler of v for node. It returns nil when v has
// no handler for that node type.
func GenericVisit[T any](v GenericAstVisitor[T], node ast.Node) func() T {
	nodeType := reflect.TypeOf(node)
	visitorValue := reflect.ValueOf(v)
	methodValue := visitorValue.MethodByName("Visit" + nodeType.Elem().Name())
	if !methodValue.IsValid() {
		return nil
	}

	argType := methodValue.Type().In(0)
	if argType != nodeType {
		log.Fatalf("Function should accept %s but accepts %s instead.", argType, nodeType)
	}

	nodeValue := reflect.ValueOf(node)
	return func() T {
		// A nil interface result doesn't survive the type assertion.
		result, _ := methodValue.Call([]reflect.Value{nodeValue})[0].Interface().(T)
		return result
	}
}
