package main

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
)

// OsExitAnalyzer reports os.Exit calls anywhere but func main of a main package.
var OsExitAnalyzer = &analysis.Analyzer{
	Name: "osexit",
	Doc:  "reports os.Exit calls outside func main",
	Run:  runOsExit,
}

func runOsExit(pass *analysis.Pass) (interface{}, error) {
	for _, file := range pass.Files {
		for _, decl := range file.Decls {
			fn, ok := decl.(*ast.FuncDecl)
			allowed := ok && pass.Pkg.Name() == "main" && fn.Recv == nil && fn.Name.Name == "main"
			if allowed {
				continue
			}
			ast.Inspect(decl, func(node ast.Node) bool {
				call, ok := node.(*ast.CallExpr)
				if !ok {
					return true
				}
				sel, ok := call.Fun.(*ast.SelectorExpr)
				if !ok {
					return true
				}
				if isOsExit(pass.TypesInfo.Uses[sel.Sel]) {
					pass.Reportf(call.Pos(), "os.Exit call outside func main")
				}
				return true
			})
		}
	}
	return nil, nil
}

func isOsExit(obj types.Object) bool {
	fn, ok := obj.(*types.Func)
	return ok && fn.Pkg() != nil && fn.Pkg().Path() == "os" && fn.Name() == "Exit"
}
