package analyzer

import (
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

const (
	analyzerName = "clientcalls"
	analyzerDoc  = "reports panic, log.Fatal and os.Exit outside main, and net/http client helpers outside internal/client"
)

// clientPackage is the only package allowed to talk to the backend through net/http directly.
const clientPackage = "internal/client"

// Analyzer checks for forbidden calls and stray HTTP traffic.
var Analyzer = &analysis.Analyzer{
	Name:     analyzerName,
	Doc:      analyzerDoc,
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// httpHelpers are package-level net/http members that bypass the configured client.
var httpHelpers = map[string]bool{
	"Get":           true,
	"Head":          true,
	"Post":          true,
	"PostForm":      true,
	"DefaultClient": true,
}

var fatalLoggers = map[string]bool{
	"log":                       true,
	"github.com/rs/zerolog/log": true,
}

func run(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.CallExpr)(nil),
		(*ast.SelectorExpr)(nil),
	}

	insp.Preorder(nodeFilter, func(node ast.Node) {
		switch n := node.(type) {
		case *ast.CallExpr:
			checkCall(pass, n)
		case *ast.SelectorExpr:
			checkHTTPHelper(pass, n)
		}
	})

	return nil, nil
}

func checkCall(pass *analysis.Pass, callExpr *ast.CallExpr) {
	switch fn := callExpr.Fun.(type) {
	case *ast.Ident:
		if fn.Name == "panic" && isBuiltin(pass, fn) {
			pass.Reportf(callExpr.Pos(), "panic is forbidden")
		}
	case *ast.SelectorExpr:
		pkgPath, ok := importedPath(pass, fn)
		if !ok {
			return
		}

		name := fn.Sel.Name
		switch {
		case fatalLoggers[pkgPath] && strings.HasPrefix(name, "Fatal"):
			if !isInMainFunction(pass, callExpr) {
				pass.Reportf(callExpr.Pos(), "log.%s is forbidden outside main function", name)
			}
		case pkgPath == "os" && name == "Exit":
			if !isInMainFunction(pass, callExpr) {
				pass.Reportf(callExpr.Pos(), "os.Exit is forbidden outside main function")
			}
		}
	}
}

func checkHTTPHelper(pass *analysis.Pass, sel *ast.SelectorExpr) {
	if !httpHelpers[sel.Sel.Name] {
		return
	}

	pkgPath, ok := importedPath(pass, sel)
	if !ok || pkgPath != "net/http" {
		return
	}

	if isClientPackage(pass.Pkg.Path()) || isTestFile(pass, sel.Pos()) {
		return
	}

	pass.Reportf(sel.Pos(), "http.%s is forbidden outside %s, use the configured client", sel.Sel.Name, clientPackage)
}

// importedPath returns the import path when sel is a qualified identifier like pkg.Name.
func importedPath(pass *analysis.Pass, sel *ast.SelectorExpr) (string, bool) {
	ident, ok := sel.X.(*ast.Ident)
	if !ok || pass.TypesInfo == nil {
		return "", false
	}

	pkgName, ok := pass.TypesInfo.Uses[ident].(*types.PkgName)
	if !ok {
		return "", false
	}

	return pkgName.Imported().Path(), true
}

func isBuiltin(pass *analysis.Pass, ident *ast.Ident) bool {
	if pass.TypesInfo == nil {
		return true
	}
	_, ok := pass.TypesInfo.Uses[ident].(*types.Builtin)
	return ok
}

func isClientPackage(path string) bool {
	return path == clientPackage || strings.HasSuffix(path, "/"+clientPackage)
}

func isTestFile(pass *analysis.Pass, pos token.Pos) bool {
	return strings.HasSuffix(pass.Fset.Position(pos).Filename, "_test.go")
}

func isInMainFunction(pass *analysis.Pass, node ast.Node) bool {
	for _, f := range pass.Files {
		for _, decl := range f.Decls {
			if funcDecl, ok := decl.(*ast.FuncDecl); ok {
				if funcDecl.Recv == nil && funcDecl.Name.Name == "main" && isNodeInsideFunc(node, funcDecl) {
					return true
				}
			}
		}
	}
	return false
}

func isNodeInsideFunc(target ast.Node, funcDecl *ast.FuncDecl) bool {
	if funcDecl.Body == nil {
		return false
	}

	found := false
	ast.Inspect(funcDecl.Body, func(n ast.Node) bool {
		if n == target {
			found = true
			return false
		}
		return true
	})
	return found
}
