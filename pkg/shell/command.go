package shell

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

const unsafeChars = " \t\n$'\"`*?[]~\\;&|<>(){}#!"

// CallExpr turns an argument list into a call expression. Arguments are never
// subject to expansion or globbing when the expression is executed.
func CallExpr(args ...string) *syntax.CallExpr {
	cmd := new(syntax.CallExpr)
	cmd.Args = make([]*syntax.Word, len(args))

	for a, arg := range args {
		cmd.Args[a] = new(syntax.Word)
		cmd.Args[a].Parts = wordParts(arg)
	}

	return cmd
}

func wordParts(arg string) []syntax.WordPart {
	if arg != "" && !strings.ContainsAny(arg, unsafeChars) {
		return []syntax.WordPart{&syntax.Lit{Value: arg}}
	}
	if !strings.Contains(arg, "'") {
		return []syntax.WordPart{&syntax.SglQuoted{Value: arg}}
	}

	// a single quote can't appear inside '...', so it's emitted as \' between the quoted segments
	parts := make([]syntax.WordPart, 0)
	for i, segment := range strings.Split(arg, "'") {
		if i > 0 {
			parts = append(parts, &syntax.Lit{Value: "\\'"})
		}
		if segment != "" {
			parts = append(parts, &syntax.SglQuoted{Value: segment})
		}
	}

	return parts
}

// Format returns the printed shell form of the given command.
func Format(args ...string) string {
	printer := syntax.NewPrinter(
		syntax.Minify(true),
	)

	strBuffer := strings.Builder{}
	err := printer.Print(&strBuffer, &syntax.Stmt{Cmd: CallExpr(args...)})
	if err != nil {
		return strings.Join(args, " ")
	}

	return strings.TrimSpace(strBuffer.String())
}
