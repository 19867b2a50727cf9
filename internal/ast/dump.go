package ast

import (
	"regexp"

	"github.com/sanity-io/litter"
)

// Empty slices may share an address, so pointer replacement would show
// distinct lists as references to one another.
var dumpOptions = litter.Options{
	StripPackageNames:         true,
	HideZeroValues:            true,
	DisablePointerReplacement: true,
	FieldExclusions:           regexp.MustCompile(`^StartToken$`),
}

// Dump renders node as an indented Go-literal tree without token positions.
func Dump(node AstNode) string {
	return dumpOptions.Sdump(node)
}
