package main

import (
	"github.com/tsegab/tlang/cmd"
	_ "github.com/tsegab/tlang/modules/conv"
	_ "github.com/tsegab/tlang/modules/file"
	_ "github.com/tsegab/tlang/modules/math"
	_ "github.com/tsegab/tlang/modules/rand"
	_ "github.com/tsegab/tlang/modules/str"
)

var version = "v0.1.0"

func main() {
	cmd.Execute(version)
}
