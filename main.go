package main

import (
	_ "embed"

	"github.com/safedocs/doc-audit-service/cmd"
)

//go:embed config/config.yaml
var c string

func main() {
	cmd.Execute(c)
}
