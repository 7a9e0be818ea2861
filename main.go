package main

import (
	"github.com/nicolasmendonca/raptor-redux/cmd"
	"github.com/nicolasmendonca/raptor-redux/internal/site"
)

func main() {
	cmd.Execute(site.Config(), site.Hooks()...)
}
