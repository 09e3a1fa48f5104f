package app

import (
	"github.com/spf13/cobra"

	"github.com/xab-mack/metaast/internal/cli"
)

func BuildRoot() *cobra.Command {
	root := &cobra.Command{Use: "metaast", Short: "Language-agnostic MetaAST static analysis runner"}
	cli.AddCommands(root)
	return root
}
