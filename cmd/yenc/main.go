package main

import (
	"github.com/spf13/cobra"

	"github.com/zostay/go-yenc/cmd/yenc/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
