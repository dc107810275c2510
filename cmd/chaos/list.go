package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jihwankim/chaos-harness/pkg/injection"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Args:  cobra.NoArgs,
	Short: "List registered injector names",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	registry := injection.WithDefaults(log)
	names := registry.List()
	sort.Strings(names)
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}
