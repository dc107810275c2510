package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jihwankim/chaos-harness/pkg/scenario/parser"
	"github.com/jihwankim/chaos-harness/pkg/scenario/validator"
)

var validateCmd = &cobra.Command{
	Use:   "validate <scenario-file>",
	Args:  cobra.ExactArgs(1),
	Short: "Parse and validate a scenario file without running it",
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	p := parser.New(nil)
	sc, err := p.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to parse scenario: %w", err)
	}

	v := validator.New()
	validateErr := v.Validate(sc)
	fmt.Print(v.GetReport())

	if validateErr != nil {
		return validateErr
	}

	fmt.Printf("scenario %q is valid\n", sc.Name)
	return nil
}
