package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/mindwell/internal/schemas"
	"github.com/spf13/cobra"
)

// errValidationFailed is returned after the failures have been printed.
var errValidationFailed = errors.New("validation failed")

func newValidateCmd() *cobra.Command {
	var (
		schemaName string
		jsonPath   string
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a JSON file against a built-in schema",
		Long:  fmt.Sprintf("Validate a scene or quiz question file. Schemas: %s.", strings.Join(schemas.Names(), ", ")),
		RunE: func(cmd *cobra.Command, _ []string) error {
			name := schemaName
			if !strings.HasSuffix(name, ".schema.json") {
				name += ".schema.json"
			}
			err := schemas.ValidateFile(name, jsonPath)
			var ve *schemas.ValidationError
			switch {
			case err == nil:
				fmt.Fprintln(cmd.OutOrStdout(), "Validation passed")
				return nil
			case errors.As(err, &ve):
				fmt.Fprintln(cmd.OutOrStdout(), "Validation failed:")
				fmt.Fprintln(cmd.OutOrStdout(), ve.Summary())
				return errValidationFailed
			default:
				return err
			}
		},
	}
	cmd.Flags().StringVar(&schemaName, "schema", "", "Schema name, e.g. scene or quiz_questions (required)")
	cmd.Flags().StringVar(&jsonPath, "json", "", "Path to the JSON file (required)")
	_ = cmd.MarkFlagRequired("schema")
	_ = cmd.MarkFlagRequired("json")
	return cmd
}
