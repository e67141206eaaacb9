package main

import (
	"encoding/json"
	"fmt"

	"github.com/goran-ethernal/MailboxIndexor/pkg/config"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the configuration file",
	Long: `Schema emits a JSON schema describing the configuration file format, usable
for editor completion and config validation in CI.`,
	RunE: runSchema,
}

func runSchema(cmd *cobra.Command, args []string) error {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: false,
	}

	schema := reflector.Reflect(&config.Config{})
	schema.Title = "MailboxIndexor configuration"

	out, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return err
	}

	fmt.Println(string(out))
	return nil
}
