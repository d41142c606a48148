package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ontos-ai/ontos/internal/config"
)

func newProvidersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List known model providers and their credential status",
		Args:  cobra.NoArgs,
		RunE:  runProviders,
	}
}

func runProviders(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tWIRE SHAPE\tMODEL\tCREDENTIAL")
	for _, name := range cfg.ProviderNames() {
		spec, err := cfg.Provider(name)
		if err != nil {
			return err
		}
		status := "missing"
		if cfg.ResolveCredential(spec.CredentialEnvVar) != "" {
			status = "ok"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s (%s)\n",
			name, spec.WireShape, spec.Model, status, spec.CredentialEnvVar)
	}
	return w.Flush()
}
