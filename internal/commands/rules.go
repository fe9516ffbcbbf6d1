package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spendtrack-dev/spendtrack/internal/accounts"
)

func newRulesCommand(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rules [account]",
		Short: "List account profiles and their category patterns",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, err := g.load()
			if err != nil {
				return err
			}

			profiles := svc.All()
			if len(args) > 0 {
				p, err := svc.Get(args[0])
				if err != nil {
					return err
				}
				profiles = []accounts.Profile{p}
			}

			w := cmd.OutOrStdout()
			for i, p := range profiles {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintf(w, "%s (%s), files matching: %s\n", p.Name, p.Rules.Policy(), strings.Join(p.Match, ", "))
				for _, spec := range p.Rules.Specs() {
					if len(spec.Patterns) == 0 {
						fmt.Fprintf(w, "  %s: (no patterns)\n", spec.Name)
						continue
					}
					fmt.Fprintf(w, "  %s: %s\n", spec.Name, strings.Join(spec.Patterns, " | "))
				}
			}
			return nil
		},
	}
}
