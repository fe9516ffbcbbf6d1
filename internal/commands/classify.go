package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spendtrack-dev/spendtrack/internal/classify"
	"github.com/spendtrack-dev/spendtrack/internal/rules"
)

func newClassifyCommand(g *globalOptions) *cobra.Command {
	var (
		account string
		policy  string
	)

	cmd := &cobra.Command{
		Use:   "classify <description>",
		Short: "Print the category a transaction description resolves to",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, svc, err := g.load()
			if err != nil {
				return err
			}
			profile, err := svc.Get(account)
			if err != nil {
				return err
			}

			p := profile.Rules.Policy()
			if policy != "" {
				if p, err = rules.ParsePolicy(policy); err != nil {
					return err
				}
			}

			description := strings.Join(args, " ")
			fmt.Fprintln(cmd.OutOrStdout(), classify.Classify(description, profile.Rules, p))
			return nil
		},
	}

	cmd.Flags().StringVarP(&account, "account", "a", "checking", "account profile whose rules are applied")
	cmd.Flags().StringVar(&policy, "policy", "", "override the account policy (first-match, best-score)")

	return cmd
}
