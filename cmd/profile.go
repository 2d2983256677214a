package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Inspect stored student profiles",
}

var profileShowCmd = &cobra.Command{
	Use:   "show <email>",
	Short: "Print the stored profile for an email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		svc, err := buildServices(ctx, cfg, zap.NewNop(), false)
		if err != nil {
			return err
		}
		defer svc.Close()

		p, err := svc.Profiles.Get(ctx, args[0])
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}
		if p == nil {
			return fmt.Errorf("no profile for %s", args[0])
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		}

		fmt.Fprintf(out, "Email:     %s\n", p.Email)
		fmt.Fprintf(out, "Reports:   %d\n", p.Reports)
		fmt.Fprintf(out, "Updated:   %s\n", p.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Fprintln(out)
		fmt.Fprintln(out, p.Conclusion)
		fmt.Fprintln(out)
		for i, title := range p.Recommendations {
			fmt.Fprintf(out, "  %d. %s\n", i+1, title)
		}
		return nil
	},
}

func init() {
	profileShowCmd.Flags().Bool("json", false, "Print the profile as JSON")
	profileCmd.AddCommand(profileShowCmd)
}
