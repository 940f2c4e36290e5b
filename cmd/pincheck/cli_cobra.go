package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/5w1tchy/pinguard/internal/config"
	"github.com/5w1tchy/pinguard/internal/pin"
	jwtutil "github.com/5w1tchy/pinguard/internal/security/jwt"
	"github.com/5w1tchy/pinguard/internal/validate"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// errWeak signals a WEAK verdict; main maps it to exit status 2.
type errWeak struct{}

func (errWeak) Error() string { return "pin is weak" }

func buildRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "pincheck",
		Short: "Score numeric PINs and mint service tokens for the pinguard API",
		Long: strings.TrimSpace(`pincheck runs the pinguard scorer locally.

Use "check" to classify a PIN against the common-PIN dictionary, structural
patterns and optional demographic dates, and "token" to mint a service token
for the HTTP API.`),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(newCheckCommand())
	root.AddCommand(newTokenCommand())
	return root
}

func newCheckCommand() *cobra.Command {
	var (
		demo   pin.Demographics
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "check PIN",
		Short: "Classify a PIN as STRONG or WEAK",
		Long: strings.TrimSpace(`Classify a PIN as STRONG or WEAK.

Exit status is 0 for STRONG and 2 for WEAK.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := validate.PIN(args[0])
			if err != nil {
				return err
			}
			for _, d := range []string{demo.DOB, demo.SpouseDOB, demo.Anniversary} {
				if _, err := validate.Date(d); err != nil {
					return err
				}
			}

			res := pin.Validate(p, demo)
			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(res); err != nil {
					return err
				}
			} else {
				printResult(out, res)
			}
			if !res.IsStrong() {
				return errWeak{}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&demo.DOB, "dob", "", "holder's birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&demo.SpouseDOB, "spouse-dob", "", "spouse's birth date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&demo.Anniversary, "anniversary", "", "anniversary date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")
	return cmd
}

func printResult(w io.Writer, res pin.Result) {
	verdict := color.New(color.FgGreen, color.Bold).SprintFunc()
	if !res.IsStrong() {
		verdict = color.New(color.FgRed, color.Bold).SprintFunc()
	}
	fmt.Fprintf(w, "Strength: %s\n", verdict(string(res.Strength)))
	fmt.Fprintf(w, "Score:    %d/100\n", res.SecurityScore)
	if len(res.WeaknessReasons) > 0 {
		fmt.Fprintf(w, "Reasons:  %s\n", strings.Join(res.WeaknessReasons, ", "))
	}
	if len(res.DetectedPatterns) > 0 {
		fmt.Fprintf(w, "Patterns: %s\n", color.YellowString(strings.Join(res.DetectedPatterns, ", ")))
	}
}

func newTokenCommand() *cobra.Command {
	var (
		subject string
		scopes  []string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a service token signed with AUTH_JWT_SECRET",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, err := validate.RequireBounded("subject", subject, 1, 64)
			if err != nil {
				return err
			}
			for _, s := range scopes {
				if s != jwtutil.ScopeValidate && s != jwtutil.ScopeStats {
					return fmt.Errorf("unknown scope %q", s)
				}
			}
			if ttl <= 0 {
				return fmt.Errorf("ttl must be positive")
			}

			cfg, err := config.Load(".env")
			if err != nil {
				return err
			}
			tok, jti, err := jwtutil.SignService(jwtutil.ConfigFrom(cfg), sub, scopes, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			fmt.Fprintf(cmd.ErrOrStderr(), "jti=%s expires=%s\n", jti, time.Now().Add(ttl).UTC().Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&subject, "subject", "", "calling service name")
	cmd.Flags().StringSliceVar(&scopes, "scope", []string{jwtutil.ScopeValidate}, "granted scopes (pins:validate, pins:stats)")
	cmd.Flags().DurationVar(&ttl, "ttl", 15*time.Minute, "token lifetime")
	return cmd
}
