package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/JuanPescoran/bond-valuation-app/internal/apperrors"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/projection"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/valuation"
	"github.com/spf13/cobra"
)

// errInvalidParameters is returned by validate after the violations were printed.
var errInvalidParameters = errors.New("bond parameters are invalid")

func newValidateCmd() *cobra.Command {
	var (
		userID                int64
		defaultRateType       string
		defaultCapitalization string
	)
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate bond parameters and print the backend-ready request",
		Long: `Reads BondParameters JSON from file, or stdin when no file is given, and prints the
normalized valuation request. Field violations are printed as a JSON object and the
command exits with an error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var params domain.BondParameters
			if err := decodeInput(cmd, args, &params); err != nil {
				return err
			}

			settings := domain.DefaultSettings()
			if defaultRateType != "" {
				settings.DefaultRateType = domain.RateType(defaultRateType)
			}
			if defaultCapitalization != "" {
				p := domain.Period(defaultCapitalization)
				settings.DefaultCapitalization = &p
			}
			vctx := valuation.Context{
				Session:  &domain.Session{User: domain.User{ID: userID}},
				Settings: settings.Normalize(),
			}

			req, err := valuation.NewValidator().Validate(vctx, params)
			if err != nil {
				if fields := apperrors.FieldErrors(err); fields != nil {
					if encErr := writeJSON(cmd.OutOrStdout(), fields); encErr != nil {
						return encErr
					}
					return errInvalidParameters
				}
				return err
			}
			return writeJSON(cmd.OutOrStdout(), req)
		},
	}
	cmd.Flags().Int64Var(&userID, "user-id", 1, "owner of the valuation")
	cmd.Flags().StringVar(&defaultRateType, "default-rate-type", "", "rate type applied when the input leaves it empty")
	cmd.Flags().StringVar(&defaultCapitalization, "default-capitalization", "", "capitalization applied to NOMINAL input that leaves it empty")
	return cmd
}

func newProjectCmd() *cobra.Command {
	var (
		currency string
		locale   string
	)
	cmd := &cobra.Command{
		Use:   "project [file]",
		Short: "Print totals, formatted metrics and chart series of a computed valuation",
		Long:  "Reads a ValuationResponse JSON, as returned by the valuation backend, from file or stdin.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code := domain.Currency(currency)
			if !code.Valid() {
				return fmt.Errorf("unsupported currency %q, expected %s or %s", currency, domain.CurrencyPEN, domain.CurrencyUSD)
			}
			formatter, err := projection.NewFormatter(locale)
			if err != nil {
				return err
			}

			var v domain.ValuationResponse
			if err := decodeInput(cmd, args, &v); err != nil {
				return err
			}
			if err := domain.CheckSchedule(v.FaceValue, v.CashFlow); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
			}
			return writeJSON(cmd.OutOrStdout(), formatter.Project(v, code))
		},
	}
	cmd.Flags().StringVar(&currency, "currency", string(domain.CurrencyPEN), "display currency (PEN or USD)")
	cmd.Flags().StringVar(&locale, "locale", "es-PE", "number formatting locale")
	return cmd
}

func decodeInput(cmd *cobra.Command, args []string, out any) error {
	r := cmd.InOrStdin()
	if len(args) == 1 && args[0] != "-" {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(out); err != nil {
		return fmt.Errorf("failed to decode input: %w", err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
