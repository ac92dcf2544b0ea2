package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobad-assistant/internal/config"
	"github.com/jonathan/jobad-assistant/internal/observability"
	"github.com/jonathan/jobad-assistant/internal/parsing"
	"github.com/jonathan/jobad-assistant/internal/schemas"
	"github.com/jonathan/jobad-assistant/internal/types"
)

func newRecoverCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Recover the ad record from a saved model reply",
		Long: `Run the recovery parser on a saved model reply and print the normalized record as JSON.
Exits non-zero when the reply holds no usable record.`,
		Args: cobra.NoArgs,
		RunE: runRecover,
	}
	cmd.Flags().StringP("in", "i", "", "Saved model reply; - reads stdin")
	cmd.Flags().String("schema", "", "Ad shape (full or minimal); default from config")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

func runRecover(cmd *cobra.Command, _ []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Resolve(configPath, getenv)
	if err != nil {
		return err
	}

	shape := cfg.Shape()
	if s, _ := cmd.Flags().GetString("schema"); s != "" {
		if shape, err = types.ParseAdShape(s); err != nil {
			return err
		}
	}

	in, _ := cmd.Flags().GetString("in")
	raw, err := readReply(cmd.InOrStdin(), in)
	if err != nil {
		return err
	}

	ad, record, err := parsing.ParseAd(raw, shape)
	if err != nil {
		return err
	}

	var invalid *schemas.ValidationError
	if err := schemas.ValidateAd(shape, record); errors.As(err, &invalid) {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		for _, w := range invalid.Warnings() {
			printer.PrintWarning(w)
		}
	} else if err != nil {
		return err
	}

	out, err := json.MarshalIndent(ad, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ad: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return err
}

func readReply(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read reply file: %w", err)
	}
	return string(data), nil
}
