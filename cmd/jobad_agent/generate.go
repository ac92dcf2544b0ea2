package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobad-assistant/internal/generation"
	"github.com/jonathan/jobad-assistant/internal/ingestion"
	"github.com/jonathan/jobad-assistant/internal/observability"
	"github.com/jonathan/jobad-assistant/internal/rendering"
	"github.com/jonathan/jobad-assistant/internal/types"
)

// draftFlags maps each draft field to its flag name.
var draftFlags = []struct {
	name  string
	usage string
	field func(*types.Draft) *string
}{
	{"raw", "Raw pasted ad text", func(d *types.Draft) *string { return &d.Raw }},
	{"title", "Ad title", func(d *types.Draft) *string { return &d.Title }},
	{"description", "General description draft", func(d *types.Draft) *string { return &d.Description }},
	{"responsibilities", "Responsibilities draft", func(d *types.Draft) *string { return &d.Responsibilities }},
	{"qualifications", "Qualifications draft", func(d *types.Draft) *string { return &d.Qualifications }},
	{"education", "Education levels draft", func(d *types.Draft) *string { return &d.Education }},
	{"benefits", "Extra benefits", func(d *types.Draft) *string { return &d.Benefits }},
	{"location", "Work location", func(d *types.Draft) *string { return &d.Location }},
	{"contract", "Contract type", func(d *types.Draft) *string { return &d.Contract }},
}

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Rewrite one draft into a structured job ad",
		Long: `Rewrite a recruiter draft into a structured job ad and print it.
The draft comes from --in (txt, md, pdf or docx), from the per-field flags, or both;
field flags win over the values found in the file.`,
		Args: cobra.NoArgs,
		RunE: runGenerate,
	}

	f := cmd.Flags()
	f.StringP("in", "i", "", "Draft document (.txt, .md, .pdf, .docx)")
	for _, df := range draftFlags {
		f.String(df.name, "", df.usage)
	}
	f.StringSlice("tone", nil, "Tone tags, repeatable or comma separated (default from config)")
	f.Bool("no-bullets", false, "Avoid bullet lists unless indispensable")
	f.String("model", "", "Model from the provider menu")
	f.Float64("temperature", 0, "Sampling temperature in [0, 1]")
	f.Int("max-tokens", 0, "Output token limit in [256, 4000]")
	f.String("out-md", "", "Write the ad as Markdown to this path")
	f.String("out-txt", "", "Write the full ad text to this path")
	f.Bool("dry-run", false, "Print the two prompts without calling the model")
	return cmd
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	req, err := generateRequest(cmd, a)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printer := observability.NewPrinter(out)

	if dryRun, _ := cmd.Flags().GetBool("dry-run"); dryRun {
		system, user, err := a.generator.Prompts(req)
		if err != nil {
			return err
		}
		printPrompts(out, system, user)
		return nil
	}

	result, err := a.generator.Generate(ctx, req)
	if err != nil {
		return err
	}

	for _, w := range result.Warnings {
		printer.PrintWarning(w)
	}
	if result.Fallback() {
		printer.PrintWarning("La risposta non era JSON valido. Mostro il testo grezzo qui sotto.")
		printer.PrintRaw(result.Raw)
		printer.PrintNote("Nessun file esportato: la risposta non è strutturata.")
		return nil
	}
	printer.PrintAd(result.Ad)

	return writeExports(cmd, printer, result.Ad)
}

// generateRequest assembles the draft, style and parameters from the file, the flags and config.
func generateRequest(cmd *cobra.Command, a *app) (generation.Request, error) {
	f := cmd.Flags()

	var draft types.Draft
	for _, df := range draftFlags {
		*df.field(&draft), _ = f.GetString(df.name)
	}
	if in, _ := f.GetString("in"); in != "" {
		doc, err := ingestion.ReadFile(in)
		if err != nil {
			return generation.Request{}, err
		}
		a.logger.Debug("draft document loaded", "path", in, "format", doc.Metadata.Format, "chars", len(doc.Text))
		draft = draft.Merge(ingestion.SplitDraft(doc.Text))
	}

	style := a.cfg.StyleOptions()
	if f.Changed("tone") {
		values, _ := f.GetStringSlice("tone")
		tones, err := types.ParseToneTags(values)
		if err != nil {
			return generation.Request{}, &generation.ValidationError{Fields: []generation.FieldError{{Field: "tones", Message: err.Error()}}}
		}
		style.Tones = tones
	}
	if noBullets, _ := f.GetBool("no-bullets"); noBullets {
		style.Bullets = false
	}

	params := a.defaultParams()
	if model, _ := f.GetString("model"); model != "" {
		params.Model = model
	}
	if f.Changed("temperature") {
		params.Temperature, _ = f.GetFloat64("temperature")
	}
	if f.Changed("max-tokens") {
		params.MaxTokens, _ = f.GetInt("max-tokens")
	}

	return generation.Request{Draft: draft, Style: style, Params: params}, nil
}

func writeExports(cmd *cobra.Command, printer *observability.Printer, ad *types.GeneratedAd) error {
	mdPath, _ := cmd.Flags().GetString("out-md")
	txtPath, _ := cmd.Flags().GetString("out-txt")

	var errs []error
	if mdPath != "" {
		if err := rendering.WriteExport(mdPath, rendering.Markdown(ad, "")); err != nil {
			errs = append(errs, err)
		} else {
			printer.PrintNote("Markdown salvato in " + mdPath)
		}
	}
	if txtPath != "" {
		if err := rendering.WriteExport(txtPath, rendering.Text(ad, "")); err != nil {
			errs = append(errs, err)
		} else {
			printer.PrintNote("Testo salvato in " + txtPath)
		}
	}
	return errors.Join(errs...)
}

//nolint:errcheck // writing to stdout
func printPrompts(out io.Writer, system, user string) {
	fmt.Fprintln(out, "=== system ===")
	fmt.Fprintln(out, system)
	fmt.Fprintln(out, "=== user ===")
	fmt.Fprintln(out, user)
}
