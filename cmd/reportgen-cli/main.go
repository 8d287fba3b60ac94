package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/goliatone/go-reportgen/pkg/formdata"
	"github.com/goliatone/go-reportgen/pkg/logging"
	"github.com/goliatone/go-reportgen/pkg/render"
	"github.com/goliatone/go-reportgen/pkg/report"
	"github.com/goliatone/go-reportgen/pkg/schema"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "reportgen: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("reportgen-cli", pflag.ContinueOnError)
	flags.String("data", "", "form data JSON file (required)")
	flags.String("schemas", "", "directory of form schema files")
	flags.String("schema-id", "", "explicit schema id")
	flags.String("title", "", "report title")
	flags.String("renderer", "", "renderer name (default: auto)")
	flags.String("output", "", "output file (stdout if empty)")
	flags.String("generated-by", "", "footer caption user name")
	flags.Int("text-limit", 0, "textarea truncation budget")
	flags.Bool("validate", false, "validate the generated artifact")
	flags.Bool("interactive", false, "prompt for missing inputs")
	flags.Bool("verbose", false, "log to stderr")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}

	v := viper.New()
	v.SetEnvPrefix("REPORTGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return err
	}

	if v.GetBool("verbose") {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	if v.GetBool("interactive") {
		if err := promptMissing(v); err != nil {
			return err
		}
	}

	dataPath := v.GetString("data")
	if dataPath == "" {
		return fmt.Errorf("--data is required")
	}
	payload, err := os.ReadFile(dataPath)
	if err != nil {
		return fmt.Errorf("read data: %w", err)
	}
	var data formdata.FormData
	if err := json.Unmarshal(payload, &data); err != nil {
		return fmt.Errorf("parse data: %w", err)
	}

	var options []report.Option
	if dir := v.GetString("schemas"); dir != "" {
		store, err := schema.LoadFS(os.DirFS(dir))
		if err != nil {
			return fmt.Errorf("load schemas: %w", err)
		}
		if v.GetBool("interactive") && v.GetString("schema-id") == "" {
			if err := promptSchema(v, store); err != nil {
				return err
			}
		}
		options = append(options, report.WithSchemaLookup(store))
	}
	if v.GetBool("validate") {
		options = append(options, report.WithValidation())
	}

	gen := report.New(options...)
	result, err := gen.Generate(context.Background(), report.Request{
		Title:    v.GetString("title"),
		Data:     data,
		SchemaID: v.GetString("schema-id"),
		Renderer: v.GetString("renderer"),
		RenderOptions: render.RenderOptions{
			GeneratedBy: v.GetString("generated-by"),
			TextLimit:   v.GetInt("text-limit"),
		},
	})
	if err != nil {
		return err
	}

	target := v.GetString("output")
	if target == "" {
		target = result.Filename
	}
	if target == "-" {
		_, err = os.Stdout.Write(result.PDF)
		return err
	}
	if err := os.WriteFile(target, result.PDF, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("Report written to %s (%s, %d bytes)\n", target, result.Renderer, len(result.PDF))
	return nil
}

// promptMissing asks for the inputs the flags and environment left empty.
func promptMissing(v *viper.Viper) error {
	if v.GetString("data") == "" {
		var path string
		if err := survey.AskOne(&survey.Input{Message: "Form data file:"}, &path, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
		v.Set("data", path)
	}
	if v.GetString("title") == "" {
		var title string
		if err := survey.AskOne(&survey.Input{Message: "Report title:"}, &title); err != nil {
			return err
		}
		v.Set("title", title)
	}
	return nil
}

// promptSchema lets the user pick a schema when the directory holds more than
// one and no id was given. The auto option keeps the orchestrator's own
// resolution (embedded id, then title match).
func promptSchema(v *viper.Viper, store *schema.Store) error {
	ids := store.IDs()
	if len(ids) < 2 {
		return nil
	}

	choices := append([]string{"(auto)"}, ids...)
	var picked string
	if err := survey.AskOne(&survey.Select{Message: "Schema:", Options: choices}, &picked); err != nil {
		return err
	}
	if picked != "(auto)" {
		v.Set("schema-id", picked)
	}
	return nil
}
