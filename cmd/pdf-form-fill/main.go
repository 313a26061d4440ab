package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/a3tai/mcp-pdf-formfill/internal/form"
	"github.com/a3tai/mcp-pdf-formfill/internal/pdf"
)

type options struct {
	list            bool
	format          string
	values          string
	choices         []string
	out             string
	needAppearances bool
	verbose         bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	var opts options

	flags := pflag.NewFlagSet("pdf-form-fill", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.BoolVar(&opts.list, "list", false, "Print every field with its type and state")
	flags.StringVar(&opts.format, "format", "text", "Output format of --list: text, json, yaml")
	flags.StringVar(&opts.values, "values", "", "YAML or JSON file mapping field names to values")
	flags.StringArrayVar(&opts.choices, "choice", nil, "Select options of a choice field: name=option[,option...]")
	flags.StringVarP(&opts.out, "out", "o", "", "Write the filled form to this file")
	flags.BoolVar(&opts.needAppearances, "need-appearances", false, "Ask viewers to regenerate field appearances")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log skipped fields to stderr")
	flags.Usage = func() {
		fmt.Fprintf(stderr, "PDF Form Fill - inspect and fill AcroForm fields\n\n")
		fmt.Fprintf(stderr, "USAGE:\n  pdf-form-fill [options] <file.pdf>\n\nOPTIONS:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nEXAMPLES:\n")
		fmt.Fprintf(stderr, "  pdf-form-fill --list w9.pdf\n")
		fmt.Fprintf(stderr, "  pdf-form-fill --values answers.yaml --out filled.pdf w9.pdf\n")
		fmt.Fprintf(stderr, "  pdf-form-fill --choice Fruit=Apple,Cherry --out filled.pdf order.pdf\n")
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		return 2
	}
	if flags.NArg() != 1 {
		fmt.Fprintf(stderr, "Error: exactly one PDF file path required\n\n")
		flags.Usage()
		return 2
	}

	if err := execute(flags.Arg(0), opts, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func execute(path string, opts options, stdout, stderr io.Writer) error {
	fill := opts.values != "" || len(opts.choices) > 0
	if !opts.list && !fill {
		return errors.New("nothing to do: use --list, --values or --choice")
	}
	if fill && opts.out == "" {
		return errors.New("--out is required when filling")
	}

	logOutput := io.Discard
	if opts.verbose {
		logOutput = stderr
	}

	f, err := form.LoadFile(path,
		form.WithLogger(log.New(logOutput, "pdf-form-fill: ", 0)),
		form.WithNeedAppearances(opts.needAppearances))
	if err != nil {
		return err
	}

	if opts.values != "" {
		data, err := os.ReadFile(opts.values)
		if err != nil {
			return fmt.Errorf("cannot read values: %w", err)
		}
		values, err := pdf.ParseValues(data)
		if err != nil {
			return err
		}
		if err := f.Fill(values); err != nil {
			return err
		}
	}

	for _, c := range opts.choices {
		name, list, ok := strings.Cut(c, "=")
		if !ok {
			return fmt.Errorf("invalid --choice %q: want name=option[,option...]", c)
		}
		var selected []string
		if list != "" {
			selected = strings.Split(list, ",")
		}
		if err := f.SetChoice(name, selected); err != nil {
			return err
		}
	}

	if fill {
		if err := f.SaveFile(opts.out); err != nil {
			return err
		}
	}

	if opts.list {
		return list(f, opts.format, stdout)
	}
	return nil
}

type listedField struct {
	Name  string          `json:"name" yaml:"name"`
	Type  string          `json:"type" yaml:"type"`
	State form.FieldState `json:"state" yaml:"state"`
}

func list(f *form.Form, format string, w io.Writer) error {
	fields := make([]listedField, 0, f.Len())
	for _, name := range f.FieldNames() {
		t, err := f.Type(name)
		if err != nil {
			return err
		}
		state, err := f.State(name)
		if err != nil {
			return err
		}
		fields = append(fields, listedField{Name: name, Type: t.String(), State: state})
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(fields)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(fields)
	case "text":
		for _, field := range fields {
			fmt.Fprintf(w, "%s\t%s\t%s\n", field.Name, field.Type, describe(field.State))
		}
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func describe(state form.FieldState) string {
	switch st := state.(type) {
	case form.TextState:
		return fmt.Sprintf("%q", st.Text)
	case form.CheckBoxState:
		if st.Checked {
			return "checked"
		}
		return "unchecked"
	case form.RadioState:
		return fmt.Sprintf("%s of [%s]", st.Selected, strings.Join(st.Options, " "))
	case form.ListBoxState:
		return fmt.Sprintf("[%s] of [%s]", strings.Join(st.Selected, " "), strings.Join(st.Options, " "))
	case form.ComboBoxState:
		return fmt.Sprintf("[%s] of [%s]", strings.Join(st.Selected, " "), strings.Join(st.Options, " "))
	default:
		return "-"
	}
}
