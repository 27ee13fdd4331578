package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/reoring/jsonapiv"
	"github.com/reoring/jsonapiv/i18n"
	"github.com/reoring/jsonapiv/internal/console"
	"github.com/reoring/jsonapiv/render"
)

type validateOptions struct {
	typ         string
	id          string
	require     []string
	allow       []string
	hasOne      []string
	hasMany     []string
	lang        string
	maxDepth    int
	maxBytes    int64
	duplicates  string
	concurrency int
	yaml        bool
	jsonOut     bool
	configPath  string
}

func newValidateCmd() *cobra.Command {
	o := &validateOptions{}
	cmd := &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate request documents against a resource shape",
		Long:  `Validate JSON:API request documents against a resource shape described
by flags.

Examples:
  jsonapiv validate --type posts --require title,body post.json
  jsonapiv validate --type posts --id 5 --has-one author:users update.json
  jsonapiv validate --type posts --has-many tags:tags --json *.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(o.configPath, cmd.Flags().Changed("config"))
			if err != nil {
				return err
			}
			o.merge(cmd, cfg)
			return runValidate(cmd.Context(), cmd.OutOrStdout(), o, args)
		},
	}
	f := cmd.Flags()
	f.StringVar(&o.typ, "type", "", "expected resource type")
	f.StringVar(&o.id, "id", "", "expected resource id (update requests)")
	f.StringSliceVar(&o.require, "require", nil, "required attributes")
	f.StringSliceVar(&o.allow, "allow", nil, "allowed attributes; other attributes are rejected")
	f.StringArrayVar(&o.hasOne, "has-one", nil, "to-one relationship as name:type, repeatable; type may be t1|t2")
	f.StringArrayVar(&o.hasMany, "has-many", nil, "to-many relationship as name:type, repeatable; type may be t1|t2")
	f.StringVar(&o.lang, "lang", "", "message language ("+strings.Join(i18n.Languages(), ", ")+")")
	f.IntVar(&o.maxDepth, "max-depth", 0, "maximum nesting depth")
	f.Int64Var(&o.maxBytes, "max-bytes", 0, "maximum document size in bytes")
	f.StringVar(&o.duplicates, "duplicate-keys", "", "duplicate member handling: ignore, warn or error")
	f.IntVarP(&o.concurrency, "jobs", "j", 0, "files validated concurrently")
	f.BoolVar(&o.yaml, "yaml", false, "read documents as YAML regardless of extension")
	f.BoolVar(&o.jsonOut, "json", false, "print JSON:API error documents, one line per file")
	f.StringVar(&o.configPath, "config", defaultConfigFile, "config file")
	_ = cmd.MarkFlagRequired("type")
	return cmd
}

// merge fills options the user did not set on the command line from cfg.
func (o *validateOptions) merge(cmd *cobra.Command, cfg fileConfig) {
	f := cmd.Flags()
	if !f.Changed("lang") {
		o.lang = cfg.Language
	}
	if !f.Changed("max-depth") {
		o.maxDepth = cfg.MaxDepth
	}
	if !f.Changed("max-bytes") {
		o.maxBytes = cfg.MaxBytes
	}
	if !f.Changed("duplicate-keys") {
		o.duplicates = cfg.DuplicateKeys
	}
	if !f.Changed("jobs") {
		o.concurrency = cfg.Concurrency
	}
}

// buildValidator assembles the document validator described by the flags.
func buildValidator(o *validateOptions) (jsonapiv.Validator, error) {
	if o.typ == "" {
		return nil, errors.New("--type is required")
	}
	attrs := jsonapiv.Attributes()
	if o.allow != nil {
		attrs.Allow(append(append([]string(nil), o.allow...), o.require...)...)
	}
	attrs.Require(o.require...)
	opts := []jsonapiv.ResourceOption{jsonapiv.WithAttributes(attrs.Build())}
	if o.id != "" {
		opts = append(opts, jsonapiv.ExpectID(o.id))
	}

	if len(o.hasOne)+len(o.hasMany) > 0 {
		rels := jsonapiv.Relationships()
		for _, spec := range o.hasOne {
			name, types, err := splitRelationship(spec)
			if err != nil {
				return nil, err
			}
			rels.Allow(name).Field(name, jsonapiv.HasOne(types[0], jsonapiv.OrType(types[1:]...)))
		}
		for _, spec := range o.hasMany {
			name, types, err := splitRelationship(spec)
			if err != nil {
				return nil, err
			}
			rels.Allow(name).Field(name, jsonapiv.HasMany(types[0], jsonapiv.OrType(types[1:]...)))
		}
		opts = append(opts, jsonapiv.WithRelationships(rels.Build()))
	}
	return jsonapiv.Document(jsonapiv.Resource(o.typ, opts...)), nil
}

// splitRelationship parses "name:type" or "name:t1|t2".
func splitRelationship(spec string) (string, []string, error) {
	name, typ, ok := strings.Cut(spec, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", nil, errors.Errorf("relationship %q: expected name:type", spec)
	}
	var types []string
	for _, t := range strings.Split(typ, "|") {
		if t = strings.TrimSpace(t); t != "" {
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		return "", nil, errors.Errorf("relationship %q: missing type", spec)
	}
	return name, types, nil
}

type fileResult struct {
	file     string
	errs     jsonapiv.Errors
	warnings jsonapiv.Errors
	err      error
}

func runValidate(ctx context.Context, out io.Writer, o *validateOptions, files []string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	v, err := buildValidator(o)
	if err != nil {
		return err
	}
	i18n.SetLanguage(o.lang)
	logf("validate: type=%s id=%q files=%d jobs=%d", o.typ, o.id, len(files), o.concurrency)

	var sp *console.Spinner
	if !o.jsonOut && len(files) > 1 {
		sp = console.NewSpinner(fmt.Sprintf("Validating %d files...", len(files)))
		sp.Start()
	}
	results := validateFiles(ctx, v, o, files)
	if sp != nil {
		sp.Stop()
	}

	invalid := false
	var rows []console.SummaryRow
	for _, r := range results {
		if r.err != nil {
			return r.err
		}
		if !r.errs.IsEmpty() {
			invalid = true
		}
		if o.jsonOut {
			if err := writeJSONResult(out, r); err != nil {
				return err
			}
			continue
		}
		for _, w := range r.warnings {
			fmt.Fprintln(out, console.FormatWarningMessage(console.FormatValidationError(r.file, w)))
		}
		if r.errs.IsEmpty() {
			fmt.Fprintln(out, console.FormatSuccessMessage(r.file))
		}
		for _, e := range r.errs {
			fmt.Fprintln(out, console.FormatValidationError(r.file, e))
		}
		rows = append(rows, summaryRow(r))
	}
	if verbose && len(rows) > 1 {
		fmt.Fprint(out, console.RenderSummary(rows))
	}
	if invalid {
		return errInvalid
	}
	return nil
}

// validateFiles checks files concurrently; results keep argument order.
func validateFiles(ctx context.Context, v jsonapiv.Validator, o *validateOptions, files []string) []fileResult {
	results := make([]fileResult, len(files))
	jobs := o.concurrency
	if jobs < 1 {
		jobs = 1
	}
	p := pool.New().WithMaxGoroutines(jobs)
	for i, file := range files {
		i, file := i, file
		p.Go(func() {
			results[i] = validateFile(ctx, v, o, file)
		})
	}
	p.Wait()
	return results
}

func validateFile(ctx context.Context, v jsonapiv.Validator, o *validateOptions, file string) fileResult {
	r := fileResult{file: file}
	data, err := os.ReadFile(file)
	if err != nil {
		r.err = errors.Wrapf(err, "read %s", file)
		return r
	}
	opt := jsonapiv.DecodeOpt{
		OnDuplicateKey: jsonapiv.ParseSeverity(o.duplicates),
		MaxDepth:       o.maxDepth,
		MaxBytes:       o.maxBytes,
		Warnings:       func(e jsonapiv.Error) { r.warnings.Add(e) },
	}
	var doc jsonapiv.Value
	if o.yaml || isYAML(file) {
		doc, err = jsonapiv.DecodeYAML(ctx, data, opt)
	} else {
		doc, err = jsonapiv.DecodeJSON(ctx, data, opt)
	}
	if err != nil {
		if errs, ok := jsonapiv.AsErrors(err); ok {
			r.errs = errs
			return r
		}
		r.err = errors.Wrapf(err, "decode %s", file)
		return r
	}
	r.errs = v.Validate(ctx, doc)
	logf("%s: %d error(s)", file, r.errs.Len())
	return r
}

func isYAML(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func summaryRow(r fileResult) console.SummaryRow {
	status := "ok"
	if !r.errs.IsEmpty() {
		status = render.Status(r.errs).String()
	}
	return console.SummaryRow{File: r.file, Status: status, Errors: r.errs.Len()}
}

type jsonResult struct {
	File   string               `json:"file"`
	Valid  bool                 `json:"valid"`
	Status string               `json:"status,omitempty"`
	Errors []render.ErrorObject `json:"errors"`
}

func writeJSONResult(out io.Writer, r fileResult) error {
	res := jsonResult{File: r.file, Valid: r.errs.IsEmpty(), Errors: render.Document(r.errs).Errors}
	if !res.Valid {
		res.Status = render.Status(r.errs).String()
	}
	if err := gojson.NewEncoder(out).Encode(res); err != nil {
		return errors.Wrap(err, "write result")
	}
	return nil
}
