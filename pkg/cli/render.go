package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/getmockd/configurator/pkg/cli/internal/flags"
	"github.com/getmockd/configurator/pkg/configurator"
	"github.com/getmockd/configurator/pkg/contextdata"
	"github.com/getmockd/configurator/pkg/loader"
	"github.com/getmockd/configurator/pkg/template"
	"github.com/getmockd/configurator/pkg/watch"
)

var (
	renderContextFiles flags.StringSlice
	renderSets         flags.StringSlice
	renderSetLists     flags.StringSlice
	renderNulls        flags.StringSlice
	renderEnvPrefix    string
	renderEncoding     string
	renderCache        bool
	renderOutput       string
	renderWrite        bool
	renderWatch        bool
)

var renderCmd = &cobra.Command{
	Use:   "render [file|glob]...",
	Short: "Render templates against a data context",
	Long: `Render one or more templates and print or write the result.

The data context is built from --context files (JSON, or YAML by
extension) merged in order, then --env, --set, --set-list and --null.
When no input is given the template is read from stdin.`,
	Example: `  # Render to stdout
  configurator render app.conf.in -c values.yaml

  # Render every template under deploy/ next to its source
  configurator render 'deploy/**/*.in' -c prod.json --write

  # Override single values
  configurator render app.conf.in --set port=8080 --set-list hosts=a,b

  # Re-render whenever a template or context file changes
  configurator render app.conf.in -c values.yaml -w --watch`,
	RunE: runRender,
}

func init() {
	f := renderCmd.Flags()
	f.VarP(&renderContextFiles, "context", "c", "Context file, JSON or YAML (repeatable, merged in order)")
	f.Var(&renderSets, "set", "Set a string value: key=value (repeatable)")
	f.Var(&renderSetLists, "set-list", "Set a list value: key=a,b,c (repeatable)")
	f.Var(&renderNulls, "null", "Set a key to null (repeatable)")
	f.StringVar(&renderEnvPrefix, "env", "", "Add environment variables starting with this prefix (prefix removed)")
	f.StringVar(&renderEncoding, "encoding", "", "Template file encoding (default from config: utf-8)")
	f.BoolVar(&renderCache, "cache", false, "Cache template contents across re-renders")
	f.StringVarP(&renderOutput, "output", "o", "", "Write the result to this file (single input only)")
	f.BoolVarP(&renderWrite, "write", "w", false, "Write each result next to its input, without the suffix")
	f.BoolVar(&renderWatch, "watch", false, "Re-render when a template or context file changes")

	rootCmd.AddCommand(renderCmd)
}

// renderJob holds everything one render pass needs.
type renderJob struct {
	conf  *configurator.Configurator
	opts  configurator.FileOptions
	files []string
	out   io.Writer
}

func runRender(cmd *cobra.Command, args []string) error {
	if renderOutput != "" && renderWrite {
		return errors.New("--output and --write cannot be used together")
	}

	opts := fileOptions(cmd)
	data, err := buildContext()
	if err != nil {
		return err
	}

	if len(args) == 0 {
		if renderWatch || renderWrite {
			return errors.New("--watch and --write need input files")
		}
		return renderStdin(cmd, data, opts)
	}

	files, err := expandInputs(args)
	if err != nil {
		return err
	}
	if renderOutput != "" && len(files) != 1 {
		return fmt.Errorf("--output needs exactly one input, got %d", len(files))
	}

	job := &renderJob{
		conf:  newConfigurator(logger),
		opts:  opts,
		files: files,
		out:   cmd.OutOrStdout(),
	}

	if err := job.run(cmd.Context(), data); err != nil {
		if !renderWatch {
			return err
		}
		logger.Error("render failed", "error", err)
	}

	if !renderWatch {
		return nil
	}
	return job.watch(cmd.Context())
}

func fileOptions(cmd *cobra.Command) configurator.FileOptions {
	opts := configurator.FileOptions{Encoding: cfg.Encoding, Cache: cfg.Cache}
	if cmd.Flags().Changed("encoding") {
		opts.Encoding = renderEncoding
	}
	if cmd.Flags().Changed("cache") {
		opts.Cache = renderCache
	}
	return opts
}

func buildContext() (template.Context, error) {
	b := contextdata.NewBuilder()
	for _, path := range renderContextFiles {
		if err := b.LoadFile(path); err != nil {
			return nil, err
		}
	}
	b.LoadEnv(os.Environ(), renderEnvPrefix)
	for _, pair := range renderSets {
		if err := b.Set(pair); err != nil {
			return nil, fmt.Errorf("--set: %w", err)
		}
	}
	for _, pair := range renderSetLists {
		if err := b.SetList(pair); err != nil {
			return nil, fmt.Errorf("--set-list: %w", err)
		}
	}
	for _, key := range renderNulls {
		if err := b.SetNull(key); err != nil {
			return nil, fmt.Errorf("--null: %w", err)
		}
	}
	return b.Context(), nil
}

func renderStdin(cmd *cobra.Command, data template.Context, opts configurator.FileOptions) error {
	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("reading stdin: %w", err)
	}
	input, err := loader.Decode(raw, opts.Encoding)
	if err != nil {
		return err
	}
	result, err := newConfigurator(logger).ConfigureString(input, data)
	if err != nil {
		return fmt.Errorf("<stdin>: %w", err)
	}
	if renderOutput != "" {
		return writeResult(renderOutput, result, opts.Encoding)
	}
	return writeEncoded(cmd.OutOrStdout(), result, opts.Encoding)
}

// run renders every file once. It keeps going after a failure and returns
// the errors joined.
func (j *renderJob) run(ctx context.Context, data template.Context) error {
	var errs []error
	for _, file := range j.files {
		if err := j.renderFile(ctx, file, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (j *renderJob) renderFile(ctx context.Context, file string, data template.Context) error {
	opts := j.opts
	result, err := j.conf.Configure(ctx, file, data, &opts)
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	switch {
	case renderOutput != "":
		if err := writeResult(renderOutput, result, opts.Encoding); err != nil {
			return err
		}
		logger.Info("rendered", "input", file, "output", renderOutput)
	case renderWrite:
		dest, err := outputPath(file, cfg.Suffix)
		if err != nil {
			return err
		}
		if err := writeResult(dest, result, opts.Encoding); err != nil {
			return err
		}
		logger.Info("rendered", "input", file, "output", dest)
	default:
		if err := writeEncoded(j.out, result, opts.Encoding); err != nil {
			return err
		}
	}
	return nil
}

// watch re-renders on changes until interrupted. The template cache is
// cleared and the context rebuilt before every pass.
func (j *renderJob) watch(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	paths := append([]string{}, j.files...)
	paths = append(paths, renderContextFiles...)

	w, err := watch.New(watch.Config{Paths: paths}, logger)
	if err != nil {
		return err
	}

	return w.Watch(ctx, func(changed []string) error {
		logger.Info("change detected", "files", changed)
		j.conf.ClearCache()

		data, err := buildContext()
		if err != nil {
			return err
		}
		return j.run(ctx, data)
	})
}

func writeEncoded(w io.Writer, text, encoding string) error {
	raw, err := loader.Encode(text, encoding)
	if err != nil {
		return err
	}
	_, err = w.Write(raw)
	return err
}

// writeResult writes text to path in the given encoding, creating parent
// directories as needed.
func writeResult(path, text, encoding string) error {
	raw, err := loader.Encode(text, encoding)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
