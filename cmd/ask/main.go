package main

import (
	"context"
	"flag"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"docask/internal/app"
	"docask/internal/ask"
)

func main() {
	model := flag.String("model", "", "completion model (defaults to LLM_MODEL)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-model name] <question> <inputFilePath> <outputFilePath>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 3 {
		flag.Usage()
		os.Exit(2)
	}

	deps, err := app.BuildCLI()
	if err != nil {
		fmt.Fprintln(os.Stderr, "ask:", err)
		os.Exit(1)
	}

	if err := run(context.Background(), deps, *model, flag.Arg(0), flag.Arg(1), flag.Arg(2)); err != nil {
		fmt.Fprintln(os.Stderr, "ask:", err)
		os.Exit(1)
	}
}

// run reads the input document, takes it through the same pipeline the HTTP
// entry point uses, and writes the answer to outputPath.
func run(ctx context.Context, deps app.Deps, model, question, inputPath, outputPath string) error {
	content, err := os.ReadFile(inputPath)
	if err != nil {
		return ask.IO(fmt.Sprintf("failed to read %s", inputPath), err)
	}

	sub := ask.Submission{
		Question: question,
		Model:    model,
		Document: ask.Document{
			Filename:  filepath.Base(inputPath),
			MediaType: mediaTypeForPath(inputPath),
			Content:   content,
		},
	}
	answer, err := deps.Pipeline.Ask(ctx, sub)
	if err != nil {
		return err
	}
	return writeAnswer(outputPath, answer)
}

// mediaTypeForPath derives the declared media type from the file extension.
// The result still goes through the pipeline validator, so an unsupported
// extension fails the same way an unsupported upload does.
func mediaTypeForPath(path string) string {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".md", ".markdown":
		return "text/markdown"
	case ".txt", "":
		return "text/plain"
	default:
		return mime.TypeByExtension(ext)
	}
}

// writeAnswer writes the answer atomically, creating parent directories as
// needed.
func writeAnswer(path, answer string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return ask.IO(fmt.Sprintf("failed to create %s", dir), err)
	}
	tmp, err := os.CreateTemp(dir, "answer-*.txt")
	if err != nil {
		return ask.IO("failed to create temp file", err)
	}
	if _, err := tmp.WriteString(answer + "\n"); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return ask.IO("failed to write answer", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return ask.IO("failed to close temp file", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return ask.IO(fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}
