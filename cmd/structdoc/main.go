// Command structdoc structures a single document from the command line,
// writing the structured JSON, a section summary and an optional HTML view
// next to the input file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmaycock/structdoc/internal/config"
	"github.com/dmaycock/structdoc/internal/item"
	"github.com/dmaycock/structdoc/internal/parser"
	"github.com/dmaycock/structdoc/internal/render"
	"github.com/dmaycock/structdoc/internal/structure"
)

func main() {
	var (
		outDir      = flag.String("out", "", "output directory (default: alongside the input file)")
		headerLen   = flag.Int("header-len", 0, "main header length threshold (0 = default)")
		minText     = flag.Int("min-text", -1, "minimum text record length (-1 = default)")
		noRefs      = flag.Bool("no-references", false, "disable references-region detection")
		engineFile  = flag.String("engine-config", "", "YAML file with engine settings")
		htmlView    = flag.Bool("html", true, "also write an HTML view")
		pdfFallback = flag.Bool("pdf-fallback", true, "fall back to pdftotext when Go PDF extraction fails")
		quiet       = flag.Bool("quiet", false, "suppress progress logging")
	)
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <file>\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
		os.Exit(2)
	}
	input := flag.Arg(0)

	level := slog.LevelInfo
	if *quiet {
		level = slog.LevelError
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := config.EngineOverlay(*engineFile, structure.DefaultConfig())
	if err != nil {
		log.Error("invalid engine config", "error", err)
		os.Exit(1)
	}
	if *headerLen > 0 {
		cfg.MainHeaderMinLength = *headerLen
	}
	if *minText >= 0 {
		cfg.MinTextLength = *minText
	}
	if *noRefs {
		cfg.DetectReferences = false
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid engine config", "error", err)
		os.Exit(1)
	}

	opts := parser.Options{PDFFallbackPdftotext: *pdfFallback}
	if err := run(input, *outDir, cfg, opts, *htmlView, log); err != nil {
		log.Error("processing failed", "file", input, "error", err)
		os.Exit(1)
	}
}

func run(input, outDir string, cfg structure.Config, opts parser.Options, htmlView bool, log *slog.Logger) error {
	p, err := parser.ForFile(input, opts)
	if err != nil {
		return err
	}

	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	items, err := p.Parse(f, input)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	doc, err := structure.Structure(item.NewSliceSource(items), cfg, log)
	if err != nil {
		return fmt.Errorf("structure: %w", err)
	}
	log.Info("structured document",
		"total_items", doc.Metadata.TotalItems,
		"dropped", doc.Metadata.DroppedItems,
		"content", len(doc.Content),
		"tables", len(doc.Tables),
		"images", len(doc.Images),
		"references", len(doc.References))

	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	stem := filepath.Join(outDir, base)

	if err := writeJSON(stem+"_structured.json", doc); err != nil {
		return err
	}
	log.Info("wrote structured document", "path", stem+"_structured.json")

	if err := writeJSON(stem+"_section_summary.json", doc.SectionSummary()); err != nil {
		return err
	}
	log.Info("wrote section summary", "path", stem+"_section_summary.json")

	if htmlView {
		out, err := os.Create(stem + ".html")
		if err != nil {
			return err
		}
		if err := render.WriteHTML(out, doc, render.PageTitle(input)); err != nil {
			out.Close()
			return fmt.Errorf("render: %w", err)
		}
		if err := out.Close(); err != nil {
			return err
		}
		log.Info("wrote HTML view", "path", stem+".html")
	}
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
