package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/insightdelivered/statement-organizer/internal/analyzer"
	"github.com/insightdelivered/statement-organizer/internal/api"
	"github.com/insightdelivered/statement-organizer/internal/config"
	"github.com/insightdelivered/statement-organizer/internal/extractor"
	"github.com/insightdelivered/statement-organizer/internal/logger"
	"github.com/insightdelivered/statement-organizer/internal/models"
	"github.com/insightdelivered/statement-organizer/internal/parser"
	"github.com/insightdelivered/statement-organizer/internal/writer"
)

const version = "1.0.0"

func main() {
	serveFlag := flag.Bool("serve", false, "Run the web server instead of converting files")
	formatFlag := flag.String("format", "csv", "Output format: csv or xlsx")
	outputFlag := flag.String("output", "", "Output file path (defaults to input filename with new extension)")
	headerFlag := flag.Bool("header", true, "Include account metadata header rows in CSV output")
	reportFlag := flag.Bool("report", false, "Print a category/monthly summary report after converting")
	versionFlag := flag.Bool("version", false, "Print version and exit")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `Statement Organizer
by Insight Delivered

Extracts structured transactions from bank-statement PDFs (or already
extracted .txt files), organized per account holder.

Usage:
  statement-organizer [flags] <input.pdf|input.txt> [input2.pdf ...]
  statement-organizer -serve

Flags:
`)
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Convert a statement PDF to CSV
  statement-organizer statement.pdf

  # Convert to a spreadsheet with a summary report
  statement-organizer -format=xlsx -report statement.pdf

  # Run the upload web server
  statement-organizer -serve
`)
	}

	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	if *versionFlag {
		fmt.Printf("statement-organizer v%s\n", version)
		os.Exit(0)
	}

	if *serveFlag {
		if err := serve(cfg); err != nil {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
		return
	}

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(0)
	}

	for _, inputPath := range flag.Args() {
		if err := processFile(inputPath, *formatFlag, *outputFlag, *headerFlag, *reportFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error processing %s: %v\n", inputPath, err)
			os.Exit(1)
		}
	}
}

func serve(cfg *config.Config) error {
	app := fiber.New(fiber.Config{
		BodyLimit: cfg.Upload.MaxSizeMB << 20,
		AppName:   "statement-organizer v" + version,
	})
	app.Use(recover.New())
	app.Use(fiberlogger.New())

	api.New(cfg.Upload.TempDir).Register(app)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	slog.Info("starting server", "addr", addr)
	return app.Listen(addr)
}

func processFile(inputPath, format, outputPath string, includeHeader, report bool) error {
	rawText, err := readInput(inputPath)
	if err != nil {
		return err
	}

	fmt.Printf("Processing: %s\n", inputPath)

	statements, err := parser.Extract(rawText)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	total := 0
	for _, st := range statements {
		total += len(st.Transactions)
	}
	fmt.Printf("  Found %d statement(s), %d transaction(s)\n", len(statements), total)
	if total == 0 {
		fmt.Println("  Warning: no transactions recognized. The statement format may not match known patterns.")
	}

	outPath := outputPath
	if outPath == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		outPath = base + "." + format
	}

	switch format {
	case "csv":
		w := &writer.CSVWriter{IncludeHeader: includeHeader}
		if err := w.WriteToFile(outPath, statements); err != nil {
			return fmt.Errorf("CSV write failed: %w", err)
		}
	case "xlsx":
		w := &writer.ExcelWriter{}
		if err := w.WriteToFile(outPath, statements); err != nil {
			return fmt.Errorf("XLSX write failed: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format %q; use csv or xlsx", format)
	}

	fmt.Printf("  Output: %s\n", outPath)
	printAccounts(statements)

	if report {
		fmt.Println()
		analyzer.Summarize(statements).WriteReport(os.Stdout)
	}

	fmt.Println("  Done.")
	return nil
}

// readInput extracts text from a PDF, or reads a .txt file as-is for text
// that was extracted elsewhere.
func readInput(inputPath string) (string, error) {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return "", fmt.Errorf("input file not found: %s", inputPath)
	}

	switch strings.ToLower(filepath.Ext(inputPath)) {
	case ".pdf":
		return extractor.ExtractText(inputPath)
	case ".txt":
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("expected a .pdf or .txt file, got %q", filepath.Ext(inputPath))
	}
}

func printAccounts(statements []models.Statement) {
	for i, st := range statements {
		fmt.Printf("  Statement %d:\n", i+1)
		if st.Account.AccountName != models.Unknown {
			fmt.Printf("    Account holder: %s\n", st.Account.AccountName)
		}
		if st.Account.AccountNumber != models.Unknown {
			fmt.Printf("    Account number: %s\n", st.Account.AccountNumber)
		}
		if st.Account.BankName != models.Unknown {
			fmt.Printf("    Bank: %s\n", st.Account.BankName)
		}
		if st.Account.StatementPeriod != models.Unknown {
			fmt.Printf("    Period: %s\n", st.Account.StatementPeriod)
		}
	}
}
