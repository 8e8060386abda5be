/*
main.go - Batch reconciliation CLI

PURPOSE:
  Reconciles a ledger spreadsheet from the command line and writes the
  result workbook, without running the HTTP server. Useful for one-off
  statements and cron jobs.

COMMAND-LINE FLAGS:
  -in       Input ledger (.xlsx or .csv), required
  -out      Output workbook path (default: reconciliation.xlsx)
  -profile  Optional JSON run profile (rates, reference date, columns)
  -db       Optional SQLite path; archives the run when set

EXAMPLES:
  # Reconcile with policy defaults
  ./reconcile -in=ledger.xlsx

  # Custom rates and column mapping
  ./reconcile -in=ledger.csv -profile=acme.json -out=acme-recon.xlsx

  # Archive the run alongside server-created ones
  ./reconcile -in=ledger.xlsx -db=receivables.db

SEE ALSO:
  - factory/config.go: Profile schema
  - export/excel.go: Workbook layout
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/warp/receivables-engine/export"
	"github.com/warp/receivables-engine/factory"
	"github.com/warp/receivables-engine/ingest"
	"github.com/warp/receivables-engine/ledger"
	"github.com/warp/receivables-engine/store/sqlite"
)

func main() {
	inPath := flag.String("in", "", "input ledger (.xlsx or .csv)")
	outPath := flag.String("out", "reconciliation.xlsx", "output workbook path")
	profilePath := flag.String("profile", "", "JSON run profile")
	dbPath := flag.String("db", "", "SQLite path to archive the run (optional)")
	flag.Parse()

	if *inPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	profile, err := loadProfile(*profilePath)
	if err != nil {
		log.Fatalf("Failed to load profile: %v", err)
	}

	result, err := readLedger(*inPath, profile.Ingest)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *inPath, err)
	}
	if result.Skipped > 0 {
		log.Printf("Skipped %d unreadable row(s)", result.Skipped)
	}

	engine := ledger.NewEngine(profile.Engine)
	report, warnings, err := engine.Reconcile(result.Input())
	if err != nil {
		log.Fatalf("Reconciliation failed: %v", err)
	}
	for _, w := range warnings {
		log.Printf("Warning: %s", w)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", *outPath, err)
	}
	defer out.Close()
	if err := export.WriteReport(out, report); err != nil {
		log.Fatalf("Failed to write workbook: %v", err)
	}

	if *dbPath != "" {
		if err := archiveRun(*dbPath, result, report, warnings); err != nil {
			log.Fatalf("Failed to archive run: %v", err)
		}
	}

	printSummary(*outPath, report)
}

func loadProfile(path string) (*factory.Profile, error) {
	if path == "" {
		return factory.BuildProfile(factory.ProfileJSON{})
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return factory.ParseProfile(data)
}

func readLedger(path string, opts ingest.Options) (*ingest.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return ingest.ReadCSV(f, opts)
	case ".xlsx":
		return ingest.ReadWorkbook(f, opts)
	default:
		return nil, fmt.Errorf("unsupported file type %q", filepath.Ext(path))
	}
}

func archiveRun(dbPath string, result *ingest.Result, report *ledger.Report, warnings []ledger.RowWarning) error {
	store, err := sqlite.New(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.SaveRun(context.Background(), ledger.RunSummary{
		ID:               uuid.NewString(),
		CreatedAt:        time.Now().UTC(),
		ReferenceDate:    report.ReferenceDate,
		TransactionCount: len(result.Transactions),
		OverdueCount:     len(report.Overdue),
		PendingCount:     len(report.Pending),
		SettledCount:     report.SettledCount,
		WarningCount:     len(warnings),
		Totals:           report.Totals,
	})
}

func printSummary(outPath string, report *ledger.Report) {
	fmt.Printf("Reference date:        %s\n", report.ReferenceDate)
	fmt.Printf("Credits:               %d (settled %d, pending %d, overdue %d)\n",
		report.CreditCount, report.SettledCount, len(report.Pending), len(report.Overdue))
	fmt.Printf("Principal outstanding: %s\n", report.Totals.TotalPrincipalOutstanding)
	fmt.Printf("Interest:              %s\n", report.Totals.TotalInterest)
	fmt.Printf("Tax surcharge:         %s\n", report.Totals.TaxSurcharge)
	fmt.Printf("Total amount due:      %s\n", report.Totals.TotalAmountDue)
	fmt.Printf("Pending amount:        %s\n", report.Totals.TotalPendingAmount)
	fmt.Printf("Workbook written to %s\n", outPath)
}
