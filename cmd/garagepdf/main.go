// Command garagepdf renders a draft JSON file to a PDF without running the
// server. With no input file it renders the default draft.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/diewo77/garage-estimates/internal/draft"
	"github.com/diewo77/garage-estimates/internal/pdf"
)

var (
	inFlag  = flag.String("in", "", "Draft JSON file (default: built-in default draft)")
	outFlag = flag.String("out", "", "Output PDF path (default: derived from the draft)")
)

func main() {
	flag.Parse()

	d := draft.DefaultDraft()
	if *inFlag != "" {
		data, err := os.ReadFile(*inFlag)
		if err != nil {
			log.Fatalf("Failed to read %s: %v", *inFlag, err)
		}
		d, err = draft.ParseDraftJSON(data)
		if err != nil {
			log.Fatalf("Failed to parse %s: %v", *inFlag, err)
		}
	}

	out, err := pdf.Generate(d)
	if err != nil {
		log.Fatalf("Failed to render PDF: %v", err)
	}

	path := *outFlag
	if path == "" {
		path = draft.BuildPDFFilename(d)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}
	log.Printf("Wrote %s (%d bytes, %d line items)", path, len(out), len(d.LineItems))
}
