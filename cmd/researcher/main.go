// researcher runs the pipeline once for a single identifier and writes the
// PDF and CSV artifacts to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"parcel_research/internal/adapters/export"
	"parcel_research/internal/adapters/gemini"
	"parcel_research/internal/adapters/observability"
	"parcel_research/internal/adapters/rentcast"
	"parcel_research/internal/app"
	"parcel_research/internal/domain"
	"parcel_research/internal/shared"
)

func main() {
	identifier := flag.String("identifier", "", "property address or APN")
	kindFlag := flag.String("kind", "address", "input kind: address|apn")
	demo := flag.Bool("demo", false, "use the demo fixture instead of the live provider")
	outDir := flag.String("out", ".", "directory for the PDF and CSV artifacts")
	flag.Parse()

	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv)

	if *identifier == "" {
		log.Fatal().Msg("-identifier is required")
	}
	kind := domain.InputAddress
	if *kindFlag == "apn" {
		kind = domain.InputAPN
	}
	mode := domain.ModeLive
	if *demo {
		mode = domain.ModeDemo
	}

	ctx := context.Background()

	research := app.NewResearchService(rentcast.New(cfg.ProviderBase, cfg.ProviderKey, cfg.FetchTimeout))
	var completer domain.TextCompleter
	if cfg.GeminiKey != "" {
		if c, err := gemini.New(ctx, cfg.GeminiKey, cfg.GeminiModel); err != nil {
			log.Error().Err(err).Msg("gemini client init failed, memo will use fallback")
		} else {
			completer = c
		}
	}
	memos := app.NewMemoComposer(completer, cfg.ComposeTimeout)

	parcel, _, err := research.Retrieve(ctx, *identifier, mode, kind)
	if err != nil {
		log.Fatal().Err(err).Msg("retrieval failed")
	}
	memo := memos.Compose(ctx, parcel)

	stem := strings.ReplaceAll(parcel.APN, "-", "_")
	pdfPath := filepath.Join(*outDir, "property_research_"+stem+".pdf")
	csvPath := filepath.Join(*outDir, "property_data_"+stem+".csv")

	pdfBytes, err := export.ToPDF(parcel, &memo)
	if err != nil {
		log.Fatal().Err(err).Msg("pdf export failed")
	}
	if err := os.WriteFile(pdfPath, pdfBytes, 0o644); err != nil {
		log.Fatal().Err(err).Str("path", pdfPath).Msg("write pdf failed")
	}

	csvBytes, err := export.ToCSV(parcel)
	if err != nil {
		log.Fatal().Err(err).Msg("csv export failed")
	}
	if err := os.WriteFile(csvPath, csvBytes, 0o644); err != nil {
		log.Fatal().Err(err).Str("path", csvPath).Msg("write csv failed")
	}

	log.Info().
		Str("apn", parcel.APN).
		Str("memo", string(memo.Provenance)).
		Str("pdf", pdfPath).
		Str("csv", csvPath).
		Msg("research complete")
	fmt.Printf("wrote %s and %s\n", pdfPath, csvPath)
}
