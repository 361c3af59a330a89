package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"github.com/alitto/pond"
	"github.com/urfave/cli/v2"

	"github.com/openwildfire/frp"
	"github.com/openwildfire/frp/decode"
	"github.com/openwildfire/frp/encode"
	"github.com/openwildfire/frp/search"
)

// detect runs the full cascade over a single granule JSON dump and writes
// the surviving fire records to CSV and, optionally, a TileDB archive.
func detect(granuleURI, configURI, outdirURI string, minLat, maxLat, minLon, maxLon float64, archive bool) error {
	dir, file := filepath.Split(granuleURI)
	if outdirURI == "" {
		outdirURI = dir
	}

	log.Println("Reading granule:", granuleURI)
	reader, err := decode.ReadJSON(granuleURI, configURI)
	if err != nil {
		return err
	}

	cfg := frp.DefaultConfig()
	cfg.MinLat, cfg.MaxLat = minLat, maxLat
	cfg.MinLon, cfg.MaxLon = minLon, maxLon

	granule, err := frp.NewGranuleFromReader(file, reader, cfg)
	if err != nil {
		return err
	}

	log.Println("Running detection cascade")
	records, err := granule.Detect()
	if err != nil {
		return err
	}
	log.Println("Fires detected:", len(records))

	csvURI := filepath.Join(outdirURI, file+"-fires.csv")
	log.Println("Writing CSV:", csvURI)
	if _, err := encode.WriteCSV(csvURI, configURI, records); err != nil {
		return err
	}

	if archive {
		archiveURI := filepath.Join(outdirURI, file+"-fires.tiledb")
		log.Println("Writing archive:", archiveURI)
		if err := encode.WriteArchive(archiveURI, configURI, records); err != nil {
			return err
		}
	}

	log.Println("Finished granule:", granuleURI)
	return nil
}

// detectBatch trawls uri for granule files matching pattern and submits each
// to a fixed worker pool, following a fixed-pool idiom.
func detectBatch(uri, pattern, configURI, outdirURI string, minLat, maxLat, minLon, maxLon float64, archive bool) error {
	log.Println("Searching uri:", uri)
	items := search.FindGranules(uri, pattern, configURI)
	log.Println("Number of granules to process:", len(items))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	n := runtime.NumCPU() * 2
	pool := pond.New(n, 0, pond.MinWorkers(n), pond.Context(ctx))
	defer pool.StopAndWait()

	for _, name := range items {
		item := name
		pool.Submit(func() {
			if err := detect(item, configURI, outdirURI, minLat, maxLat, minLon, maxLon, archive); err != nil {
				log.Println("Error processing", item, ":", err)
			}
		})
	}

	return nil
}

func main() {
	boxFlags := []cli.Flag{
		&cli.Float64Flag{Name: "min-lat", Value: 65, Usage: "Minimum latitude of the detection bounding box."},
		&cli.Float64Flag{Name: "max-lat", Value: 65.525, Usage: "Maximum latitude of the detection bounding box."},
		&cli.Float64Flag{Name: "min-lon", Value: -148, Usage: "Minimum longitude of the detection bounding box."},
		&cli.Float64Flag{Name: "max-lon", Value: -146, Usage: "Maximum longitude of the detection bounding box."},
		&cli.BoolFlag{Name: "archive", Usage: "Also write a TileDB sparse array archive of fire records."},
	}

	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name: "detect",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "granule-uri", Usage: "URI or pathname to a granule JSON dump."},
					&cli.StringFlag{Name: "config-uri", Usage: "URI or pathname to a TileDB config file."},
					&cli.StringFlag{Name: "outdir-uri", Usage: "URI or pathname to an output directory."},
				}, boxFlags...),
				Action: func(cCtx *cli.Context) error {
					return detect(
						cCtx.String("granule-uri"),
						cCtx.String("config-uri"),
						cCtx.String("outdir-uri"),
						cCtx.Float64("min-lat"), cCtx.Float64("max-lat"),
						cCtx.Float64("min-lon"), cCtx.Float64("max-lon"),
						cCtx.Bool("archive"),
					)
				},
			},
			{
				Name: "detect-batch",
				Flags: append([]cli.Flag{
					&cli.StringFlag{Name: "uri", Usage: "URI or pathname to a directory of granule JSON dumps."},
					&cli.StringFlag{Name: "pattern", Value: "*.json", Usage: "Glob pattern matched against granule basenames."},
					&cli.StringFlag{Name: "config-uri", Usage: "URI or pathname to a TileDB config file."},
					&cli.StringFlag{Name: "outdir-uri", Usage: "URI or pathname to an output directory."},
				}, boxFlags...),
				Action: func(cCtx *cli.Context) error {
					return detectBatch(
						cCtx.String("uri"),
						cCtx.String("pattern"),
						cCtx.String("config-uri"),
						cCtx.String("outdir-uri"),
						cCtx.Float64("min-lat"), cCtx.Float64("max-lat"),
						cCtx.Float64("min-lon"), cCtx.Float64("max-lon"),
						cCtx.Bool("archive"),
					)
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
