// Command curvegen computes the brightness-to-driver table and writes it as Go
// source. It is run by go generate in pkg/curve.
package main

import (
	"bytes"
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/itohio/golamp/pkg/config"
	"github.com/itohio/golamp/pkg/curve"
)

func main() {
	var (
		configFlag = flag.String("config", "", "Configuration file path (curve section); defaults when empty")
		outFlag    = flag.String("o", "table_gen.go", "Output file, - for stdout")
		pkgFlag    = flag.String("pkg", "curve", "Package name of the generated file")
		varFlag    = flag.String("var", "Default", "Variable name of the generated table")
		looseFlag  = flag.Bool("loose", false, "Keep overlapping codes between the two ranges")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	params := curve.DefaultParams()
	if *configFlag != "" {
		cfg, err := config.Load(*configFlag)
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		params = curve.Params{
			SenseRatio:      cfg.Curve.SenseRatio,
			HighRangeOffset: cfg.Curve.HighRangeOffset,
			Strict:          cfg.Curve.Strict,
			LowCeiling:      cfg.Curve.LowCeiling,
			HighFloor:       cfg.Curve.HighFloor,
		}
	}
	if *looseFlag {
		params.Strict = false
	}

	table := curve.Generate(params)
	if !table.Monotonic(params) {
		logger.Fatal("Generated table is not monotonic", zap.Any("params", params))
	}

	var buf bytes.Buffer
	if err := curve.WriteGo(&buf, *pkgFlag, *varFlag, &table); err != nil {
		logger.Fatal("Failed to render table", zap.Error(err))
	}

	if *outFlag == "-" {
		os.Stdout.Write(buf.Bytes())
		return
	}
	if err := os.WriteFile(*outFlag, buf.Bytes(), 0644); err != nil {
		logger.Fatal("Failed to write table", zap.String("file", *outFlag), zap.Error(err))
	}

	logger.Info("Generated power curve",
		zap.String("file", *outFlag),
		zap.Int("low_range_entries", table.LowRangeCount()),
		zap.Float32("sense_ratio", params.SenseRatio),
		zap.Bool("strict", params.Strict),
	)
}
