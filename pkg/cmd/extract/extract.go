package extract

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/tanklog/mtreplay-service-go/log"
	"github.com/tanklog/mtreplay-service-go/pkg/config"
	"github.com/tanklog/mtreplay-service-go/pkg/db/postgres"
	"github.com/tanklog/mtreplay-service-go/pkg/service"
	"github.com/tanklog/mtreplay-service-go/pkg/utils"
)

var appConfig config.Config // holds processed config values

func NewExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract <replay-file> [...]",
		Short: "extracts battle reports from replay files",
		Args:  cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			appConfig = config.Config{PrintDocument: appConfig.PrintDocument}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(args)
		},
	}

	cmd.Flags().StringVar(&config.SQLLogLevel,
		"sql-log-level",
		"info",
		"controls the log level for sql methods")
	cmd.Flags().StringVarP(&config.OutputFormat,
		"output-format",
		"o",
		"json",
		"output format for the report (json, pretty)")
	cmd.Flags().BoolVar(&config.ArchiveUnsupported,
		"archive-unsupported",
		false,
		"record replays with unsupported versions in the archive table")
	cmd.Flags().BoolVar(&appConfig.PrintDocument,
		"print-document",
		false,
		"if true and log level is debug, the decoded document will be printed")

	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

func setupLoggers() (logger, sqlLogger *log.Logger) {
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
		sqlLogger = log.New(
			os.Stderr,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.DebugLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
		sqlLogger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.SQLLogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	if config.LogConfig != "" {
		filterCfg, err := log.LoadFilterConfig(config.LogConfig)
		if err != nil {
			logger.Warn("could not load log config", log.ErrorField(err))
			return logger, sqlLogger
		}
		filtered, err := log.NewWithFilter(os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel), filterCfg,
			log.WithCaller(true), log.AddCallerSkip(1))
		if err != nil {
			logger.Warn("invalid log filter rules", log.ErrorField(err))
			return logger, sqlLogger
		}
		logger = filtered
	}
	return logger, sqlLogger
}

func runExtract(files []string) error {
	logger, sqlLogger := setupLoggers()
	log.ResetDefault(logger)

	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}
	postgresAddr := utils.ExtractFromDBURL(config.DB)
	if err := utils.WaitForTCP(postgresAddr, timeout); err != nil {
		log.Fatal("database not ready", log.ErrorField(err))
	}

	pool := postgres.InitWithUrl(
		config.DB,
		postgres.WithTracer(sqlLogger.Zap().Sugar()),
	)
	defer postgres.CloseDb()

	srv := service.NewExtractionService(pool,
		service.WithArchiveUnsupported(config.ArchiveUnsupported))

	var lastErr error
	for _, fileName := range files {
		if err := extractOne(srv, fileName); err != nil {
			log.Error("extraction failed",
				log.String("file", fileName),
				log.ErrorField(err))
			lastErr = err
		}
	}
	return lastErr
}

func extractOne(srv *service.ExtractionService, fileName string) error {
	ctx := log.AddToContext(context.Background(), log.Default())
	data, err := os.ReadFile(fileName)
	if err != nil {
		return err
	}
	if appConfig.PrintDocument {
		printDocument(srv, data)
	}
	report, err := srv.Extract(ctx, fileName, data)
	if err != nil {
		return err
	}
	return printReport(report)
}

func printDocument(srv *service.ExtractionService, data []byte) {
	doc, err := srv.Document(data)
	if err != nil {
		log.Debug("document not decodable", log.ErrorField(err))
		return
	}
	log.Debug("decoded document", log.Any("metadata", doc.Metadata()))
}

func printReport(report any) error {
	var out string
	switch config.OutputFormat {
	case "pretty":
		out = oj.JSON(report,
			&oj.Options{Indent: 2, UseTags: true, TimeFormat: time.RFC3339})
	default:
		out = oj.JSON(report, &oj.Options{UseTags: true, TimeFormat: time.RFC3339})
	}
	_, err := fmt.Fprintln(os.Stdout, out)
	return err
}
