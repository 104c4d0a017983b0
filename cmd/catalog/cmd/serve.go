package cmd

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"SunCatalog/internal/catalog"
	"SunCatalog/internal/config"
	"SunCatalog/pkg/kit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntP("port", "p", 3000, "Port to listen on")
	_ = viper.BindPFlag("PORT", serveCmd.Flags().Lookup("port"))
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return err
	}

	log := kit.NewLogger(service, cfg.LogLevel)
	defer func() { _ = log.Sync() }()

	h, err := buildHandler(cfg, log)
	if err != nil {
		return err
	}

	log.Info("catalog configured",
		zap.String("image_policy", cfg.ImagePolicy),
		zap.String("id_strategy", cfg.IDStrategy),
		zap.Bool("seeded", cfg.SeedProducts),
		zap.String("upload_dir", cfg.UploadDir),
	)

	if err := kit.RunHTTPServer(cmd.Context(), cfg.Addr(), h, log); err != nil {
		log.Error("http server stopped", zap.Error(err))
		return err
	}
	return nil
}

func buildHandler(cfg config.Config, log *zap.Logger) (http.Handler, error) {
	strategy, err := catalog.ParseIDStrategy(cfg.IDStrategy)
	if err != nil {
		return nil, err
	}

	images, err := catalog.NewImageResolver(catalog.ImagePolicy(cfg.ImagePolicy), cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		return nil, fmt.Errorf("image resolver: %w", err)
	}

	var seed []catalog.Product
	if cfg.SeedProducts {
		seed = catalog.SeedProducts()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	svc := catalog.NewService(catalog.NewMemStore(seed, strategy), images, catalog.NewMetrics(reg))
	s := &catalog.Server{
		Service:        svc,
		Log:            log,
		MaxUploadBytes: cfg.MaxUploadBytes,
	}

	return catalog.NewHandler(s, catalog.HTTPDeps{
		Log:              log,
		Service:          service,
		Registry:         reg,
		MetricsEnabled:   cfg.MetricsEnabled,
		MetricsToken:     cfg.MetricsToken,
		AllowedOrigins:   cfg.AllowedOrigins,
		WriteLimitPerMin: cfg.WriteLimitPerMin,
		UploadDir:        cfg.UploadDir,
		PublicDir:        cfg.PublicDir,
	}), nil
}
