// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package health

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/ManuGH/dagskra/internal/config"
	"github.com/ManuGH/dagskra/internal/log"
	platformnet "github.com/ManuGH/dagskra/internal/platform/net"
)

// PerformStartupChecks validates the environment before the server starts.
func PerformStartupChecks(cfg config.AppConfig) error {
	logger := log.WithComponent("startup-check")
	logger.Info().Msg("running pre-flight startup checks")

	if err := checkAssetsDir(logger, cfg.Server.AssetsDir); err != nil {
		return fmt.Errorf("assets directory check failed: %w", err)
	}
	if err := checkListenAddr(logger, "server", cfg.Server.ListenAddr); err != nil {
		return err
	}
	if addr := config.MetricsAddr(cfg); addr != "" {
		if err := checkListenAddr(logger, "metrics", addr); err != nil {
			return err
		}
	}
	if err := checkUpstreamURL(logger, cfg.Upstream.BaseURL); err != nil {
		return err
	}

	logger.Info().Msg("all startup checks passed")
	return nil
}

// checkAssetsDir only warns when the directory is missing: pages still
// render, only /static returns 404.
func checkAssetsDir(logger zerolog.Logger, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warn().Str("path", path).Msg("assets directory does not exist; static assets will 404")
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}
	logger.Info().Str("path", path).Msg("assets directory is present")
	return nil
}

func checkListenAddr(logger zerolog.Logger, name, addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid %s listen address %q: %w", name, addr, err)
	}
	portNum, err := strconv.Atoi(port)
	if err != nil || portNum < 0 || portNum > 65535 {
		return fmt.Errorf("invalid %s listen port %q in %q", name, port, addr)
	}
	logger.Info().Str("addr", addr).Msgf("%s listen address is valid", name)
	return nil
}

func checkUpstreamURL(logger zerolog.Logger, raw string) error {
	normalized, err := platformnet.NormalizeUpstreamURL(raw)
	if err != nil {
		return fmt.Errorf("upstream URL check failed: %w", err)
	}
	logger.Info().Str(log.FieldBaseURL, platformnet.SanitizeURL(normalized)).Msg("upstream URL is valid")
	return nil
}
