package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ethpandaops/glprojects/pkg/config"
	"github.com/ethpandaops/glprojects/pkg/gitlab"
	"github.com/ethpandaops/glprojects/pkg/metrics"
	"github.com/ethpandaops/glprojects/pkg/projects"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// call is one projects operation run by a command.
type call func(ctx context.Context, svc projects.Service) (*gitlab.Response, error)

// app carries the settings shared by every command.
type app struct {
	log         *logrus.Logger
	out         io.Writer
	configPath  string
	dryRun      bool
	metricsFile string
}

// run sets up a transport, performs fn and prints the response body.
func (a *app) run(ctx context.Context, fn call) error {
	if a.dryRun {
		svc := projects.NewService(a.log, newDryRunTransport(a.out))

		_, err := fn(ctx, svc)

		return err
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	a.log.Debug("Configuration loaded:\n" + cfg.String())

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.SetBuildInfo(Version, GitCommit, BuildDate)

	client := gitlab.NewClient(a.log, cfg.GitLab, m)
	if err := client.Start(ctx); err != nil {
		return fmt.Errorf("connecting to GitLab: %w", err)
	}

	defer func() {
		if err := client.Stop(); err != nil {
			a.log.WithError(err).Warn("Failed to stop GitLab client")
		}

		if a.metricsFile == "" {
			return
		}

		if err := prometheus.WriteToTextfile(a.metricsFile, reg); err != nil {
			a.log.WithError(err).Warn("Failed to write metrics file")
		}
	}()

	resp, err := fn(ctx, projects.NewService(a.log, client))
	if err != nil {
		return err
	}

	return a.print(resp)
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.configPath == "" {
		return config.FromEnv()
	}

	a.log.WithField("path", a.configPath).Debug("Loading configuration")

	return config.Load(a.configPath)
}

// print writes the JSON body indented. Non-JSON bodies such as build traces
// are written as-is.
func (a *app) print(resp *gitlab.Response) error {
	if resp == nil {
		return nil
	}

	p := resp.Pagination
	if p.Total > 0 || p.NextPage > 0 {
		a.log.WithFields(logrus.Fields{
			"page":        p.Page,
			"per_page":    p.PerPage,
			"next_page":   p.NextPage,
			"total":       p.Total,
			"total_pages": p.TotalPages,
		}).Info("Page fetched")
	}

	if len(resp.Body) == 0 {
		return nil
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, resp.Body, "", "  "); err != nil {
		buf.Reset()
		buf.Write(resp.Body)
	}

	buf.WriteByte('\n')

	_, err := buf.WriteTo(a.out)

	return err
}
