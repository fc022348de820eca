package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nrfta/listing-go/dashboard"
	"github.com/nrfta/listing-go/internal/config"
)

type app struct {
	cfg      *config.Config
	log      *logrus.Logger
	registry *dashboard.Registry
	output   string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "listctl",
		Short:         "Browse the dashboard lists from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	cmd.PersistentFlags().StringVarP(&a.output, "output", "o", "table", "output format: table or yaml")

	cmd.AddCommand(
		newStripCmd(a),
		newListCmd(a),
		newFacetsCmd(a),
		newKindsCmd(a),
	)
	return cmd
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(cmd.Context())
	if err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logrus.New()
	a.log.SetOutput(cmd.ErrOrStderr())
	a.log.SetLevel(cfg.App.Level())

	ds, err := dashboard.DefaultDataset()
	if err != nil {
		return err
	}

	opts := []dashboard.Option{
		dashboard.WithLogger(a.log),
		dashboard.WithPageSizes(cfg.Paging.PageSize),
		dashboard.WithMaxPageSize(cfg.Paging.MaxSize),
	}
	if !cfg.App.Metrics {
		opts = append(opts, dashboard.WithoutMetrics())
	}
	a.registry = dashboard.NewRegistry(ds, opts...)

	a.log.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"lists":       len(a.registry.Kinds()),
	}).Debug("registry ready")
	return nil
}
