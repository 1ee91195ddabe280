/*
Copyright © 2013 the InMAP authors.
This file is part of InMAP.

InMAP is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InMAP is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InMAP.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command vfscan builds a nearest-point search index over a cloud of
// located vectors read from netCDF or shapefile input, then answers
// nearest-point queries against it or serves them over RPC.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"bitbucket.org/ctessum/cdf"
	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spatialmodel/vfsearch/rpcsvc"
	"github.com/spatialmodel/vfsearch/vfindex"
	"github.com/spatialmodel/vfsearch/vfio"
)

// logLevelFlag is a pflag.Value that parses and stores a logrus level
// directly, so "--log-level" rejects an invalid name at flag-parse time
// instead of at first use.
type logLevelFlag struct{ level logrus.Level }

var _ pflag.Value = (*logLevelFlag)(nil)

func (f *logLevelFlag) String() string { return f.level.String() }

func (f *logLevelFlag) Set(s string) error {
	lvl, err := logrus.ParseLevel(s)
	if err != nil {
		return err
	}
	f.level = lvl
	return nil
}

func (f *logLevelFlag) Type() string { return "level" }

// runConfig is the TOML run file read by every subcommand, mirroring the
// ConfigInfo / "-config" flag pattern, upgraded to TOML.
type runConfig struct {
	NetCDFFile string
	XVar       string
	YVar       string
	ZVar       string
	VXVar      string
	VYVar      string
	VZVar      string

	ShapefilePath string
	ValueField    string

	RefineLevel int
	RPCPort     string
}

var (
	log        = logrus.New()
	configFile string
	logLevel   = &logLevelFlag{level: logrus.InfoLevel}
)

func loadConfig() (*runConfig, error) {
	cfg := &runConfig{RefineLevel: vfindex.DefaultRefineLevel, RPCPort: rpcsvc.Port}
	if configFile == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(configFile, cfg); err != nil {
		return nil, fmt.Errorf("vfscan: reading config %s: %w", configFile, err)
	}
	return cfg, nil
}

func buildQuery(cfg *runConfig) (*vfindex.QueryAPI, error) {
	query := vfindex.NewQueryAPI()

	switch {
	case cfg.NetCDFFile != "":
		f, err := os.Open(cfg.NetCDFFile)
		if err != nil {
			return nil, fmt.Errorf("vfscan: opening %s: %w", cfg.NetCDFFile, err)
		}
		defer f.Close()
		var rw cdf.ReaderWriterAt = f
		spec := vfio.NetCDFCloudSpec{
			XVar: cfg.XVar, YVar: cfg.YVar, ZVar: cfg.ZVar,
			VXVar: cfg.VXVar, VYVar: cfg.VYVar, VZVar: cfg.VZVar,
		}
		n, err := vfio.LoadNetCDFCloud(rw, spec, query.Store)
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{"file": cfg.NetCDFFile, "points": n}).Info("vfscan: loaded netCDF cloud")
	case cfg.ShapefilePath != "":
		n, err := vfio.LoadShapefileCloud(cfg.ShapefilePath, cfg.ValueField, query.Store)
		if err != nil {
			return nil, err
		}
		log.WithFields(logrus.Fields{"file": cfg.ShapefilePath, "points": n}).Info("vfscan: loaded shapefile cloud")
	default:
		return nil, fmt.Errorf("vfscan: config names neither NetCDFFile nor ShapefilePath")
	}

	if err := query.RefineTimes(cfg.RefineLevel); err != nil {
		return nil, fmt.Errorf("vfscan: refining index: %w", err)
	}
	return query, nil
}

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Load a point cloud and report search-grid statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			query, err := buildQuery(cfg)
			if err != nil {
				return err
			}
			stats := query.Stats()
			log.WithFields(logrus.Fields{
				"points":      query.Size(),
				"cells":       stats.CellCount,
				"aveInCount":  stats.AveInCount,
				"aveListLen":  stats.AveListLen,
				"wastedBytes": stats.WastedSpaceByte,
			}).Info("vfscan: build complete")
			return nil
		},
	}
}

func newQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "query",
		Short: "Answer nearest-point queries read as \"x y\" pairs from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			query, err := buildQuery(cfg)
			if err != nil {
				return err
			}

			scanner := bufio.NewScanner(os.Stdin)
			w := bufio.NewWriter(os.Stdout)
			defer w.Flush()
			for scanner.Scan() {
				fields := strings.Fields(scanner.Text())
				if len(fields) != 2 {
					return fmt.Errorf("vfscan: expected \"x y\" pairs, got %q", scanner.Text())
				}
				x, err := strconv.ParseFloat(fields[0], 64)
				if err != nil {
					return fmt.Errorf("vfscan: parsing x: %w", err)
				}
				y, err := strconv.ParseFloat(fields[1], 64)
				if err != nil {
					return fmt.Errorf("vfscan: parsing y: %w", err)
				}
				idx, selectCount, err := query.ClosestXY(x, y)
				if err != nil {
					return fmt.Errorf("vfscan: query (%v,%v): %w", x, y, err)
				}
				fmt.Fprintf(w, "%d\t%d\n", idx, selectCount)
			}
			return scanner.Err()
		},
	}
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Build the index once and serve nearest-point queries over RPC",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			query, err := buildQuery(cfg)
			if err != nil {
				return err
			}
			srv, err := rpcsvc.NewServer(query)
			if err != nil {
				return err
			}
			return srv.Listen(cfg.RPCPort)
		},
	}
}

func main() {
	root := &cobra.Command{
		Use:   "vfscan",
		Short: "Build and query a nearest-located-point search index",
	}
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a TOML run configuration file")
	root.PersistentFlags().Var(logLevel, "log-level", "log level (debug, info, warn, error)")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		log.SetLevel(logLevel.level)
	}
	root.AddCommand(newBuildCmd(), newQueryCmd(), newServeCmd())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
