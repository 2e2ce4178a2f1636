package cli

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/multilayer/internal/server"
	"github.com/matzehuels/multilayer/pkg/buildinfo"
	"github.com/matzehuels/multilayer/pkg/observability"
	"github.com/matzehuels/multilayer/pkg/observability/prom"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		addr       string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve freshly generated graphs over HTTP",
		Long: `Serve freshly generated graphs over HTTP.

Every request generates a new graph with the loaded configuration. Append
?seed=N to reproduce a specific graph.

Routes:
  /             animated HTML document
  /graph.json   JSON export
  /graph.svg    node-link diagram
  /metrics      Prometheus metrics
  /healthz      liveness probe`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := c.loadConfig(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
			hooks := prom.New(reg)
			observability.SetPipelineHooks(hooks)
			observability.SetHTTPHooks(hooks)

			opts := cfg.Options()
			opts.Logger = c.Logger
			srv := server.New(c.newRunner(), opts, reg)

			printInfo("Listening on %s", StyleLink.Render("http://localhost"+displayAddr(addr)))
			printDetail("config hash %s", cfg.Hash()[:12])
			c.Logger.Debug("build", "version", buildinfo.Version, "commit", buildinfo.Commit)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (.toml, .yaml)")
	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")

	return cmd
}

// displayAddr turns a listen address into the host-relative part of a URL.
func displayAddr(addr string) string {
	if i := strings.LastIndexByte(addr, ':'); i >= 0 {
		return addr[i:]
	}
	return ":" + addr
}
