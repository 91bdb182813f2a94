package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/relgraph/internal/server"
	"github.com/matzehuels/relgraph/pkg/session"
)

// serveCommand creates the serve command for the interactive viewer.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		watch      bool
		sessionDir string
		theme      string
		noCache    bool
	)

	cmd := &cobra.Command{
		Use:   "serve [graph.json]",
		Short: "Serve an interactive viewer for a graph",
		Long: `Serve an interactive viewer for a graph.

The viewer shows the rendered graph with a search box. Hovering a node
selects it, moving through search results recenters the camera on the
focused node and picking a result selects it. Each browser gets its own
session; sessions live in memory unless --session-dir is set.

With --watch the graph file is reloaded whenever it changes on disk.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			opts, err := c.mergeFlags(cmd, c.pipelineOptions(), theme)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			var (
				store      session.Store = session.NewMemoryStore()
				storeLabel               = "memory"
			)
			if cmd.Flags().Changed("session-dir") || c.Config.Server.SessionDir != "" {
				dir := sessionDir
				if !cmd.Flags().Changed("session-dir") {
					dir = c.Config.Server.SessionDir
				}
				fs, err := session.NewFileStore(dir)
				if err != nil {
					return fmt.Errorf("open session store: %w", err)
				}
				store, storeLabel = fs, fs.Dir()
			}

			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			srv, err := server.New(ctx, server.Options{
				Addr:       addr,
				GraphPath:  args[0],
				Watch:      watch,
				SessionTTL: c.Config.Server.SessionTTL.Duration,
				Pipeline:   opts,
				Runner:     runner,
				Sessions:   store,
				Logger:     c.Logger,
			})
			if err != nil {
				return err
			}
			defer srv.Close()

			printSuccess("Viewer ready")
			printKeyValue("Graph", args[0])
			printKeyValue("Address", "http://"+displayAddr(addr))
			printKeyValue("Sessions", storeLabel)
			if watch {
				printDetail("watching for changes")
			}
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the graph when the file changes")
	cmd.Flags().StringVar(&sessionDir, "session-dir", "", "persist sessions as files in this directory")
	cmd.Flags().StringVar(&theme, "theme", "", "color theme: light, dark (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
