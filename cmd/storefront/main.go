package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/greenroots/storefront/internal/admin"
	"github.com/greenroots/storefront/internal/api"
	"github.com/greenroots/storefront/internal/cart"
	"github.com/greenroots/storefront/internal/catalog"
	"github.com/greenroots/storefront/internal/chat"
	"github.com/greenroots/storefront/internal/checkout"
	"github.com/greenroots/storefront/internal/config"
	"github.com/greenroots/storefront/internal/logging"
	"github.com/greenroots/storefront/internal/orders"
	"github.com/greenroots/storefront/internal/session"
	"github.com/greenroots/storefront/internal/ui"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "GreenRoots terminal storefront",
	Long: `Browse biogas systems and organic fertilizers, manage your cart,
place orders and track them, all from the terminal.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("storefront " + version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The TUI owns stdout, so logs go to a file under the state dir.
	logger, err := logging.New(cfg.State.Dir, cfg.Debug)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	var store *session.Store
	client := api.New(cfg.API, cfg.Payment, func() string {
		return store.Token()
	}, logger)
	store = session.NewStore(cfg.State.Dir, client, logger)
	store.Init()

	cartView := cart.NewView(client, store, logger)
	deps := ui.Deps{
		Session: store,
		Catalog: catalog.NewView(client, logger),
		Cart:    cartView,
		Checkout: func() *checkout.Flow {
			return checkout.NewFlow(client, logger)
		},
		Orders: orders.NewHistory(client, logger),
		Detail: orders.NewDetail(client, logger),
		Admin:  admin.NewBackoffice(client, logger),
		Chat:   chat.NewResponder(client, logger),
		Log:    logger,
	}

	app := ui.NewApp(deps)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited", zap.Error(err))
		return err
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
