package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/grouplabel/grouplabel/internal/profile"
	"github.com/grouplabel/grouplabel/server"
	"github.com/grouplabel/grouplabel/server/service/label"
	"github.com/grouplabel/grouplabel/store"
	"github.com/grouplabel/grouplabel/store/db"
)

const greetingBanner = `grouplabel - membership and prefix resolution engine`

var rootCmd = &cobra.Command{
	Use:   "grouplabel",
	Short: "A membership and prefix resolution service",
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		instanceProfile := &profile.Profile{
			Mode:            viper.GetString("mode"),
			Addr:            viper.GetString("addr"),
			Port:            viper.GetInt("port"),
			Data:            viper.GetString("data"),
			Driver:          viper.GetString("driver"),
			DSN:             viper.GetString("dsn"),
			DefaultGroup:    viper.GetString("default-group"),
			CacheMaxItems:   viper.GetInt("cache-max-items"),
			SignRefreshSpec: viper.GetString("sign-refresh-spec"),
		}
		instanceProfile.FromEnv()
		if err := instanceProfile.Validate(); err != nil {
			return fmt.Errorf("failed to validate profile: %w", err)
		}

		dbDriver, err := db.NewDBDriver(instanceProfile)
		if err != nil {
			return fmt.Errorf("failed to create db driver: %w", err)
		}

		storeInstance := store.New(dbDriver, instanceProfile)
		if err := storeInstance.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}

		labelService := label.NewService(storeInstance, clock.New())

		s, err := server.NewServer(ctx, instanceProfile, storeInstance, labelService)
		if err != nil {
			return fmt.Errorf("failed to create server: %w", err)
		}

		if err := s.Start(ctx); err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}

		printGreetings(instanceProfile)

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		go func() {
			sig := <-c
			slog.Info("received signal, shutting down", "signal", sig.String())
			s.Shutdown(ctx)
			cancel()
		}()

		<-ctx.Done()
		return nil
	},
}

func printGreetings(profile *profile.Profile) {
	fmt.Println(greetingBanner)
	fmt.Printf("version %s, mode %s, driver %s\n", profile.Version, profile.Mode, profile.Driver)
	fmt.Printf("listening on %s:%d\n", profile.Addr, profile.Port)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("failed to run command", "error", err)
		os.Exit(1)
	}
}

func init() {
	viper.SetDefault("mode", "dev")
	viper.SetDefault("driver", "sqlite")
	viper.SetDefault("port", 8291)

	rootCmd.PersistentFlags().String("mode", "dev", `mode of the server, can be "prod" or "dev"`)
	rootCmd.PersistentFlags().String("addr", "", "binding address for the server")
	rootCmd.PersistentFlags().Int("port", 8291, "binding port for the server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database connection string")
	rootCmd.PersistentFlags().String("default-group", "", "group assigned to newly seen subjects")
	rootCmd.PersistentFlags().Int("cache-max-items", 1000, "upper bound for cached entries")
	rootCmd.PersistentFlags().String("sign-refresh-spec", "", "cron spec for the sign refresh runner, empty disables it")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}
	viper.SetEnvPrefix("grouplabel")
	viper.AutomaticEnv()
}
