package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"sales-analytics/pkg/database"
	"sales-analytics/pkg/models"
)

var (
	log = logrus.New()

	rootCmd = &cobra.Command{
		Use:   "sales-analytics",
		Short: "Sales analytics over the customers/products/orders schema",
		Long: `Recomputes derived analytics tables from a MariaDB/MySQL snapshot of the
customers, products, orders and order_items tables: monthly cohort retention,
product affinity, customer lifetime value and a rolling sales time series.
Each run is a full recomputation; nothing is mutated incrementally.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if viper.GetBool("verbose") {
				log.SetLevel(logrus.DebugLevel)
			}
		},
	}
)

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("dsn", "", "MariaDB/MySQL DSN or mysql:// URL (env SALES_DSN)")
	pf.String("as-of", "", "reference date for tenure and projections, YYYY-MM-DD (default: today UTC)")
	pf.BoolP("verbose", "v", false, "debug logging")
	_ = viper.BindPFlag("dsn", pf.Lookup("dsn"))
	_ = viper.BindPFlag("as_of", pf.Lookup("as-of"))
	_ = viper.BindPFlag("verbose", pf.Lookup("verbose"))
}

func initConfig() {
	// .env first so a local DSN can stay out of the shell profile.
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home + "/.sales-analytics")
	}
	viper.SetEnvPrefix("sales")
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional.
	}
}

// openRepo connects and verifies the schema contract before anything runs.
func openRepo(ctx context.Context) (*sql.DB, *database.Repository, error) {
	dsn := viper.GetString("dsn")
	if dsn == "" {
		return nil, nil, fmt.Errorf("dsn required (--dsn, SALES_DSN env, or config file)")
	}
	db, _, err := database.Open(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.CheckSchema(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}
	log.Debug("connected, schema verified")
	return db, database.NewRepository(db, log), nil
}

// runParams resolves the shared parameters; per-engine commands override
// their own thresholds on the returned copy.
func runParams() (models.Params, error) {
	now := time.Now().UTC()
	asOf := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if s := viper.GetString("as_of"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return models.Params{}, fmt.Errorf("as-of: %w", err)
		}
		asOf = t.UTC()
	}
	return models.DefaultParams(asOf), nil
}
