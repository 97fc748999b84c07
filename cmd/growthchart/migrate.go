package main

import (
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the schema and seed an empty store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		st, err := openStore(cfg.Database)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		applied, seeded, err := migrate(cmd.Context(), st, cfg.Seed)
		if err != nil {
			return err
		}
		for _, v := range applied {
			log.WithField("version", v).Info("applied migration")
		}
		log.WithFields(log.Fields{
			"driver":  cfg.Database.Driver,
			"applied": len(applied),
			"seeded":  seeded,
		}).Info("schema up to date")
		return nil
	},
}
