/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */
package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/anothersoft/bns-plus/bns"
)

var zonefile, origin string

var rootCmd = &cobra.Command{
	Use:   "bns-cli",
	Short: "bns-cli loads a zone file and answers queries against it locally",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	cobra.OnInitialize(func() { bns.SetupCliLogging() })

	rootCmd.PersistentFlags().StringVarP(&zonefile, "file", "f", "", "zone file to load")
	rootCmd.PersistentFlags().StringVarP(&origin, "origin", "o", ".", "zone origin")
	rootCmd.PersistentFlags().BoolVarP(&bns.Globals.Debug, "debug", "d", false, "debug output")
	rootCmd.PersistentFlags().BoolVarP(&bns.Globals.Verbose, "verbose", "v", false, "verbose output")
}

func loadZone() *bns.Zone {
	if zonefile == "" {
		log.Fatalf("Error: no zone file specified (use --file)")
	}
	zd, err := bns.ZoneFromFile(origin, zonefile)
	if err != nil {
		log.Fatalf("Error loading zone %s from %s: %v", origin, zonefile, err)
	}
	return zd
}
