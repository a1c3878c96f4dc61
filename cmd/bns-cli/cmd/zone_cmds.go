/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */
package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/anothersoft/bns-plus/bns"
)

var zoneCmd = &cobra.Command{
	Use:   "zone",
	Short: "Inspect a loaded zone",
}

var zoneOwnersCmd = &cobra.Command{
	Use:   "owners",
	Short: "List the owner names in the zone",
	Run: func(cmd *cobra.Command, args []string) {
		zd := loadZone()
		for _, name := range zd.OwnerNames() {
			fmt.Println(name)
		}
	},
}

var zoneNsecCmd = &cobra.Command{
	Use:   "nsec",
	Short: "Generate and print the NSEC chain for the zone",
	Run: func(cmd *cobra.Command, args []string) {
		zd := loadZone()
		if err := zd.GenerateNsecChain(); err != nil {
			log.Fatalf("Error generating NSEC chain: %v", err)
		}
		nsecrrs, err := zd.ShowNsecChain()
		if err != nil {
			log.Fatalf("Error from ShowNsecChain: %v", err)
		}
		for _, rr := range nsecrrs {
			fmt.Println(rr)
		}
	},
}

var hintsCmd = &cobra.Command{
	Use:   "hints",
	Short: "Print the compiled-in root hints",
	Run: func(cmd *cobra.Command, args []string) {
		ns, addrs := bns.GetHints()
		for _, rr := range ns {
			fmt.Println(rr.String())
		}
		for _, rr := range addrs {
			fmt.Println(rr.String())
		}
	},
}

func init() {
	rootCmd.AddCommand(zoneCmd)
	rootCmd.AddCommand(hintsCmd)
	zoneCmd.AddCommand(zoneOwnersCmd)
	zoneCmd.AddCommand(zoneNsecCmd)
}
