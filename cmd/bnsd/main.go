/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */

package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/mattn/go-sqlite3"
	flag "github.com/spf13/pflag"

	"github.com/anothersoft/bns-plus/bns"
)

var appVersion = "unknown"

const DefaultCfgFile = "/etc/bns/bnsd.yaml"

func mainloop(conf *bns.Config) {
	exit := make(chan os.Signal, 1)
	signal.Notify(exit, syscall.SIGINT, syscall.SIGTERM)
	hupper := make(chan os.Signal, 1)
	signal.Notify(hupper, syscall.SIGHUP)

	var wg sync.WaitGroup
	wg.Add(1)

	go func() {
		for {
			select {
			case <-exit:
				log.Println("mainloop: Exit signal received. Cleaning up.")
				close(conf.Internal.APIStopCh)
				wg.Done()
			case <-hupper:
				log.Println("mainloop: SIGHUP received. Reloading all configured zones.")
				if err := bns.LoadZones(conf); err != nil {
					log.Printf("Error reloading zones: %v", err)
				}
			}
		}
	}()
	wg.Wait()

	fmt.Println("mainloop: leaving signal dispatcher")
}

func main() {
	var conf bns.Config

	conf.ServerBootTime = time.Now()
	conf.AppVersion = appVersion
	conf.AppName = "bnsd"

	var cfgFile string
	flag.StringVar(&cfgFile, "config", DefaultCfgFile, "config file")
	flag.BoolVarP(&bns.Globals.Debug, "debug", "d", false, "Debug mode")
	flag.BoolVarP(&bns.Globals.Verbose, "verbose", "v", false, "Verbose mode")
	flag.Parse()

	if err := bns.ParseConfig(&conf, cfgFile); err != nil {
		log.Fatalf("Error parsing config: %v", err)
	}

	if err := bns.SetupLogging(conf.Log.File); err != nil {
		log.Fatalf("Error setting up logging: %v", err)
	}

	log.Printf("*** %s (version %s) starting", conf.AppName, conf.AppVersion)

	if conf.Keystore.File != "" {
		kdb, err := bns.NewKeyDB(conf.Keystore.File)
		if err != nil {
			log.Fatalf("Error opening keystore: %v", err)
		}
		defer kdb.Close()
		conf.Internal.KeyDB = kdb
	}

	if err := bns.ValidateZones(&conf, cfgFile); err != nil {
		log.Fatalf("Error validating zones: %v", err)
	}
	if err := bns.LoadZones(&conf); err != nil {
		log.Fatalf("Error loading zones: %v", err)
	}

	conf.Internal.APIStopCh = make(chan struct{})
	if err := bns.APIdispatcher(&conf, conf.Internal.APIStopCh); err != nil {
		log.Fatalf("Error starting API dispatcher: %v", err)
	}

	if err := bns.DnsEngine(&conf); err != nil {
		log.Fatalf("Error starting DNS engine: %v", err)
	}

	mainloop(&conf)
}
