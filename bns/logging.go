/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */

package bns

import (
	"fmt"
	"log"

	"gopkg.in/natefinch/lumberjack.v2"
)

func SetupLogging(logfile string) error {

	log.SetFlags(log.Lshortfile | log.Ltime)

	if logfile == "" {
		return fmt.Errorf("Error: standard log (key log.file) not specified")
	}
	log.SetOutput(&lumberjack.Logger{
		Filename:   logfile,
		MaxSize:    20,
		MaxBackups: 3,
		MaxAge:     14,
	})

	return nil
}

// SetupCliLogging sets up logging for CLI commands with file/line info
// when verbose or debug mode is enabled.
func SetupCliLogging() {
	if Globals.Verbose || Globals.Debug {
		log.SetFlags(log.Lshortfile | log.Ltime)
	} else {
		log.SetFlags(0)
	}
}
