/*
 * Copyright (c) 2024 Johan Stenstam, johan.stenstam@internetstiftelsen.se
 */

package bns

import (
	"fmt"
	"log"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	AppName          string
	AppVersion       string
	ServerBootTime   time.Time
	ServerConfigTime time.Time
	Service          ServiceConf
	DnsEngine        DnsEngineConf
	ApiServer        ApiserverConf
	Keystore         KeystoreConf
	Zones            map[string]ZoneConf
	Log              struct {
		File string `validate:"required"`
	}
	Internal InternalConf
}

type ServiceConf struct {
	Name    string `validate:"required"`
	Debug   *bool
	Verbose *bool
}

type DnsEngineConf struct {
	Addresses []string `validate:"required"`
}

type ApiserverConf struct {
	Address string
	Key     string
}

type KeystoreConf struct {
	File string
}

type InternalConf struct {
	KeyDB     *KeyDB
	APIStopCh chan struct{}
}

// ParseConfig reads cfgfile into conf and validates the required
// sections.
func ParseConfig(conf *Config, cfgfile string) error {
	viper.SetConfigFile(cfgfile)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("ParseConfig: error reading config %s: %v", cfgfile, err)
	}
	if err := viper.Unmarshal(conf); err != nil {
		return fmt.Errorf("ParseConfig: Unmarshal error: %v", err)
	}
	conf.ServerConfigTime = time.Now()
	return ValidateConfig(conf, cfgfile)
}

func ValidateConfig(conf *Config, cfgfile string) error {
	var configsections = make(map[string]interface{}, 5)

	configsections["log"] = conf.Log
	configsections["service"] = conf.Service
	configsections["dnsengine"] = conf.DnsEngine

	if err := ValidateBySection(conf, configsections, cfgfile); err != nil {
		return fmt.Errorf("Config \"%s\" is missing required attributes:\n%v", cfgfile, err)
	}
	return nil
}

func ValidateBySection(conf *Config, configsections map[string]interface{}, cfgfile string) error {
	validate := validator.New()

	for section, data := range configsections {
		if Globals.Debug {
			log.Printf("%s: Validating config for %s section", conf.Service.Name, section)
		}
		if err := validate.Struct(data); err != nil {
			return fmt.Errorf("ValidateBySection: %s: %v", section, err)
		}
	}
	return nil
}

// ValidateZones checks that every configured zone carries the required
// attributes before any file is opened.
func ValidateZones(conf *Config, cfgfile string) error {
	validate := validator.New()
	for zname, zconf := range conf.Zones {
		if zconf.Name == "" {
			zconf.Name = zname
		}
		if err := validate.Struct(zconf); err != nil {
			return fmt.Errorf("ValidateZones: zone %s in %s: %v", zname, cfgfile, err)
		}
	}
	return nil
}

// LoadZones builds a Zone for every configured zone, applies the
// configured options and registers the result.
func LoadZones(conf *Config) error {
	for zname, zconf := range conf.Zones {
		zd, err := ZoneFromFile(zname, zconf.Zonefile)
		if err != nil {
			return fmt.Errorf("LoadZones: zone %s: %v", zname, err)
		}

		for _, option := range zconf.Options {
			switch option {
			case "gen-nsec":
				if err := zd.GenerateNsecChain(); err != nil {
					return fmt.Errorf("LoadZones: zone %s: %v", zname, err)
				}
			case "online-signing":
				if conf.Internal.KeyDB == nil {
					return fmt.Errorf("LoadZones: zone %s requests online-signing but no keystore is configured", zname)
				}
				if err := zd.LoadZSK(conf.Internal.KeyDB); err != nil {
					return fmt.Errorf("LoadZones: zone %s: %v", zname, err)
				}
			default:
				log.Printf("LoadZones: zone %s: unknown option %q ignored", zname, option)
			}
		}

		Zones.Set(zd.Origin, zd)
		log.Printf("LoadZones: zone %s loaded from %s (%d owner names)",
			zd.Origin, zconf.Zonefile, len(zd.OwnerNames()))
	}
	return nil
}
