/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */
package bns

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

func SetupRouter(conf *Config) *mux.Router {
	r := mux.NewRouter().StrictSlash(true)

	sr := r.PathPrefix("/api/v1").Subrouter()
	sr.HandleFunc("/ping", APIping(conf)).Methods("GET", "POST")
	sr.HandleFunc("/zone/list", APIzoneList(conf)).Methods("GET")
	sr.HandleFunc("/zone/query", APIzoneQuery(conf)).Methods("GET")
	sr.HandleFunc("/hints", APIhints(conf)).Methods("GET")

	return r
}

// APIdispatcher runs the management API on the configured address.
// The API is read-only; zone data only changes through reload.
func APIdispatcher(conf *Config, done <-chan struct{}) error {
	if conf.ApiServer.Address == "" {
		log.Printf("APIdispatcher: no address configured. Not starting.")
		return nil
	}

	router := SetupRouter(conf)

	srv := &http.Server{
		Addr:         conf.ApiServer.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("APIdispatcher: serving on %s", conf.ApiServer.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("APIdispatcher: %v", err)
		}
	}()

	go func() {
		<-done
		srv.Close()
	}()

	return nil
}
