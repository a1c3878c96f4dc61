/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */
package bns

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/miekg/dns"
)

type PingResponse struct {
	Time    time.Time
	Client  string
	Message string
}

func APIping(conf *Config) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := PingResponse{
			Time:    time.Now(),
			Client:  r.RemoteAddr,
			Message: "pong from " + conf.Service.Name,
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func APIzoneList(conf *Config) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := ZoneListResponse{
			Time:  time.Now(),
			Zones: Zones.Keys(),
		}
		sort.Strings(resp.Zones)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

// APIzoneQuery resolves ?name=...&type=... against the enclosing zone
// and returns the raw response sections in presentation format.
func APIzoneQuery(conf *Config) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := ZoneQueryResponse{Time: time.Now()}
		defer func() {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(resp)
		}()

		qname := r.URL.Query().Get("name")
		typestr := r.URL.Query().Get("type")
		if qname == "" || typestr == "" {
			resp.Error = true
			resp.ErrorMsg = "both name and type must be specified"
			return
		}
		qname = dns.Fqdn(qname)
		qtype, exist := dns.StringToType[typestr]
		if !exist {
			resp.Error = true
			resp.ErrorMsg = "unknown RR type: " + typestr
			return
		}

		zd := FindZone(qname)
		if zd == nil {
			resp.Error = true
			resp.ErrorMsg = "no zone found for " + qname
			return
		}

		m := zd.Resolve(qname, qtype)

		resp.Zone = zd.Origin
		resp.Qname = dns.CanonicalName(qname)
		resp.Qtype = typestr
		resp.Rcode = dns.RcodeToString[m.MsgHdr.Rcode]
		resp.Aa = m.MsgHdr.Authoritative
		for _, rr := range m.Answer {
			resp.Answer = append(resp.Answer, rr.String())
		}
		for _, rr := range m.Ns {
			resp.Authority = append(resp.Authority, rr.String())
		}
		for _, rr := range m.Extra {
			resp.Additional = append(resp.Additional, rr.String())
		}
	}
}

func APIhints(conf *Config) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		ns, addrs := GetHints()
		resp := HintsResponse{Time: time.Now()}
		for _, rr := range ns {
			resp.NS = append(resp.NS, rr.String())
		}
		for _, rr := range addrs {
			resp.Addrs = append(resp.Addrs, rr.String())
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}
