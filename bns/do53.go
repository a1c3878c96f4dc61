/*
 * Copyright (c) 2024 Johan Stenstam, johan.stenstam@internetstiftelsen.se
 */

package bns

import (
	"log"

	"github.com/miekg/dns"
	"github.com/spf13/viper"
)

// DnsEngine starts UDP and TCP listeners on every configured address
// and serves the registered zones. The engine itself is transport-free;
// this is the embedding layer.
func DnsEngine(conf *Config) error {
	dns.HandleFunc(".", createDnsHandler(conf))

	addresses := viper.GetStringSlice("dnsengine.addresses")
	log.Printf("DnsEngine: UDP/TCP addresses: %v", addresses)
	for _, addr := range addresses {
		for _, transport := range []string{"udp", "tcp"} {
			go func(addr, transport string) {
				log.Printf("DnsEngine: serving on %s (%s)\n", addr, transport)
				server := &dns.Server{
					Addr: addr,
					Net:  transport,
				}
				server.UDPSize = dns.DefaultMsgSize
				if err := server.ListenAndServe(); err != nil {
					log.Printf("Failed to setup the %s server: %s", transport, err.Error())
				}
			}(addr, transport)
		}
	}
	return nil
}

func createDnsHandler(conf *Config) func(w dns.ResponseWriter, r *dns.Msg) {
	return func(w dns.ResponseWriter, r *dns.Msg) {
		m := new(dns.Msg)

		if r.Opcode != dns.OpcodeQuery || len(r.Question) != 1 {
			m.SetRcode(r, dns.RcodeRefused)
			w.WriteMsg(m)
			return
		}

		qname := r.Question[0].Name
		qtype := r.Question[0].Qtype

		zd := FindZone(qname)
		if zd == nil {
			m.SetRcode(r, dns.RcodeRefused)
			w.WriteMsg(m)
			return
		}

		if Globals.Debug {
			log.Printf("DnsHandler: zone %s: query %s %s", zd.Origin, qname, dns.TypeToString[qtype])
		}

		resp := zd.Resolve(qname, qtype)
		m.SetReply(r)
		m.MsgHdr.Authoritative = resp.MsgHdr.Authoritative
		m.MsgHdr.Rcode = resp.MsgHdr.Rcode
		m.Answer = resp.Answer
		m.Ns = resp.Ns
		m.Extra = resp.Extra
		w.WriteMsg(m)
	}
}
