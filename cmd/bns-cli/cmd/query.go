/*
 * Copyright (c) 2024 Johan Stenstam, johani@johani.org
 */
package cmd

import (
	"fmt"
	"log"
	"strings"

	"github.com/gookit/goutil/dump"
	"github.com/miekg/dns"
	"github.com/ryanuber/columnize"
	"github.com/spf13/cobra"
)

var queryCmd = &cobra.Command{
	Use:   "query <qname> <qtype>",
	Short: "Resolve a query against the loaded zone and print the response sections",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		zd := loadZone()

		qname := dns.Fqdn(strings.ToLower(args[0]))
		qtype, exist := dns.StringToType[strings.ToUpper(args[1])]
		if !exist {
			log.Fatalf("Error: unknown RR type: %s", args[1])
		}

		m := zd.Resolve(qname, qtype)

		fmt.Printf("rcode: %s, aa: %v\n", dns.RcodeToString[m.MsgHdr.Rcode], m.MsgHdr.Authoritative)
		printSection("Answer", m.Answer)
		printSection("Authority", m.Ns)
		printSection("Additional", m.Extra)

		if cmd.Flag("debug").Value.String() == "true" {
			dump.P(m)
		}
	},
}

func printSection(title string, rrs []dns.RR) {
	if len(rrs) == 0 {
		return
	}
	fmt.Printf(";; %s:\n", title)
	var lines []string
	for _, rr := range rrs {
		h := rr.Header()
		rdata := strings.TrimPrefix(rr.String(), h.String())
		lines = append(lines, fmt.Sprintf("%s|%d|%s|%s|%s",
			h.Name, h.Ttl, dns.ClassToString[h.Class],
			dns.TypeToString[h.Rrtype], rdata))
	}
	fmt.Println(columnize.SimpleFormat(lines))
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
