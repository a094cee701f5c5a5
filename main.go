package main

import (
	"flag"
	"log"
)

// main is grounded on ircd.go's main(): parse flags, load config, build a
// server, run it, log a clean shutdown. spec.md §6 pins --host/--port/--name
// as the external CLI surface; the teacher's --config flag is kept
// alongside them.
func main() {
	log.SetFlags(0)

	configFile := flag.String("config", "", "Configuration file.")
	host := flag.String("host", "", "Listen host (overrides config file).")
	port := flag.String("port", "", "Listen port (overrides config file).")
	name := flag.String("name", "", "Server name (overrides config file).")
	flag.Parse()

	cfg, err := loadConfig(*configFile, *host, *port, *name)
	if err != nil {
		log.Fatal(err)
	}

	s := newServer(cfg)

	if err := s.ListenAndServe(); err != nil {
		log.Fatal(err)
	}

	log.Printf("Server shutdown cleanly.")
}
