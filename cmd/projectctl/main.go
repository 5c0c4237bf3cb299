// projectctl is the operator tool for managing projects in the
// metadata store: listing them, creating one, or applying the PROJECTS
// seed list without starting the server.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/hpfxd/bibliothek/internal/config"
	"github.com/hpfxd/bibliothek/internal/database"
)

func usage() {
	fmt.Fprintf(os.Stderr, `usage: projectctl <command> [args]

commands:
  list                          list projects
  create <name> [friendly]      create a project
  seed                          apply the PROJECTS env seed list
`)
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 {
		usage()
	}

	if err := config.Load(); err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := database.Connect(config.Current.DatabaseURL); err != nil {
		log.Fatalf("database connect failed: %v", err)
	}
	if err := database.Migrate(); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	switch args[0] {
	case "list":
		projects, err := database.ListProjects()
		if err != nil {
			log.Fatalf("list failed: %v", err)
		}
		for _, p := range projects {
			fmt.Printf("%s\t%s\n", p.Name, p.FriendlyName)
		}
	case "create":
		if len(args) < 2 {
			usage()
		}
		name := args[1]
		friendly := name
		if len(args) > 2 {
			friendly = args[2]
		}
		if _, err := database.CreateProject(name, friendly); err != nil {
			log.Fatalf("create failed: %v", err)
		}
		fmt.Printf("created %s\n", name)
	case "seed":
		if err := database.SeedProjects(config.Current.Projects); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	default:
		usage()
	}
}
