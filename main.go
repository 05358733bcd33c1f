package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"
)

func main() {
	configFile := "config.toml"
	rootPath := ""
	outputDir := "build/"

	// parse flags
	flag.StringVar(&configFile, "config", configFile, "")
	flag.StringVar(&configFile, "c", configFile, "")
	flag.StringVar(&rootPath, "root", rootPath, "")
	flag.StringVar(&rootPath, "r", rootPath, "")
	flag.StringVar(&outputDir, "output", outputDir, "")
	flag.StringVar(&outputDir, "o", outputDir, "")
	flag.Parse()

	command := os.Args[len(os.Args)-1]
	if command != "build" && command != "serve" && command != "new" {
		fmt.Printf(`Mdsite - a small markdown static site generator

Usage: mdsite [OPTIONS] <COMMAND>

Commands:
	build	Deletes the output directory if there is one and builds the site
	serve	Builds the site, rebuilds on changes and starts an HTTP server on http://localhost:8080
	new     Creates a new site structure in the given directory

Options:
	-r, --root <ROOT> Directory to use as root of project (default: .)
	-c, --config <CONFIG> Path to configuration file (default: config.toml)
	-o, --output <OUTPUT> Directory to write the site to (default: build/)
`)
		return
	}

	// ensure rootPath has a trailing slash
	if rootPath != "" && !strings.HasSuffix(rootPath, "/") {
		rootPath += "/"
	}

	if command == "new" {
		if err := createDirectoryStructure(rootPath); err != nil {
			log.Fatal("Error creating site structure: %s\n", err)
		}
		return
	}

	if err := buildSite(rootPath, configFile, outputDir); err != nil {
		log.Fatal("Error building site: %s\n", err)
	}

	if command == "serve" {
		go watchDirs([]string{rootPath + "content", rootPath + "templates", rootPath + "public"}, func() {
			if err := buildSite(rootPath, configFile, outputDir); err != nil {
				log.Err("Error rebuilding site: %s\n", err)
			}
		})

		log.Info("Listening on http://localhost:8080\n")
		log.Fatal("%s\n", http.ListenAndServe("localhost:8080", http.FileServer(http.Dir(outputDir))))
	}
}

func createDirectoryStructure(rootPath string) error {
	for _, dir := range []string{"content", "templates", "public"} {
		if err := os.MkdirAll(rootPath+dir, 0755); err != nil {
			return err
		}
	}

	// create configuration file
	if err := writeText("url = \"http://localhost:8080\"\ntitle = \"My website\"\n", rootPath+"config.toml"); err != nil {
		return err
	}

	// create default template
	if err := writeText("<!DOCTYPE html>\n<head>\n\t<title>{{ Title }}</title>\n</head>\n<body>\n{{ Content }}\n</body>\n</html>", rootPath+"templates/default.html"); err != nil {
		return err
	}

	// create homepage
	if err := writeText("# Welcome\n\nWelcome to my website.\n", rootPath+"content/index.md"); err != nil {
		return err
	}

	return nil
}
