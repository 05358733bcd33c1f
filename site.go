package main

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"

	"git.sr.ht/~dvko/mdsite/markdown"
)

var frontMatter = []byte("+++")

type Site struct {
	pages []Page

	Title    string `toml:"title"`
	SiteUrl  string `toml:"url"`
	Engine   string `toml:"engine"`
	Template string `toml:"template"`

	RootDir   string `toml:"-"`
	OutputDir string `toml:"-"`

	convert   converter
	templates map[string]string
}

type Page struct {
	Title         string
	Template      string
	DatePublished time.Time
	DateModified  time.Time
	Permalink     string
	UrlPath       string
	Filepath      string
}

// parseFilename parses the URL path and optional date component from the given file path
func parseFilename(path string, rootDir string) (string, time.Time) {
	path = strings.TrimPrefix(path, rootDir+"content/")
	path = strings.TrimSuffix(path, ".md")
	path = strings.TrimSuffix(path, ".html")
	path = strings.TrimSuffix(path, "index")

	filename := filepath.Base(path)
	if len(filename) > 11 && filename[4] == '-' && filename[7] == '-' && filename[10] == '-' {
		date, err := time.Parse("2006-01-02", filename[0:10])
		if err == nil {
			return path[0:len(path)-len(filename)] + filename[11:] + "/", date
		}
	}

	if path != "" && path[len(path)-1] != '/' {
		path += "/"
	}

	return path, time.Time{}
}

// splitFrontMatter separates an optional +++ delimited TOML header from the
// body of a content file. front is nil when there is no header.
func splitFrontMatter(content []byte) (front []byte, body []byte, err error) {
	if !bytes.HasPrefix(content, frontMatter) {
		return nil, content, nil
	}

	// find pos of closing front matter
	pos := bytes.Index(content[3:], frontMatter)
	if pos == -1 {
		return nil, nil, errors.New("missing closing front-matter identifier")
	}

	return content[3 : pos+3], content[pos+6:], nil
}

// parseFrontMatter reads the title and template of a page. Markdown pages
// without a title in their front matter take it from their first "# "
// heading. HTML pages keep an empty title.
func parseFrontMatter(p *Page) error {
	content, err := readText(p.Filepath)
	if err != nil {
		return err
	}

	front, body, err := splitFrontMatter([]byte(content))
	if err != nil {
		return fmt.Errorf("%s: %w", p.Filepath, err)
	}
	if front != nil {
		if err := toml.Unmarshal(front, p); err != nil {
			return fmt.Errorf("%s: %w", p.Filepath, err)
		}
	}

	if p.Title == "" && filepath.Ext(p.Filepath) == ".md" {
		if p.Title, err = markdown.ExtractTitle(string(body)); err != nil {
			return fmt.Errorf("%s: %w", p.Filepath, err)
		}
	}

	return nil
}

// ParseContent returns the body of the page as HTML.
func (p *Page) ParseContent(convert converter) (string, error) {
	fileContent, err := readText(p.Filepath)
	if err != nil {
		return "", err
	}

	_, body, err := splitFrontMatter([]byte(fileContent))
	if err != nil {
		return "", err
	}

	// If source file has HTML extension, return content directly
	if strings.HasSuffix(p.Filepath, ".html") {
		return string(body), nil
	}

	return convert(body)
}

// applyTemplate fills the title and content placeholders of a template.
func applyTemplate(tmpl string, title string, content string) string {
	return strings.NewReplacer("{{ Title }}", title, "{{ Content }}", content).Replace(tmpl)
}

// buildPage renders a single page and returns the number of bytes written.
func (s *Site) buildPage(p *Page) (int, error) {
	content, err := p.ParseContent(s.convert)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", p.Filepath, err)
	}

	tmpl, ok := s.templates[p.Template]
	if !ok {
		return 0, fmt.Errorf("%s: invalid template name: %s", p.Filepath, p.Template)
	}

	html := applyTemplate(tmpl, p.Title, content)
	if err := writeText(html, s.OutputDir+p.UrlPath+"index.html"); err != nil {
		return 0, err
	}
	return len(html), nil
}

func (s *Site) AddPageFromFile(file string) error {
	if ext := filepath.Ext(file); ext != ".md" && ext != ".html" {
		log.Warn("Skipping %s: not a markdown or HTML file\n", file)
		return nil
	}

	info, err := os.Stat(file)
	if err != nil {
		return err
	}

	urlPath, datePublished := parseFilename(file, s.RootDir)

	p := Page{
		Filepath:      file,
		UrlPath:       urlPath,
		Permalink:     s.SiteUrl + urlPath,
		DatePublished: datePublished,
		DateModified:  info.ModTime(),
		Template:      s.Template,
	}

	if err := parseFrontMatter(&p); err != nil {
		return err
	}

	s.pages = append(s.pages, p)
	return nil
}

func (s *Site) readContent(dir string) error {
	defer measure("readContent")()

	// walk over files in "content" directory
	err := filepath.WalkDir(dir, func(file string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		return s.AddPageFromFile(file)
	})

	sort.Slice(s.pages, func(i int, j int) bool {
		return s.pages[i].UrlPath < s.pages[j].UrlPath
	})

	return err
}

// readTemplates loads every .html file in dir, keyed by file name.
func (s *Site) readTemplates(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	s.templates = make(map[string]string, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".html" {
			continue
		}
		tmpl, err := readText(dir + e.Name())
		if err != nil {
			return err
		}
		s.templates[e.Name()] = tmpl
	}

	if len(s.templates) == 0 {
		return fmt.Errorf("no templates found in %s", dir)
	}
	return nil
}

// buildPages renders every page concurrently. All page errors are returned.
func (s *Site) buildPages() (int, error) {
	defer measure("buildPages")()

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int
		errs  []error
	)

	wg.Add(len(s.pages))
	for _, p := range s.pages {
		go func(p Page) {
			defer wg.Done()

			n, err := s.buildPage(&p)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warn("Error processing %s: %s\n", p.Filepath, err)
				errs = append(errs, err)
				return
			}
			total += n
		}(p)
	}
	wg.Wait()

	return total, errors.Join(errs...)
}

func (s *Site) createSitemap() error {
	defer measure("createSitemap")()

	type Url struct {
		XMLName xml.Name `xml:"url"`
		Loc     string   `xml:"loc"`
		LastMod string   `xml:"lastmod"`
	}

	type Envelope struct {
		XMLName xml.Name `xml:"urlset"`
		XMLNS   string   `xml:"xmlns,attr"`
		Urls    []Url    `xml:""`
	}

	urls := make([]Url, 0, len(s.pages))
	for _, p := range s.pages {
		lastMod := p.DateModified
		if !p.DatePublished.IsZero() && p.DatePublished.After(lastMod) {
			lastMod = p.DatePublished
		}
		urls = append(urls, Url{
			Loc:     p.Permalink,
			LastMod: lastMod.Format(time.RFC3339),
		})
	}

	env := Envelope{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		Urls:  urls,
	}

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	if err := xml.NewEncoder(&buf).Encode(env); err != nil {
		return err
	}

	return writeText(buf.String(), s.OutputDir+"sitemap.xml")
}

// func to calculate and print execution time
func measure(name string) func() {
	start := time.Now()
	return func() {
		log.Info("%s execution time: %v\n", name, time.Since(start))
	}
}

func parseConfig(s *Site, file string) error {
	_, err := toml.DecodeFile(file, s)
	if err != nil {
		return err
	}

	// ensure site url has trailing slash
	if !strings.HasSuffix(s.SiteUrl, "/") {
		s.SiteUrl += "/"
	}

	return nil
}

// within reports whether path is dir or lies below it. Both must be absolute.
func within(path string, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// checkOutputDir returns the absolute output directory, refusing any path
// whose removal would touch the site sources or the filesystem root.
func checkOutputDir(rootPath string, outputDir string) (string, error) {
	if outputDir == "" {
		return "", errors.New("output directory must not be empty")
	}

	out, err := filepath.Abs(outputDir)
	if err != nil {
		return "", err
	}
	if out == filepath.VolumeName(out)+string(filepath.Separator) {
		return "", fmt.Errorf("refusing to use filesystem root %s as output directory", out)
	}

	root, err := filepath.Abs(rootPath + ".")
	if err != nil {
		return "", err
	}
	if within(root, out) {
		return "", fmt.Errorf("refusing to use %s as output directory: it contains the site root %s", out, root)
	}
	for _, dir := range []string{"content", "templates", "public"} {
		src := filepath.Join(root, dir)
		if within(out, src) {
			return "", fmt.Errorf("refusing to use %s as output directory: it is inside %s", out, src)
		}
	}

	return out, nil
}

func buildSite(rootPath string, configFile string, outputDir string) error {
	timeStart := time.Now()

	out, err := checkOutputDir(rootPath, outputDir)
	if err != nil {
		return err
	}

	// pages are rendered into a sibling directory that replaces out only
	// once the whole build succeeded
	staging, err := os.MkdirTemp(filepath.Dir(out), "."+filepath.Base(out)+"-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(staging)
	if err := os.Chmod(staging, 0755); err != nil {
		return err
	}

	site := &Site{
		RootDir:   rootPath,
		OutputDir: staging + "/",
		Engine:    "builtin",
		Template:  "default.html",
	}

	if err := parseConfig(site, rootPath+configFile); err != nil {
		return fmt.Errorf("error reading configuration file at %s: %w", rootPath+configFile, err)
	}

	if site.convert, err = newConverter(site.Engine); err != nil {
		return err
	}

	if err := site.readTemplates(rootPath + "templates/"); err != nil {
		return fmt.Errorf("error reading templates/ directory: %w", err)
	}

	if err := site.readContent(rootPath + "content/"); err != nil {
		return fmt.Errorf("error reading content/: %w", err)
	}

	// static files
	if _, err := os.Stat(rootPath + "public/"); err == nil {
		if err := copyDirRecursively(rootPath+"public/", site.OutputDir); err != nil {
			return fmt.Errorf("error copying public/ directory: %w", err)
		}
	}

	size, err := site.buildPages()
	if err != nil {
		return err
	}

	if err := site.createSitemap(); err != nil {
		log.Warn("Error creating sitemap: %s\n", err)
	}

	if err := os.RemoveAll(out); err != nil {
		return err
	}
	if err := os.Rename(staging, out); err != nil {
		return err
	}

	log.Info("Built site containing %d pages (%s) in %d ms\n", len(site.pages), humanize.Bytes(uint64(size)), time.Since(timeStart).Milliseconds())
	return nil
}
