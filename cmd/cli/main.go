package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"codexdb/pkg/common"
	"codexdb/pkg/config"
	"codexdb/pkg/core"
	"codexdb/pkg/logger"
	"codexdb/pkg/storage"
)

const Prompt = "codex> "

type session struct {
	catalog *core.Catalog
	backend storage.Backend
	order   core.Order
	log     *logger.Logger
	out     io.Writer
	dirty   bool
}

func main() {
	configPath := flag.String("config", "", "Path to codex.yaml")
	file := flag.String("file", "", "Catalog file (overrides storage.path)")
	driver := flag.String("driver", "", "Storage driver: text or sqlite (overrides storage.driver)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	if *file != "" {
		cfg.Storage.Path = *file
	}
	if *driver != "" {
		cfg.Storage.Driver = *driver
	}

	log := logger.FromConfig(cfg.Log.Level, cfg.Log.Format)
	order, err := core.ParseOrder(cfg.Storage.SaveOrder)
	if err != nil {
		log.Warn("falling back to in-order save", "error", err)
	}

	catalog, backend, err := openCatalog(cfg.Storage, log)
	if err != nil {
		log.Error("open catalog", "error", err)
		os.Exit(1)
	}
	defer backend.Close()
	defer catalog.Close()

	s := &session{catalog: catalog, backend: backend, order: order, log: log, out: os.Stdout}
	fmt.Printf("Codex catalog (%s, %d records). Type 'help' for commands.\n", backend.Name(), catalog.Len())
	s.run(os.Stdin)
}

// openCatalog opens the configured backend and loads the catalog from it.
// On failure the backend is already closed.
func openCatalog(cfg config.StorageConfig, log *logger.Logger) (*core.Catalog, storage.Backend, error) {
	backend, err := storage.Open(cfg)
	if err != nil {
		return nil, nil, err
	}

	catalog, err := core.Load(backend, log)
	if err != nil {
		backend.Close()
		return nil, nil, err
	}
	return catalog, backend, nil
}

func (s *session) run(in io.Reader) {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(s.out, Prompt)
		if !scanner.Scan() {
			s.exit()
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !s.dispatch(line) {
			return
		}
	}
}

// dispatch runs one command line and reports whether the loop should go on.
func (s *session) dispatch(line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "add", "put":
		s.handleAdd(arg)
	case "get":
		s.handleGet(arg)
	case "find":
		s.handleFind(arg)
	case "del", "rm":
		s.handleDel(arg)
	case "deltitle":
		s.handleDelTitle(arg)
	case "list", "ls":
		s.handleList(arg)
	case "height":
		idH, titleH := s.catalog.Heights()
		fmt.Fprintf(s.out, "ID tree height: %d | Title tree height: %d | Records: %d\n", idH, titleH, s.catalog.Len())
	case "stats":
		s.handleStats()
	case "save":
		s.save()
	case "help":
		s.printHelp()
	case "exit", "quit":
		s.exit()
		return false
	default:
		fmt.Fprintf(s.out, "Unknown command: '%s'. Type 'help'.\n", cmd)
	}
	return true
}

func (s *session) handleAdd(arg string) {
	rec, ok := storage.ParseLine(arg)
	if !ok {
		fmt.Fprintln(s.out, "Usage: add <id>;<title>;<author>")
		return
	}
	if !s.catalog.Insert(rec) {
		fmt.Fprintf(s.out, "Ignored: ID %d or title %q already exists\n", rec.ID, rec.Title)
		return
	}
	s.dirty = true
	fmt.Fprintf(s.out, "Added %s\n", rec)
}

func (s *session) handleGet(arg string) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintln(s.out, "Usage: get <id>  (id must be an integer)")
		return
	}

	start := time.Now()
	rec, visits := s.catalog.SearchByID(id)
	duration := time.Since(start)
	s.printSearch(rec, visits, duration)
}

func (s *session) handleFind(arg string) {
	if arg == "" {
		fmt.Fprintln(s.out, "Usage: find <title>")
		return
	}

	start := time.Now()
	rec, visits := s.catalog.SearchByTitle(arg)
	duration := time.Since(start)
	s.printSearch(rec, visits, duration)
}

func (s *session) printSearch(rec *common.Record, visits int, duration time.Duration) {
	if rec == nil {
		fmt.Fprintf(s.out, "Not found (%d nodes visited, %v)\n", visits, duration)
		return
	}
	fmt.Fprintf(s.out, "%s\n  %d nodes visited (%v)\n", rec, visits, duration)
}

func (s *session) handleDel(arg string) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Fprintln(s.out, "Usage: del <id>  (id must be an integer)")
		return
	}
	s.reportDelete(s.catalog.DeleteByID(id))
}

func (s *session) handleDelTitle(arg string) {
	if arg == "" {
		fmt.Fprintln(s.out, "Usage: deltitle <title>")
		return
	}
	s.reportDelete(s.catalog.DeleteByTitle(arg))
}

func (s *session) reportDelete(ok bool) {
	if !ok {
		fmt.Fprintln(s.out, "Not found, nothing deleted")
		return
	}
	s.dirty = true
	fmt.Fprintln(s.out, "Deleted")
}

func (s *session) handleList(arg string) {
	seq := s.catalog.ByID()
	if strings.EqualFold(arg, "title") {
		seq = s.catalog.ByTitle()
	} else if arg != "" && !strings.EqualFold(arg, "id") {
		fmt.Fprintln(s.out, "Usage: list [id|title]")
		return
	}

	if s.catalog.Len() == 0 {
		fmt.Fprintln(s.out, "(empty catalog)")
		return
	}
	for rec := range seq {
		fmt.Fprintln(s.out, rec)
	}
}

func (s *session) handleStats() {
	idH, titleH := s.catalog.Heights()
	fmt.Fprintf(s.out, "records: %d\nid_height: %d\ntitle_height: %d\n", s.catalog.Len(), idH, titleH)
	for _, k := range []string{"searches", "hits", "hit_ratio", "avg_visits", "inserts", "deletes"} {
		fmt.Fprintf(s.out, "%s: %v\n", k, s.catalog.Stats().Snapshot()[k])
	}
}

func (s *session) save() {
	if err := s.catalog.Save(s.backend, s.order, s.log); err != nil {
		fmt.Fprintf(s.out, "Error: %v\n", err)
		return
	}
	s.dirty = false
	fmt.Fprintf(s.out, "Catalog saved to %s\n", s.backend.Name())
}

func (s *session) exit() {
	if s.dirty {
		s.save()
	}
	fmt.Fprintln(s.out, "Bye!")
}

func (s *session) printHelp() {
	fmt.Fprintln(s.out, `
Commands:
  add <id>;<title>;<author>   Insert a codex into both indexes
  get <id>                    Search by ID (timed)
  find <title>                Search by title (timed)
  del <id>                    Delete by ID
  deltitle <title>            Delete by title
  list [id|title]             In-order listing
  height                      Heights of both trees
  stats                       Workload counters
  save                        Rewrite the catalog file
  exit                        Save if modified and quit
	`)
}
