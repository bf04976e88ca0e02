// Package site writes the generated landing pages, hub pages and supporting
// files to the output directory.
package site

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"time"

	"github.com/kwebdev/pagegen/internal/catalog"
	"github.com/kwebdev/pagegen/internal/config"
	"github.com/kwebdev/pagegen/internal/history"
	"github.com/kwebdev/pagegen/internal/logfields"
	"github.com/kwebdev/pagegen/internal/progress"
	"github.com/kwebdev/pagegen/internal/render"
)

// Generator builds the site described by a Config.
type Generator struct {
	Config   *config.Config
	Reporter progress.Reporter
	Logger   *slog.Logger
	// History, when set, records every run and its page hashes.
	History *history.DB
	// Now is used for run timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Result summarizes one run.
type Result struct {
	Services int
	Areas    int
	Combos   int
	Hubs     int
	// Skipped counts records dropped by validation.
	Skipped int
	// Pages lists every written page, relative to the output directory.
	Pages  []string
	Assets int
	// Sitemap and ClientConfig report whether those files were written.
	Sitemap      bool
	ClientConfig bool
	// RunID and Changed are set when history is enabled. Changed is -1
	// otherwise.
	RunID   string
	Changed int
	Report  catalog.Report
}

// NewGenerator returns a Generator with a silent reporter and the default
// logger.
func NewGenerator(cfg *config.Config) *Generator {
	return &Generator{
		Config:   cfg,
		Reporter: progress.Nop{},
		Logger:   slog.Default(),
		Now:      time.Now,
	}
}

// job is one page to render and write.
type job struct {
	dir    string
	kind   string
	render func() (string, error)
}

func (j job) file() string { return path.Join(j.dir, "index.html") }

// Generate loads the catalog, renders every page and writes it. Pages are
// written in a fixed order: services, areas, hubs, then combos.
func (g *Generator) Generate(ctx context.Context) (*Result, error) {
	cfg := g.Config
	log := g.logger()
	started := g.now()

	cat, report := catalog.Read(cfg.DataDir)
	g.logReport(report)

	r, err := render.New(render.Site{
		BusinessName: cfg.BusinessName,
		Region:       cfg.Region,
		BaseURL:      cfg.BaseURL,
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Changed: -1, Report: report}
	for _, is := range report.Issues {
		if is.Skipped {
			res.Skipped++
		}
	}

	assets, err := copyAssets(cfg.Assets.Root, cfg.OutputDir, cfg.Assets.Include, cfg.Assets.Exclude)
	if err != nil {
		return nil, fmt.Errorf("copying assets: %w", err)
	}
	res.Assets = len(assets)
	if len(assets) > 0 {
		log.Debug("Copied static assets", logfields.Count(len(assets)))
	}

	jobs := g.plan(r, cat)
	reporter := g.reporter()
	reporter.Start(len(jobs))

	var ledger []history.Page
	dirs := make([]string, 0, len(jobs))
	for i, j := range jobs {
		if err := ctx.Err(); err != nil {
			reporter.Finish()
			return nil, err
		}

		html, err := j.render()
		if err != nil {
			reporter.Finish()
			return nil, fmt.Errorf("rendering %s: %w", j.file(), err)
		}
		content := []byte(html)
		if err := writePage(cfg.OutputDir, j.file(), content); err != nil {
			reporter.Finish()
			return nil, err
		}

		switch j.kind {
		case "service":
			res.Services++
		case "area":
			res.Areas++
		case "combo":
			res.Combos++
		case "hub":
			res.Hubs++
		}
		res.Pages = append(res.Pages, j.file())
		dirs = append(dirs, j.dir)
		ledger = append(ledger, history.Page{Path: j.file(), Hash: history.Hash(content)})
		reporter.Update(i+1, "Written "+j.file())
	}
	reporter.Finish()

	if cfg.BaseURL != "" {
		data := buildSitemap(cfg.BaseURL, dirs)
		if err := writePage(cfg.OutputDir, SitemapFile, data); err != nil {
			return nil, err
		}
		res.Sitemap = true
		ledger = append(ledger, history.Page{Path: SitemapFile, Hash: history.Hash(data)})
	}

	if cfg.Client.Emit {
		data, err := buildClientConfig(cfg.BusinessName, cfg.Client)
		if err != nil {
			return nil, err
		}
		if err := writePage(cfg.OutputDir, ClientConfigFile, data); err != nil {
			return nil, err
		}
		res.ClientConfig = true
		ledger = append(ledger, history.Page{Path: ClientConfigFile, Hash: history.Hash(data)})
	}

	if g.History != nil {
		run, err := g.History.RecordRun(started, history.Counts{
			Services: res.Services,
			Areas:    res.Areas,
			Combos:   res.Combos,
		}, ledger)
		if err != nil {
			return nil, fmt.Errorf("recording history: %w", err)
		}
		res.RunID = run.ID
		res.Changed = run.Changed
	}

	log.Info("Site generated",
		slog.Int("services", res.Services),
		slog.Int("areas", res.Areas),
		slog.Int("combos", res.Combos),
		slog.Int("hubs", res.Hubs),
		logfields.DurationMS(float64(g.now().Sub(started).Microseconds())/1000))
	return res, nil
}

// plan lists the pages of one run in write order.
func (g *Generator) plan(r *render.Renderer, cat *catalog.Catalog) []job {
	services, areas := cat.Services, cat.Areas
	var jobs []job

	for _, svc := range services {
		dir := render.ServiceDir(svc.Slug)
		jobs = append(jobs, job{dir: dir, kind: "service", render: func() (string, error) {
			return r.ServicePage(svc, services, areas, render.DepthOf(dir))
		}})
	}
	for _, area := range areas {
		dir := render.AreaDir(area.Slug)
		jobs = append(jobs, job{dir: dir, kind: "area", render: func() (string, error) {
			return r.AreaPage(area, services, areas, render.DepthOf(dir))
		}})
	}

	if len(services) > 0 {
		jobs = append(jobs, job{dir: render.ServicesHubDir, kind: "hub", render: func() (string, error) {
			return r.ServicesHubPage(services)
		}})
	}
	if len(areas) > 0 {
		jobs = append(jobs, job{dir: render.AreasHubDir, kind: "hub", render: func() (string, error) {
			return r.AreasHubPage(areas)
		}})
	}

	if g.Config.GenerateCombo && len(services) > 0 && len(areas) > 0 {
		for _, svc := range services {
			for _, area := range areas {
				jobs = append(jobs, job{dir: render.ComboDir(svc.Slug, area.Slug), kind: "combo", render: func() (string, error) {
					return r.ComboPage(svc, area, services, areas)
				}})
			}
		}
	}
	return jobs
}

// logReport warns about unreadable data files and skipped records.
func (g *Generator) logReport(rep catalog.Report) {
	log := g.logger()
	for _, lr := range []struct {
		path   string
		status catalog.LoadStatus
		err    error
	}{
		{rep.Services.Path, rep.Services.Status, rep.Services.Err},
		{rep.Areas.Path, rep.Areas.Status, rep.Areas.Err},
	} {
		if lr.status == catalog.StatusLoaded {
			continue
		}
		log.Warn("Data file not loaded, continuing with no records",
			logfields.File(lr.path),
			logfields.Status(string(lr.status)),
			logfields.Error(lr.err))
	}
	for _, is := range rep.Issues {
		log.Warn("Record issue",
			logfields.File(is.File),
			logfields.Slug(is.Slug),
			logfields.Kind(string(is.Kind)),
			slog.Bool("skipped", is.Skipped))
	}
}

func (g *Generator) logger() *slog.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return slog.Default()
}

func (g *Generator) reporter() progress.Reporter {
	if g.Reporter != nil {
		return g.Reporter
	}
	return progress.Nop{}
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}
