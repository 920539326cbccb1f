// Command seed provisions a local travelcms database with a demo site tree
// and, optionally, articles imported from a markdown content directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	travelcms "github.com/goliatone/travel-cms"
	"github.com/goliatone/travel-cms/internal/importer"
	"github.com/goliatone/travel-cms/internal/pages"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("seed: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	envFile := fs.String("env", ".env", "Path to an optional .env file")
	dsn := fs.String("dsn", "", "SQLite DSN (defaults to TRAVELCMS_DSN or a local file)")
	baseURL := fs.String("base-url", "", "Public site origin (defaults to TRAVELCMS_BASE_URL)")
	contentDir := fs.String("content-dir", "", "Optional directory of markdown articles to import")
	demo := fs.Bool("demo", true, "Seed the demo destination tree")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := os.Stat(*envFile); err == nil {
		if err := godotenv.Load(*envFile); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	}

	cfg := travelcms.DefaultConfig()
	if v := firstNonEmpty(*dsn, os.Getenv("TRAVELCMS_DSN")); v != "" {
		cfg.Storage.DSN = v
	} else {
		cfg.Storage.DSN = "file:travelcms.db?_fk=1"
	}
	if v := firstNonEmpty(*baseURL, os.Getenv("TRAVELCMS_BASE_URL")); v != "" {
		cfg.BaseURL = v
	}

	ctx := context.Background()
	module, err := travelcms.New(cfg)
	if err != nil {
		return err
	}
	if err := module.Migrate(ctx); err != nil {
		return err
	}

	svc := module.Pages()
	home, err := ensureRoot(ctx, svc)
	if err != nil {
		return err
	}

	if *demo {
		if err := seedDemo(ctx, svc, home); err != nil {
			return err
		}
	}
	if *contentDir != "" {
		if err := seedMarkdown(ctx, svc, home, *contentDir); err != nil {
			return err
		}
	}

	log.Println("seed complete")
	return nil
}

// ensureRoot returns the home node, creating it on first run.
func ensureRoot(ctx context.Context, svc pages.Service) (*pages.Node, error) {
	if home, err := svc.Resolve(ctx, "/"); err == nil {
		return home, nil
	}
	return svc.Create(ctx, pages.CreateNodeRequest{
		Kind: pages.KindHome, Title: "Inicio", Slug: "inicio",
		Live: true, Public: true,
	})
}

// ensureChild finds a child by slug or creates it.
func ensureChild(ctx context.Context, svc pages.Service, parent *pages.Node, req pages.CreateNodeRequest) (*pages.Node, error) {
	req.ParentID = &parent.ID
	slug := req.Slug
	if slug == "" {
		slug = pages.SlugifyTitle(req.Title)
	}
	children, err := svc.Children(ctx, parent.ID, false)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		if child.Slug == slug {
			return child, nil
		}
	}
	return svc.Create(ctx, req)
}

func seedDemo(ctx context.Context, svc pages.Service, home *pages.Node) error {
	guides, err := ensureChild(ctx, svc, home, pages.CreateNodeRequest{
		Kind: pages.KindGuidesIndex, Title: "Guías", Live: true, Public: true,
	})
	if err != nil {
		return err
	}
	beaches, err := ensureChild(ctx, svc, guides, pages.CreateNodeRequest{
		Kind: pages.KindCategory, Title: "Playas", Live: true, Public: true,
		Tags: []string{"playa"},
	})
	if err != nil {
		return err
	}
	if _, err := ensureChild(ctx, svc, beaches, pages.CreateNodeRequest{
		Kind: pages.KindArticle, Title: "Mejores Playas del Caribe",
		Live: true, Public: true, Tags: []string{"playa", "familia"},
		BulkPaste: demoArticleHTML,
	}); err != nil {
		return err
	}

	destinations, err := ensureChild(ctx, svc, home, pages.CreateNodeRequest{
		Kind: pages.KindDestinationsIndex, Title: "Destinos", Live: true, Public: true,
	})
	if err != nil {
		return err
	}
	mexico, err := ensureChild(ctx, svc, destinations, pages.CreateNodeRequest{
		Kind: pages.KindCountry, Title: "México", Live: true, Public: true,
	})
	if err != nil {
		return err
	}
	if _, err := ensureChild(ctx, svc, mexico, pages.CreateNodeRequest{
		Kind: pages.KindDestination, Title: "Tulum",
		Live: true, Public: true, Tags: []string{"playa", "pareja"},
		BulkPaste: demoDestinationHTML,
	}); err != nil {
		return err
	}
	return nil
}

// seedMarkdown imports every markdown file of dir as an article under a
// "Guías" category matching its frontmatter tags.
func seedMarkdown(ctx context.Context, svc pages.Service, home *pages.Node, dir string) error {
	guides, err := ensureChild(ctx, svc, home, pages.CreateNodeRequest{
		Kind: pages.KindGuidesIndex, Title: "Guías", Live: true, Public: true,
	})
	if err != nil {
		return err
	}
	imported, err := ensureChild(ctx, svc, guides, pages.CreateNodeRequest{
		Kind: pages.KindCategory, Title: "Importadas", Live: true, Public: true,
	})
	if err != nil {
		return err
	}

	imp := importer.New()
	matches, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return err
	}
	for _, path := range matches {
		source, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		doc, err := imp.ParseMarkdown(source)
		if err != nil {
			log.Printf("skip %s: %v", path, err)
			continue
		}
		title := doc.Meta.Title
		if title == "" {
			title = strings.TrimSuffix(filepath.Base(path), ".md")
		}
		if _, err := ensureChild(ctx, svc, imported, pages.CreateNodeRequest{
			Kind: pages.KindArticle, Title: title, Slug: doc.Meta.Slug,
			Live: doc.Meta.Live, Public: true,
			SEODescription: doc.Meta.Description,
			Intro:          doc.Meta.Intro,
			HeroImageRef:   doc.Meta.HeroImage,
			Tags:           doc.Meta.Tags,
			Body:           doc.Units,
		}); err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		log.Printf("imported %s", path)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

const demoArticleHTML = `
<p>El Caribe mexicano concentra algunas de las mejores playas del continente.</p>
<h2>Playa Delfines</h2>
<p>Mirador natural y arena blanca, sin arrecife.</p>
<h2>Akumal</h2>
<p>Famosa por el snorkel con tortugas.</p>`

const demoDestinationHTML = `
<p>Tulum combina ruinas mayas, cenotes y playa.</p>
<h2>Qué Hacer</h2>
<p>Zona arqueológica, cenotes Dos Ojos y Gran Cenote.</p>
<h2>Dónde Dormir</h2>
<p>Hoteles boutique sobre la costera y hostales en el pueblo.</p>`
