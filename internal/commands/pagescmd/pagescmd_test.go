package pagescmd

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/travel-cms/internal/blocks"
	"github.com/goliatone/travel-cms/internal/importer"
	"github.com/goliatone/travel-cms/internal/pages"
)

func seedArticle(t *testing.T, svc pages.Service) *pages.Node {
	t.Helper()
	create := func(req pages.CreateNodeRequest) *pages.Node {
		node, err := svc.Create(context.Background(), req)
		if err != nil {
			t.Fatalf("create %q: %v", req.Title, err)
		}
		return node
	}
	home := create(pages.CreateNodeRequest{Kind: pages.KindHome, Title: "Home", Live: true, Public: true})
	guides := create(pages.CreateNodeRequest{Kind: pages.KindGuidesIndex, ParentID: &home.ID, Title: "Guías", Live: true, Public: true})
	category := create(pages.CreateNodeRequest{Kind: pages.KindCategory, ParentID: &guides.ID, Title: "Playas", Live: true, Public: true})
	return create(pages.CreateNodeRequest{Kind: pages.KindArticle, ParentID: &category.ID, Title: "Mejores Playas"})
}

func TestImportLegacyHTMLCommand(t *testing.T) {
	svc := pages.NewService(
		pages.NewMemoryNodeRepository(),
		pages.WithImporter(importer.New()),
	)
	article := seedArticle(t, svc)

	handler := NewImportLegacyHTMLHandler(svc, nil)
	err := handler.Execute(context.Background(), ImportLegacyHTMLCommand{
		NodeID: article.ID,
		HTML:   "<h2>Cómo Llegar</h2><p>En bus.</p>",
	})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	saved, err := svc.Get(context.Background(), article.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	units, err := saved.Units()
	if err != nil {
		t.Fatalf("units: %v", err)
	}
	if len(units) != 2 || units[0].Type != blocks.TypeHeading {
		t.Fatalf("unexpected imported body: %+v", units)
	}
	if saved.BulkPaste != "" {
		t.Fatalf("staging field not cleared: %q", saved.BulkPaste)
	}
}

func TestImportLegacyHTMLCommandValidation(t *testing.T) {
	svc := pages.NewService(pages.NewMemoryNodeRepository())
	handler := NewImportLegacyHTMLHandler(svc, nil)

	if err := handler.Execute(context.Background(), ImportLegacyHTMLCommand{}); err == nil {
		t.Fatal("expected validation failure for empty message")
	}
	if err := handler.Execute(context.Background(), ImportLegacyHTMLCommand{NodeID: uuid.New()}); err == nil {
		t.Fatal("expected validation failure without html")
	}
}

func TestPublishNodeCommand(t *testing.T) {
	svc := pages.NewService(pages.NewMemoryNodeRepository())
	article := seedArticle(t, svc)

	handler := NewPublishNodeHandler(svc, nil)
	if err := handler.Execute(context.Background(), PublishNodeCommand{NodeID: article.ID}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	published, _ := svc.Get(context.Background(), article.ID)
	if !published.Live {
		t.Fatal("expected node live after publish command")
	}

	if err := handler.Execute(context.Background(), PublishNodeCommand{NodeID: article.ID, Unpublish: true}); err != nil {
		t.Fatalf("unpublish: %v", err)
	}
	unpublished, _ := svc.Get(context.Background(), article.ID)
	if unpublished.Live {
		t.Fatal("expected node down after unpublish command")
	}
}

func TestLinkDestinationCommandValidation(t *testing.T) {
	svc := pages.NewService(pages.NewMemoryNodeRepository())
	handler := NewLinkDestinationHandler(svc, nil)
	err := handler.Execute(context.Background(), LinkDestinationCommand{ArticleID: uuid.New()})
	if err == nil {
		t.Fatal("expected validation failure without destination_id")
	}
}
