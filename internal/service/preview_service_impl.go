package service

import (
	"context"
	"time"

	"github.com/alexanderramin/vitae/internal/db"
	"github.com/alexanderramin/vitae/internal/preview"
)

type previewService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewPreviewService(uow db.UnitOfWork, opts Options) PreviewService {
	return &previewService{uow: uow, observer: opts.observer()}
}

// Render loads the whole document in one read transaction and renders it.
// Nothing is written: synthesized field lists stay synthesized.
func (s *previewService) Render(ctx context.Context, documentID string) (page *preview.Page, err error) {
	defer observe(ctx, s.observer, "render-preview", time.Now(), map[string]any{"document_id": documentID}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		r := reposFor(tx)
		doc, err := r.loadDocument(ctx, documentID)
		if err != nil {
			return err
		}
		sections, err := r.loadSections(ctx, documentID)
		if err != nil {
			return err
		}
		content := make([]preview.SectionContent, 0, len(sections))
		for _, sec := range sections {
			items, err := r.loadItems(ctx, sec.ID)
			if err != nil {
				return err
			}
			content = append(content, preview.SectionContent{Section: sec, Items: items})
		}
		rendered := preview.RenderDocument(*doc, content)
		page = &rendered
		return nil
	})
	if err != nil {
		return nil, err
	}
	return page, nil
}
