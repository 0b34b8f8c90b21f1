package get

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/syncvault/pkg/app"
	"tableflip.dev/syncvault/pkg/printers"
	"tableflip.dev/syncvault/pkg/query"
)

// Get lists snippets. Query is parsed for device:, tag: and type: filters
// that the server applies; Filters set from flags take precedence. Text
// then narrows the result locally.
type Get struct {
	Service *app.Service
	Query   string
	Filters query.Filters
	Text    string
	ShowID  bool
	Full    bool
	JSON    bool
	Out     io.Writer
}

func (g *Get) Criteria() query.Filters {
	return query.Parse(g.Query).Merge(g.Filters)
}

func (g *Get) Do(ctx context.Context) error {
	if g.Service == nil {
		return errors.New("can not get, no service")
	}

	all, err := g.Service.Snippets(ctx, g.Criteria())
	if err != nil {
		return err
	}
	visible := query.Search(all, g.Text)

	if g.JSON {
		return printers.JSON(g.Out, visible)
	}

	pp := printers.PrettyPrint{ShowID: g.ShowID, Full: g.Full, Out: g.Out}
	pp.NewLine()
	pp.Snippets(visible, g.Text)
	if len(visible) > 0 {
		pp.TitleWithCount("", len(visible))
	}
	return nil
}

// Show prints one snippet in full.
type Show struct {
	Service *app.Service
	ID      string
	JSON    bool
	Out     io.Writer
}

func (s *Show) Do(ctx context.Context) error {
	sn, err := s.Service.Snippet(ctx, s.ID)
	if err != nil {
		return err
	}
	if s.JSON {
		return printers.JSON(s.Out, sn)
	}
	pp := printers.PrettyPrint{Out: s.Out}
	pp.Snippet(sn)
	return nil
}
