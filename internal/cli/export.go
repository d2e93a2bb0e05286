package cli

import (
	"fmt"
	"os"

	"github.com/julianstephens/dayrail/internal/export"
	"github.com/julianstephens/dayrail/internal/storage"
)

type ExportCmd struct {
	Output string `help:"File to write; stdout when omitted." short:"o" type:"path"`
	From   string `help:"First date to include (YYYY-MM-DD)."`
	To     string `help:"Last date to include (YYYY-MM-DD)."`
}

func (c *ExportCmd) Run(ctx *Context) error {
	filter := storage.CompletionFilter{}
	if c.From != "" {
		from, err := ctx.resolveDate(c.From)
		if err != nil {
			return err
		}
		filter.StartDay = from
	}
	if c.To != "" {
		to, err := ctx.resolveDate(c.To)
		if err != nil {
			return err
		}
		filter.EndDay = to
	}

	records, err := ctx.Store.ListCompletions(filter)
	if err != nil {
		return fmt.Errorf("failed to list completions: %w", err)
	}

	if c.Output == "" {
		return export.WriteCSV(ctx.out(), records)
	}

	f, err := os.OpenFile(c.Output, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", c.Output, err)
	}
	if err := export.WriteCSV(f, records); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	ctx.printf("Exported %d records to %s\n", len(records), c.Output)
	return nil
}
