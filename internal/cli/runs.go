package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/aretw0/turing/pkg/domain"
)

// ListRuns prints one line per stored record, oldest first.
func (a *App) ListRuns(ctx context.Context) error {
	ids, err := a.Store.List(ctx)
	if err != nil {
		return err
	}

	records := make([]*domain.RunRecord, 0, len(ids))
	for _, id := range ids {
		rec, err := a.Store.Load(ctx, id)
		if err != nil {
			// removed between List and Load
			if errors.Is(err, domain.ErrRunNotFound) {
				continue
			}
			return err
		}
		records = append(records, rec)
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].StartedAt.Before(records[j].StartedAt)
	})

	if len(records) == 0 {
		printSystemMessage(a.Out, "No runs recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(a.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tMACHINE\tVERDICT\tSTEPS\tINPUT")
	for _, rec := range records {
		steps := 0
		if rec.Result != nil {
			steps = rec.Result.Steps
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%q\n", rec.ID, rec.Machine, rec.Verdict(), steps, rec.Input)
	}
	return tw.Flush()
}

// InspectRun prints the markdown report of one record.
func (a *App) InspectRun(ctx context.Context, id string) error {
	rec, err := a.Store.Load(ctx, id)
	if err != nil {
		return err
	}
	r := &markdownReporter{w: a.Out, render: a.markdownRenderer()}
	return r.Report(ctx, rec)
}

// RemoveRuns deletes the given records.
func (a *App) RemoveRuns(ctx context.Context, ids ...string) error {
	for _, id := range ids {
		if err := a.Store.Delete(ctx, id); err != nil {
			return fmt.Errorf("remove %s: %w", id, err)
		}
		printSystemMessage(a.Out, "Removed run '%s'.", id)
	}
	return nil
}
