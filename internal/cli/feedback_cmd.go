// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// feedback_cmd.go - Inspect the star ratings stored by chat sessions.
//
// Command: feedback [subcommand]
// Short:   Inspect stored feedback
//
// Subcommands:
//   list      Show recent ratings and comments
//   summary   Show rating counts and the average
//
// Flags:
//   --limit N   Number of records to list (default 20, 0 for all)
//   --json      Output in JSON format

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jeranaias/zabbixai-chat/internal/feedback"
	"github.com/jeranaias/zabbixai-chat/internal/model"
	"github.com/jeranaias/zabbixai-chat/internal/util"
)

// errNoFeedback means the database has not been created yet.
var errNoFeedback = errors.New("no feedback recorded yet")

func newFeedbackCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "feedback",
		Short: "Inspect stored feedback",
		Long:  "List and summarize the star ratings submitted from chat sessions.",
	}

	var (
		limit       int
		listJSON    bool
		summaryJSON bool
	)

	list := &cobra.Command{
		Use:   "list",
		Short: "Show recent ratings and comments",
		Args:  cobra.NoArgs,
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			return app.listFeedback(cmd.Context(), cmd.OutOrStdout(), limit, listJSON)
		}),
	}
	list.Flags().IntVarP(&limit, "limit", "n", 20, "number of records to show, 0 for all")
	list.Flags().BoolVar(&listJSON, "json", false, "output in JSON format")

	summary := &cobra.Command{
		Use:   "summary",
		Short: "Show rating counts and the average",
		Args:  cobra.NoArgs,
		RunE: app.run(func(cmd *cobra.Command, args []string) error {
			return app.summarizeFeedback(cmd.Context(), cmd.OutOrStdout(), summaryJSON)
		}),
	}
	summary.Flags().BoolVar(&summaryJSON, "json", false, "output in JSON format")

	cmd.AddCommand(list, summary)
	return cmd
}

// openFeedbackDB opens the configured database without creating it.
func (a *App) openFeedbackDB() (*feedback.SQLiteStore, error) {
	path := a.cfg.Feedback.DBPath
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, errNoFeedback
	}
	db, err := feedback.OpenSQLite(path)
	if err != nil {
		return nil, NewCommandError("feedback", "open", path, err)
	}
	a.onClose(db.Close)
	return db, nil
}

func (a *App) listFeedback(ctx context.Context, out io.Writer, limit int, asJSON bool) error {
	if limit < 0 {
		return &UsageError{Msg: "--limit must not be negative"}
	}

	var records []model.FeedbackRecord
	db, err := a.openFeedbackDB()
	switch {
	case errors.Is(err, errNoFeedback):
	case err != nil:
		return err
	default:
		records, err = db.List(ctx, limit)
		if err != nil {
			return NewCommandError("feedback", "list", "query failed", err)
		}
	}

	if asJSON {
		items := make([]FeedbackItem, 0, len(records))
		for _, r := range records {
			items = append(items, FeedbackItem{
				MessageID:   r.TargetMessageID,
				Rating:      r.Rating,
				Comment:     r.Comment,
				SubmittedAt: r.SubmittedAt.UTC().Format(time.RFC3339),
			})
		}
		return NewJSONResponse("feedback list", FeedbackListData{
			Records: items,
			Count:   len(items),
			Path:    a.cfg.Feedback.DBPath,
		}).Write(out)
	}

	if len(records) == 0 {
		writeLine(out, "%s", DimStyle.Render("No feedback recorded yet."))
		return nil
	}

	writeLine(out, "%s", TitleStyle.Render("Recent feedback"))
	writeLine(out, "%s", RenderSeparator(40))
	for _, r := range records {
		writeLine(out, "%s  %s  %s", RenderStars(r.Rating),
			DimStyle.Render(humanize.Time(r.SubmittedAt)),
			DimStyle.Render(r.TargetMessageID))
		if r.Comment != "" {
			writeLine(out, "    %s", ValueStyle.Render(util.TruncateWidth(util.FirstLine(r.Comment), 70)))
		}
	}
	return nil
}

func (a *App) summarizeFeedback(ctx context.Context, out io.Writer, asJSON bool) error {
	var sum feedback.Summary
	db, err := a.openFeedbackDB()
	switch {
	case errors.Is(err, errNoFeedback):
	case err != nil:
		return err
	default:
		sum, err = db.Summarize(ctx)
		if err != nil {
			return NewCommandError("feedback", "summary", "query failed", err)
		}
	}

	if asJSON {
		byRating := make(map[int]int, model.MaxRating)
		for r := model.MinRating; r <= model.MaxRating; r++ {
			byRating[r] = sum.ByRating[r]
		}
		return NewJSONResponse("feedback summary", FeedbackSummaryData{
			Count:    sum.Count,
			Average:  sum.Average,
			ByRating: byRating,
		}).Write(out)
	}

	if sum.Count == 0 {
		writeLine(out, "%s", DimStyle.Render("No feedback recorded yet."))
		return nil
	}

	writeLine(out, "%s", TitleStyle.Render("Feedback summary"))
	writeLine(out, "%s", RenderSeparator(40))
	writeLine(out, "%s%s", RenderLabel("Ratings"), ValueStyle.Render(humanize.Comma(int64(sum.Count))))
	writeLine(out, "%s%s %s", RenderLabel("Average"),
		ValueStyle.Render(fmt.Sprintf("%.2f", sum.Average)), RenderStars(int(sum.Average+0.5)))
	for r := model.MaxRating; r >= model.MinRating; r-- {
		writeLine(out, "%s%d", RenderLabel(RenderStars(r)), sum.ByRating[r])
	}
	return nil
}
