// Package notion implements the secondary per-record store on a Notion
// database. Each work record becomes one page; failures are reported per
// record and never roll back pages already created.
package notion

import (
	"context"
	"fmt"

	"github.com/jomei/notionapi"

	"worklogbot/internal/config"
	"worklogbot/internal/domain"
)

// Property names of the target Notion database.
const (
	propName     = "Name"
	propDate     = "Date"
	propTime     = "Time"
	propLocation = "Location"
	propWork     = "Work"
	propWorkers  = "Workers"
	propIncome   = "Income"
	propChat     = "Chat"
)

// Repo creates work-record pages in a Notion database.
type Repo struct {
	api        *notionapi.Client
	databaseID notionapi.DatabaseID
}

// New creates a Repo from Notion configuration.
func New(cfg config.NotionConfig) *Repo {
	return &Repo{
		api:        notionapi.NewClient(notionapi.Token(cfg.Token)),
		databaseID: notionapi.DatabaseID(cfg.DatabaseID),
	}
}

// CreateRecord writes one work record as a new page.
func (r *Repo) CreateRecord(ctx context.Context, chatID int64, rec domain.WorkRecord) error {
	_, err := r.api.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: r.databaseID,
		},
		Properties: recordProperties(chatID, rec),
	})
	if err != nil {
		return fmt.Errorf("create notion page: %w", err)
	}
	return nil
}

func recordProperties(chatID int64, rec domain.WorkRecord) notionapi.Properties {
	date := notionapi.Date(rec.Date)

	workers := make([]notionapi.Option, len(rec.Workers))
	for i, w := range rec.Workers {
		workers[i] = notionapi.Option{Name: w}
	}

	return notionapi.Properties{
		propName: notionapi.TitleProperty{
			Title: richText(rec.ObjectName),
		},
		propDate: notionapi.DateProperty{
			Date: &notionapi.DateObject{Start: &date},
		},
		propTime: notionapi.RichTextProperty{
			RichText: richText(rec.Time),
		},
		propLocation: notionapi.RichTextProperty{
			RichText: richText(rec.Location),
		},
		propWork: notionapi.RichTextProperty{
			RichText: richText(rec.WorkDone),
		},
		propWorkers: notionapi.MultiSelectProperty{
			MultiSelect: workers,
		},
		propIncome: notionapi.NumberProperty{
			Number: rec.Income,
		},
		propChat: notionapi.RichTextProperty{
			RichText: richText(fmt.Sprintf("%d", chatID)),
		},
	}
}

func richText(s string) []notionapi.RichText {
	return []notionapi.RichText{
		{Text: &notionapi.Text{Content: s}},
	}
}
