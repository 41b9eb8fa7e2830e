package cron

import (
	"encoding/json"
	"log"
	"time"

	"calidad-be/document"
	"calidad-be/notify"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ReviewScheduler moves published documents whose review date has passed
// back into review and queues a webhook notification for each.
type ReviewScheduler struct {
	db       *sqlx.DB
	notifier *notify.Processor
}

func NewReviewScheduler(db *sqlx.DB, notifier *notify.Processor) *ReviewScheduler {
	return &ReviewScheduler{
		db:       db,
		notifier: notifier,
	}
}

type reviewDueRow struct {
	ID        string `db:"id"`
	CompanyID string `db:"company_id"`
	Title     string `db:"title"`
	Code      string `db:"code"`
}

func (r *ReviewScheduler) SweepReviewDue() {
	var due []reviewDueRow
	err := r.db.Select(&due, `
		SELECT id, company_id, title, code
		FROM documents
		WHERE status = 'published'
		AND is_active = TRUE
		AND review_date IS NOT NULL
		AND review_date <= NOW()
	`)
	if err != nil {
		log.Printf("Error querying review-due documents: %v", err)
		return
	}

	for _, row := range due {
		entry := document.AuditEntry{
			ID:        uuid.New().String(),
			Action:    document.ActionReviewDue,
			ActorID:   "system",
			ActorName: "scheduler",
			Timestamp: time.Now(),
			Reason:    "review date reached",
		}
		entryJSON, err := json.Marshal([]document.AuditEntry{entry})
		if err != nil {
			log.Printf("Error marshaling audit entry for document %s: %v", row.ID, err)
			continue
		}

		_, err = r.db.Exec(`
			UPDATE documents
			SET status = 'review',
			    audit_log = audit_log || $1::jsonb,
			    updated_at = NOW()
			WHERE id = $2 AND status = 'published'
		`, string(entryJSON), row.ID)
		if err != nil {
			log.Printf("Error moving document %s to review: %v", row.ID, err)
			continue
		}

		if r.notifier != nil {
			err = r.notifier.Submit(notify.Notification{
				Event:         "document.review_due",
				CompanyID:     row.CompanyID,
				DocumentID:    row.ID,
				DocumentTitle: row.Title,
				DocumentCode:  row.Code,
				Message:       "Document is due for review",
				OccurredAt:    time.Now().Format(time.RFC3339),
			})
			if err != nil {
				log.Printf("Error queuing review notification for document %s: %v", row.ID, err)
			}
		}
	}

	if len(due) > 0 {
		log.Printf("Moved %d document(s) to review", len(due))
	}
}

func (r *ReviewScheduler) RegisterJobs(scheduler *Scheduler) error {
	// Hourly sweep.
	err := scheduler.AddJob("0 0 * * * *", r.SweepReviewDue)
	if err != nil {
		return err
	}

	log.Println("Review scheduler jobs registered successfully")
	return nil
}
