package jobs

import (
	"fmt"

	"github.com/agrisetu/agrisetu/pkg/logger"
	"github.com/agrisetu/agrisetu/pkg/mail"
	"github.com/agrisetu/agrisetu/pkg/queue"
)

// RegisterAll registers every job type with the queue so workers can
// deserialize payloads by name.
func RegisterAll() {
	queue.Register("*jobs.BookingNotificationJob", func() queue.Job { return &BookingNotificationJob{} })
	queue.Register("*jobs.ContactMessageJob", func() queue.Job { return &ContactMessageJob{} })
}

// BookingNotificationJob emails a user about a booking event. Queued by the
// booking event listeners so the HTTP handler never waits on SMTP.
type BookingNotificationJob struct {
	Email       string  `json:"email"`
	Name        string  `json:"name"`
	BookingKind string  `json:"bookingKind"` // "storage" or "transport"
	BookingID   string  `json:"bookingId"`
	Status      string  `json:"status"`
	TotalPrice  float64 `json:"totalPrice"`
}

func (j *BookingNotificationJob) Handle() error {
	subject := fmt.Sprintf("Your %s booking is %s", j.BookingKind, j.Status)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour %s booking %s is now %s.\nTotal price: Rs. %.2f\n\nAgriSetu",
		j.Name, j.BookingKind, j.BookingID, j.Status, j.TotalPrice,
	)

	if err := mail.To(j.Email).Subject(subject).Text(body).Send(); err != nil {
		logger.Error("booking notification mail failed",
			"email", j.Email, "booking", j.BookingID, "error", err)
		return err
	}
	return nil
}
