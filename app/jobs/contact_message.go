package jobs

import (
	"fmt"

	"github.com/agrisetu/agrisetu/config"
	"github.com/agrisetu/agrisetu/pkg/logger"
	"github.com/agrisetu/agrisetu/pkg/mail"
)

// ContactMessageJob forwards a contact form submission to the support inbox.
type ContactMessageJob struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (j *ContactMessageJob) Handle() error {
	inbox := config.Get("SUPPORT_EMAIL", "support@agrisetu.in")
	body := fmt.Sprintf("From: %s <%s>\n\n%s", j.Name, j.Email, j.Message)

	if err := mail.To(inbox).Subject("[Contact] " + j.Subject).Text(body).Send(); err != nil {
		logger.Error("contact message mail failed", "email", j.Email, "error", err)
		return err
	}
	return nil
}
