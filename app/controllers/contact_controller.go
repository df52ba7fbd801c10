package controllers

import (
	"github.com/agrisetu/agrisetu/app/jobs"
	"github.com/agrisetu/agrisetu/pkg/ctx"
	"github.com/agrisetu/agrisetu/pkg/logger"
	"github.com/agrisetu/agrisetu/pkg/queue"
)

// ContactController accepts contact form submissions.
type ContactController struct{}

func NewContactController() *ContactController { return &ContactController{} }

type contactRequest struct {
	Name    string `json:"name" validate:"required,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

// Store validates the submission, logs it, and queues the support email.
// The response does not wait on SMTP.
func (cc *ContactController) Store(c *ctx.Context) {
	var req contactRequest
	if !c.BindJSON(&req) {
		return
	}

	logger.Info("contact message received",
		"name", req.Name, "email", req.Email, "subject", req.Subject)

	if err := queue.Dispatch(&jobs.ContactMessageJob{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}); err != nil {
		logger.Error("contact message enqueue failed", "error", err)
	}

	c.Message("Thanks for reaching out. We will get back to you soon.")
}
