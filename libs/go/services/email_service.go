package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	textTemplate "text/template"

	"github.com/google/uuid"
	"github.com/ledgerline/ledgerline-api/libs/go/db"
	"github.com/ledgerline/ledgerline-api/libs/go/helpers"
	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// EmailSender is the part of the resend client the notifier uses
type EmailSender interface {
	SendWithContext(ctx context.Context, params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// EmailService tells approvers when a discount is waiting for them
type EmailService struct {
	client    EmailSender
	logger    *zap.Logger
	fromEmail string
	fromName  string
	approvers []string
	reviewURL string
}

// NewEmailService creates a resend-backed approval notifier. reviewURL is
// the approval review page; the approval id is appended to it.
func NewEmailService(apiKey, fromEmail, fromName string, approvers []string, reviewURL string, logger *zap.Logger) *EmailService {
	return NewEmailServiceWithClient(resend.NewClient(apiKey).Emails, fromEmail, fromName, approvers, reviewURL, logger)
}

// NewEmailServiceWithClient creates a notifier over an existing sender
func NewEmailServiceWithClient(client EmailSender, fromEmail, fromName string, approvers []string, reviewURL string, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:    client,
		logger:    logger,
		fromEmail: fromEmail,
		fromName:  fromName,
		approvers: approvers,
		reviewURL: reviewURL,
	}
}

// ApprovalEmailData contains the data for the approval request templates
type ApprovalEmailData struct {
	ApprovalID        string
	TransactionType   string
	TransactionID     string
	Currency          string
	Subtotal          string
	RequestedAmount   string
	RequestedPercent  string
	ThresholdPercent  string
	RequiredApprovals int32
	ExpiresAt         string
	ReviewLink        string
}

// NotifyApprovalRequested emails every configured approver about a pending approval
func (s *EmailService) NotifyApprovalRequested(ctx context.Context, approval db.DiscountApproval) error {
	if len(s.approvers) == 0 {
		s.logger.Debug("No approvers configured, skipping approval email",
			zap.String("approval_id", approval.ID.String()))
		return nil
	}

	data := ApprovalEmailData{
		ApprovalID:        approval.ID.String(),
		TransactionType:   approval.TransactionType,
		TransactionID:     approval.TransactionID,
		Currency:          approval.Currency,
		Subtotal:          approval.Subtotal.String(),
		RequestedAmount:   approval.RequestedAmount.String(),
		RequestedPercent:  approval.RequestedPercent.StringFixed(2),
		ThresholdPercent:  approval.ThresholdPercent.StringFixed(2),
		RequiredApprovals: approval.RequiredApprovals,
		ReviewLink:        s.reviewURL + approval.ID.String(),
	}
	if expires := helpers.NullableTimestamptzToPtr(approval.ExpiresAt); expires != nil {
		data.ExpiresAt = expires.UTC().Format("2006-01-02 15:04 MST")
	}

	htmlContent, err := s.parseTemplate(approvalRequestHTML, data)
	if err != nil {
		return fmt.Errorf("failed to parse HTML template: %w", err)
	}
	textContent, err := s.parseTextTemplate(approvalRequestText, data)
	if err != nil {
		return fmt.Errorf("failed to parse text template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail),
		To:      s.approvers,
		Subject: fmt.Sprintf("Discount approval needed: %s %s on %s %s", data.RequestedAmount, data.Currency, data.TransactionType, data.TransactionID),
		Html:    htmlContent,
		Text:    textContent,
		Headers: map[string]string{
			"X-Entity-Ref-ID": uuid.New().String(),
		},
		Tags: []resend.Tag{
			{Name: "category", Value: "discount_approval"},
			{Name: "workspace_id", Value: approval.WorkspaceID.String()},
		},
	}

	sent, err := s.client.SendWithContext(ctx, params)
	if err != nil {
		s.logger.Error("failed to send approval email",
			zap.Error(err),
			zap.String("approval_id", approval.ID.String()),
			zap.Strings("to", s.approvers))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("approval email sent successfully",
		zap.String("email_id", sent.Id),
		zap.String("approval_id", approval.ID.String()),
		zap.Int("recipients", len(s.approvers)))

	return nil
}

func (s *EmailService) parseTemplate(templateStr string, data ApprovalEmailData) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *EmailService) parseTextTemplate(templateStr string, data ApprovalEmailData) (string, error) {
	tmpl, err := textTemplate.New("email_text").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const approvalRequestHTML = `
<!DOCTYPE html>
<html>
<head>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background-color: #f4f4f4; padding: 20px; text-align: center; }
        .content { padding: 20px; }
        .button { display: inline-block; padding: 10px 20px; background-color: #007bff; color: white; text-decoration: none; border-radius: 5px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h2>Discount Approval Requested</h2>
        </div>
        <div class="content">
            <p>A discount of <strong>{{.RequestedAmount}} {{.Currency}}</strong> ({{.RequestedPercent}}% of {{.Subtotal}}) on {{.TransactionType}} {{.TransactionID}} exceeds the {{.ThresholdPercent}}% approval threshold.</p>
            <p>Approvals required: {{.RequiredApprovals}}</p>
            {{if .ExpiresAt}}<p>This request expires at {{.ExpiresAt}}.</p>{{end}}
            <p><a href="{{.ReviewLink}}" class="button">Review Request</a></p>
        </div>
    </div>
</body>
</html>`

const approvalRequestText = `A discount of {{.RequestedAmount}} {{.Currency}} ({{.RequestedPercent}}% of {{.Subtotal}}) on {{.TransactionType}} {{.TransactionID}} exceeds the {{.ThresholdPercent}}% approval threshold.

Approvals required: {{.RequiredApprovals}}
{{if .ExpiresAt}}This request expires at {{.ExpiresAt}}.
{{end}}
Review the request: {{.ReviewLink}}`
