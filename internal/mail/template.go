package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/westleygroup/card-advisor/internal/model"
)

// htmlTemplate is the rich email body. The recommendation text is
// HTML-escaped by the template engine; paragraph breaks are restored
// beforehand.
var htmlTemplate = template.Must(template.New("recommendation").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <style>
    body { font-family: 'Inter', -apple-system, sans-serif; line-height: 1.6; color: #1e293b; background-color: #f8fafc; margin: 0; padding: 0; }
    .container { max-width: 600px; margin: 40px auto; background: white; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 6px rgba(0,0,0,0.1); }
    .header { background: linear-gradient(135deg, #6366F1 0%, #8B5CF6 100%); color: white; padding: 32px 24px; text-align: center; }
    .header h1 { margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 32px 24px; }
    .card { background: #f1f5f9; border-left: 4px solid #6366F1; padding: 20px; margin: 24px 0; border-radius: 8px; white-space: pre-line; }
    .notice { margin-top: 32px; padding: 16px; background: #fef3c7; border-radius: 8px; border-left: 4px solid #f59e0b; }
    .footer { background: #f8fafc; padding: 24px; text-align: center; font-size: 14px; color: #64748b; border-top: 1px solid #e2e8f0; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Your Personalized Credit Card Recommendation</h1>
      <p style="margin: 8px 0 0 0; opacity: 0.9;">Based on your financial profile</p>
    </div>
    <div class="content">
      <p>Thank you for using our Credit Card Finder tool! Based on your profile, here's our expert recommendation:</p>
      <div class="card">{{.Recommendation}}</div>
      <h3>Your Profile:</h3>
      <ul>
        <li>Credit Score: {{.Profile.CreditScore}}</li>
        <li>Monthly Income: {{.Profile.Income}}</li>
        <li>Primary Goal: {{.Profile.Goal}}</li>
        <li>Top Spending: {{.Spending}}</li>
      </ul>
      <p class="notice"><strong>Important:</strong> This is a decision-support tool, not financial advice. Please review card terms before applying.</p>
    </div>
    <div class="footer">
      <p><strong>Westley Group</strong></p>
      <p>© {{.Year}} Westley Group. All rights reserved.</p>
      <p style="margin-top: 16px; font-size: 12px;">Questions? Contact us at <a href="mailto:hello@westley-group.com">hello@westley-group.com</a></p>
    </div>
  </div>
</body>
</html>`))

type templateData struct {
	Recommendation string
	Profile        model.UserProfile
	Spending       string
	Year           int
}

func renderHTML(recommendation string, profile model.UserProfile) (string, error) {
	var buf bytes.Buffer
	err := htmlTemplate.Execute(&buf, templateData{
		Recommendation: recommendation,
		Profile:        profile,
		Spending:       strings.Join(profile.Spending, ", "),
		Year:           time.Now().Year(),
	})
	if err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}
