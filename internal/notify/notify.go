package notify

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/ldagroup/timetracking/internal/models"
)

// LogNotifier writes the notification e-mail to the log instead of sending
// it. It satisfies the quote notifier.
type LogNotifier struct {
	to      string
	company string
	logger  *log.Logger
	now     func() time.Time
}

func NewLogNotifier(to, company string) *LogNotifier {
	return &LogNotifier{
		to:      to,
		company: company,
		logger:  log.Default(),
		now:     time.Now,
	}
}

func (n *LogNotifier) QuoteResponded(_ context.Context, q *models.Quote) error {
	subject, body := n.render(q)
	n.logger.Printf("EMAIL NOTIFICATION TO %s\nSubject: %s\n%s", n.to, subject, body)
	return nil
}

func (n *LogNotifier) render(q *models.Quote) (string, string) {
	response := q.ClientResponse
	subject := fmt.Sprintf("Quote Response: %s - %s", titleCase(response), q.QuoteNumber)

	comments := q.ClientComments
	if comments == "" {
		comments = "No comments provided"
	}

	var b strings.Builder
	b.WriteString("Quote Response Notification\n\n")
	b.WriteString("Quote Details:\n")
	fmt.Fprintf(&b, "- Quote Number: %s\n", q.QuoteNumber)
	fmt.Fprintf(&b, "- Client: %s (%s)\n", q.Client.Name, q.Client.Email)
	fmt.Fprintf(&b, "- Response: %s\n", strings.ToUpper(response))
	fmt.Fprintf(&b, "- Response Date: %s\n\n", n.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Client Comments:\n%s\n\n", comments)
	fmt.Fprintf(&b, "---\nThis is an automated notification from the %s Quote System.\n", n.company)
	fmt.Fprintf(&b, "Please follow up with the client at: %s\n", q.Client.Email)

	return subject, b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
