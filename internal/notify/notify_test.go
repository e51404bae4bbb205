package notify

import (
	"bytes"
	"context"
	"log"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldagroup/timetracking/internal/models"
)

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier("info@ldagroup.co.uk", "LDA Group")
	n.logger = log.New(&buf, "", 0)
	n.now = func() time.Time { return time.Date(2024, 5, 8, 10, 0, 0, 0, time.UTC) }

	q := &models.Quote{
		QuoteNumber:    "Q-20240508-ABC123",
		Client:         models.QuoteClient{Name: "Jo", Email: "jo@example.com"},
		ClientResponse: models.QuoteStatusAccepted,
	}
	require.NoError(t, n.QuoteResponded(context.Background(), q))

	out := buf.String()
	assert.Contains(t, out, "EMAIL NOTIFICATION TO info@ldagroup.co.uk")
	assert.Contains(t, out, "Subject: Quote Response: Accepted - Q-20240508-ABC123")
	assert.Contains(t, out, "- Client: Jo (jo@example.com)")
	assert.Contains(t, out, "- Response: ACCEPTED")
	assert.Contains(t, out, "No comments provided")
	assert.Contains(t, out, "from the LDA Group Quote System")
}
