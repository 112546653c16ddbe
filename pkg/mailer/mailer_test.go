package mailer

import (
	"context"
	"strings"
	"testing"
	"time"

	"storefront/internal/data/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testOrder() *entity.Order {
	items := []entity.OrderItem{
		{Name: "Oud Royal", Size: "10ml", Quantity: 2, Price: 45},
		{Name: "<b>Rose</b>", Size: "30ml", Quantity: 1, Price: 120},
	}
	total, _ := entity.ComputeTotal(items)
	return &entity.Order{
		Number:   "ORD-20260314-ABCDEF12",
		Customer: &entity.User{FirstName: "Anna", LastName: "Nowak", Email: "anna@example.com"},
		Items:    items,
		Total:    total,
		PlacedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
	}
}

func TestNewOrderMessage(t *testing.T) {
	msg, err := NewOrderMessage(testOrder(), OrderOptions{To: "shop@example.com"})
	require.NoError(t, err)

	assert.Equal(t, []string{"shop@example.com"}, msg.To)
	assert.Empty(t, msg.Cc)
	assert.Equal(t, "anna@example.com", msg.ReplyTo)
	assert.Equal(t, "New order ORD-20260314-ABCDEF12 (210 zł)", msg.Subject)
	assert.Equal(t, "ORD-20260314-ABCDEF12", msg.Headers["X-Order-Number"])

	assert.Contains(t, msg.TextBody, "Customer: Anna Nowak <anna@example.com>")
	assert.Contains(t, msg.TextBody, "- Oud Royal 10ml x 2 @ 45 zł = 90 zł")
	assert.Contains(t, msg.TextBody, "- <b>Rose</b> 30ml x 1 @ 120 zł = 120 zł")
	assert.Contains(t, msg.TextBody, "Total: 210 zł")
	assert.Equal(t, 2, strings.Count(msg.TextBody, "\n- "))

	assert.Contains(t, msg.HTMLBody, "&lt;b&gt;Rose&lt;/b&gt;")
	assert.NotContains(t, msg.HTMLBody, "<b>Rose</b>")
	assert.Contains(t, msg.HTMLBody, "Total: 210 zł")
}

func TestNewOrderMessage_CopyToCustomer(t *testing.T) {
	msg, err := NewOrderMessage(testOrder(), OrderOptions{To: "shop@example.com", CopyToCustomer: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"anna@example.com"}, msg.Cc)
}

func TestNewOrderMessage_NoCustomer(t *testing.T) {
	order := testOrder()
	order.Customer = nil
	_, err := NewOrderMessage(order, OrderOptions{To: "shop@example.com"})
	assert.Error(t, err)
}

func TestSMTPSender_Build(t *testing.T) {
	s := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: 587, User: "bot@shop.com"}, zap.NewNop())
	msg, err := NewOrderMessage(testOrder(), OrderOptions{To: "shop@example.com", CopyToCustomer: true})
	require.NoError(t, err)

	m := s.build(msg)
	assert.Equal(t, []string{"bot@shop.com"}, m.GetHeader("From"))
	assert.Equal(t, []string{"shop@example.com"}, m.GetHeader("To"))
	assert.Equal(t, []string{"anna@example.com"}, m.GetHeader("Cc"))
	assert.Equal(t, []string{"anna@example.com"}, m.GetHeader("Reply-To"))

	ids := m.GetHeader("Message-ID")
	require.Len(t, ids, 1)
	assert.True(t, strings.HasSuffix(ids[0], "@shop.com>"), ids[0])
}

func TestLogSender(t *testing.T) {
	s := NewLogSender(zap.NewNop())
	assert.NoError(t, s.Send(context.Background(), &Message{To: []string{"shop@example.com"}, Subject: "x"}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.Send(ctx, &Message{}), context.Canceled)
}
