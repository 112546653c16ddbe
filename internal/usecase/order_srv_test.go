package usecase

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"storefront/internal/data/entity"
	"storefront/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderNumberPattern = regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{8}$`)

func cart() *request.CreateOrderRequest {
	return &request.CreateOrderRequest{
		Items: []request.OrderItemRequest{
			{Name: "Oud Royal", Size: "10ml", Quantity: 2, Price: 45},
			{Name: "Amber Night", Size: "60ml", Quantity: 1, Price: 240},
		},
		Total: 330,
	}
}

func TestCreateOrder_SendsOneEmail(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	user := env.repo.seed(t, &entity.User{FirstName: "Anna", LastName: "Nowak", Email: "anna@example.com"}, "")

	resp, err := env.service.Order.CreateOrder(ctx, user.ID, cart())
	require.NoError(t, err)

	assert.Regexp(t, orderNumberPattern, resp.OrderNumber)
	assert.Equal(t, int64(330), resp.Total)
	assert.Equal(t, 3, resp.ItemCount)
	require.Len(t, resp.Items, 2)
	assert.Equal(t, int64(90), resp.Items[0].LineTotal)

	require.Len(t, env.sender.sent, 1)
	msg := env.sender.sent[0]
	assert.Equal(t, []string{"shop@example.com"}, msg.To)
	assert.Equal(t, "anna@example.com", msg.ReplyTo)
	assert.Empty(t, msg.Cc)
	assert.Contains(t, msg.Subject, resp.OrderNumber)
	assert.Contains(t, msg.TextBody, "Oud Royal 10ml x 2 @ 45 zł = 90 zł")
	assert.Contains(t, msg.TextBody, "Amber Night 60ml x 1 @ 240 zł = 240 zł")
	assert.Contains(t, msg.TextBody, "Total: 330 zł")
}

func TestCreateOrder_TotalMismatch(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	user := env.repo.seed(t, &entity.User{FirstName: "Anna", LastName: "Nowak", Email: "anna@example.com"}, "")

	req := cart()
	req.Total = 1

	_, err := env.service.Order.CreateOrder(ctx, user.ID, req)
	assert.ErrorIs(t, err, ErrTotalMismatch)
	assert.Empty(t, env.sender.sent)
}

func TestCreateOrder_TotalOverflowRejected(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	user := env.repo.seed(t, &entity.User{FirstName: "Anna", LastName: "Nowak", Email: "anna@example.com"}, "")

	// 2 x 2^62 wraps to MinInt64, so the two big lines cancel and leave 45
	req := &request.CreateOrderRequest{
		Items: []request.OrderItemRequest{
			{Name: "Oud Royal", Size: "10ml", Quantity: 2, Price: 4611686018427387904},
			{Name: "Amber Night", Size: "10ml", Quantity: 2, Price: 4611686018427387904},
			{Name: "Cedar", Size: "10ml", Quantity: 1, Price: 45},
		},
		Total: 45,
	}

	_, err := env.service.Order.CreateOrder(ctx, user.ID, req)
	assert.ErrorIs(t, err, ErrTotalMismatch)
	assert.ErrorIs(t, err, entity.ErrTotalOutOfRange)
	assert.Empty(t, env.sender.sent)

	req.Items = []request.OrderItemRequest{
		{Name: "Oud Royal", Size: "10ml", Quantity: 1, Price: 4611686018427387904},
		{Name: "Amber Night", Size: "10ml", Quantity: 1, Price: 4611686018427387904},
	}
	_, err = env.service.Order.CreateOrder(ctx, user.ID, req)
	assert.ErrorIs(t, err, ErrTotalMismatch)
	assert.Empty(t, env.sender.sent)
}

func TestCreateOrder_MailFailure(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	user := env.repo.seed(t, &entity.User{FirstName: "Anna", LastName: "Nowak", Email: "anna@example.com"}, "")
	env.sender.err = errors.New("smtp: connection refused")

	_, err := env.service.Order.CreateOrder(ctx, user.ID, cart())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrTotalMismatch)
}

func TestCreateOrder_UnknownCustomer(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.service.Order.CreateOrder(context.Background(), 42, cart())
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
