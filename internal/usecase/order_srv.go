package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/data/entity"
	"storefront/internal/data/repository"
	"storefront/internal/dto/request"
	"storefront/internal/dto/response"
	"storefront/pkg/mailer"
	"storefront/pkg/metrics"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID int64, req *request.CreateOrderRequest) (*response.OrderResponse, error)
}

type orderService struct {
	userRepo repository.UserRepository
	mailer   mailer.Sender
	email    utils.EmailConfig
	now      func() time.Time
	log      *zap.Logger
}

func NewOrderService(userRepo repository.UserRepository, sender mailer.Sender, email utils.EmailConfig, log *zap.Logger) OrderService {
	return &orderService{
		userRepo: userRepo,
		mailer:   sender,
		email:    email,
		now:      time.Now,
		log:      log.With(zap.String("service", "order")),
	}
}

// CreateOrder turns a submitted cart into one notification email. Nothing is persisted.
func (s *orderService) CreateOrder(ctx context.Context, userID int64, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	customer, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.log.Error("Failed to load customer", zap.Error(err), zap.Int64("user_id", userID))
		return nil, fmt.Errorf("load customer: %w", err)
	}
	if customer == nil {
		return nil, ErrUnauthenticated
	}

	items := make([]entity.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, entity.OrderItem{
			Name:     strings.TrimSpace(item.Name),
			Size:     item.Size,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	total, err := entity.ComputeTotal(items)
	if err != nil {
		s.log.Warn("Order total out of range", zap.Int64("user_id", userID), zap.Error(err))
		metrics.IncOrder("rejected", 0)
		return nil, fmt.Errorf("%w: %w", ErrTotalMismatch, err)
	}
	if total != req.Total {
		s.log.Warn("Order total mismatch",
			zap.Int64("user_id", userID),
			zap.Int64("submitted", req.Total),
			zap.Int64("computed", total),
		)
		metrics.IncOrder("rejected", 0)
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrTotalMismatch, total, req.Total)
	}

	now := s.now()
	order := &entity.Order{
		Number:   utils.GenerateOrderNumber(now),
		Customer: customer,
		Items:    items,
		Total:    total,
		PlacedAt: now,
	}

	msg, err := mailer.NewOrderMessage(order, mailer.OrderOptions{
		To:             s.email.OrderTo,
		CopyToCustomer: s.email.CopyToCustomer,
	})
	if err != nil {
		s.log.Error("Failed to render order email", zap.Error(err), zap.String("order_number", order.Number))
		return nil, fmt.Errorf("render order: %w", err)
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		s.log.Error("Failed to send order email",
			zap.Error(err),
			zap.String("order_number", order.Number),
			zap.Int64("user_id", userID),
		)
		metrics.IncOrder("failed", 0)
		return nil, fmt.Errorf("send order %s: %w", order.Number, err)
	}

	metrics.IncOrder("sent", total)
	s.log.Info("Order placed",
		zap.String("order_number", order.Number),
		zap.Int64("user_id", userID),
		zap.Int("items", order.ItemCount()),
		zap.Int64("total", total),
	)

	resp := response.OrderToResponse(order)
	return &resp, nil
}
