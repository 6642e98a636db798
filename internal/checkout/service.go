package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/zelenagryadka/zelena-api/internal/cart"
	"github.com/zelenagryadka/zelena-api/internal/orders"
	product "github.com/zelenagryadka/zelena-api/internal/products"
	"github.com/zelenagryadka/zelena-api/pkg/config"
	"github.com/zelenagryadka/zelena-api/pkg/db/models"
	"github.com/zelenagryadka/zelena-api/pkg/enums"
	pkgerrors "github.com/zelenagryadka/zelena-api/pkg/errors"
	"github.com/zelenagryadka/zelena-api/pkg/logger"
	"github.com/zelenagryadka/zelena-api/pkg/metrics"
	"github.com/zelenagryadka/zelena-api/pkg/outbox"
	"github.com/zelenagryadka/zelena-api/pkg/outbox/payloads"
)

const (
	outcomeSuccess   = "success"
	outcomeEmptyCart = "empty_cart"
	outcomeConflict  = "lock_conflict"
	outcomeFailed    = "failed"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxPublisher interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// locker guards against concurrent checkouts by the same user. The redis
// client satisfies it; a nil locker disables the guard.
type locker interface {
	CheckoutLockKey(userID string) string
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

// Service executes checkout orchestration: one transaction that snapshots the
// cart into an order, clears the cart, and queues the created event.
type Service interface {
	Execute(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*orders.OrderDTO, error)
}

type service struct {
	tx          txRunner
	cartRepo    *cart.Repository
	productRepo *product.Repository
	ordersRepo  orders.Repository
	outbox      outboxPublisher
	locker      locker
	metrics     *metrics.CheckoutMetrics
	cfg         config.CheckoutConfig
	logg        *logger.Logger
}

// ServiceParams bundles the checkout dependencies. Locker, metrics, and
// logger are optional.
type ServiceParams struct {
	Tx          txRunner
	CartRepo    *cart.Repository
	ProductRepo *product.Repository
	OrdersRepo  orders.Repository
	Outbox      outboxPublisher
	Locker      locker
	Metrics     *metrics.CheckoutMetrics
	Config      config.CheckoutConfig
	Logger      *logger.Logger
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.CartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if params.ProductRepo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if params.OrdersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Outbox == nil {
		return nil, fmt.Errorf("outbox publisher required")
	}
	return &service{
		tx:          params.Tx,
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		ordersRepo:  params.OrdersRepo,
		outbox:      params.Outbox,
		locker:      params.Locker,
		metrics:     params.Metrics,
		cfg:         params.Config,
		logg:        params.Logger,
	}, nil
}

func (s *service) Execute(ctx context.Context, userID uuid.UUID, input CheckoutInput) (*orders.OrderDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id required")
	}
	paymentMethod, err := enums.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method")
	}
	deliveryMethod, err := enums.ParseDeliveryMethod(input.DeliveryMethod)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery method")
	}

	release, err := s.acquireLock(ctx, userID)
	if err != nil {
		s.metrics.IncOutcome(outcomeConflict)
		return nil, err
	}
	defer release()

	var result *orders.OrderDTO
	skipped := 0
	txErr := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		ordersRepo := s.ordersRepo.WithTx(tx)

		rows, err := cartRepo.ListItems(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load cart")
		}
		if len(rows) == 0 {
			return pkgerrors.New(pkgerrors.CodeEmptyCart, "cart is empty")
		}

		status := enums.OrderStatusCreated
		if paymentMethod.IsPrepaid() {
			status = enums.OrderStatusPaid
		}

		order := &models.Order{
			UserID:         userID,
			Status:         status,
			PaymentMethod:  paymentMethod,
			DeliveryMethod: deliveryMethod,
			FullName:       input.FullName,
			Phone:          input.Phone,
			City:           input.City,
			Address:        input.Address,
			Comment:        input.Comment,
		}

		total := decimal.Zero
		for _, row := range rows {
			snapshot, err := productRepo.FindByID(ctx, row.ProductID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					if s.cfg.StrictItems {
						return pkgerrors.New(pkgerrors.CodeNotFound, "product no longer available").
							WithDetails(map[string]string{"product_id": row.ProductID.String()})
					}
					skipped++
					continue
				}
				return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load product")
			}
			productID := snapshot.ID
			order.Items = append(order.Items, models.OrderItem{
				ProductID: &productID,
				Name:      snapshot.Name,
				Price:     snapshot.Price,
				Qty:       row.Qty,
			})
			total = total.Add(snapshot.Price.Mul(decimal.NewFromInt(int64(row.Qty))))
		}

		created, err := ordersRepo.Create(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}

		if err := cartRepo.DeleteAllForUser(ctx, userID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "clear cart")
		}

		event := outbox.DomainEvent{
			EventType:     enums.EventOrderCreated,
			AggregateType: enums.AggregateOrder,
			AggregateID:   created.ID,
			Actor:         &outbox.ActorRef{UserID: userID},
			Version:       1,
			Data: payloads.OrderCreatedEvent{
				OrderID:        created.ID,
				UserID:         userID,
				Status:         created.Status,
				PaymentMethod:  created.PaymentMethod,
				DeliveryMethod: created.DeliveryMethod,
				ItemCount:      len(created.Items),
				SkippedItems:   skipped,
				Total:          total.StringFixed(2),
			},
		}
		if err := s.outbox.Emit(ctx, tx, event); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "emit created event")
		}

		result = orders.FromModel(created)
		return nil
	})
	if txErr != nil {
		s.recordFailure(txErr)
		return nil, txErr
	}

	s.metrics.IncOutcome(outcomeSuccess)
	s.metrics.AddSkippedItems(skipped)
	if s.logg != nil && skipped > 0 {
		logCtx := s.logg.WithFields(ctx, map[string]any{
			"order_id":      result.ID.String(),
			"skipped_items": skipped,
		})
		s.logg.Warn(logCtx, "checkout skipped vanished products")
	}
	return result, nil
}

// acquireLock grabs the per-user checkout lock. Lock service outages degrade
// to unguarded checkout rather than blocking orders.
func (s *service) acquireLock(ctx context.Context, userID uuid.UUID) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}
	key := s.locker.CheckoutLockKey(userID.String())
	ok, err := s.locker.AcquireLock(ctx, key, s.cfg.LockTTL)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "checkout lock unavailable, proceeding without it")
		}
		return func() {}, nil
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "checkout already in progress")
	}
	return func() {
		if err := s.locker.ReleaseLock(context.WithoutCancel(ctx), key); err != nil && s.logg != nil {
			s.logg.Warn(ctx, "failed to release checkout lock")
		}
	}, nil
}

func (s *service) recordFailure(err error) {
	typed := pkgerrors.As(err)
	if typed != nil && typed.Code() == pkgerrors.CodeEmptyCart {
		s.metrics.IncOutcome(outcomeEmptyCart)
		return
	}
	s.metrics.IncOutcome(outcomeFailed)
}
