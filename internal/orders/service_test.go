package orders

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/zelenagryadka/zelena-api/pkg/db/models"
	"github.com/zelenagryadka/zelena-api/pkg/enums"
	pkgerrors "github.com/zelenagryadka/zelena-api/pkg/errors"
	"github.com/zelenagryadka/zelena-api/pkg/outbox"
)

type stubOrdersRepo struct {
	orders        map[uuid.UUID]*models.Order
	statusUpdates []enums.OrderStatus
}

func newStubOrdersRepo(rows ...*models.Order) *stubOrdersRepo {
	repo := &stubOrdersRepo{orders: map[uuid.UUID]*models.Order{}}
	for _, row := range rows {
		repo.orders[row.ID] = row
	}
	return repo
}

func (s *stubOrdersRepo) WithTx(tx *gorm.DB) Repository {
	return s
}

func (s *stubOrdersRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	s.orders[order.ID] = order
	return order, nil
}

func (s *stubOrdersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if order, ok := s.orders[id]; ok {
		return order, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrdersRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	out := []models.Order{}
	for _, order := range s.orders {
		if order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (s *stubOrdersRepo) ListAll(ctx context.Context, limit int) ([]models.Order, error) {
	out := []models.Order{}
	for _, order := range s.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (s *stubOrdersRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	s.statusUpdates = append(s.statusUpdates, status)
	if order, ok := s.orders[id]; ok {
		order.Status = status
	}
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubPublisher struct {
	events []outbox.DomainEvent
}

func (s *stubPublisher) Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error {
	s.events = append(s.events, event)
	return nil
}

func buildOrdersService(t *testing.T, repo Repository, publisher *stubPublisher) Service {
	t.Helper()
	svc, err := NewService(repo, stubTxRunner{}, publisher)
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func TestServiceUpdateStatusHappyPath(t *testing.T) {
	order := &models.Order{
		ID:     uuid.New(),
		UserID: uuid.New(),
		Status: enums.OrderStatusCreated,
	}
	repo := newStubOrdersRepo(order)
	publisher := &stubPublisher{}
	svc := buildOrdersService(t, repo, publisher)

	actor := outbox.ActorRef{UserID: uuid.New(), IsAdmin: true}
	dto, err := svc.UpdateStatus(context.Background(), actor, order.ID, "paid")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if dto.Status != enums.OrderStatusPaid {
		t.Fatalf("expected paid, got %s", dto.Status)
	}
	if len(publisher.events) != 1 {
		t.Fatalf("expected one outbox event, got %d", len(publisher.events))
	}
	if publisher.events[0].EventType != enums.EventOrderStatusChanged {
		t.Fatalf("unexpected event type %s", publisher.events[0].EventType)
	}
}

func TestServiceUpdateStatusUnknownValue(t *testing.T) {
	order := &models.Order{ID: uuid.New(), Status: enums.OrderStatusCreated}
	svc := buildOrdersService(t, newStubOrdersRepo(order), &stubPublisher{})

	_, err := svc.UpdateStatus(context.Background(), outbox.ActorRef{}, order.ID, "refunded")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceUpdateStatusDisallowedTransition(t *testing.T) {
	order := &models.Order{ID: uuid.New(), Status: enums.OrderStatusDelivered}
	repo := newStubOrdersRepo(order)
	publisher := &stubPublisher{}
	svc := buildOrdersService(t, repo, publisher)

	_, err := svc.UpdateStatus(context.Background(), outbox.ActorRef{}, order.ID, "paid")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
	if len(repo.statusUpdates) != 0 {
		t.Fatalf("status must not be persisted on disallowed transition")
	}
	if len(publisher.events) != 0 {
		t.Fatalf("no event expected on disallowed transition")
	}
}

func TestServiceUpdateStatusNotFound(t *testing.T) {
	svc := buildOrdersService(t, newStubOrdersRepo(), &stubPublisher{})

	_, err := svc.UpdateStatus(context.Background(), outbox.ActorRef{}, uuid.New(), "paid")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found error, got %v", err)
	}
}
