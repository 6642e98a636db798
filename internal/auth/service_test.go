package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/zelenagryadka/zelena-api/pkg/auth"
	"github.com/zelenagryadka/zelena-api/pkg/config"
	"github.com/zelenagryadka/zelena-api/pkg/db/models"
	pkgerrors "github.com/zelenagryadka/zelena-api/pkg/errors"
	"github.com/zelenagryadka/zelena-api/pkg/security"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "zelena",
		ExpirationMinutes: 30,
	}
}

func buildTestService(t *testing.T, repo userRepository) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:  repo,
		JWTConfig: testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}
	return svc
}

func mustHashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return hash
}

func TestServiceRegisterIssuesToken(t *testing.T) {
	repo := &stubUserRepo{}
	svc := buildTestService(t, repo)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Nickname: "sadivnyk",
		Email:    "Sadivnyk@Example.com",
		Password: "hunter42",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	if repo.created == nil {
		t.Fatalf("expected user to be created")
	}
	if repo.created.Email != "sadivnyk@example.com" {
		t.Fatalf("expected lowercased email, got %q", repo.created.Email)
	}
	if repo.created.PasswordHash == "hunter42" {
		t.Fatalf("password must not be stored in cleartext")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.Nickname != "sadivnyk" {
		t.Fatalf("expected nickname claim, got %q", claims.Nickname)
	}
	if claims.IsAdmin {
		t.Fatalf("fresh registrations must not be admins")
	}
}

func TestServiceRegisterEmailConflict(t *testing.T) {
	existing := &models.User{ID: uuid.New(), Nickname: "taken", Email: "taken@example.com"}
	svc := buildTestService(t, &stubUserRepo{byEmail: existing})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Nickname: "someone",
		Email:    "taken@example.com",
		Password: "hunter42",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestServiceRegisterNicknameConflict(t *testing.T) {
	existing := &models.User{ID: uuid.New(), Nickname: "taken", Email: "other@example.com"}
	svc := buildTestService(t, &stubUserRepo{byNickname: existing})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Nickname: "taken",
		Email:    "fresh@example.com",
		Password: "hunter42",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestServiceLoginSuccess(t *testing.T) {
	password := "kartoplia"
	user := &models.User{
		ID:           uuid.New(),
		Nickname:     "horodnytsia",
		Email:        "h@example.com",
		PasswordHash: mustHashPassword(t, password),
		IsAdmin:      true,
	}
	svc := buildTestService(t, &stubUserRepo{byEmail: user})

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "H@example.com", Password: password})
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id claim %s, got %s", user.ID, claims.UserID)
	}
	if !claims.IsAdmin {
		t.Fatalf("expected admin claim to carry over")
	}
}

func TestServiceLoginWrongPassword(t *testing.T) {
	user := &models.User{
		ID:           uuid.New(),
		Nickname:     "horodnytsia",
		Email:        "h@example.com",
		PasswordHash: mustHashPassword(t, "correct"),
	}
	svc := buildTestService(t, &stubUserRepo{byEmail: user})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "h@example.com", Password: "wrong"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestServiceLoginUnknownEmail(t *testing.T) {
	svc := buildTestService(t, &stubUserRepo{})

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
}

func TestServiceMe(t *testing.T) {
	user := &models.User{ID: uuid.New(), Nickname: "horodnytsia", Email: "h@example.com"}
	svc := buildTestService(t, &stubUserRepo{byID: user})

	dto, err := svc.Me(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if dto.ID != user.ID || dto.Nickname != user.Nickname {
		t.Fatalf("unexpected profile %+v", dto)
	}
}

type stubUserRepo struct {
	byEmail    *models.User
	byNickname *models.User
	byID       *models.User
	created    *models.User
	createErr  error
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.created = user
	return user, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.byEmail == nil || s.byEmail.Email != email {
		return nil, gorm.ErrRecordNotFound
	}
	return s.byEmail, nil
}

func (s *stubUserRepo) FindByNickname(ctx context.Context, nickname string) (*models.User, error) {
	if s.byNickname == nil || s.byNickname.Nickname != nickname {
		return nil, gorm.ErrRecordNotFound
	}
	return s.byNickname, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if s.byID == nil || s.byID.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.byID, nil
}
