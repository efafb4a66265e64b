package services

import (
	"context"
	"strings"
	"time"

	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campwild-api-io/api/internal/auth"
	"campwild-api-io/api/pkg/apperr"
	"campwild-api-io/api/pkg/models"
	"campwild-api-io/api/pkg/repository"
	"campwild-api-io/api/pkg/util"
)

type UserService interface {
	Register(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	Authenticate(ctx context.Context, req models.UserLoginBody) (*models.User, error)
	AuthenticateGoogle(ctx context.Context, idToken string) (*models.User, error)
	// GetByID is the session-principal loader invoked per request.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

type userService struct {
	users          repository.UserRepository
	validate       *validator.Validate
	googleClientID string
}

func NewUserService(users repository.UserRepository, validate *validator.Validate, googleClientID string) UserService {
	return &userService{
		users:          users,
		validate:       validate,
		googleClientID: googleClientID,
	}
}

func (us *userService) Register(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	if err := us.validate.Struct(&req); err != nil {
		return nil, apperr.FromValidation(err)
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperr.Wrap(apperr.Validation, err, err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "failed to create account")
	}

	user := &models.User{
		ID:        primitive.NewObjectID(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  hash,
		CreatedAt: time.Now(),
	}

	if err := us.users.Insert(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, apperr.New(apperr.Validation, "username is already taken")
		}
		return nil, apperr.Wrap(apperr.Internal, err, "failed to create account")
	}

	return user, nil
}

// Authenticate verifies the credentials, returning the same error for an
// unknown username and a wrong password.
func (us *userService) Authenticate(ctx context.Context, req models.UserLoginBody) (*models.User, error) {
	if err := us.validate.Struct(&req); err != nil {
		return nil, apperr.FromValidation(err)
	}

	user, err := us.users.FindByUsername(ctx, req.Username)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.New(apperr.Unauthorized, "incorrect username or password")
		}
		return nil, apperr.Wrap(apperr.Internal, err, "failed to authenticate")
	}

	if err := auth.CheckPassword(user.Password, req.Password); err != nil {
		return nil, apperr.New(apperr.Unauthorized, "incorrect username or password")
	}

	if err := us.users.TouchLastLogin(ctx, user.ID); err != nil {
		// last-login is informational only
		util.LogWarning("failed to record last login for %s: %v", user.ID.Hex(), err)
	}
	return user, nil
}

// AuthenticateGoogle verifies a Google ID token and finds or creates the
// matching account.
func (us *userService) AuthenticateGoogle(ctx context.Context, idToken string) (*models.User, error) {
	if us.googleClientID == "" {
		return nil, apperr.New(apperr.Validation, "google sign-in is not configured")
	}

	v := googleAuthIDTokenVerifier.Verifier{}
	if err := v.VerifyIDToken(idToken, []string{us.googleClientID}); err != nil {
		return nil, apperr.Wrap(apperr.Unauthorized, err, "google token could not be verified")
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return nil, apperr.Wrap(apperr.Unauthorized, err, "google token could not be decoded")
	}

	user, err := us.users.FindByEmail(ctx, claimSet.Email)
	if err == nil {
		if touchErr := us.users.TouchLastLogin(ctx, user.ID); touchErr != nil {
			// last-login is informational only
			util.LogWarning("failed to record last login for %s: %v", user.ID.Hex(), touchErr)
		}
		return user, nil
	}
	if !repository.IsNotFound(err) {
		return nil, apperr.Wrap(apperr.Internal, err, "failed to authenticate")
	}

	// First sign-in: provision an account. The random password keeps the
	// local-credentials path unusable for it.
	hash, err := auth.HashPassword(auth.GenerateSecureToken(24))
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "failed to create account")
	}

	user = &models.User{
		ID:        primitive.NewObjectID(),
		Username:  usernameFromEmail(claimSet.Email),
		Email:     claimSet.Email,
		Password:  hash,
		CreatedAt: time.Now(),
		LastLogin: time.Now(),
	}

	if err := us.users.Insert(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			// Username collision with an existing local account; retry with
			// an id-derived suffix.
			user.Username = user.Username + "-" + user.ID.Hex()[18:]
			if retryErr := us.users.Insert(ctx, user); retryErr != nil {
				return nil, apperr.Wrap(apperr.Internal, retryErr, "failed to create account")
			}
			return user, nil
		}
		return nil, apperr.Wrap(apperr.Internal, err, "failed to create account")
	}
	return user, nil
}

func (us *userService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := us.users.FindByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, apperr.New(apperr.NotFound, "user not found")
		}
		return nil, apperr.Wrap(apperr.Internal, err, "failed to load user")
	}
	return user, nil
}

func usernameFromEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 0 {
		return email
	}
	return email[:at]
}
