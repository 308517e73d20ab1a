package usecase

import (
	"context"

	"agriconnect/internal/domain/entity"
	"agriconnect/internal/domain/repository"
	"agriconnect/pkg/errors"
	"agriconnect/pkg/logger"
)

const (
	msgLoginFailed    = "Échec de la connexion"
	msgRegisterFailed = "Échec de l'inscription"
	msgProfileFailed  = "Échec de la mise à jour du profil"
	msgRoleNotAllowed = "Le rôle doit être acheteur ou vendeur"
)

// AuthUseCase is the auth session store. Each operation acts on the session
// of the calling browser; ctx must carry that session's upstream credentials.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	workspaces  *WorkspaceRegistry
}

func NewAuthUseCase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	workspaces *WorkspaceRegistry,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		workspaces:  workspaces,
	}
}

// Outcome is what the browser should do after an auth operation.
type Outcome struct {
	User     *entity.User `json:"user"`
	Redirect string       `json:"-"`
}

// Probe asks the backend who the session belongs to. Any failure means "not
// logged in" and is never reported to the caller.
func (uc *AuthUseCase) Probe(ctx context.Context, s *entity.Session) *entity.User {
	user, err := uc.userRepo.Me(ctx)
	if err != nil {
		logger.Debug("%s session probe failed: %v", logger.Session(s.ID), err)
		if s.Authenticated() {
			s.SetUser(nil)
		}
		return nil
	}

	s.SetUser(user)
	return user
}

func (uc *AuthUseCase) Login(ctx context.Context, s *entity.Session, email, password string) (*Outcome, error) {
	user, err := uc.userRepo.Login(ctx, email, password)
	if err != nil {
		logger.Info("%s login failed for %s: %v", logger.Session(s.ID), email, err)
		return nil, withMessage(err, msgLoginFailed)
	}

	uc.signIn(s, user)
	logger.Info("%s user %s logged in", logger.Session(s.ID), user.ID)
	return &Outcome{User: user, Redirect: entity.PathDashboard}, nil
}

func (uc *AuthUseCase) Register(ctx context.Context, s *entity.Session, data entity.RegisterData) (*Outcome, error) {
	if !data.Role.CanSelfRegister() {
		return nil, errors.Validation(msgRoleNotAllowed)
	}

	user, err := uc.userRepo.Register(ctx, data)
	if err != nil {
		logger.Info("%s registration failed for %s: %v", logger.Session(s.ID), data.Email, err)
		return nil, withMessage(err, msgRegisterFailed)
	}

	uc.signIn(s, user)
	logger.Info("%s user %s registered as %s", logger.Session(s.ID), user.ID, user.Role)
	return &Outcome{User: user, Redirect: entity.PathDashboard}, nil
}

// Logout tells the backend when it can, then forgets everything about the
// session whatever the backend answered.
func (uc *AuthUseCase) Logout(ctx context.Context, s *entity.Session) *Outcome {
	if err := uc.userRepo.Logout(ctx); err != nil {
		logger.Warn("%s backend logout failed: %v", logger.Session(s.ID), err)
	}

	s.End()
	uc.workspaces.Drop(s.ID)
	if err := uc.sessionRepo.Delete(ctx, s.ID); err != nil {
		logger.Error("%s failed to delete session: %v", logger.Session(s.ID), err)
	}

	return &Outcome{Redirect: entity.PathLogin}
}

// UpdateProfile patches the account fields and replaces the stored user.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, s *entity.Session, data entity.UpdateProfileData) (*entity.User, error) {
	if !s.Authenticated() {
		return nil, errors.Unauthorized("Authentication required", nil)
	}

	user, err := uc.userRepo.UpdateProfile(ctx, data)
	if err != nil {
		return nil, withMessage(err, msgProfileFailed)
	}

	s.SetUser(user)
	return user, nil
}

func (uc *AuthUseCase) Current(s *entity.Session) *entity.User {
	return s.CurrentUser()
}

// signIn stores the user and throws away views built for whoever used the
// browser before.
func (uc *AuthUseCase) signIn(s *entity.Session, user *entity.User) {
	s.SetUser(user)
	uc.workspaces.Drop(s.ID)
}

// withMessage keeps the code and status of err but guarantees a message the
// user can read: the backend's own when it sent one, else fallback.
func withMessage(err error, fallback string) error {
	return errors.New(errors.CodeOf(err), errors.MessageOr(err, fallback), errors.StatusOf(err), err)
}
