package services

import (
	"net/http"

	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/cms-backend/internal/models"
)

func (s *serviceSuite) TestRegisterThenLogin() {
	name := "Writer"
	resp, err := s.auth.Register(s.ctx, &dto.RegisterRequest{Email: " New@Example.com ", Password: "password123", Name: &name})
	s.Require().NoError(err)
	s.Equal("new@example.com", resp.User.Email)
	s.Equal(models.RoleUser, resp.User.Role)
	s.True(resp.User.IsActive)
	s.NotEmpty(resp.Token)

	id := s.tokens.Verify(resp.Token)
	s.Require().NotNil(id)
	s.Equal(resp.User.ID, id.ID)

	login, err := s.auth.Login(s.ctx, &dto.LoginRequest{Email: "new@example.com", Password: "password123"})
	s.Require().NoError(err)
	s.Equal(resp.User.ID, login.User.ID)

	me, err := s.auth.Me(s.ctx, id)
	s.Require().NoError(err)
	s.Equal("new@example.com", me.Email)
}

func (s *serviceSuite) TestRegisterDuplicateEmail() {
	_, err := s.auth.Register(s.ctx, &dto.RegisterRequest{Email: "alice@example.com", Password: "password123"})
	s.ErrorIs(err, ErrEmailTaken)
	s.assertKind(err, http.StatusConflict)
}

func (s *serviceSuite) TestLoginDoesNotRevealWhichPartFailed() {
	_, unknown := s.auth.Login(s.ctx, &dto.LoginRequest{Email: "ghost@example.com", Password: "password123"})
	_, wrong := s.auth.Login(s.ctx, &dto.LoginRequest{Email: "alice@example.com", Password: "nope-nope"})

	s.ErrorIs(unknown, ErrInvalidCredentials)
	s.ErrorIs(wrong, ErrInvalidCredentials)
	s.Equal(unknown.Error(), wrong.Error())
}

func (s *serviceSuite) TestLoginInactiveAccount() {
	_, err := s.users.Deactivate(s.ctx, s.bob.ID, s.admin)
	s.Require().NoError(err)

	_, err = s.auth.Login(s.ctx, &dto.LoginRequest{Email: "bob@example.com", Password: "password123"})
	s.ErrorIs(err, ErrAccountInactive)

	_, err = s.auth.Login(s.ctx, &dto.LoginRequest{Email: "bob@example.com", Password: "wrong-password"})
	s.ErrorIs(err, ErrInvalidCredentials, "inactivity is not revealed without the password")
}

func (s *serviceSuite) TestSetPasswordForInvitedAccount() {
	invited := &models.User{Email: "invited@example.com", Role: models.RoleUser, IsActive: true}
	s.Require().NoError(s.repos.Users.Create(s.ctx, invited))

	_, err := s.auth.Login(s.ctx, &dto.LoginRequest{Email: "invited@example.com", Password: "whatever1"})
	s.ErrorIs(err, ErrInvalidCredentials)

	resp, err := s.auth.SetPassword(s.ctx, &dto.SetPasswordRequest{Email: "invited@example.com", Password: "brandnew123"})
	s.Require().NoError(err)
	s.NotEmpty(resp.Token)

	_, err = s.auth.SetPassword(s.ctx, &dto.SetPasswordRequest{Email: "invited@example.com", Password: "again12345"})
	s.ErrorIs(err, ErrPasswordNotSettable)

	_, err = s.auth.SetPassword(s.ctx, &dto.SetPasswordRequest{Email: "nobody@example.com", Password: "again12345"})
	s.ErrorIs(err, ErrPasswordNotSettable)

	_, err = s.auth.Login(s.ctx, &dto.LoginRequest{Email: "invited@example.com", Password: "brandnew123"})
	s.NoError(err)
}

func (s *serviceSuite) TestMeAnonymous() {
	me, err := s.auth.Me(s.ctx, nil)
	s.NoError(err)
	s.Nil(me)
}

func (s *serviceSuite) TestLoginAlwaysRunsOneHashComparison() {
	invited := &models.User{Email: "nopass@example.com", Role: models.RoleUser, IsActive: true}
	s.Require().NoError(s.repos.Users.Create(s.ctx, invited))

	var real, dummy int
	s.auth.verify = func(plain, hash string) bool {
		real++
		return auth.VerifyPassword(plain, hash)
	}
	s.auth.verifyMissing = func(plain string) bool {
		dummy++
		return auth.VerifyMissing(plain)
	}

	for _, email := range []string{"ghost@example.com", "nopass@example.com", "alice@example.com"} {
		_, err := s.auth.Login(s.ctx, &dto.LoginRequest{Email: email, Password: "wrong-password"})
		s.ErrorIs(err, ErrInvalidCredentials, email)
	}
	s.Equal(1, real, "known account with a password")
	s.Equal(2, dummy, "unknown email and passwordless account")
}
