package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"smartbartender/internal/domain"
)

type link struct {
	Href string
	Text string
}

type page struct {
	Title    string
	Username string
	SiteURL  string
	Class    string
	Heading  string
	Links    []link
}

const (
	classError   = "error-text"
	classSuccess = "success-text"
)

var (
	linkHome          = link{Href: "/", Text: "Back to main page"}
	linkRetryRegister = link{Href: "/register", Text: "Try again"}
	linkRetryForgot   = link{Href: "/forgot", Text: "Try again"}
	linkRetryLogin    = link{Href: "/login", Text: "Try again"}
)

func (s *Server) handleHome(c *gin.Context) {
	c.HTML(http.StatusOK, "home", page{Title: "Smart Bartender Login"})
}

func (s *Server) handleRegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register", page{Title: "Register"})
}

func (s *Server) handleForgotForm(c *gin.Context) {
	c.HTML(http.StatusOK, "forgot", page{Title: "Reset Password"})
}

func (s *Server) handleLoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login", page{Title: "Login"})
}

func (s *Server) handleLogout(c *gin.Context) {
	c.Redirect(http.StatusFound, "/")
}

func (s *Server) handleNotFound(c *gin.Context) {
	s.message(c, http.StatusNotFound, classError, "Page not found.", linkHome)
}

func (s *Server) handleRegister(c *gin.Context) {
	username, password, ok := s.formPair(c, "password", linkRetryRegister)
	if !ok {
		return
	}

	err := s.creds.RegisterUser(c.Request.Context(), username, password)
	switch {
	case err == nil:
		s.message(c, http.StatusOK, classSuccess,
			fmt.Sprintf("Account '%s' created!", username),
			link{Href: "/login", Text: "Go to login"}, linkHome)
	case errors.Is(err, domain.ErrUsernameTaken):
		s.message(c, http.StatusOK, classError,
			fmt.Sprintf("Username '%s' already exists.", username),
			link{Href: "/register", Text: "Try another username"}, linkHome)
	case errors.Is(err, domain.ErrPasswordTooShort):
		s.message(c, http.StatusOK, classError, passwordTooShortText, linkRetryRegister)
	default:
		s.internalError(c, err, linkRetryRegister)
	}
}

func (s *Server) handleForgot(c *gin.Context) {
	username, password, ok := s.formPair(c, "new_password", linkRetryForgot)
	if !ok {
		return
	}

	err := s.creds.ResetPassword(c.Request.Context(), username, password)
	switch {
	case err == nil:
		s.message(c, http.StatusOK, classSuccess, "Password reset successfully!",
			link{Href: "/login", Text: "Return to login"})
	case errors.Is(err, domain.ErrUserNotFound):
		s.message(c, http.StatusOK, classError, "Username not found.", linkRetryForgot)
	case errors.Is(err, domain.ErrPasswordTooShort):
		s.message(c, http.StatusOK, classError, passwordTooShortText, linkRetryForgot)
	default:
		s.internalError(c, err, linkRetryForgot)
	}
}

func (s *Server) handleLogin(c *gin.Context) {
	username, password, ok := s.formPair(c, "password", linkRetryLogin)
	if !ok {
		return
	}

	err := s.creds.Check(c.Request.Context(), username, password)
	switch {
	case err == nil:
		c.HTML(http.StatusOK, "welcome", page{
			Title:    "Welcome",
			Username: username.String(),
			SiteURL:  s.opts.SiteURL,
		})
	case errors.Is(err, domain.ErrInvalidCredentials):
		s.message(c, http.StatusOK, classError, "Invalid username or password", linkRetryLogin)
	default:
		s.internalError(c, err, linkRetryLogin)
	}
}

const passwordTooShortText = "Password must be at least 4 characters."

// formPair reads the username and the named password field. Missing or empty
// fields get a 400 page and ok=false.
func (s *Server) formPair(c *gin.Context, passwordField string, retry link) (domain.Username, string, bool) {
	username := c.PostForm("username")
	password := c.PostForm(passwordField)
	if username == "" || password == "" {
		s.message(c, http.StatusBadRequest, classError, "Please fill in every field.", retry)
		return "", "", false
	}
	return domain.Username(username), password, true
}

func (s *Server) internalError(c *gin.Context, err error, retry link) {
	s.logger.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	heading := "Something went wrong. Please try again later."
	if errors.Is(err, domain.ErrStorageCorrupt) {
		heading = "The account store is unavailable. Please contact the administrator."
	}
	s.message(c, http.StatusInternalServerError, classError, heading, retry)
}

func (s *Server) message(c *gin.Context, status int, class, heading string, links ...link) {
	c.HTML(status, "message", page{
		Title:   "Smart Bartender",
		Class:   class,
		Heading: heading,
		Links:   links,
	})
}
