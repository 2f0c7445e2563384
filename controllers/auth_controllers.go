package controllers

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-floor/models"
	"github.com/yeremiapane/restaurant-floor/storedb"
	"github.com/yeremiapane/restaurant-floor/utils"
	"golang.org/x/crypto/bcrypt"
)

// Logins and passwords are latin letters/digits, at least 4 characters.
var credentialPattern = regexp.MustCompile(`^[A-Za-z0-9]{4,}$`)

type AuthController struct {
	Reg *storedb.Registry
}

func NewAuthController(reg *storedb.Registry) *AuthController {
	return &AuthController{Reg: reg}
}

// Register -> create a waiter account (never admin; the flag is granted by
// an operator directly in the waiters collection).
func (ac *AuthController) Register(c *gin.Context) {
	var req struct {
		Login           string `json:"login" binding:"required"`
		Password        string `json:"password" binding:"required"`
		ConfirmPassword string `json:"confirm_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if !credentialPattern.MatchString(req.Login) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("login must be latin letters or digits, at least 4 characters"))
		return
	}
	if !credentialPattern.MatchString(req.Password) {
		utils.RespondError(c, http.StatusBadRequest, errors.New("password must be latin letters or digits, at least 4 characters"))
		return
	}
	if req.Password != req.ConfirmPassword {
		utils.RespondError(c, http.StatusBadRequest, errors.New("passwords do not match"))
		return
	}

	if _, exists := ac.Reg.Waiters.FindOne(storedb.Where(
		storedb.Eq("login", storedb.String(req.Login)))); exists {
		utils.RespondError(c, http.StatusConflict, errors.New("login already taken"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	rec, err := ac.Reg.Waiters.InsertOne(models.Waiter{
		Login:    req.Login,
		Password: string(hashed),
		IsAdmin:  false,
	}.Record())
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("New waiter registered: %s", req.Login)
	utils.RespondJSON(c, http.StatusCreated, "Waiter registered", gin.H{
		"waiter_id": rec.ID(),
	})
}

// Login -> verify credentials, return JWT.
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Login    string `json:"login" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	rec, found := ac.Reg.Waiters.FindOne(storedb.Where(
		storedb.Eq("login", storedb.String(req.Login))))
	if !found {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}
	waiter := models.WaiterFromRecord(rec)

	if err := bcrypt.CompareHashAndPassword([]byte(waiter.Password), []byte(req.Password)); err != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(waiter.ID, waiter.Login, waiter.IsAdmin)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Login successful for waiter: %s", waiter.Login)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token":    token,
		"is_admin": waiter.IsAdmin,
	})
}
