package main

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"pangkas/models"
	"pangkas/pkg/visitstats"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const defaultPageSize = 10

func setupRoutes(r *gin.Engine) {
	r.POST("/register", registerHandler)
	r.POST("/login", loginHandler)
	r.POST("/refresh", refreshHandler)
	r.POST("/revoke_refresh", revokeRefreshHandler)
	authGroup := r.Group("")
	authGroup.Use(jwtAuthMiddleware())
	authGroup.GET("/me", meHandler)
	authGroup.POST("/visits", createVisitHandler)
	authGroup.GET("/visits", listVisitsHandler)
	authGroup.PUT("/visits/:id", updateVisitHandler)
	authGroup.DELETE("/visits/:id", deleteVisitHandler)
	authGroup.GET("/dashboard/summary", dashboardSummaryHandler)
	authGroup.GET("/dashboard/chart", visitChartHandler)
}

func jwtAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || len(authHeader) < 8 || authHeader[:7] != "Bearer " {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid Authorization header"})
			c.Abort()
			return
		}
		tokenString := authHeader[7:]
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrInvalidKeyType
			}
			return jwtSecret, nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid claims"})
			c.Abort()
			return
		}
		username, _ := claims["username"].(string)
		role, _ := claims["role"].(string)
		c.Set("username", username)
		if role != "" {
			c.Set("role", role)
		}
		c.Next()
	}
}

func meHandler(c *gin.Context) {
	usernameVal, _ := c.Get("username")
	if usernameVal == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "context missing username"})
		return
	}
	username := usernameVal.(string)
	c.JSON(http.StatusOK, gin.H{"username": username})
}

// visitRequest is the create/update payload for one visit. Price is derived
// from the category unless custom_price is set, in which case a positive
// price must be supplied.
type visitRequest struct {
	Date        string `json:"date" binding:"required"`
	Time        string `json:"time" binding:"required"`
	Category    string `json:"category" binding:"required"`
	Price       int64  `json:"price"`
	CustomPrice bool   `json:"custom_price"`
}

// resolveVisitFields validates the payload and applies the pricing policy:
// the price always follows the category, an explicit price is honored only
// behind the custom_price toggle.
func resolveVisitFields(req visitRequest) (visitstats.Category, int64, error) {
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return "", 0, fmt.Errorf("date must be YYYY-MM-DD")
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return "", 0, fmt.Errorf("time must be HH:MM")
	}
	category, err := visitstats.ParseCategory(req.Category)
	if err != nil {
		return "", 0, err
	}
	if req.CustomPrice {
		if req.Price <= 0 {
			return "", 0, fmt.Errorf("custom price must be positive")
		}
		return category, req.Price, nil
	}
	return category, visitstats.PriceFor(category), nil
}

func toRecords(visits []models.Visit) []visitstats.Record {
	records := make([]visitstats.Record, len(visits))
	for i, v := range visits {
		records[i] = visitstats.Record{Date: v.Date, Time: v.Time, Category: v.Category, Price: v.Price}
	}
	return records
}

// createVisitHandler inserts one visit row. An Idempotency-Key header makes
// the insert replay-safe: a repeated submission gets the first response back
// instead of a second row.
func createVisitHandler(c *gin.Context) {
	var req visitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category, price, err := resolveVisitFields(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := c.GetHeader("Idempotency-Key")
	if key != "" && dedup != nil {
		if stored, found, err := dedup.Seen(key); err == nil && found {
			c.Data(http.StatusOK, "application/json", stored)
			return
		}
	}

	v := models.Visit{Date: req.Date, Time: req.Time, Category: string(category), Price: price}
	if err := db.Create(&v).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}

	body, _ := json.Marshal(gin.H{"id": v.ID})
	if key != "" && dedup != nil {
		// best effort across two stores: a concurrent duplicate that slipped
		// past Seen still gets the winner's response
		if stored, wrote, err := dedup.Remember(key, body); err == nil && !wrote {
			log.Warningf("duplicate submission raced key %s, replaying first response", key)
			body = stored
		}
	}
	c.Data(http.StatusOK, "application/json", body)
}

// listVisitsHandler returns one page of the visit log. The rows for the
// current day filter are fetched ordered the way the table shows them, then
// category filtering and pagination run through the shared engine.
func listVisitsHandler(c *gin.Context) {
	selector := c.DefaultQuery("category", visitstats.CategoryAll)
	if selector != visitstats.CategoryAll {
		if _, err := visitstats.ParseCategory(selector); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be a positive integer"})
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if err != nil || pageSize < 1 || pageSize > 200 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page_size must be between 1 and 200"})
		return
	}

	var visits []models.Visit
	q := db.Model(&models.Visit{}).Order("date desc").Order("time desc")
	if date := c.Query("date"); date != "" {
		q = q.Where("date = ?", date)
	}
	if err := q.Find(&visits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}

	filtered := make([]models.Visit, 0, len(visits))
	for _, v := range visits {
		if visitstats.MatchesCategory(v.Category, selector) {
			filtered = append(filtered, v)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"data":        visitstats.Paginate(filtered, pageSize, page),
		"total":       len(filtered),
		"total_pages": visitstats.TotalPages(len(filtered), pageSize),
		"page":        page,
		"page_size":   pageSize,
	})
}

func updateVisitHandler(c *gin.Context) {
	var v models.Visit
	if err := db.First(&v, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "visit not found"})
		return
	}
	var req visitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	category, price, err := resolveVisitFields(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	v.Date = req.Date
	v.Time = req.Time
	v.Category = string(category)
	v.Price = price
	if err := db.Save(&v).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, v)
}

func deleteVisitHandler(c *gin.Context) {
	var v models.Visit
	if err := db.First(&v, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "visit not found"})
		return
	}
	if err := db.Delete(&v).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "visit deleted"})
}

// dashboardSummaryHandler computes the card statistics for one range filter.
// The response echoes the filter it was computed for so a client can discard
// responses that no longer match its current filter state.
func dashboardSummaryHandler(c *gin.Context) {
	kind, err := visitstats.ParseRangeKind(c.DefaultQuery("filter", string(visitstats.RangeDay)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	start, end, err := visitstats.DateRangeFor(kind, c.Query("start"), c.Query("end"), time.Now())
	if err != nil {
		// undefined custom range: no query runs, the client shows zeros
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var visits []models.Visit
	if err := db.Where("date >= ? AND date <= ?", start, end).Find(&visits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"filter":     kind,
		"start_date": start,
		"end_date":   end,
		"summary":    visitstats.Summarize(toRecords(visits), start, end),
	})
}

// visitChartHandler returns visits-per-day counts for the bar chart.
func visitChartHandler(c *gin.Context) {
	var visits []models.Visit
	if err := db.Find(&visits).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, visitstats.GroupByDate(toRecords(visits)))
}

func registerHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := RegisterUser(req.Username, req.Password); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "user registered successfully"})
}

func loginHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := Authenticate(req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	// Generate JWT token. Resolve role name from RoleID (we only store role_id).
	roleName := ""
	if user.RoleID != nil {
		var r models.Role
		if err := db.First(&r, *user.RoleID).Error; err == nil {
			roleName = r.Name
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     roleName,
		"exp":      time.Now().Add(time.Hour * 24).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	refreshToken, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "login successful", "token": tokenString, "refresh_token": refreshToken})
}

// createAndStoreRefreshToken generates a random refresh token, stores its hash with expiry and returns the raw token string
func createAndStoreRefreshToken(userID uint) (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	token := hex.EncodeToString(b)
	// hash for storage
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	rt := models.RefreshToken{UserID: userID, TokenHash: th, ExpiresAt: time.Now().Add(30 * 24 * time.Hour)}
	if err := db.Create(&rt).Error; err != nil {
		return "", err
	}
	return token, nil
}

// helper to find refresh token record by raw token string
func findRefreshTokenByRaw(token string) (*models.RefreshToken, error) {
	h := sha256.Sum256([]byte(token))
	th := hex.EncodeToString(h[:])
	var rt models.RefreshToken
	if err := db.Where("token_hash = ?", th).First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// refreshHandler exchanges a refresh token for a new access token and rotates the refresh token
func refreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired refresh token"})
		return
	}
	var user models.User
	if err := db.First(&user, rt.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}
	roleName := ""
	if user.RoleID != nil {
		var r models.Role
		if err := db.First(&r, *user.RoleID).Error; err == nil {
			roleName = r.Name
		}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": user.Username,
		"role":     roleName,
		"exp":      time.Now().Add(15 * time.Minute).Unix(),
	})
	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}
	// rotate refresh token: revoke existing and create new one
	db.Model(&models.RefreshToken{}).Where("id = ?", rt.ID).Update("revoked", true)
	newRT, err := createAndStoreRefreshToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to rotate refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": tokenString, "refresh_token": newRT})
}

// revokeRefreshHandler revokes a given refresh token (useful on logout)
func revokeRefreshHandler(c *gin.Context) {
	var req struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	rt, err := findRefreshTokenByRaw(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "refresh token not found"})
		return
	}
	rt.Revoked = true
	if err := db.Save(rt).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "refresh token revoked"})
}
